package report

import (
	"context"
	"fmt"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/amdsolutions007/Naija-Prop-Intel/internal/model"
)

// NotionClient is the slice of the Notion API the exporter needs.
type NotionClient interface {
	CreatePage(ctx context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error)
}

// NotionOption configures the Notion client.
type NotionOption func(*notionClient)

// WithNotionRateLimit overrides the default rate limit (3 req/s).
func WithNotionRateLimit(rps float64) NotionOption {
	return func(c *notionClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), max(int(rps), 1))
		} else {
			c.limiter = nil
		}
	}
}

type notionClient struct {
	inner   *notionapi.Client
	limiter *rate.Limiter
}

// NewNotionClient creates a Notion client with the given integration token.
// Calls are throttled to 3 req/s, Notion's documented limit.
func NewNotionClient(token string, opts ...NotionOption) NotionClient {
	c := &notionClient{
		inner:   notionapi.NewClient(notionapi.Token(token)),
		limiter: rate.NewLimiter(3, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *notionClient) CreatePage(ctx context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "report: notion rate limit")
		}
	}
	page, err := c.inner.Page.Create(ctx, req)
	if err != nil {
		return nil, eris.Wrap(err, "report: notion create page")
	}
	return page, nil
}

// PushAssessments creates one page per history record in the deal-tracker
// database. Returns the number of pages created; a failure stops the push
// and reports how far it got.
func PushAssessments(ctx context.Context, c NotionClient, dbID string, records []model.Assessment) (int, error) {
	created := 0
	for _, rec := range records {
		if ctx.Err() != nil {
			return created, eris.Wrap(ctx.Err(), "report: push cancelled")
		}

		req := &notionapi.PageCreateRequest{
			Parent: notionapi.Parent{
				Type:       notionapi.ParentTypeDatabaseID,
				DatabaseID: notionapi.DatabaseID(dbID),
			},
			Properties: assessmentProperties(rec),
		}
		if _, err := c.CreatePage(ctx, req); err != nil {
			return created, eris.Wrap(err, fmt.Sprintf("report: push assessment %s", rec.ID))
		}
		created++
	}
	return created, nil
}

// assessmentProperties lays a history record out against the deal-tracker
// schema: Name (title), Kind and Verdict (select), Zone (rich_text), the
// numeric columns, and the run timestamp.
func assessmentProperties(a model.Assessment) notionapi.Properties {
	assessed := notionapi.Date(a.CreatedAt)

	props := notionapi.Properties{
		"Name": notionapi.TitleProperty{
			Type: notionapi.PropertyTypeTitle,
			Title: []notionapi.RichText{
				{Type: notionapi.ObjectTypeText, Text: &notionapi.Text{Content: a.Zone}},
			},
		},
		"Kind": notionapi.SelectProperty{
			Select: notionapi.Option{Name: string(a.Kind)},
		},
		"Zone": notionapi.RichTextProperty{
			Type: notionapi.PropertyTypeRichText,
			RichText: []notionapi.RichText{
				{Type: notionapi.ObjectTypeText, Text: &notionapi.Text{Content: a.Zone}},
			},
		},
		"Price (₦)": notionapi.NumberProperty{
			Number: a.Price,
		},
		"Score": notionapi.NumberProperty{
			Number: a.Score,
		},
		"Assessed": notionapi.DateProperty{
			Date: &notionapi.DateObject{Start: &assessed},
		},
	}

	if a.Verdict != "" {
		props["Verdict"] = notionapi.SelectProperty{
			Select: notionapi.Option{Name: a.Verdict},
		}
	}
	if a.Kind == model.AssessmentROI && a.HoldingYears > 0 {
		props["Holding Years"] = notionapi.NumberProperty{
			Number: float64(a.HoldingYears),
		}
	}
	return props
}
