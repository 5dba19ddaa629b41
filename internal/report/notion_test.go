package report

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jomei/notionapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amdsolutions007/Naija-Prop-Intel/internal/model"
)

type stubNotion struct {
	reqs   []*notionapi.PageCreateRequest
	failOn int // 1-based request index to fail, 0 never fails
}

func (s *stubNotion) CreatePage(_ context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error) {
	s.reqs = append(s.reqs, req)
	if s.failOn > 0 && len(s.reqs) == s.failOn {
		return nil, errors.New("notion: bad gateway")
	}
	return &notionapi.Page{ID: notionapi.ObjectID(fmt.Sprintf("page-%d", len(s.reqs)))}, nil
}

func TestPushAssessmentsCreatesPages(t *testing.T) {
	stub := &stubNotion{}
	records := []model.Assessment{analysisRecord(t), roiRecord(t)}

	created, err := PushAssessments(context.Background(), stub, "deal-db", records)
	require.NoError(t, err)
	assert.Equal(t, 2, created)
	require.Len(t, stub.reqs, 2)

	first := stub.reqs[0]
	assert.Equal(t, notionapi.ParentTypeDatabaseID, first.Parent.Type)
	assert.Equal(t, notionapi.DatabaseID("deal-db"), first.Parent.DatabaseID)

	title, ok := first.Properties["Name"].(notionapi.TitleProperty)
	require.True(t, ok, "Name must be a title property")
	require.Len(t, title.Title, 1)
	assert.Equal(t, "Ajah", title.Title[0].Text.Content)

	kind, ok := first.Properties["Kind"].(notionapi.SelectProperty)
	require.True(t, ok)
	assert.Equal(t, "analysis", kind.Select.Name)

	score, ok := first.Properties["Score"].(notionapi.NumberProperty)
	require.True(t, ok)
	assert.InDelta(t, 56.5, score.Number, 1e-9)

	price, ok := first.Properties["Price (₦)"].(notionapi.NumberProperty)
	require.True(t, ok)
	assert.InDelta(t, 45_000_000, price.Number, 1e-9)

	date, ok := first.Properties["Assessed"].(notionapi.DateProperty)
	require.True(t, ok)
	require.NotNil(t, date.Date)
	assert.NotNil(t, date.Date.Start)

	_, hasYears := first.Properties["Holding Years"]
	assert.False(t, hasYears, "analysis pages carry no holding period")

	second := stub.reqs[1]
	years, ok := second.Properties["Holding Years"].(notionapi.NumberProperty)
	require.True(t, ok, "roi pages carry the holding period")
	assert.InDelta(t, 5, years.Number, 1e-9)

	verdict, ok := second.Properties["Verdict"].(notionapi.SelectProperty)
	require.True(t, ok)
	assert.Equal(t, "FAIR", verdict.Select.Name)
}

func TestPushAssessmentsOmitsEmptyVerdict(t *testing.T) {
	stub := &stubNotion{}
	rec := analysisRecord(t)
	rec.Verdict = ""

	_, err := PushAssessments(context.Background(), stub, "deal-db", []model.Assessment{rec})
	require.NoError(t, err)

	_, hasVerdict := stub.reqs[0].Properties["Verdict"]
	assert.False(t, hasVerdict)
}

func TestPushAssessmentsStopsOnError(t *testing.T) {
	stub := &stubNotion{failOn: 2}
	records := []model.Assessment{analysisRecord(t), roiRecord(t), analysisRecord(t)}

	created, err := PushAssessments(context.Background(), stub, "deal-db", records)
	require.Error(t, err)
	assert.Equal(t, 1, created)
	assert.Len(t, stub.reqs, 2)
	assert.Contains(t, err.Error(), "r-1")
}

func TestPushAssessmentsHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	stub := &stubNotion{}

	created, err := PushAssessments(ctx, stub, "deal-db", []model.Assessment{analysisRecord(t)})
	require.Error(t, err)
	assert.Zero(t, created)
	assert.Empty(t, stub.reqs)
}
