// Package advisor drafts plain-language investment briefs from computed
// assessment results. With an API key it asks a Claude model to write the
// brief; without one, or when the model call fails, it falls back to a
// deterministic template so the command always produces something useful.
package advisor

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/amdsolutions007/Naija-Prop-Intel/internal/model"
)

// Source identifies what produced a brief.
const (
	SourceModel    = "model"
	SourceTemplate = "template"
)

// Brief is a drafted investment summary.
type Brief struct {
	Text   string `json:"text"`
	Source string `json:"source"` // model or template
	Model  string `json:"model,omitempty"`
}

// Advisor turns assessment results into briefs.
type Advisor struct {
	client    Client
	model     string
	maxTokens int64
}

// Option configures an Advisor.
type Option func(*Advisor)

// WithClient supplies the model client. Without one the advisor only
// templates.
func WithClient(c Client) Option {
	return func(a *Advisor) { a.client = c }
}

// New builds an Advisor for the given model.
func New(modelID string, maxTokens int64, opts ...Option) *Advisor {
	a := &Advisor{model: modelID, maxTokens: maxTokens}
	if a.maxTokens <= 0 {
		a.maxTokens = 1024
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Draft writes a brief for an analysis, optionally enriched with an ROI
// projection for the same property.
func (a *Advisor) Draft(ctx context.Context, an *model.Analysis, roi *model.ROIProjection) (Brief, error) {
	if a.client == nil {
		return Brief{Text: templateBrief(an, roi), Source: SourceTemplate}, nil
	}

	resp, err := a.client.CreateMessage(ctx, MessageRequest{
		Model:     a.model,
		MaxTokens: a.maxTokens,
		System:    systemPrompt,
		Messages:  []Message{{Role: "user", Content: buildPrompt(an, roi)}},
	})
	if err != nil {
		if ctx.Err() != nil {
			return Brief{}, err
		}
		zap.L().Warn("advisor model call failed, falling back to template", zap.Error(err))
		return Brief{Text: templateBrief(an, roi), Source: SourceTemplate}, nil
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		zap.L().Warn("advisor returned empty brief, falling back to template",
			zap.String("stop_reason", resp.StopReason),
		)
		return Brief{Text: templateBrief(an, roi), Source: SourceTemplate}, nil
	}

	zap.L().Debug("advisor brief drafted",
		zap.String("model", resp.Model),
		zap.Int64("input_tokens", resp.Usage.InputTokens),
		zap.Int64("output_tokens", resp.Usage.OutputTokens),
	)
	return Brief{Text: text, Source: SourceModel, Model: resp.Model}, nil
}

// systemPrompt pins the model to the computed figures. The numbers are
// already decided; the model only narrates them.
const systemPrompt = `You are a Nigerian property investment analyst. Write a short brief (at most 200 words) for a prospective buyer based strictly on the figures provided. Do not invent data, do not soften the risk tier, and quote amounts in naira as given. Structure: one paragraph on risk, one on price and costs, one on the verdict.`

// buildPrompt lays the computed results out as labelled facts.
func buildPrompt(an *model.Analysis, roi *model.ROIProjection) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Property: %s (%s), type %s, offered at ₦%.0f.\n",
		an.Zone, an.Location, an.PropertyType, an.PriceOffered)
	fmt.Fprintf(&b, "Smart score %.1f/100, risk tier %s.\n", an.SmartScore, an.RiskTier)
	fmt.Fprintf(&b, "Flood risk %.0f (%s, weight %.0f%%), security %.0f (%s, %d incidents in 2024), infrastructure %.0f (%s, %d power hours/day).\n",
		an.Risk.Flood.Score, an.Risk.Flood.Level, an.Risk.Flood.Weight*100,
		an.Risk.Security.Score, an.Risk.Security.Level, an.Risk.Security.Incidents2024,
		an.Risk.Infrastructure.Score, an.Risk.Infrastructure.Level, an.Risk.Infrastructure.PowerHours)
	fmt.Fprintf(&b, "Price status %s against typical range %s.\n", an.Price.Status, an.Price.MarketRange)
	fmt.Fprintf(&b, "One-time hidden costs ₦%.0f (omo-onile ₦%.0f, survey ₦%.0f, flood insurance ₦%.0f); generator ₦%.0f/month.\n",
		an.HiddenCosts.OneTimeTotal, an.HiddenCosts.OmoOnile, an.HiddenCosts.LandSurvey,
		an.HiddenCosts.FloodInsurance, an.HiddenCosts.GeneratorMonthly)
	if an.Notes != "" {
		fmt.Fprintf(&b, "Local notes: %s\n", an.Notes)
	}
	if roi != nil {
		fmt.Fprintf(&b, "Projection over %d years: net return ₦%.0f, ROI %.2f%% (%.2f%% annualized), verdict %s, liquidity %s (%d days to sell).\n",
			roi.HoldingYears, roi.NetReturn, roi.ROIPercent, roi.AnnualizedROI, roi.Verdict, roi.Liquidity, roi.DaysToSell)
	}
	return b.String()
}

// templateBrief is the deterministic fallback: the same facts, fixed prose.
func templateBrief(an *model.Analysis, roi *model.ROIProjection) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s) scores %.1f/100, placing it in the %s risk tier. ",
		an.Zone, an.Location, an.SmartScore, an.RiskTier)
	fmt.Fprintf(&b, "Flood risk is %s at %.0f, security %s at %.0f, infrastructure %s at %.0f.\n\n",
		strings.ToLower(an.Risk.Flood.Level), an.Risk.Flood.Score,
		strings.ToLower(an.Risk.Security.Level), an.Risk.Security.Score,
		strings.ToLower(an.Risk.Infrastructure.Level), an.Risk.Infrastructure.Score)

	fmt.Fprintf(&b, "The offered price of ₦%.0f is %s for the zone (typical range %s). ",
		an.PriceOffered, strings.ToLower(string(an.Price.Status)), an.Price.MarketRange)
	fmt.Fprintf(&b, "Budget ₦%.0f for one-time costs before fencing the plot, plus about ₦%.0f a month for generator diesel.\n\n",
		an.HiddenCosts.OneTimeTotal, an.HiddenCosts.GeneratorMonthly)

	if roi != nil {
		fmt.Fprintf(&b, "Over %d years the projection is a %.2f%% return (%.2f%% annualized), verdict %s with %s liquidity. ",
			roi.HoldingYears, roi.ROIPercent, roi.AnnualizedROI, roi.Verdict, strings.ToLower(string(roi.Liquidity)))
	}
	b.WriteString(an.Recommendation)
	return b.String()
}
