package scoring

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amdsolutions007/Naija-Prop-Intel/internal/model"
)

// fakeRepo is an in-memory store.Repository for engine tests.
type fakeRepo struct {
	zones map[string]model.Zone
}

func (f *fakeRepo) Zone(_ context.Context, name string) (model.Zone, error) {
	z, ok := f.zones[name]
	if !ok {
		return model.Zone{}, &model.NotFoundError{Query: name}
	}
	return z, nil
}

func (f *fakeRepo) Names(_ context.Context) ([]string, error) {
	names := make([]string, 0, len(f.zones))
	for name := range f.zones {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (f *fakeRepo) Close() error { return nil }

func ajahZone() model.Zone {
	return model.Zone{
		Name:        "Ajah",
		Location:    "Ajah, Lagos",
		Coordinates: model.Coordinates{Lat: 6.4675, Lng: 3.5687},
		FloodRisk: model.FloodRisk{
			Score:             75,
			Level:             "HIGH",
			LastMajorFlood:    "2024",
			RainySeasonDanger: "EXTREME",
			DrainageQuality:   "POOR",
		},
		Security: model.Security{
			Score:                55,
			Level:                "MODERATE",
			PoliceStations:       2,
			RobberyIncidents2024: 47,
		},
		Infrastructure: model.Infrastructure{
			Score:            60,
			RoadQuality:      "FAIR",
			PowerHoursPerDay: 12,
			FiberInternet:    true,
		},
		MarketData: model.MarketData{
			AvgPricePerSqm:  350000,
			PriceRange:      "₦25M - ₦60M (3-bedroom)",
			Appreciation5yr: 0.71,
			RentalYield:     0.055,
			DaysToSellAvg:   120,
			DemandLevel:     "HIGH",
		},
		HiddenCosts: model.HiddenCosts{
			OmoOnile:               2500000,
			LandSurvey:             450000,
			FloodInsurance:         380000,
			GeneratorDieselMonthly: 85000,
		},
		Notes: "Flooding near the expressway every rainy season.",
	}
}

// uniformZone builds a zone whose smart score equals v exactly under the
// default weights: flood risk 100-v, security v, infrastructure v.
func uniformZone(name string, v float64) model.Zone {
	z := ajahZone()
	z.Name = name
	z.Location = name + ", Lagos"
	z.FloodRisk.Score = 100 - v
	z.Security.Score = v
	z.Infrastructure.Score = v
	return z
}

func newTestEngine(zones ...model.Zone) *Engine {
	byName := make(map[string]model.Zone, len(zones))
	for _, z := range zones {
		byName[z.Name] = z
	}
	return NewEngine(&fakeRepo{zones: byName}, DefaultWeights())
}

func TestAnalyzePropertyAjah(t *testing.T) {
	t.Parallel()
	e := newTestEngine(ajahZone())

	a, err := e.AnalyzeProperty(context.Background(), "Ajah", 45_000_000, "")
	require.NoError(t, err)

	assert.Equal(t, "Ajah", a.Zone)
	assert.Equal(t, "Ajah, Lagos", a.Location)
	assert.Equal(t, "3-bedroom", a.PropertyType)
	assert.InDelta(t, 44.5, a.SmartScore, 0.001)
	assert.Equal(t, model.RiskHigh, a.RiskTier)
	assert.Equal(t, "HIGH RISK - Significant concerns, reconsider", a.Recommendation)

	assert.InDelta(t, 0.40, a.Risk.Flood.Weight, 1e-9)
	assert.InDelta(t, 0.30, a.Risk.Security.Weight, 1e-9)
	assert.Equal(t, "MODERATE", a.Risk.Infrastructure.Level) // ScoreLevel(60)

	// ₦45M sits between the ₦42.5M median and the ₦60M ceiling.
	assert.Equal(t, model.PriceElevated, a.Price.Status)
	assert.InDelta(t, 25_000_000, a.Price.RangeLow, 0.001)
	assert.InDelta(t, 60_000_000, a.Price.RangeHigh, 0.001)
	assert.InDelta(t, 42_500_000, a.Price.MarketMedian, 0.001)

	// One-time exposure includes flood insurance; generator is monthly context.
	assert.InDelta(t, 3_330_000, a.HiddenCosts.OneTimeTotal, 0.001)
	assert.InDelta(t, 85_000, a.HiddenCosts.GeneratorMonthly, 0.001)

	assert.Equal(t, 120, a.Market.DaysToSell)
	assert.Equal(t, "Flooding near the expressway every rainy season.", a.Notes)
}

func TestAnalyzePropertyTierBoundaries(t *testing.T) {
	t.Parallel()
	e := newTestEngine(
		uniformZone("Eighty", 80),
		uniformZone("SeventyNine", 79.9),
		uniformZone("SixtyFive", 65),
		uniformZone("SixtyFour", 64.9),
	)
	ctx := context.Background()

	tests := []struct {
		zone string
		want model.RiskTier
	}{
		{"Eighty", model.RiskLow},
		{"SeventyNine", model.RiskModerate},
		{"SixtyFive", model.RiskModerate},
		{"SixtyFour", model.RiskHigh},
	}
	for _, tt := range tests {
		t.Run(tt.zone, func(t *testing.T) {
			t.Parallel()
			a, err := e.AnalyzeProperty(ctx, tt.zone, 30_000_000, "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.RiskTier, "smart score %v", a.SmartScore)
		})
	}
}

func TestAnalyzePropertyPriceStatuses(t *testing.T) {
	t.Parallel()
	e := newTestEngine(ajahZone())
	ctx := context.Background()

	// Range ₦25M - ₦60M: low 25M, high 60M, median 42.5M, bargain below 22.5M.
	tests := []struct {
		name  string
		price float64
		want  model.PriceStatus
	}{
		{"underpriced", 22_000_000, model.PriceUnderpriced},
		{"bargain boundary is fair", 22_500_000, model.PriceFair},
		{"median is fair", 42_500_000, model.PriceFair},
		{"above median", 45_000_000, model.PriceElevated},
		{"ceiling is elevated", 60_000_000, model.PriceElevated},
		{"overpriced", 70_000_000, model.PriceOverpriced},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a, err := e.AnalyzeProperty(ctx, "Ajah", tt.price, "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.Price.Status)
		})
	}
}

func TestAnalyzePropertyUnparseableRange(t *testing.T) {
	t.Parallel()
	z := ajahZone()
	z.MarketData.PriceRange = "Contact agent for pricing"
	e := newTestEngine(z)

	a, err := e.AnalyzeProperty(context.Background(), "Ajah", 45_000_000, "")
	require.NoError(t, err)
	assert.Equal(t, model.PriceUnknown, a.Price.Status)
	assert.Zero(t, a.Price.RangeLow)
	assert.Zero(t, a.Price.RangeHigh)
	assert.Equal(t, "Contact agent for pricing", a.Price.MarketRange)
}

func TestAnalyzePropertyResolution(t *testing.T) {
	t.Parallel()
	lekki := ajahZone()
	lekki.Name = "Lekki Phase 1"
	lekki.Location = "Lekki Phase 1, Lagos"
	e := newTestEngine(ajahZone(), lekki)
	ctx := context.Background()

	a, err := e.AnalyzeProperty(ctx, "lekki", 45_000_000, "")
	require.NoError(t, err)
	assert.Equal(t, "Lekki Phase 1", a.Zone)

	_, err = e.AnalyzeProperty(ctx, "Banana Island", 45_000_000, "")
	require.Error(t, err)
	assert.True(t, model.IsNotFound(err))

	var nf *model.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Contains(t, nf.Available, "Ajah")
	assert.Contains(t, nf.Available, "Lekki Phase 1")
}

func TestAnalyzePropertyInvalidInput(t *testing.T) {
	t.Parallel()
	e := newTestEngine(ajahZone())
	ctx := context.Background()

	for _, price := range []float64{0, -5_000_000} {
		_, err := e.AnalyzeProperty(ctx, "Ajah", price, "")
		require.Error(t, err)
		assert.True(t, model.IsInvalidInput(err))
	}
}

func TestAnalyzePropertyMalformedRecord(t *testing.T) {
	t.Parallel()
	z := ajahZone()
	z.MarketData.DaysToSellAvg = 0
	e := newTestEngine(z)

	_, err := e.AnalyzeProperty(context.Background(), "Ajah", 45_000_000, "")
	require.Error(t, err)
	assert.True(t, model.IsMalformedRecord(err))
}

func TestCalculateROIAjahFiveYears(t *testing.T) {
	t.Parallel()
	e := newTestEngine(ajahZone())

	p, err := e.CalculateROI(context.Background(), "Ajah", 45_000_000, 5)
	require.NoError(t, err)

	assert.InDelta(t, 2_475_000, p.AnnualRental, 0.01)
	assert.InDelta(t, 12_375_000, p.TotalRental, 0.01)
	assert.InDelta(t, 3.55, p.AppreciationTotal, 1e-9)
	assert.InDelta(t, 159_750_000, p.CapitalGain, 0.01)
	assert.InDelta(t, 172_125_000, p.GrossReturn, 0.01)

	// One-time excludes flood insurance here; insurance recurs annually.
	assert.InDelta(t, 2_950_000, p.OneTimeCosts, 0.01)
	assert.InDelta(t, 1_020_000, p.GeneratorAnnual, 0.01)
	assert.InDelta(t, 380_000, p.InsuranceAnnual, 0.01)
	assert.Zero(t, p.OtherAnnual)
	assert.InDelta(t, 1_400_000, p.RecurringAnnual, 0.01)
	assert.InDelta(t, 9_950_000, p.TotalHiddenCosts, 0.01)

	assert.InDelta(t, 162_175_000, p.NetReturn, 0.01)
	assert.InDelta(t, 360.39, p.ROIPercent, 0.001)
	assert.InDelta(t, 72.08, p.AnnualizedROI, 0.001)
	assert.Equal(t, model.ROIExcellent, p.Verdict)
	assert.Equal(t, model.LiquidityModerate, p.Liquidity)
}

func TestCalculateROIOneTimeCostsNotScaled(t *testing.T) {
	t.Parallel()
	e := newTestEngine(ajahZone())
	ctx := context.Background()

	one, err := e.CalculateROI(ctx, "Ajah", 45_000_000, 1)
	require.NoError(t, err)
	ten, err := e.CalculateROI(ctx, "Ajah", 45_000_000, 10)
	require.NoError(t, err)

	assert.InDelta(t, one.OneTimeCosts, ten.OneTimeCosts, 0.001)
	// The hidden-cost gap across nine extra years is exactly nine recurring years.
	assert.InDelta(t, 9*one.RecurringAnnual, ten.TotalHiddenCosts-one.TotalHiddenCosts, 0.01)
}

func TestCalculateROIOptionalFees(t *testing.T) {
	t.Parallel()
	borehole := 200_000.0
	estate := 1_200_000.0
	z := ajahZone()
	z.HiddenCosts.BoreholeMaintenance = &borehole
	z.HiddenCosts.EstateServiceCharge = &estate
	e := newTestEngine(z)

	p, err := e.CalculateROI(context.Background(), "Ajah", 45_000_000, 5)
	require.NoError(t, err)
	assert.InDelta(t, 1_400_000, p.OtherAnnual, 0.01)
	assert.InDelta(t, 2_800_000, p.RecurringAnnual, 0.01)
	assert.InDelta(t, 2_950_000+5*2_800_000, p.TotalHiddenCosts, 0.01)
}

func TestCalculateROICanBeNegative(t *testing.T) {
	t.Parallel()
	z := ajahZone()
	z.MarketData.RentalYield = 0
	z.MarketData.Appreciation5yr = 0
	e := newTestEngine(z)

	p, err := e.CalculateROI(context.Background(), "Ajah", 10_000_000, 1)
	require.NoError(t, err)
	// Net is pure cost: 2.95M one-time + 1.4M recurring on a 10M buy.
	assert.InDelta(t, -43.5, p.ROIPercent, 0.001)
	assert.Equal(t, model.ROIPoor, p.Verdict)
}

func TestCalculateROIDefaultsAndValidation(t *testing.T) {
	t.Parallel()
	e := newTestEngine(ajahZone())
	ctx := context.Background()

	p, err := e.CalculateROI(ctx, "Ajah", 45_000_000, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultHoldingYears, p.HoldingYears)

	_, err = e.CalculateROI(ctx, "Ajah", 45_000_000, -3)
	require.Error(t, err)
	assert.True(t, model.IsInvalidInput(err))

	_, err = e.CalculateROI(ctx, "Ajah", 0, 5)
	require.Error(t, err)
	assert.True(t, model.IsInvalidInput(err))
}

func TestCalculateROIVerdictBands(t *testing.T) {
	t.Parallel()
	tests := []struct {
		roi  float64
		want model.ROIVerdict
	}{
		{80, model.ROIExcellent},
		{79.99, model.ROIGood},
		{50, model.ROIGood},
		{49.99, model.ROIFair},
		{30, model.ROIFair},
		{29.99, model.ROIPoor},
		{-10, model.ROIPoor},
	}
	for _, tt := range tests {
		v, _ := roiVerdict(tt.roi)
		assert.Equal(t, tt.want, v, "roi %v", tt.roi)
	}
}

func TestLiquidityBands(t *testing.T) {
	t.Parallel()
	assert.Equal(t, model.LiquidityHigh, liquidity(89))
	assert.Equal(t, model.LiquidityModerate, liquidity(90))
	assert.Equal(t, model.LiquidityModerate, liquidity(149))
	assert.Equal(t, model.LiquidityLow, liquidity(150))
}
