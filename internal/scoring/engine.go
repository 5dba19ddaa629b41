package scoring

import (
	"context"
	"math"
	"regexp"
	"strconv"

	"go.uber.org/zap"

	"github.com/amdsolutions007/Naija-Prop-Intel/internal/model"
	"github.com/amdsolutions007/Naija-Prop-Intel/internal/store"
)

// DefaultHoldingYears is the ROI projection horizon used when the caller
// does not specify one.
const DefaultHoldingYears = 5

// defaultPropertyType is assumed when the caller leaves the type blank.
const defaultPropertyType = "3-bedroom"

// priceRangeRe extracts the typical range from strings like
// "₦25M - ₦60M (3-bedroom)".
var priceRangeRe = regexp.MustCompile(`₦(\d+)M\s*-\s*₦(\d+)M`)

// Engine computes risk assessments and ROI projections. It is stateless over
// an immutable repository snapshot and safe for concurrent use.
type Engine struct {
	repo    store.Repository
	weights Weights
}

// NewEngine creates an Engine with the given repository and weights. Callers
// own weight validation (Weights.Validate); the engine applies them as-is.
func NewEngine(repo store.Repository, weights Weights) *Engine {
	return &Engine{repo: repo, weights: weights}
}

// AnalyzeProperty evaluates an offered price against a locality's risk
// profile. Locality resolution is exact, then case-insensitive, then
// substring over the sorted name list.
func (e *Engine) AnalyzeProperty(ctx context.Context, locality string, price float64, propertyType string) (*model.Analysis, error) {
	if price <= 0 {
		return nil, &model.InvalidInputError{Field: "price", Reason: "must be > 0"}
	}
	if propertyType == "" {
		propertyType = defaultPropertyType
	}

	zone, err := store.Resolve(ctx, e.repo, locality)
	if err != nil {
		return nil, err
	}
	if err := zone.Validate(); err != nil {
		return nil, err
	}

	floodSafety := 100 - zone.FloodRisk.Score
	smartScore := floodSafety*e.weights.FloodSafety +
		zone.Security.Score*e.weights.Security +
		zone.Infrastructure.Score*e.weights.Infrastructure
	smartScore = math.Round(smartScore*10) / 10 // 1 decimal place

	tier, recommendation := riskTier(smartScore)

	analysis := &model.Analysis{
		Zone:           zone.Name,
		Location:       zone.Location,
		PropertyType:   propertyType,
		PriceOffered:   price,
		SmartScore:     smartScore,
		RiskTier:       tier,
		Recommendation: recommendation,
		Risk: model.RiskBreakdown{
			Flood: model.FloodFactor{
				Score:          zone.FloodRisk.Score,
				Level:          zone.FloodRisk.Level,
				Weight:         e.weights.FloodSafety,
				LastMajorFlood: zone.FloodRisk.LastMajorFlood,
				RainySeason:    zone.FloodRisk.RainySeasonDanger,
				Drainage:       zone.FloodRisk.DrainageQuality,
			},
			Security: model.SecurityFactor{
				Score:          zone.Security.Score,
				Level:          zone.Security.Level,
				Weight:         e.weights.Security,
				PoliceStations: zone.Security.PoliceStations,
				Incidents2024:  zone.Security.RobberyIncidents2024,
				SafeHours:      zone.Security.SafeHours,
			},
			Infrastructure: model.InfrastructureFactor{
				Score:         zone.Infrastructure.Score,
				Level:         model.ScoreLevel(zone.Infrastructure.Score),
				Weight:        e.weights.Infrastructure,
				RoadQuality:   zone.Infrastructure.RoadQuality,
				PowerHours:    zone.Infrastructure.PowerHoursPerDay,
				WaterSource:   zone.Infrastructure.WaterSource,
				FiberInternet: zone.Infrastructure.FiberInternet,
			},
		},
		Price:       evaluatePrice(price, zone.MarketData.PriceRange),
		HiddenCosts: summarizeHiddenCosts(zone.HiddenCosts),
		Market: model.MarketSummary{
			AvgPricePerSqm:  zone.MarketData.AvgPricePerSqm,
			TypicalRange:    zone.MarketData.PriceRange,
			Appreciation5yr: zone.MarketData.Appreciation5yr,
			RentalYield:     zone.MarketData.RentalYield,
			DaysToSell:      zone.MarketData.DaysToSellAvg,
			DemandLevel:     zone.MarketData.DemandLevel,
		},
		Notes: zone.Notes,
	}

	zap.L().Debug("scoring: analyzed property",
		zap.String("zone", zone.Name),
		zap.Float64("smart_score", smartScore),
		zap.String("risk_tier", string(tier)),
		zap.String("price_status", string(analysis.Price.Status)),
	)

	return analysis, nil
}

// CalculateROI simulates a holding-period return. holdingYears zero means
// DefaultHoldingYears; anything below 1 is rejected. Capital gain is linear
// in the holding period and ROIPercent may be negative.
func (e *Engine) CalculateROI(ctx context.Context, locality string, price float64, holdingYears int) (*model.ROIProjection, error) {
	if price <= 0 {
		return nil, &model.InvalidInputError{Field: "price", Reason: "must be > 0"}
	}
	switch {
	case holdingYears == 0:
		holdingYears = DefaultHoldingYears
	case holdingYears < 1:
		return nil, &model.InvalidInputError{Field: "holding_years", Reason: "must be >= 1"}
	}

	zone, err := store.Resolve(ctx, e.repo, locality)
	if err != nil {
		return nil, err
	}
	if err := zone.Validate(); err != nil {
		return nil, err
	}

	years := float64(holdingYears)
	md := zone.MarketData
	hc := zone.HiddenCosts

	annualRental := price * md.RentalYield
	totalRental := annualRental * years

	appreciationTotal := md.Appreciation5yr * years
	capitalGain := price * appreciationTotal

	oneTime := hc.OmoOnile + hc.LandSurvey

	generatorAnnual := hc.GeneratorDieselMonthly * 12
	insuranceAnnual := hc.FloodInsurance
	var otherAnnual float64
	if hc.BoreholeMaintenance != nil {
		otherAnnual += *hc.BoreholeMaintenance
	}
	if hc.EstateServiceCharge != nil {
		otherAnnual += *hc.EstateServiceCharge
	}
	recurringAnnual := generatorAnnual + insuranceAnnual + otherAnnual
	totalHidden := oneTime + recurringAnnual*years

	grossReturn := totalRental + capitalGain
	netReturn := grossReturn - totalHidden
	roiPercent := math.Round(netReturn/price*100*100) / 100 // 2 decimal places
	annualized := math.Round(roiPercent/years*100) / 100

	verdict, recommendation := roiVerdict(roiPercent)

	proj := &model.ROIProjection{
		Zone:         zone.Name,
		Location:     zone.Location,
		Price:        price,
		HoldingYears: holdingYears,

		AnnualRental:      annualRental,
		TotalRental:       totalRental,
		RentalYield:       md.RentalYield,
		CapitalGain:       capitalGain,
		AppreciationTotal: appreciationTotal,
		GrossReturn:       grossReturn,

		OneTimeCosts:     oneTime,
		GeneratorAnnual:  generatorAnnual,
		InsuranceAnnual:  insuranceAnnual,
		OtherAnnual:      otherAnnual,
		RecurringAnnual:  recurringAnnual,
		TotalHiddenCosts: totalHidden,

		NetReturn:      netReturn,
		ROIPercent:     roiPercent,
		AnnualizedROI:  annualized,
		Verdict:        verdict,
		Recommendation: recommendation,

		DaysToSell:  md.DaysToSellAvg,
		DemandLevel: md.DemandLevel,
		Liquidity:   liquidity(md.DaysToSellAvg),
	}

	zap.L().Debug("scoring: projected roi",
		zap.String("zone", zone.Name),
		zap.Int("holding_years", holdingYears),
		zap.Float64("roi_percent", roiPercent),
		zap.String("verdict", string(verdict)),
	)

	return proj, nil
}

// riskTier maps a smart score to its band and plain-text recommendation.
// Lower bounds are inclusive.
func riskTier(smartScore float64) (model.RiskTier, string) {
	switch {
	case smartScore >= 80:
		return model.RiskLow, "EXCELLENT INVESTMENT - Low risk, strong fundamentals"
	case smartScore >= 65:
		return model.RiskModerate, "PROCEED WITH CAUTION - Good potential, some risks"
	default:
		return model.RiskHigh, "HIGH RISK - Significant concerns, reconsider"
	}
}

// roiVerdict maps a projected ROI percentage to its band and recommendation.
func roiVerdict(roiPercent float64) (model.ROIVerdict, string) {
	switch {
	case roiPercent >= 80:
		return model.ROIExcellent, "EXCELLENT - Strong returns expected"
	case roiPercent >= 50:
		return model.ROIGood, "GOOD - Solid investment potential"
	case roiPercent >= 30:
		return model.ROIFair, "FAIR - Modest returns, consider alternatives"
	default:
		return model.ROIPoor, "POOR - Low returns, high risk"
	}
}

// liquidity classifies how quickly properties move.
func liquidity(daysToSell int) model.Liquidity {
	switch {
	case daysToSell < 90:
		return model.LiquidityHigh
	case daysToSell < 150:
		return model.LiquidityModerate
	default:
		return model.LiquidityLow
	}
}

// evaluatePrice classifies an offered price against the zone's typical range.
// An unparseable range string yields PriceUnknown, not an error.
func evaluatePrice(price float64, priceRange string) model.PriceAssessment {
	pa := model.PriceAssessment{
		MarketRange:  priceRange,
		PriceOffered: price,
	}

	m := priceRangeRe.FindStringSubmatch(priceRange)
	if m == nil {
		pa.Status = model.PriceUnknown
		pa.Verdict = "UNABLE TO DETERMINE - Verify market research"
		return pa
	}

	lo, _ := strconv.ParseFloat(m[1], 64)
	hi, _ := strconv.ParseFloat(m[2], 64)
	low := lo * 1_000_000
	high := hi * 1_000_000
	mid := (low + high) / 2

	pa.RangeLow = low
	pa.RangeHigh = high
	pa.MarketMedian = mid

	switch {
	case price < low*0.9:
		pa.Status = model.PriceUnderpriced
		pa.Verdict = "BARGAIN - Below market, investigate why"
	case price <= mid:
		pa.Status = model.PriceFair
		pa.Verdict = "FAIR PRICE - Within typical range"
	case price <= high:
		pa.Status = model.PriceElevated
		pa.Verdict = "HIGH - Upper range, negotiate down"
	default:
		pa.Status = model.PriceOverpriced
		pa.Verdict = "OVERPRICED - Above market, avoid"
	}
	return pa
}

// summarizeHiddenCosts reports the one-time exposure surfaced with an
// analysis. The monthly generator cost rides along for context but is not
// part of the subtotal.
func summarizeHiddenCosts(hc model.HiddenCosts) model.HiddenCostSummary {
	return model.HiddenCostSummary{
		OmoOnile:         hc.OmoOnile,
		LandSurvey:       hc.LandSurvey,
		FloodInsurance:   hc.FloodInsurance,
		GeneratorMonthly: hc.GeneratorDieselMonthly,
		OneTimeTotal:     hc.OmoOnile + hc.LandSurvey + hc.FloodInsurance,
	}
}
