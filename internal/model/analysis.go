package model

import "time"

// RiskTier is the overall investment risk band derived from the smart score.
type RiskTier string

const (
	RiskLow      RiskTier = "LOW"      // smart score >= 80
	RiskModerate RiskTier = "MODERATE" // smart score >= 65
	RiskHigh     RiskTier = "HIGH"
)

// PriceStatus classifies an offered price against the zone's typical range.
type PriceStatus string

const (
	PriceUnderpriced PriceStatus = "UNDERPRICED"
	PriceFair        PriceStatus = "FAIR"
	PriceElevated    PriceStatus = "ELEVATED"
	PriceOverpriced  PriceStatus = "OVERPRICED"
	PriceUnknown     PriceStatus = "UNKNOWN" // range string unparseable; not an error
)

// ROIVerdict is the projected-return band.
type ROIVerdict string

const (
	ROIExcellent ROIVerdict = "EXCELLENT" // >= 80%
	ROIGood      ROIVerdict = "GOOD"      // >= 50%
	ROIFair      ROIVerdict = "FAIR"      // >= 30%
	ROIPoor      ROIVerdict = "POOR"
)

// Liquidity classifies how quickly properties move in a zone.
type Liquidity string

const (
	LiquidityHigh     Liquidity = "High"     // under 90 days
	LiquidityModerate Liquidity = "Moderate" // under 150 days
	LiquidityLow      Liquidity = "Low"
)

// Analysis is the full property risk assessment. Values are plain data;
// currency formatting, emoji and map links belong to the presentation layer.
type Analysis struct {
	Zone           string            `json:"zone"`
	Location       string            `json:"location"`
	PropertyType   string            `json:"property_type"`
	PriceOffered   float64           `json:"price_offered"`
	SmartScore     float64           `json:"smart_score"` // 0-100, one decimal
	RiskTier       RiskTier          `json:"risk_tier"`
	Recommendation string            `json:"recommendation"`
	Risk           RiskBreakdown     `json:"risk_breakdown"`
	Price          PriceAssessment   `json:"price_analysis"`
	HiddenCosts    HiddenCostSummary `json:"hidden_costs"`
	Market         MarketSummary     `json:"market_intelligence"`
	Notes          string            `json:"local_notes,omitempty"`
}

// RiskBreakdown itemizes the three weighted factors behind the smart score.
type RiskBreakdown struct {
	Flood          FloodFactor          `json:"flood_risk"`
	Security       SecurityFactor       `json:"security"`
	Infrastructure InfrastructureFactor `json:"infrastructure"`
}

// FloodFactor reports the flood component and its weight in the composite.
type FloodFactor struct {
	Score          float64 `json:"score"`
	Level          string  `json:"level"`
	Weight         float64 `json:"weight"`
	LastMajorFlood string  `json:"last_major_flood,omitempty"`
	RainySeason    string  `json:"rainy_season,omitempty"`
	Drainage       string  `json:"drainage,omitempty"`
}

// SecurityFactor reports the security component and its weight.
type SecurityFactor struct {
	Score          float64 `json:"score"`
	Level          string  `json:"level"`
	Weight         float64 `json:"weight"`
	PoliceStations int     `json:"police_stations"`
	Incidents2024  int     `json:"incidents_2024"`
	SafeHours      string  `json:"safe_hours,omitempty"`
}

// InfrastructureFactor reports the infrastructure component and its weight.
type InfrastructureFactor struct {
	Score         float64 `json:"score"`
	Level         string  `json:"level"`
	Weight        float64 `json:"weight"`
	RoadQuality   string  `json:"road_quality,omitempty"`
	PowerHours    int     `json:"power_hours"`
	WaterSource   string  `json:"water_source,omitempty"`
	FiberInternet bool    `json:"fiber_internet"`
}

// PriceAssessment is the verdict on an offered price against the zone's
// typical range. RangeLow/RangeHigh/MarketMedian are zero when the range
// string could not be parsed (Status == PriceUnknown).
type PriceAssessment struct {
	Status       PriceStatus `json:"status"`
	Verdict      string      `json:"verdict"`
	MarketRange  string      `json:"market_range"`
	PriceOffered float64     `json:"price_offered"`
	RangeLow     float64     `json:"range_low,omitempty"`
	RangeHigh    float64     `json:"range_high,omitempty"`
	MarketMedian float64     `json:"market_median,omitempty"`
}

// HiddenCostSummary is the one-time exposure reported with an analysis.
// OneTimeTotal = omo-onile + land survey + flood insurance; the monthly
// generator cost is informational and not part of the subtotal.
type HiddenCostSummary struct {
	OmoOnile         float64 `json:"omo_onile"`
	LandSurvey       float64 `json:"land_survey"`
	FloodInsurance   float64 `json:"flood_insurance"`
	GeneratorMonthly float64 `json:"generator_monthly"`
	OneTimeTotal     float64 `json:"one_time_total"`
}

// MarketSummary echoes the zone's market reference data.
type MarketSummary struct {
	AvgPricePerSqm  float64 `json:"avg_price_per_sqm"`
	TypicalRange    string  `json:"typical_range"`
	Appreciation5yr float64 `json:"appreciation_5yr"`
	RentalYield     float64 `json:"rental_yield"`
	DaysToSell      int     `json:"days_to_sell"`
	DemandLevel     string  `json:"demand_level,omitempty"`
}

// ROIProjection is the holding-period return simulation.
// Capital gain is linear in the holding period, not compounded; ROIPercent
// may be negative (a net loss is representable, never clamped).
type ROIProjection struct {
	Zone         string  `json:"zone"`
	Location     string  `json:"location"`
	Price        float64 `json:"price"`
	HoldingYears int     `json:"holding_years"`

	AnnualRental      float64 `json:"annual_rental"`
	TotalRental       float64 `json:"total_rental"`
	RentalYield       float64 `json:"rental_yield"`
	CapitalGain       float64 `json:"capital_gain"`
	AppreciationTotal float64 `json:"appreciation_total"` // rate x years, a fraction
	GrossReturn       float64 `json:"gross_return"`

	OneTimeCosts     float64 `json:"one_time_costs"`
	GeneratorAnnual  float64 `json:"generator_annual"`
	InsuranceAnnual  float64 `json:"insurance_annual"`
	OtherAnnual      float64 `json:"other_annual"` // borehole + estate charges when present
	RecurringAnnual  float64 `json:"recurring_annual"`
	TotalHiddenCosts float64 `json:"total_hidden_costs"`

	NetReturn      float64    `json:"net_return"`
	ROIPercent     float64    `json:"roi_percent"`
	AnnualizedROI  float64    `json:"annualized_roi"`
	Verdict        ROIVerdict `json:"verdict"`
	Recommendation string     `json:"recommendation"`

	DaysToSell  int       `json:"days_to_sell"`
	DemandLevel string    `json:"demand_level,omitempty"`
	Liquidity   Liquidity `json:"liquidity"`
}

// AssessmentKind distinguishes saved history records.
type AssessmentKind string

const (
	AssessmentAnalysis AssessmentKind = "analysis"
	AssessmentROI      AssessmentKind = "roi"
)

// Assessment is a persisted analysis or ROI run. Detail holds the full
// result JSON; the scalar columns exist for listing and filtering.
type Assessment struct {
	ID           string         `json:"id"`
	Kind         AssessmentKind `json:"kind"`
	Zone         string         `json:"zone"`
	Price        float64        `json:"price"`
	HoldingYears int            `json:"holding_years,omitempty"`
	Score        float64        `json:"score"`
	Verdict      string         `json:"verdict"`
	Detail       []byte         `json:"detail,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}
