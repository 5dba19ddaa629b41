package model

import "fmt"

// Coordinates is a WGS84 point in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// IsZero reports whether the point is unset. (0,0) is open ocean, so the
// zero value doubles as "no coordinates on record".
func (c Coordinates) IsZero() bool {
	return c.Lat == 0 && c.Lng == 0
}

// Zone is an immutable locality reference record. Zones are loaded once by a
// store and never mutated by the engines; every derived result is computed
// fresh from a Zone plus caller input.
type Zone struct {
	Name           string         `json:"name" yaml:"name"`
	Location       string         `json:"location" yaml:"location"`
	Coordinates    Coordinates    `json:"coordinates" yaml:"coordinates"`
	FloodRisk      FloodRisk      `json:"flood_risk" yaml:"flood_risk"`
	Security       Security       `json:"security" yaml:"security"`
	Infrastructure Infrastructure `json:"infrastructure" yaml:"infrastructure"`
	MarketData     MarketData     `json:"market_data" yaml:"market_data"`
	HiddenCosts    HiddenCosts    `json:"hidden_costs" yaml:"hidden_costs"`
	Notes          string         `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// FloodRisk captures flooding exposure for a zone. Score runs 0-100 where
// higher means worse flooding.
type FloodRisk struct {
	Score             float64  `json:"score" yaml:"score"`
	Level             string   `json:"level" yaml:"level"`
	LastMajorFlood    string   `json:"last_major_flood,omitempty" yaml:"last_major_flood,omitempty"`
	RainySeasonDanger string   `json:"rainy_season_danger,omitempty" yaml:"rainy_season_danger,omitempty"`
	DrainageQuality   string   `json:"drainage_quality,omitempty" yaml:"drainage_quality,omitempty"`
	AffectedStreets   []string `json:"affected_streets,omitempty" yaml:"affected_streets,omitempty"`
}

// Security captures crime/safety data. Score runs 0-100 where higher is safer.
type Security struct {
	Score                float64 `json:"score" yaml:"score"`
	Level                string  `json:"level" yaml:"level"`
	PoliceStations       int     `json:"police_stations" yaml:"police_stations"`
	RobberyIncidents2024 int     `json:"robbery_incidents_2024" yaml:"robbery_incidents_2024"`
	SafeHours            string  `json:"safe_hours,omitempty" yaml:"safe_hours,omitempty"`
}

// Infrastructure captures roads, power, water and connectivity. Score runs
// 0-100 where higher is better.
type Infrastructure struct {
	Score            float64 `json:"score" yaml:"score"`
	RoadQuality      string  `json:"road_quality,omitempty" yaml:"road_quality,omitempty"`
	PowerHoursPerDay int     `json:"power_hours_per_day" yaml:"power_hours_per_day"`
	WaterSource      string  `json:"water_source,omitempty" yaml:"water_source,omitempty"`
	FiberInternet    bool    `json:"fiber_internet" yaml:"fiber_internet"`
}

// MarketData holds pricing and liquidity reference figures.
// RentalYield and Appreciation5yr are fractions (0.05 = 5%), not percentages.
type MarketData struct {
	AvgPricePerSqm  float64 `json:"avg_price_per_sqm" yaml:"avg_price_per_sqm"`
	PriceRange      string  `json:"price_range" yaml:"price_range"`
	Appreciation5yr float64 `json:"5yr_appreciation" yaml:"5yr_appreciation"`
	RentalYield     float64 `json:"rental_yield" yaml:"rental_yield"`
	DaysToSellAvg   int     `json:"days_to_sell_avg" yaml:"days_to_sell_avg"`
	DemandLevel     string  `json:"demand_level,omitempty" yaml:"demand_level,omitempty"`
}

// HiddenCosts holds the locally-specific transaction and running costs in
// Naira. OmoOnile, LandSurvey and FloodInsurance are one-time or annual sums;
// GeneratorDieselMonthly is monthly. BoreholeMaintenance and
// EstateServiceCharge are annual and only present in some zones.
type HiddenCosts struct {
	OmoOnile               float64  `json:"omo_onile" yaml:"omo_onile"`
	LandSurvey             float64  `json:"land_survey" yaml:"land_survey"`
	FloodInsurance         float64  `json:"flood_insurance" yaml:"flood_insurance"`
	GeneratorDieselMonthly float64  `json:"generator_diesel_monthly" yaml:"generator_diesel_monthly"`
	BoreholeMaintenance    *float64 `json:"borehole_maintenance,omitempty" yaml:"borehole_maintenance,omitempty"`
	EstateServiceCharge    *float64 `json:"estate_service_charge,omitempty" yaml:"estate_service_charge,omitempty"`
}

// Validate checks the numeric invariants the engines rely on. A violation is
// a data-quality bug upstream, so it surfaces as MalformedRecordError rather
// than being defaulted away.
func (z Zone) Validate() error {
	if z.Name == "" {
		return &MalformedRecordError{Zone: z.Location, Field: "name", Reason: "empty"}
	}
	if z.FloodRisk.Score < 0 || z.FloodRisk.Score > 100 {
		return malformedScore(z.Name, "flood_risk.score", z.FloodRisk.Score)
	}
	if z.Security.Score < 0 || z.Security.Score > 100 {
		return malformedScore(z.Name, "security.score", z.Security.Score)
	}
	if z.Infrastructure.Score < 0 || z.Infrastructure.Score > 100 {
		return malformedScore(z.Name, "infrastructure.score", z.Infrastructure.Score)
	}
	if z.MarketData.RentalYield < 0 {
		return &MalformedRecordError{Zone: z.Name, Field: "market_data.rental_yield", Reason: "negative fraction"}
	}
	if z.MarketData.Appreciation5yr < 0 {
		return &MalformedRecordError{Zone: z.Name, Field: "market_data.5yr_appreciation", Reason: "negative fraction"}
	}
	if z.MarketData.AvgPricePerSqm <= 0 {
		return &MalformedRecordError{Zone: z.Name, Field: "market_data.avg_price_per_sqm", Reason: "missing or non-positive"}
	}
	if z.MarketData.DaysToSellAvg <= 0 {
		return &MalformedRecordError{Zone: z.Name, Field: "market_data.days_to_sell_avg", Reason: "missing or non-positive"}
	}
	if err := z.HiddenCosts.validate(z.Name); err != nil {
		return err
	}
	return nil
}

func (h HiddenCosts) validate(zone string) error {
	for _, c := range []struct {
		field string
		value float64
	}{
		{"hidden_costs.omo_onile", h.OmoOnile},
		{"hidden_costs.land_survey", h.LandSurvey},
		{"hidden_costs.flood_insurance", h.FloodInsurance},
		{"hidden_costs.generator_diesel_monthly", h.GeneratorDieselMonthly},
	} {
		if c.value < 0 {
			return &MalformedRecordError{Zone: zone, Field: c.field, Reason: "negative amount"}
		}
	}
	if h.BoreholeMaintenance != nil && *h.BoreholeMaintenance < 0 {
		return &MalformedRecordError{Zone: zone, Field: "hidden_costs.borehole_maintenance", Reason: "negative amount"}
	}
	if h.EstateServiceCharge != nil && *h.EstateServiceCharge < 0 {
		return &MalformedRecordError{Zone: zone, Field: "hidden_costs.estate_service_charge", Reason: "negative amount"}
	}
	return nil
}

func malformedScore(zone, field string, v float64) *MalformedRecordError {
	return &MalformedRecordError{Zone: zone, Field: field, Reason: fmt.Sprintf("score %v outside [0,100]", v)}
}

// ScoreLevel maps a 0-100 score to the display band used for individual
// factors (not the overall risk tier, which has its own bands).
func ScoreLevel(score float64) string {
	switch {
	case score >= 80:
		return "EXCELLENT"
	case score >= 65:
		return "GOOD"
	case score >= 50:
		return "MODERATE"
	default:
		return "POOR"
	}
}
