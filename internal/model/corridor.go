package model

// RouteInfo describes the commute route a corridor search was run against.
type RouteInfo struct {
	Origin            string      `json:"origin"`
	Destination       string      `json:"destination"`
	OriginCoords      Coordinates `json:"origin_coords"`
	DestinationCoords Coordinates `json:"destination_coords"`
	DistanceKm        float64     `json:"distance_km"`
	DurationMinutes   float64     `json:"duration_minutes,omitempty"`
	Provider          string      `json:"provider"`
}

// SearchParams are the corridor filters applied to candidate zones.
// MaxPricePerSqm is ignored when zero or negative.
type SearchParams struct {
	CorridorWidthKm  float64 `json:"corridor_width_km"`
	MaxPricePerSqm   float64 `json:"max_price_per_sqm,omitempty"`
	MinSecurityScore float64 `json:"min_security_score"`
	MaxFloodRisk     float64 `json:"max_flood_risk"`
}

// CorridorMatch is a zone that sits inside the search corridor and
// passed every filter.
type CorridorMatch struct {
	Zone                 string      `json:"zone"`
	Location             string      `json:"location"`
	DistanceFromOriginKm float64     `json:"distance_from_origin_km"`
	Coordinates          Coordinates `json:"coordinates"`
	PricePerSqm          float64     `json:"price_per_sqm"`
	PriceRange           string      `json:"price_range"`
	SecurityScore        float64     `json:"security_score"`
	FloodRiskScore       float64     `json:"flood_risk_score"`
	InfrastructureScore  float64     `json:"infrastructure_score"`
	RentalYield          float64     `json:"rental_yield"`
	Appreciation5yr      float64     `json:"appreciation_5yr"`
	SmartScore           int         `json:"smart_score"`
}

// CorridorResult bundles the resolved route, the effective filters and
// the matches ordered by ascending distance from the origin.
type CorridorResult struct {
	Route   RouteInfo       `json:"route"`
	Params  SearchParams    `json:"search_params"`
	Matches []CorridorMatch `json:"matches"`
}

// BudgetResult is a corridor search constrained by a purchase budget.
type BudgetResult struct {
	Budget         float64        `json:"budget"`
	Bedrooms       int            `json:"bedrooms"`
	AssumedAreaSqm float64        `json:"assumed_area_sqm"`
	MaxPricePerSqm float64        `json:"max_price_per_sqm"`
	Corridor       CorridorResult `json:"corridor"`
}

// RouteComparison summarises one destination in a multi-route comparison.
type RouteComparison struct {
	Destination     string         `json:"destination"`
	DistanceKm      float64        `json:"distance_km"`
	DurationMinutes float64        `json:"duration_minutes,omitempty"`
	MatchCount      int            `json:"match_count"`
	AvgPricePerSqm  int            `json:"avg_price_per_sqm"`
	Best            *CorridorMatch `json:"best_match,omitempty"`
}

// NearbyZone is a zone within radius of a reference zone.
type NearbyZone struct {
	Zone            string      `json:"zone"`
	Location        string      `json:"location"`
	DistanceKm      float64     `json:"distance_km"`
	DurationMinutes float64     `json:"duration_minutes,omitempty"`
	Coordinates     Coordinates `json:"coordinates"`
	AvgPricePerSqm  float64     `json:"avg_price_per_sqm"`
}
