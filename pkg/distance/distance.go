// Package distance resolves the distance and travel time between two
// coordinate pairs. The default great-circle provider works offline; a Google
// Distance Matrix provider adds road distances when an API key is configured.
package distance

import (
	"context"
	"math"

	"github.com/amdsolutions007/Naija-Prop-Intel/internal/model"
)

// Mode is the travel mode passed to road-network providers. The great-circle
// provider ignores it.
type Mode string

const (
	ModeDriving   Mode = "driving"
	ModeWalking   Mode = "walking"
	ModeBicycling Mode = "bicycling"
	ModeTransit   Mode = "transit"
)

// Result is one resolved leg between two points.
type Result struct {
	DistanceKm      float64
	DurationMinutes float64
	Source          string // name of the provider that answered
}

// Provider resolves the distance between two coordinates.
type Provider interface {
	Name() string
	Distance(ctx context.Context, from, to model.Coordinates, mode Mode) (Result, error)
}

const earthRadiusKm = 6371

// Kilometers returns the great-circle distance between two points, rounded
// to two decimals.
func Kilometers(from, to model.Coordinates) float64 {
	lat1 := from.Lat * math.Pi / 180
	lat2 := to.Lat * math.Pi / 180
	dLat := (to.Lat - from.Lat) * math.Pi / 180
	dLng := (to.Lng - from.Lng) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return round2(earthRadiusKm * c)
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round1(v float64) float64 { return math.Round(v*10) / 10 }

// avgRoadSpeedKmh is the assumed door-to-door speed used to estimate travel
// time from a straight-line distance. Lagos traffic rarely does better.
const avgRoadSpeedKmh = 30

// Haversine is the default Provider: pure great-circle math, no network.
// Travel time is an estimate at avgRoadSpeedKmh; road providers replace it
// with real figures.
type Haversine struct{}

// NewHaversine returns the offline great-circle provider.
func NewHaversine() Haversine { return Haversine{} }

// Name implements Provider.
func (Haversine) Name() string { return "haversine" }

// Distance implements Provider. It never fails.
func (Haversine) Distance(_ context.Context, from, to model.Coordinates, _ Mode) (Result, error) {
	km := Kilometers(from, to)
	return Result{
		DistanceKm:      km,
		DurationMinutes: round1(km / avgRoadSpeedKmh * 60),
		Source:          "haversine",
	}, nil
}
