package corridor

import (
	"math"

	"github.com/twpayne/go-geom"

	"github.com/amdsolutions007/Naija-Prop-Intel/internal/model"
)

// Bounds is a WGS84 viewport box for map consumers.
type Bounds struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// kmPerDegreeLat is the WGS84 meridian arc length of one degree of latitude.
const kmPerDegreeLat = 110.574

// RouteBounds computes the viewport box around a corridor result: the route
// endpoints and every match, padded by the corridor width so the band itself
// stays in frame.
func RouteBounds(res *model.CorridorResult) Bounds {
	b := geom.NewBounds(geom.XY)
	b.Extend(point(res.Route.OriginCoords))
	b.Extend(point(res.Route.DestinationCoords))
	for i := range res.Matches {
		b.Extend(point(res.Matches[i].Coordinates))
	}

	latPad := res.Params.CorridorWidthKm / kmPerDegreeLat
	// A degree of longitude shrinks with cos(latitude).
	midLat := (b.Min(1) + b.Max(1)) / 2
	lngScale := math.Cos(midLat * math.Pi / 180)
	if lngScale < 0.1 {
		lngScale = 0.1
	}
	lngPad := res.Params.CorridorWidthKm / (kmPerDegreeLat * lngScale)

	return Bounds{
		North: b.Max(1) + latPad,
		South: b.Min(1) - latPad,
		East:  b.Max(0) + lngPad,
		West:  b.Min(0) - lngPad,
	}
}

// point builds a go-geom point in the library's x=lng, y=lat convention.
func point(c model.Coordinates) *geom.Point {
	return geom.NewPointFlat(geom.XY, []float64{c.Lng, c.Lat})
}
