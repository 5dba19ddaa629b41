package geocode

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/amdsolutions007/Naija-Prop-Intel/internal/model"
	"github.com/amdsolutions007/Naija-Prop-Intel/internal/store"
	"github.com/amdsolutions007/Naija-Prop-Intel/pkg/distance"
)

// DefaultNearestKm is how far a point may sit from a zone centre and still
// count as "in" that zone.
const DefaultNearestKm = 5

// ZoneMatch is the closest known zone to a point.
type ZoneMatch struct {
	Zone       model.Zone
	DistanceKm float64
}

// NearestZone returns the closest zone within maxKm of the point; the second
// return is false when no zone is that close. maxKm <= 0 selects the default.
// Zones without coordinates on record are skipped.
func NearestZone(ctx context.Context, repo store.Repository, point model.Coordinates, maxKm float64) (ZoneMatch, bool, error) {
	if maxKm <= 0 {
		maxKm = DefaultNearestKm
	}

	names, err := repo.Names(ctx)
	if err != nil {
		return ZoneMatch{}, false, eris.Wrap(err, "geocode: list zones")
	}

	var (
		best  ZoneMatch
		found bool
	)
	for _, name := range names {
		z, err := repo.Zone(ctx, name)
		if err != nil {
			return ZoneMatch{}, false, eris.Wrapf(err, "geocode: load zone %s", name)
		}
		if z.Coordinates.IsZero() {
			continue
		}
		km := distance.Kilometers(point, z.Coordinates)
		if km > maxKm {
			continue
		}
		if !found || km < best.DistanceKm {
			best = ZoneMatch{Zone: z, DistanceKm: km}
			found = true
		}
	}
	return best, found, nil
}
