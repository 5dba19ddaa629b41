package corridor

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/amdsolutions007/Naija-Prop-Intel/internal/model"
	"github.com/amdsolutions007/Naija-Prop-Intel/internal/store"
)

// DefaultNearbyKm bounds a nearby-zone search when no radius is given.
const DefaultNearbyKm = 10

// NearbyZones lists the zones within maxKm of a centre zone, ordered by
// ascending distance. The centre itself is excluded. maxKm <= 0 selects the
// default radius.
func (m *Matcher) NearbyZones(ctx context.Context, center string, maxKm float64) ([]model.NearbyZone, error) {
	if maxKm <= 0 {
		maxKm = DefaultNearbyKm
	}

	cz, err := store.Resolve(ctx, m.repo, center)
	if err != nil {
		return nil, err
	}
	if cz.Coordinates.IsZero() {
		return nil, eris.Errorf("corridor: zone %s has no coordinates on record", cz.Name)
	}

	names, err := m.repo.Names(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "corridor: list zones")
	}

	var nearby []model.NearbyZone
	for _, name := range names {
		if name == cz.Name {
			continue
		}
		z, err := m.repo.Zone(ctx, name)
		if err != nil {
			return nil, eris.Wrapf(err, "corridor: load zone %s", name)
		}
		if z.Coordinates.IsZero() {
			continue
		}

		leg, err := m.provider.Distance(ctx, cz.Coordinates, z.Coordinates, m.mode)
		if err != nil {
			if ctx.Err() != nil {
				return nil, eris.Wrap(err, "corridor: nearby distance")
			}
			zap.L().Warn("nearby leg unresolvable, zone skipped",
				zap.String("zone", name),
				zap.Error(err),
			)
			continue
		}
		if leg.DistanceKm > maxKm {
			continue
		}

		nearby = append(nearby, model.NearbyZone{
			Zone:            z.Name,
			Location:        z.Location,
			DistanceKm:      leg.DistanceKm,
			DurationMinutes: leg.DurationMinutes,
			Coordinates:     z.Coordinates,
			AvgPricePerSqm:  z.MarketData.AvgPricePerSqm,
		})
	}

	// Simple insertion sort is fine for typical result sizes (<1000).
	for i := 1; i < len(nearby); i++ {
		for j := i; j > 0 && nearby[j].DistanceKm < nearby[j-1].DistanceKm; j-- {
			nearby[j], nearby[j-1] = nearby[j-1], nearby[j]
		}
	}
	return nearby, nil
}
