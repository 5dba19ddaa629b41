package corridor

import (
	"context"
	"math"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/amdsolutions007/Naija-Prop-Intel/internal/model"
	"github.com/amdsolutions007/Naija-Prop-Intel/internal/store"
	"github.com/amdsolutions007/Naija-Prop-Intel/pkg/distance"
	"github.com/amdsolutions007/Naija-Prop-Intel/pkg/geocode"
)

// Matcher finds zones along commute routes. It is stateless over the
// repository snapshot; concurrent calls are safe.
type Matcher struct {
	repo         store.Repository
	provider     distance.Provider
	geocoder     geocode.Geocoder
	weights      Weights
	mode         distance.Mode
	compareLimit int
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithGeocoder enables free-text endpoint resolution for locations that are
// not zone names.
func WithGeocoder(g geocode.Geocoder) Option {
	return func(m *Matcher) {
		m.geocoder = g
	}
}

// WithMode sets the travel mode passed to the distance provider.
func WithMode(mode distance.Mode) Option {
	return func(m *Matcher) {
		if mode != "" {
			m.mode = mode
		}
	}
}

// WithCompareConcurrency sets the max parallel corridor searches in
// CompareRoutes.
func WithCompareConcurrency(n int) Option {
	return func(m *Matcher) {
		if n > 0 {
			m.compareLimit = n
		}
	}
}

// NewMatcher creates a Matcher. Callers own weight validation, as with the
// scoring engine.
func NewMatcher(repo store.Repository, provider distance.Provider, weights Weights, opts ...Option) *Matcher {
	m := &Matcher{
		repo:         repo,
		provider:     provider,
		weights:      weights,
		mode:         distance.ModeDriving,
		compareLimit: 4,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// FindAlongCorridor finds every zone whose detour off the origin-destination
// route is at most params.CorridorWidthKm and that passes all filters.
// Endpoints resolve as zone names first, then through the geocoder when one
// is configured.
func (m *Matcher) FindAlongCorridor(ctx context.Context, origin, destination string, params model.SearchParams) (*model.CorridorResult, error) {
	if params.CorridorWidthKm <= 0 {
		return nil, &model.InvalidInputError{Field: "corridor_width_km", Reason: "must be positive"}
	}

	oName, oCoords, err := m.resolveEndpoint(ctx, origin)
	if err != nil {
		return nil, routeErr(origin, destination, err)
	}
	dName, dCoords, err := m.resolveEndpoint(ctx, destination)
	if err != nil {
		return nil, routeErr(origin, destination, err)
	}

	route, err := m.provider.Distance(ctx, oCoords, dCoords, m.mode)
	if err != nil {
		return nil, &model.RouteUnavailableError{Origin: oName, Destination: dName, Err: err}
	}

	names, err := m.repo.Names(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "corridor: list zones")
	}

	var matches []model.CorridorMatch
	for _, name := range names {
		// The endpoints themselves are never candidates.
		if name == oName || name == dName {
			continue
		}
		z, err := m.repo.Zone(ctx, name)
		if err != nil {
			return nil, eris.Wrapf(err, "corridor: load zone %s", name)
		}
		if err := z.Validate(); err != nil {
			return nil, err
		}
		if z.Coordinates.IsZero() {
			zap.L().Debug("zone has no coordinates, skipped", zap.String("zone", name))
			continue
		}

		fromOrigin, err := m.legDistance(ctx, oCoords, z.Coordinates, name)
		if err != nil {
			if ctx.Err() != nil {
				return nil, eris.Wrap(err, "corridor: candidate distance")
			}
			continue
		}
		toDest, err := m.legDistance(ctx, z.Coordinates, dCoords, name)
		if err != nil {
			if ctx.Err() != nil {
				return nil, eris.Wrap(err, "corridor: candidate distance")
			}
			continue
		}

		detour := fromOrigin.DistanceKm + toDest.DistanceKm - route.DistanceKm
		if detour > params.CorridorWidthKm {
			continue
		}
		if params.MaxPricePerSqm > 0 && z.MarketData.AvgPricePerSqm > params.MaxPricePerSqm {
			continue
		}
		if z.Security.Score < params.MinSecurityScore {
			continue
		}
		if z.FloodRisk.Score > params.MaxFloodRisk {
			continue
		}

		matches = append(matches, model.CorridorMatch{
			Zone:                 z.Name,
			Location:             z.Location,
			DistanceFromOriginKm: fromOrigin.DistanceKm,
			Coordinates:          z.Coordinates,
			PricePerSqm:          z.MarketData.AvgPricePerSqm,
			PriceRange:           z.MarketData.PriceRange,
			SecurityScore:        z.Security.Score,
			FloodRiskScore:       z.FloodRisk.Score,
			InfrastructureScore:  z.Infrastructure.Score,
			RentalYield:          z.MarketData.RentalYield,
			Appreciation5yr:      z.MarketData.Appreciation5yr,
			SmartScore:           m.smartScore(z),
		})
	}

	sortByDistance(matches)

	zap.L().Debug("corridor search complete",
		zap.String("origin", oName),
		zap.String("destination", dName),
		zap.Float64("route_km", route.DistanceKm),
		zap.Int("matches", len(matches)),
	)

	return &model.CorridorResult{
		Route: model.RouteInfo{
			Origin:            oName,
			Destination:       dName,
			OriginCoords:      oCoords,
			DestinationCoords: dCoords,
			DistanceKm:        route.DistanceKm,
			DurationMinutes:   route.DurationMinutes,
			Provider:          route.Source,
		},
		Params:  params,
		Matches: matches,
	}, nil
}

// SearchByBudget converts a total budget into an implied price-per-m² ceiling
// via a fixed bedroom→area lookup, then runs a corridor search with otherwise
// default filters. A zero widthKm selects the default; negative is rejected.
func (m *Matcher) SearchByBudget(ctx context.Context, origin, destination string, budget float64, bedrooms int, widthKm float64) (*model.BudgetResult, error) {
	if budget <= 0 {
		return nil, &model.InvalidInputError{Field: "budget", Reason: "must be positive"}
	}
	switch {
	case widthKm == 0:
		widthKm = DefaultWidthKm
	case widthKm < 0:
		return nil, &model.InvalidInputError{Field: "corridor_width_km", Reason: "must be positive"}
	}

	area, ok := bedroomAreaSqm[bedrooms]
	if !ok {
		area = defaultAreaSqm
	}
	maxPrice := math.Trunc(budget / area)

	params := DefaultParams()
	params.CorridorWidthKm = widthKm
	params.MaxPricePerSqm = maxPrice

	res, err := m.FindAlongCorridor(ctx, origin, destination, params)
	if err != nil {
		return nil, err
	}
	return &model.BudgetResult{
		Budget:         budget,
		Bedrooms:       bedrooms,
		AssumedAreaSqm: area,
		MaxPricePerSqm: maxPrice,
		Corridor:       *res,
	}, nil
}

// bedroomAreaSqm estimates property area from the bedroom count.
var bedroomAreaSqm = map[int]float64{2: 80, 3: 120, 4: 160, 5: 200}

const defaultAreaSqm = 120

// CompareRoutes runs one default-parameter corridor search per destination,
// concurrently, and summarises each. Destinations whose route cannot be
// resolved are dropped; malformed reference data still fails the batch.
func (m *Matcher) CompareRoutes(ctx context.Context, origin string, destinations []string) ([]model.RouteComparison, error) {
	if len(destinations) == 0 {
		return nil, &model.InvalidInputError{Field: "destinations", Reason: "empty"}
	}

	results := make([]*model.RouteComparison, len(destinations))

	eg, gCtx := errgroup.WithContext(ctx)
	eg.SetLimit(m.compareLimit)

	for i, dest := range destinations {
		eg.Go(func() error {
			res, err := m.FindAlongCorridor(gCtx, origin, dest, DefaultParams())
			if err != nil {
				if model.IsMalformedRecord(err) {
					return err
				}
				zap.L().Warn("route dropped from comparison",
					zap.String("origin", origin),
					zap.String("destination", dest),
					zap.Error(err),
				)
				return nil
			}
			comp := summarize(res)
			results[i] = &comp
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	comparisons := make([]model.RouteComparison, 0, len(destinations))
	for _, r := range results {
		if r != nil {
			comparisons = append(comparisons, *r)
		}
	}
	sortByMatchCount(comparisons)
	return comparisons, nil
}

// resolveEndpoint turns a zone name or free-text location into coordinates.
// Known zone names win; the geocoder, when configured, handles the rest.
func (m *Matcher) resolveEndpoint(ctx context.Context, query string) (string, model.Coordinates, error) {
	zone, err := store.Resolve(ctx, m.repo, query)
	switch {
	case err == nil:
		if verr := zone.Validate(); verr != nil {
			return "", model.Coordinates{}, verr
		}
		if zone.Coordinates.IsZero() {
			return "", model.Coordinates{}, eris.Errorf("corridor: zone %s has no coordinates on record", zone.Name)
		}
		return zone.Name, zone.Coordinates, nil

	case model.IsNotFound(err) && m.geocoder != nil:
		coords, gerr := m.geocoder.Resolve(ctx, query)
		if gerr != nil {
			return "", model.Coordinates{}, gerr
		}
		return query, coords, nil

	default:
		return "", model.Coordinates{}, err
	}
}

// legDistance resolves one candidate leg. Provider failures skip the
// candidate rather than failing the search; only the origin-destination
// route is load-bearing.
func (m *Matcher) legDistance(ctx context.Context, from, to model.Coordinates, zone string) (distance.Result, error) {
	r, err := m.provider.Distance(ctx, from, to, m.mode)
	if err != nil && ctx.Err() == nil {
		zap.L().Warn("candidate leg unresolvable, zone skipped",
			zap.String("zone", zone),
			zap.Error(err),
		)
	}
	return r, err
}

// routeErr classifies endpoint-resolution failures. Invalid input and
// malformed reference data keep their types; everything else means the route
// cannot be established.
func routeErr(origin, destination string, err error) error {
	if model.IsMalformedRecord(err) || model.IsInvalidInput(err) {
		return err
	}
	return &model.RouteUnavailableError{Origin: origin, Destination: destination, Err: err}
}

// smartScore computes the corridor composite for a zone, rounded to the
// nearest integer.
func (m *Matcher) smartScore(z model.Zone) int {
	floodSafety := 100 - z.FloodRisk.Score
	s := z.Security.Score*m.weights.Security +
		z.Infrastructure.Score*m.weights.Infrastructure +
		floodSafety*m.weights.FloodSafety
	return int(math.Round(s))
}

func summarize(res *model.CorridorResult) model.RouteComparison {
	comp := model.RouteComparison{
		Destination:     res.Route.Destination,
		DistanceKm:      res.Route.DistanceKm,
		DurationMinutes: res.Route.DurationMinutes,
		MatchCount:      len(res.Matches),
		AvgPricePerSqm:  avgPricePerSqm(res.Matches),
	}
	if len(res.Matches) > 0 {
		best := res.Matches[0]
		comp.Best = &best
	}
	return comp
}

func avgPricePerSqm(matches []model.CorridorMatch) int {
	if len(matches) == 0 {
		return 0
	}
	var total float64
	for i := range matches {
		total += matches[i].PricePerSqm
	}
	return int(math.Round(total / float64(len(matches))))
}

// sortByDistance orders matches ascending by distance from origin, keeping
// repository order for ties.
func sortByDistance(matches []model.CorridorMatch) {
	// Simple insertion sort is fine for typical result sizes (<1000).
	for i := 1; i < len(matches); i++ {
		for j := i; j > 0 && matches[j].DistanceFromOriginKm < matches[j-1].DistanceFromOriginKm; j-- {
			matches[j], matches[j-1] = matches[j-1], matches[j]
		}
	}
}

// sortByMatchCount orders comparisons descending by match count, keeping
// input order for ties.
func sortByMatchCount(comps []model.RouteComparison) {
	for i := 1; i < len(comps); i++ {
		for j := i; j > 0 && comps[j].MatchCount > comps[j-1].MatchCount; j-- {
			comps[j], comps[j-1] = comps[j-1], comps[j]
		}
	}
}
