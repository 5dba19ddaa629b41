package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/amdsolutions007/Naija-Prop-Intel/internal/corridor"
	"github.com/amdsolutions007/Naija-Prop-Intel/internal/model"
	"github.com/amdsolutions007/Naija-Prop-Intel/internal/scoring"
	"github.com/amdsolutions007/Naija-Prop-Intel/internal/store"
	"github.com/amdsolutions007/Naija-Prop-Intel/pkg/distance"
	"github.com/amdsolutions007/Naija-Prop-Intel/pkg/geocode"
)

// openRepository builds the zone repository from config. Callers own Close.
func openRepository(ctx context.Context) (store.Repository, error) {
	switch cfg.Store.Driver {
	case "json", "yaml":
		return store.NewFileStore(cfg.Store.Path)
	case "sqlite":
		s, err := store.NewSQLite(cfg.Store.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := s.Migrate(ctx); err != nil {
			s.Close()
			return nil, err
		}
		return s, nil
	case "postgres":
		s, err := store.NewPostgres(ctx, cfg.Store.DatabaseURL, nil)
		if err != nil {
			return nil, err
		}
		if err := s.Migrate(ctx); err != nil {
			s.Close()
			return nil, err
		}
		return s, nil
	default:
		return nil, eris.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// historyStore returns the repository's history interface when the backend
// supports one. File-backed stores do not persist assessments.
func historyStore(repo store.Repository) (store.HistoryStore, bool) {
	h, ok := repo.(store.HistoryStore)
	return h, ok
}

// newDistanceProvider builds the configured provider. The google provider is
// always chained over haversine so a Matrix outage degrades to great-circle
// figures instead of failing the search.
func newDistanceProvider() (distance.Provider, error) {
	switch cfg.Distance.Provider {
	case "haversine", "":
		return distance.NewHaversine(), nil
	case "google":
		if cfg.Distance.GoogleAPIKey == "" {
			return nil, eris.New("distance.google_api_key is required for the google provider")
		}
		matrix := distance.NewMatrix(cfg.Distance.GoogleAPIKey,
			distance.WithMatrixHTTPClient(providerHTTPClient()))
		return distance.NewChain(matrix, distance.NewHaversine()), nil
	default:
		return nil, eris.Errorf("unknown distance provider %q", cfg.Distance.Provider)
	}
}

// newGeocoder returns the free-text geocoder, or nil when no API key is
// configured (zone-name endpoints still work without one).
func newGeocoder() geocode.Geocoder {
	key := cfg.Geocode.Key(cfg.Distance.GoogleAPIKey)
	if key == "" {
		return nil
	}
	return geocode.NewGoogle(key,
		geocode.WithRegion(cfg.Geocode.Region),
		geocode.WithHTTPClient(providerHTTPClient()),
	)
}

// providerHTTPClient applies the configured request timeout to the Google
// provider clients.
func providerHTTPClient() *http.Client {
	secs := cfg.Distance.TimeoutSecs
	if secs <= 0 {
		secs = 15
	}
	return &http.Client{Timeout: time.Duration(secs) * time.Second}
}

// newEngine builds the scoring engine with the standard analysis weights.
func newEngine(repo store.Repository) (*scoring.Engine, error) {
	w := scoring.DefaultWeights()
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return scoring.NewEngine(repo, w), nil
}

// newMatcher builds the corridor matcher with its own weight set and the
// configured providers.
func newMatcher(repo store.Repository) (*corridor.Matcher, error) {
	w := corridor.DefaultWeights()
	if err := w.Validate(); err != nil {
		return nil, err
	}
	provider, err := newDistanceProvider()
	if err != nil {
		return nil, err
	}

	opts := []corridor.Option{corridor.WithMode(distance.Mode(cfg.Distance.Mode))}
	if g := newGeocoder(); g != nil {
		opts = append(opts, corridor.WithGeocoder(g))
	}
	return corridor.NewMatcher(repo, provider, w, opts...), nil
}

// corridorDefaults returns the configured corridor filters.
func corridorDefaults() model.SearchParams {
	return model.SearchParams{
		CorridorWidthKm:  cfg.Corridor.WidthKm,
		MinSecurityScore: cfg.Corridor.MinSecurityScore,
		MaxFloodRisk:     cfg.Corridor.MaxFloodRisk,
	}
}

// saveAssessment persists a run to history when the backend supports it.
// A file-backed store logs and moves on; --save is advisory there.
func saveAssessment(ctx context.Context, repo store.Repository, a *model.Assessment) {
	h, ok := historyStore(repo)
	if !ok {
		zap.L().Warn("history requires a sqlite or postgres store, not saved",
			zap.String("driver", cfg.Store.Driver),
		)
		return
	}
	if err := h.SaveAssessment(ctx, a); err != nil {
		zap.L().Error("save assessment failed", zap.Error(err))
		return
	}
	fmt.Fprintf(os.Stderr, "saved assessment %s\n", a.ID)
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(v), "encode json")
}

// mapsZoneURL builds a Google Maps deep link for a zone's coordinates.
// Presentation-only; the engines never embed URLs.
func mapsZoneURL(c model.Coordinates) string {
	return fmt.Sprintf("https://www.google.com/maps/@%.4f,%.4f,15z", c.Lat, c.Lng)
}

// mapsRouteURL builds a Google Maps directions link between two points.
func mapsRouteURL(o, d model.Coordinates) string {
	return fmt.Sprintf("https://www.google.com/maps/dir/%.4f,%.4f/%.4f,%.4f",
		o.Lat, o.Lng, d.Lat, d.Lng)
}
