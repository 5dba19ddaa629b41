package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amdsolutions007/Naija-Prop-Intel/internal/model"
)

// testZone builds a valid record for fixtures. Scores mirror a high-flood
// Lagos zone so engine tests can reuse the same numbers.
func testZone(name, location string) model.Zone {
	return model.Zone{
		Name:        name,
		Location:    location,
		Coordinates: model.Coordinates{Lat: 6.4675, Lng: 3.5687},
		FloodRisk: model.FloodRisk{
			Score:             75,
			Level:             "HIGH",
			LastMajorFlood:    "2024",
			RainySeasonDanger: "EXTREME",
			DrainageQuality:   "POOR",
		},
		Security: model.Security{
			Score:                55,
			Level:                "MODERATE",
			PoliceStations:       2,
			RobberyIncidents2024: 47,
		},
		Infrastructure: model.Infrastructure{
			Score:            60,
			RoadQuality:      "FAIR",
			PowerHoursPerDay: 12,
			FiberInternet:    true,
		},
		MarketData: model.MarketData{
			AvgPricePerSqm:  350000,
			PriceRange:      "₦25M - ₦60M (3-bedroom)",
			Appreciation5yr: 0.71,
			RentalYield:     0.055,
			DaysToSellAvg:   120,
			DemandLevel:     "HIGH",
		},
		HiddenCosts: model.HiddenCosts{
			OmoOnile:               2500000,
			LandSurvey:             450000,
			FloodInsurance:         380000,
			GeneratorDieselMonthly: 85000,
		},
	}
}

// writeZonesJSON writes a zones file to a temp dir and returns its path.
func writeZonesJSON(t *testing.T, zones ...model.Zone) string {
	t.Helper()
	byName := make(map[string]model.Zone, len(zones))
	for _, z := range zones {
		byName[z.Name] = z
	}
	data, err := json.Marshal(map[string]any{"zones": byName})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "zones.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func newTestRepo(t *testing.T) *FileStore {
	t.Helper()
	path := writeZonesJSON(t,
		testZone("Ajah", "Ajah, Lagos"),
		testZone("Lekki Phase 1", "Lekki Phase 1, Lagos"),
		testZone("Victoria Island", "Victoria Island, Lagos"),
		testZone("Ikoyi", "Ikoyi, Lagos"),
	)
	repo, err := NewFileStore(path)
	require.NoError(t, err)
	return repo
}

func TestResolve(t *testing.T) {
	t.Parallel()
	repo := newTestRepo(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"exact", "Ajah", "Ajah"},
		{"case insensitive", "ajah", "Ajah"},
		{"case insensitive mixed", "LEKKI PHASE 1", "Lekki Phase 1"},
		{"substring", "lekki", "Lekki Phase 1"},
		{"substring first by sorted order", "i", "Ikoyi"},
		{"substring victoria", "victoria", "Victoria Island"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			z, err := Resolve(ctx, repo, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, z.Name)
		})
	}
}

func TestResolveNotFound(t *testing.T) {
	t.Parallel()
	repo := newTestRepo(t)

	_, err := Resolve(context.Background(), repo, "Banana Island")
	require.Error(t, err)
	assert.True(t, model.IsNotFound(err))

	var nf *model.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Banana Island", nf.Query)
	assert.Equal(t, []string{"Ajah", "Ikoyi", "Lekki Phase 1", "Victoria Island"}, nf.Available)
}

func TestResolveEmptyQuery(t *testing.T) {
	t.Parallel()
	repo := newTestRepo(t)

	_, err := Resolve(context.Background(), repo, "  ")
	require.Error(t, err)
	assert.True(t, model.IsInvalidInput(err))
}

func TestResolveExactBeatsSubstring(t *testing.T) {
	t.Parallel()
	// "Lekki" is a record of its own and also a substring of "Lekki Phase 1";
	// the exact key must win.
	path := writeZonesJSON(t,
		testZone("Lekki", "Lekki, Lagos"),
		testZone("Lekki Phase 1", "Lekki Phase 1, Lagos"),
	)
	repo, err := NewFileStore(path)
	require.NoError(t, err)

	z, err := Resolve(context.Background(), repo, "Lekki")
	require.NoError(t, err)
	assert.Equal(t, "Lekki", z.Name)
}
