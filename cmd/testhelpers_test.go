package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/amdsolutions007/Naija-Prop-Intel/internal/config"
	"github.com/amdsolutions007/Naija-Prop-Intel/internal/model"
	"github.com/amdsolutions007/Naija-Prop-Intel/internal/store"
)

// fixtureZone builds a valid zone for command tests.
func fixtureZone(name string, lat, lng float64) model.Zone {
	return model.Zone{
		Name:        name,
		Location:    name + ", Lagos",
		Coordinates: model.Coordinates{Lat: lat, Lng: lng},
		FloodRisk:   model.FloodRisk{Score: 40, Level: "MODERATE"},
		Security:    model.Security{Score: 70, Level: "GOOD", PoliceStations: 2},
		Infrastructure: model.Infrastructure{
			Score:            75,
			PowerHoursPerDay: 12,
		},
		MarketData: model.MarketData{
			AvgPricePerSqm:  400000,
			PriceRange:      "₦30M - ₦70M (3-bedroom)",
			Appreciation5yr: 0.4,
			RentalYield:     0.05,
			DaysToSellAvg:   100,
			DemandLevel:     "High",
		},
		HiddenCosts: model.HiddenCosts{
			OmoOnile:               1000000,
			LandSurvey:             300000,
			FloodInsurance:         200000,
			GeneratorDieselMonthly: 100000,
		},
	}
}

// writeFixtureZones writes a zones file into a temp dir and returns its path.
func writeFixtureZones(t *testing.T, zones ...model.Zone) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "zones.json")
	require.NoError(t, store.WriteZonesFile(path, zones))
	return path
}

// setTestConfig points the global config at a file store over the fixture
// and restores the previous config afterwards.
func setTestConfig(t *testing.T, zonesPath string) {
	t.Helper()
	prev := cfg
	cfg = &config.Config{
		Store: config.StoreConfig{Driver: "json", Path: zonesPath},
		Distance: config.DistanceConfig{
			Provider:    "haversine",
			Mode:        "driving",
			TimeoutSecs: 15,
		},
		Corridor: config.CorridorConfig{
			WidthKm:          5,
			MinSecurityScore: 50,
			MaxFloodRisk:     70,
		},
		Log: config.LogConfig{Level: "info", Format: "json"},
	}
	t.Cleanup(func() { cfg = prev })
}
