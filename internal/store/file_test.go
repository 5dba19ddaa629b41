package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amdsolutions007/Naija-Prop-Intel/internal/model"
)

func TestFileStoreJSON(t *testing.T) {
	t.Parallel()
	repo := newTestRepo(t)
	ctx := context.Background()

	names, err := repo.Names(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ajah", "Ikoyi", "Lekki Phase 1", "Victoria Island"}, names)

	z, err := repo.Zone(ctx, "Ajah")
	require.NoError(t, err)
	assert.Equal(t, "Ajah", z.Name)
	assert.Equal(t, "Ajah, Lagos", z.Location)
	assert.InDelta(t, 75.0, z.FloodRisk.Score, 0.001)
	assert.InDelta(t, 0.71, z.MarketData.Appreciation5yr, 0.001)
}

func TestFileStoreZoneNotFound(t *testing.T) {
	t.Parallel()
	repo := newTestRepo(t)

	_, err := repo.Zone(context.Background(), "Gwarinpa")
	require.Error(t, err)
	assert.True(t, model.IsNotFound(err))
}

func TestFileStoreYAML(t *testing.T) {
	t.Parallel()
	const doc = `
zones:
  Maitama:
    location: Maitama, Abuja
    coordinates: {lat: 9.0820, lng: 7.4897}
    flood_risk: {score: 15, level: LOW}
    security: {score: 88, level: EXCELLENT, police_stations: 5, robbery_incidents_2024: 3}
    infrastructure: {score: 90, power_hours_per_day: 22, fiber_internet: true}
    market_data:
      avg_price_per_sqm: 1200000
      price_range: "₦150M - ₦400M (4-bedroom)"
      5yr_appreciation: 0.45
      rental_yield: 0.04
      days_to_sell_avg: 85
      demand_level: HIGH
    hidden_costs:
      omo_onile: 0
      land_survey: 800000
      flood_insurance: 150000
      generator_diesel_monthly: 60000
`
	path := filepath.Join(t.TempDir(), "zones.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	repo, err := NewFileStore(path)
	require.NoError(t, err)

	z, err := repo.Zone(context.Background(), "Maitama")
	require.NoError(t, err)
	assert.Equal(t, "Maitama, Abuja", z.Location)
	assert.InDelta(t, 9.0820, z.Coordinates.Lat, 0.0001)
	assert.InDelta(t, 0.45, z.MarketData.Appreciation5yr, 0.001)
	assert.Equal(t, 85, z.MarketData.DaysToSellAvg)
}

func TestFileStoreMissingFile(t *testing.T) {
	t.Parallel()
	_, err := NewFileStore(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read zones file")
}

func TestFileStoreEmpty(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "zones.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"zones":{}}`), 0o644))

	_, err := NewFileStore(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "contains no zones")
}

func TestFileStoreMalformedRecord(t *testing.T) {
	t.Parallel()
	bad := testZone("Surulere", "Surulere, Lagos")
	bad.Security.Score = 140
	path := writeZonesJSON(t, bad)

	_, err := NewFileStore(path)
	require.Error(t, err)
	assert.True(t, model.IsMalformedRecord(err))
}

func TestFileStoreReloadKeepsSnapshotOnError(t *testing.T) {
	t.Parallel()
	path := writeZonesJSON(t, testZone("Ajah", "Ajah, Lagos"))
	repo, err := NewFileStore(path)
	require.NoError(t, err)

	// Corrupt the file; reload must fail and the old snapshot must survive.
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
	require.Error(t, repo.Reload())

	z, err := repo.Zone(context.Background(), "Ajah")
	require.NoError(t, err)
	assert.Equal(t, "Ajah", z.Name)
}

func TestWriteZonesFileRoundTrip(t *testing.T) {
	t.Parallel()
	zones := []model.Zone{
		testZone("Ajah", "Ajah, Lagos"),
		testZone("Ikoyi", "Ikoyi, Lagos"),
	}

	for _, ext := range []string{"json", "yaml"} {
		t.Run(ext, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), "zones."+ext)
			require.NoError(t, WriteZonesFile(path, zones))

			got, err := ReadZonesFile(path)
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.Equal(t, "Ajah", got[0].Name)
			assert.Equal(t, "Ikoyi", got[1].Name)
			assert.InDelta(t, zones[0].MarketData.RentalYield, got[0].MarketData.RentalYield, 1e-9)
		})
	}
}

func TestWriteZonesFileRejectsInvalid(t *testing.T) {
	t.Parallel()
	bad := testZone("Ajah", "Ajah, Lagos")
	bad.MarketData.AvgPricePerSqm = 0

	err := WriteZonesFile(filepath.Join(t.TempDir(), "zones.json"), []model.Zone{bad})
	require.Error(t, err)
	assert.True(t, model.IsMalformedRecord(err))
}
