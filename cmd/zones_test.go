package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestZonesListCmd_RunE(t *testing.T) {
	path := writeFixtureZones(t,
		fixtureZone("Obalende", 6.40, 3.40),
		fixtureZone("Oniru", 6.45, 3.45),
	)
	setTestConfig(t, path)

	zonesListCmd.SetContext(context.Background())
	defer zonesListCmd.SetContext(context.TODO())

	zonesListFormat = "table"
	require.NoError(t, zonesListCmd.RunE(zonesListCmd, nil))

	zonesListFormat = "json"
	defer func() { zonesListFormat = "table" }()
	require.NoError(t, zonesListCmd.RunE(zonesListCmd, nil))
}

func TestZonesShowCmd_RunE_ResolvesSubstring(t *testing.T) {
	path := writeFixtureZones(t, fixtureZone("Obalende", 6.40, 3.40))
	setTestConfig(t, path)

	zonesShowCmd.SetContext(context.Background())
	defer zonesShowCmd.SetContext(context.TODO())

	require.NoError(t, zonesShowCmd.RunE(zonesShowCmd, []string{"obal"}))
}

func TestZonesNearestCmd_RunE(t *testing.T) {
	path := writeFixtureZones(t, fixtureZone("Obalende", 6.40, 3.40))
	setTestConfig(t, path)

	zonesNearestCmd.SetContext(context.Background())
	defer zonesNearestCmd.SetContext(context.TODO())

	nearestLat, nearestLng, nearestMaxKm = 6.41, 3.41, 5
	defer func() { nearestLat, nearestLng = 0, 0 }()

	require.NoError(t, zonesNearestCmd.RunE(zonesNearestCmd, nil))
}

func TestZonesNearestCmd_RunE_RequiresPoint(t *testing.T) {
	path := writeFixtureZones(t, fixtureZone("Obalende", 6.40, 3.40))
	setTestConfig(t, path)

	zonesNearestCmd.SetContext(context.Background())
	defer zonesNearestCmd.SetContext(context.TODO())

	nearestLat, nearestLng = 0, 0
	require.Error(t, zonesNearestCmd.RunE(zonesNearestCmd, nil))
}

func TestZonesNearbyCmd_RunE(t *testing.T) {
	path := writeFixtureZones(t,
		fixtureZone("Obalende", 6.40, 3.40),
		fixtureZone("Oniru", 6.42, 3.42),
	)
	setTestConfig(t, path)

	zonesNearbyCmd.SetContext(context.Background())
	defer zonesNearbyCmd.SetContext(context.TODO())

	nearbyMaxKm = 10
	require.NoError(t, zonesNearbyCmd.RunE(zonesNearbyCmd, []string{"Obalende"}))
}
