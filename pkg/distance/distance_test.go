package distance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amdsolutions007/Naija-Prop-Intel/internal/model"
)

var (
	ajah  = model.Coordinates{Lat: 6.4675, Lng: 3.5687}
	lekki = model.Coordinates{Lat: 6.4378, Lng: 3.4730}
)

func TestKilometers(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 11.08, Kilometers(ajah, lekki), 0.001)
	assert.InDelta(t, 11.08, Kilometers(lekki, ajah), 0.001, "distance is symmetric")
	assert.Zero(t, Kilometers(ajah, ajah))
}

func TestHaversineDistance(t *testing.T) {
	t.Parallel()

	h := NewHaversine()
	assert.Equal(t, "haversine", h.Name())

	r, err := h.Distance(context.Background(), ajah, lekki, ModeDriving)
	require.NoError(t, err)
	assert.InDelta(t, 11.08, r.DistanceKm, 0.001)
	assert.InDelta(t, 22.2, r.DurationMinutes, 0.001)
	assert.Equal(t, "haversine", r.Source)

	// The travel mode changes nothing for a great-circle distance.
	walking, err := h.Distance(context.Background(), ajah, lekki, ModeWalking)
	require.NoError(t, err)
	assert.Equal(t, r, walking)
}
