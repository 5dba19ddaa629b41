package geocode

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amdsolutions007/Naija-Prop-Intel/internal/model"
)

func TestGoogleResolve_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/json", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "Admiralty Way, Lekki Phase 1, Nigeria", q.Get("address"))
		assert.Equal(t, "ng", q.Get("region"))
		assert.Equal(t, "test-key", q.Get("key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"status": "OK",
			"results": [{
				"geometry": {"location": {"lat": 6.4378, "lng": 3.4730}},
				"formatted_address": "Admiralty Way, Lekki Phase I 106104, Lagos, Nigeria"
			}]
		}`)
	}))
	defer srv.Close()

	g := NewGoogle("test-key", WithBaseURL(srv.URL))
	coords, err := g.Resolve(context.Background(), "Admiralty Way, Lekki Phase 1")

	require.NoError(t, err)
	assert.InDelta(t, 6.4378, coords.Lat, 0.0001)
	assert.InDelta(t, 3.4730, coords.Lng, 0.0001)
}

func TestGoogleResolve_KeepsExistingContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Victoria Island, Lagos", r.URL.Query().Get("address"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"status": "OK",
			"results": [{"geometry": {"location": {"lat": 6.4281, "lng": 3.4219}}}]
		}`)
	}))
	defer srv.Close()

	g := NewGoogle("test-key", WithBaseURL(srv.URL))
	_, err := g.Resolve(context.Background(), "Victoria Island, Lagos")
	require.NoError(t, err)
}

func TestGoogleResolve_NoResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"status": "ZERO_RESULTS", "results": []}`)
	}))
	defer srv.Close()

	g := NewGoogle("test-key", WithBaseURL(srv.URL))
	_, err := g.Resolve(context.Background(), "Nowhere In Particular")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no result")
	assert.Contains(t, err.Error(), "ZERO_RESULTS")
}

func TestGoogleResolve_EmptyQuery(t *testing.T) {
	g := NewGoogle("test-key")
	_, err := g.Resolve(context.Background(), "   ")

	require.Error(t, err)
	assert.True(t, model.IsInvalidInput(err))
}

func TestGoogleResolve_NoKey(t *testing.T) {
	g := NewGoogle("")
	_, err := g.Resolve(context.Background(), "Lekki Phase 1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestGoogleResolve_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	g := NewGoogle("test-key", WithBaseURL(srv.URL))
	_, err := g.Resolve(context.Background(), "Lekki Phase 1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestNigerianize(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want string
	}{
		{"Banana Island", "Banana Island, Nigeria"},
		{"Victoria Island, Lagos", "Victoria Island, Lagos"},
		{"ikeja, lagos", "ikeja, lagos"},
		{"Maitama, Abuja", "Maitama, Abuja"},
		{"15 Broad Street, Nigeria", "15 Broad Street, Nigeria"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, nigerianize(tt.in), "input %q", tt.in)
	}
}
