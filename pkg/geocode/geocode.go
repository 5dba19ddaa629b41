// Package geocode resolves free-text Nigerian locations to coordinates via
// the Google Geocoding API, and maps coordinates back to known zones.
package geocode

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/amdsolutions007/Naija-Prop-Intel/internal/model"
)

const defaultGeocodeBaseURL = "https://maps.googleapis.com/maps/api/geocode"

// Geocoder resolves a free-text location to coordinates.
type Geocoder interface {
	Resolve(ctx context.Context, freeText string) (model.Coordinates, error)
}

// Google geocodes through the Google Geocoding API with a Nigeria region bias.
type Google struct {
	apiKey  string
	region  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// Option configures the Google geocoder.
type Option func(*Google)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(g *Google) {
		g.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(g *Google) {
		g.http = hc
	}
}

// WithRateLimit sets the requests-per-second limit for API calls.
func WithRateLimit(rps float64) Option {
	return func(g *Google) {
		g.limiter = rate.NewLimiter(rate.Limit(rps), max(int(rps), 1))
	}
}

// WithRegion overrides the default "ng" region bias.
func WithRegion(region string) Option {
	return func(g *Google) {
		g.region = region
	}
}

// NewGoogle creates a Google geocoder.
func NewGoogle(apiKey string, opts ...Option) *Google {
	g := &Google{
		apiKey:  apiKey,
		region:  "ng",
		baseURL: defaultGeocodeBaseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		limiter: rate.NewLimiter(10, 10),
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// geocodeResponse is the JSON response from the Google Geocoding API.
type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
		FormattedAddress string `json:"formatted_address"`
	} `json:"results"`
}

// Resolve implements Geocoder. Queries that name no Nigerian context get a
// ", Nigeria" suffix before the lookup.
func (g *Google) Resolve(ctx context.Context, freeText string) (model.Coordinates, error) {
	freeText = strings.TrimSpace(freeText)
	if freeText == "" {
		return model.Coordinates{}, &model.InvalidInputError{Field: "location", Reason: "empty"}
	}
	if g.apiKey == "" {
		return model.Coordinates{}, eris.New("geocode: google api key not configured")
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return model.Coordinates{}, eris.Wrap(err, "geocode: rate limit")
	}

	params := url.Values{
		"address": {nigerianize(freeText)},
		"region":  {g.region},
		"key":     {g.apiKey},
	}

	reqURL := g.baseURL + "/json?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return model.Coordinates{}, eris.Wrap(err, "geocode: build request")
	}

	resp, err := g.http.Do(req)
	if err != nil {
		return model.Coordinates{}, eris.Wrap(err, "geocode: request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return model.Coordinates{}, eris.Errorf("geocode: google returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.Coordinates{}, eris.Wrap(err, "geocode: read body")
	}

	var gr geocodeResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return model.Coordinates{}, eris.Wrap(err, "geocode: parse response")
	}

	if gr.Status != "OK" || len(gr.Results) == 0 {
		return model.Coordinates{}, eris.Errorf("geocode: no result for %q (%s)", freeText, gr.Status)
	}

	loc := gr.Results[0].Geometry.Location
	return model.Coordinates{Lat: loc.Lat, Lng: loc.Lng}, nil
}

// nigerianize appends ", Nigeria" to queries that carry no Nigerian context,
// so bare street or area names do not resolve to same-named places abroad.
func nigerianize(addr string) string {
	lower := strings.ToLower(addr)
	for _, hint := range []string{"nigeria", "lagos", "abuja"} {
		if strings.Contains(lower, hint) {
			return addr
		}
	}
	return addr + ", Nigeria"
}
