package distance

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/amdsolutions007/Naija-Prop-Intel/internal/model"
)

const defaultMatrixBaseURL = "https://maps.googleapis.com/maps/api/distancematrix"

// Matrix resolves road distances via the Google Distance Matrix API.
type Matrix struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// MatrixOption configures the Matrix provider.
type MatrixOption func(*Matrix)

// WithMatrixBaseURL overrides the default API base URL.
func WithMatrixBaseURL(url string) MatrixOption {
	return func(m *Matrix) {
		m.baseURL = url
	}
}

// WithMatrixHTTPClient overrides the default http.Client.
func WithMatrixHTTPClient(hc *http.Client) MatrixOption {
	return func(m *Matrix) {
		m.http = hc
	}
}

// WithMatrixRateLimit sets the requests-per-second limit for API calls.
func WithMatrixRateLimit(rps float64) MatrixOption {
	return func(m *Matrix) {
		m.limiter = rate.NewLimiter(rate.Limit(rps), max(int(rps), 1))
	}
}

// NewMatrix creates a Distance Matrix provider.
func NewMatrix(apiKey string, opts ...MatrixOption) *Matrix {
	m := &Matrix{
		apiKey:  apiKey,
		baseURL: defaultMatrixBaseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		limiter: rate.NewLimiter(10, 10),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Name implements Provider.
func (m *Matrix) Name() string { return "google" }

// matrixResponse is the JSON response from the Distance Matrix API.
type matrixResponse struct {
	Status string `json:"status"`
	Rows   []struct {
		Elements []struct {
			Status   string `json:"status"`
			Distance struct {
				Meters int `json:"value"`
			} `json:"distance"`
			Duration struct {
				Seconds int `json:"value"`
			} `json:"duration"`
		} `json:"elements"`
	} `json:"rows"`
}

// Distance implements Provider. Kilometres are rounded to two decimals and
// minutes to one, matching the great-circle provider.
func (m *Matrix) Distance(ctx context.Context, from, to model.Coordinates, mode Mode) (Result, error) {
	if m.apiKey == "" {
		return Result{}, eris.New("distance: google api key not configured")
	}
	if mode == "" {
		mode = ModeDriving
	}

	if err := m.limiter.Wait(ctx); err != nil {
		return Result{}, eris.Wrap(err, "distance: google rate limit")
	}

	params := url.Values{
		"origins":        {formatLatLng(from)},
		"destinations":   {formatLatLng(to)},
		"mode":           {string(mode)},
		"departure_time": {"now"},
		"key":            {m.apiKey},
	}

	reqURL := m.baseURL + "/json?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Result{}, eris.Wrap(err, "distance: google build request")
	}

	resp, err := m.http.Do(req)
	if err != nil {
		return Result{}, eris.Wrap(err, "distance: google request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return Result{}, eris.Errorf("distance: google returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, eris.Wrap(err, "distance: google read body")
	}

	var mr matrixResponse
	if err := json.Unmarshal(body, &mr); err != nil {
		return Result{}, eris.Wrap(err, "distance: google parse response")
	}

	if mr.Status != "OK" {
		return Result{}, eris.Errorf("distance: google matrix status %s", mr.Status)
	}
	if len(mr.Rows) == 0 || len(mr.Rows[0].Elements) == 0 {
		return Result{}, eris.New("distance: google matrix returned no elements")
	}

	el := mr.Rows[0].Elements[0]
	if el.Status != "OK" {
		return Result{}, eris.Errorf("distance: route not available (%s)", el.Status)
	}

	return Result{
		DistanceKm:      round2(float64(el.Distance.Meters) / 1000),
		DurationMinutes: round1(float64(el.Duration.Seconds) / 60),
		Source:          "google",
	}, nil
}

func formatLatLng(c model.Coordinates) string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lng, 'f', -1, 64)
}
