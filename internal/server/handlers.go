package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/amdsolutions007/Naija-Prop-Intel/internal/corridor"
	"github.com/amdsolutions007/Naija-Prop-Intel/internal/model"
	"github.com/amdsolutions007/Naija-Prop-Intel/internal/store"
	"github.com/amdsolutions007/Naija-Prop-Intel/pkg/geocode"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type analyzeRequest struct {
	Zone         string  `json:"zone"`
	Price        float64 `json:"price"`
	PropertyType string  `json:"property_type"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, &model.InvalidInputError{Field: "body", Reason: "not valid JSON"})
		return
	}

	analysis, err := s.engine.AnalyzeProperty(r.Context(), req.Zone, req.Price, req.PropertyType)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

type roiRequest struct {
	Zone  string  `json:"zone"`
	Price float64 `json:"price"`
	Years int     `json:"years"`
}

func (s *Server) handleROI(w http.ResponseWriter, r *http.Request) {
	var req roiRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, &model.InvalidInputError{Field: "body", Reason: "not valid JSON"})
		return
	}

	roi, err := s.engine.CalculateROI(r.Context(), req.Zone, req.Price, req.Years)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, roi)
}

// corridorResponse decorates a corridor result with the viewport box so the
// frontend can frame the route without recomputing geometry.
type corridorResponse struct {
	*model.CorridorResult
	Bounds corridor.Bounds `json:"bounds"`
}

func (s *Server) handleCorridor(w http.ResponseWriter, r *http.Request) {
	origin := r.URL.Query().Get("origin")
	destination := r.URL.Query().Get("destination")

	params := corridor.DefaultParams()
	var err error
	if params.CorridorWidthKm, err = queryFloat(r, "width_km", params.CorridorWidthKm); err != nil {
		writeError(w, r, err)
		return
	}
	if params.MaxPricePerSqm, err = queryFloat(r, "max_price_sqm", 0); err != nil {
		writeError(w, r, err)
		return
	}
	if params.MinSecurityScore, err = queryFloat(r, "min_security", params.MinSecurityScore); err != nil {
		writeError(w, r, err)
		return
	}
	if params.MaxFloodRisk, err = queryFloat(r, "max_flood", params.MaxFloodRisk); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := s.matcher.FindAlongCorridor(r.Context(), origin, destination, params)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, corridorResponse{res, corridor.RouteBounds(res)})
}

type compareRequest struct {
	Origin       string   `json:"origin"`
	Destinations []string `json:"destinations"`
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, &model.InvalidInputError{Field: "body", Reason: "not valid JSON"})
		return
	}

	comparisons, err := s.matcher.CompareRoutes(r.Context(), req.Origin, req.Destinations)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"origin": req.Origin,
		"routes": comparisons,
	})
}

// budgetResponse mirrors corridorResponse for budget searches.
type budgetResponse struct {
	*model.BudgetResult
	Bounds corridor.Bounds `json:"bounds"`
}

func (s *Server) handleBudget(w http.ResponseWriter, r *http.Request) {
	origin := r.URL.Query().Get("origin")
	destination := r.URL.Query().Get("destination")

	budget, err := queryFloat(r, "budget", 0)
	if err != nil {
		writeError(w, r, err)
		return
	}
	bedrooms, err := queryInt(r, "bedrooms", 3)
	if err != nil {
		writeError(w, r, err)
		return
	}
	width, err := queryFloat(r, "width_km", corridor.DefaultWidthKm)
	if err != nil {
		writeError(w, r, err)
		return
	}

	res, err := s.matcher.SearchByBudget(r.Context(), origin, destination, budget, bedrooms, width)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, budgetResponse{res, corridor.RouteBounds(&res.Corridor)})
}

func (s *Server) handleZones(w http.ResponseWriter, r *http.Request) {
	names, err := s.repo.Names(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	zones := make([]model.Zone, 0, len(names))
	for _, name := range names {
		z, err := s.repo.Zone(r.Context(), name)
		if err != nil {
			writeError(w, r, err)
			return
		}
		zones = append(zones, z)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count": len(zones),
		"zones": zones,
	})
}

func (s *Server) handleZone(w http.ResponseWriter, r *http.Request) {
	z, err := store.Resolve(r.Context(), s.repo, chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, z)
}

func (s *Server) handleNearest(w http.ResponseWriter, r *http.Request) {
	lat, err := requiredFloat(r, "lat")
	if err != nil {
		writeError(w, r, err)
		return
	}
	lng, err := requiredFloat(r, "lng")
	if err != nil {
		writeError(w, r, err)
		return
	}
	maxKm, err := queryFloat(r, "max_km", geocode.DefaultNearestKm)
	if err != nil {
		writeError(w, r, err)
		return
	}

	match, found, err := geocode.NearestZone(r.Context(), s.repo, model.Coordinates{Lat: lat, Lng: lng}, maxKm)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"error":  "no zone within range",
			"max_km": maxKm,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"zone":        match.Zone,
		"distance_km": match.DistanceKm,
	})
}

func queryFloat(r *http.Request, key string, def float64) (float64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &model.InvalidInputError{Field: key, Reason: "not a number"}
	}
	return v, nil
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &model.InvalidInputError{Field: key, Reason: "not an integer"}
	}
	return v, nil
}

func requiredFloat(r *http.Request, key string) (float64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, &model.InvalidInputError{Field: key, Reason: "required"}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &model.InvalidInputError{Field: key, Reason: "not a number"}
	}
	return v, nil
}
