package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/amdsolutions007/Naija-Prop-Intel/internal/model"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("encode response", zap.Error(err))
	}
}

// writeError maps the domain error taxonomy onto HTTP statuses: unknown zone
// 404 (with the available names), rejected input 400, provider failure 502,
// anything else 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	body := map[string]any{"error": err.Error()}

	var nf *model.NotFoundError
	switch {
	case errors.As(err, &nf):
		status = http.StatusNotFound
		body["available"] = nf.Available
	case model.IsInvalidInput(err):
		status = http.StatusBadRequest
	case model.IsRouteUnavailable(err):
		status = http.StatusBadGateway
	}

	if status >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	writeJSON(w, status, body)
}
