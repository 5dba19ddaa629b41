// Package server exposes the scoring and corridor engines as a JSON API for
// the map frontend. Handlers translate HTTP to engine calls and back; they
// hold no domain logic of their own.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/amdsolutions007/Naija-Prop-Intel/internal/corridor"
	"github.com/amdsolutions007/Naija-Prop-Intel/internal/scoring"
	"github.com/amdsolutions007/Naija-Prop-Intel/internal/store"
)

// Server bundles the engines behind the HTTP surface.
type Server struct {
	repo    store.Repository
	engine  *scoring.Engine
	matcher *corridor.Matcher
	origins []string
}

// Option configures a Server.
type Option func(*Server)

// WithCORSOrigins sets the allowed CORS origins. Default is any origin.
func WithCORSOrigins(origins []string) Option {
	return func(s *Server) {
		if len(origins) > 0 {
			s.origins = origins
		}
	}
}

// New builds a Server over an already-constructed repository and engines.
func New(repo store.Repository, engine *scoring.Engine, matcher *corridor.Matcher, opts ...Option) *Server {
	s := &Server{
		repo:    repo,
		engine:  engine,
		matcher: matcher,
		origins: []string{"*"},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/roi", s.handleROI)
		r.Get("/corridor", s.handleCorridor)
		r.Post("/corridor/compare", s.handleCompare)
		r.Get("/budget", s.handleBudget)
		r.Get("/zones", s.handleZones)
		r.Get("/zones/nearest", s.handleNearest)
		r.Get("/zones/{name}", s.handleZone)
	})

	return r
}

// requestLogger emits one structured line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		zap.L().Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}
