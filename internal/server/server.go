// Package server exposes the puzzle engine over HTTP.
//
// The API is stateless: puzzles travel in full inside requests and
// responses, so any instance can serve any call and horizontal scaling
// needs no sticky sessions. Caching happens below this layer, in the
// engine's Runner.
//
// Routes:
//
//	GET  /healthz              liveness probe
//	GET  /v1/families          list supported puzzle families
//	POST /v1/puzzles           generate a puzzle
//	POST /v1/solve             enumerate solutions for a grid
//	POST /v1/validate          check a player grid
//	POST /v1/reveal            return the stored solution
package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ianfhunter/enigma/pkg/engine"
	"github.com/ianfhunter/enigma/pkg/families"
)

// Server wires the engine runner into an HTTP handler.
type Server struct {
	runner *engine.Runner
	logger *log.Logger
	router chi.Router
}

// New creates a server around the given runner.
func New(runner *engine.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, logger: logger}
	s.router = s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/families", s.handleFamilies)
		r.Post("/puzzles", s.handleGenerate)
		r.Post("/solve", s.handleSolve)
		r.Post("/validate", s.handleValidate)
		r.Post("/reveal", s.handleReveal)
	})
	return r
}

// logRequests emits one structured line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleFamilies(w http.ResponseWriter, r *http.Request) {
	type familyInfo struct {
		Name        string `json:"name"`
		DefaultSize int    `json:"default_size"`
		FixedSize   bool   `json:"fixed_size"`
	}
	var out []familyInfo
	for _, name := range families.Names() {
		f, err := families.Lookup(name)
		if err != nil {
			continue
		}
		out = append(out, familyInfo{Name: f.Name, DefaultSize: f.DefaultSize, FixedSize: f.FixedSize})
	}
	writeJSON(w, http.StatusOK, map[string]any{"families": out})
}
