// Package api exposes the capacity engines over HTTP.
//
// Routes (all JSON):
//
//	POST /api/column          axial compression capacity
//	POST /api/beam            flexural capacity
//	POST /api/connection      bolted connection governing check
//	POST /api/baseplate       column base plate design
//	GET  /api/sections/{name} section properties
//	GET  /api/materials       steel and bolt grades
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/alexiusacademia/gosteel/internal/config"
	"github.com/alexiusacademia/gosteel/internal/limitstate"
	"github.com/alexiusacademia/gosteel/internal/material"
	"github.com/alexiusacademia/gosteel/internal/provisions"
	"github.com/alexiusacademia/gosteel/internal/section"
	"github.com/alexiusacademia/gosteel/internal/units"
)

// maxBody caps request bodies.
const maxBody = 1 << 20

// Server holds the read-only registries shared by all handlers.
type Server struct {
	Shapes    *section.Database
	Materials *material.Registry
	Config    *config.Config
	Log       *log.Logger
}

// New builds a Server from a loaded configuration.
func New(cfg *config.Config, logger *log.Logger) (*Server, error) {
	db, err := cfg.Shapes()
	if err != nil {
		return nil, err
	}
	reg, err := cfg.Registry()
	if err != nil {
		return nil, err
	}
	return &Server{Shapes: db, Materials: reg, Config: cfg, Log: logger}, nil
}

// Handler returns the routed, rate-limited and CORS-wrapped API.
func (s *Server) Handler() http.Handler {
	limiter := NewIPRateLimiter(rate.Limit(s.Config.Server.Rate), s.Config.Server.Burst)

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)
	api.HandleFunc("/column", s.column).Methods(http.MethodPost)
	api.HandleFunc("/beam", s.beam).Methods(http.MethodPost)
	api.HandleFunc("/connection", s.connection).Methods(http.MethodPost)
	api.HandleFunc("/baseplate", s.baseplate).Methods(http.MethodPost)
	api.HandleFunc("/sections/{name}", s.sectionByName).Methods(http.MethodGet)
	api.HandleFunc("/materials", s.materials).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	return CORS(r)
}

// CORS allows cross-origin GET and POST and answers preflight requests.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ListenAndServe runs the API on addr until ctx is cancelled, then drains
// open connections for up to five seconds.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.Log.Printf("listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.Log.Println("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.Log.Println("server stopped")
	return nil
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// statusOf maps engine errors to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, section.ErrShapeNotFound), errors.Is(err, material.ErrMaterialNotFound):
		return http.StatusNotFound
	case errors.Is(err, limitstate.ErrUnsupportedShapeType),
		errors.Is(err, limitstate.ErrInvalidInput),
		errors.Is(err, section.ErrMissingProperty),
		errors.Is(err, provisions.ErrInvalidBoundaryCondition),
		errors.Is(err, units.ErrDimensionMismatch):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	s.Log.Printf("%s %s: %d %v", r.Method, r.URL.Path, status, err)
	writeError(w, status, err.Error())
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
