package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/example/invoice-dashboard/internal/db/seeders"
)

const fallbackSeedError = "Failed to seed database"

// Seeder runs one seeding pass.
type Seeder interface {
	Seed(ctx context.Context) (seeders.Summary, error)
}

// Server exposes the seeding trigger over HTTP.
type Server struct {
	seeder Seeder
	log    zerolog.Logger
}

// New creates a new Server bound to the seeder.
func New(seeder Seeder, log zerolog.Logger) *Server {
	return &Server{seeder: seeder, log: log}
}

// Handler returns the routed handler wrapped with access logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/seed", s.handleSeed)

	h := hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	})(mux)
	return hlog.NewHandler(s.log)(h)
}

// Start runs the HTTP server on the given address.
func (s *Server) Start(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleSeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	// A client disconnect must not interrupt a run that has started.
	ctx := context.WithoutCancel(r.Context())
	if _, err := s.seeder.Seed(ctx); err != nil {
		msg := err.Error()
		if msg == "" {
			msg = fallbackSeedError
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": msg})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Database seeded successfully"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
