package fakeapi

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/okian/matchclock/internal/domain/countdown"
	"github.com/okian/matchclock/internal/domain/model"
	"github.com/okian/matchclock/pkg/logger"
)

// Server serves a Dataset on the match API routes under /api.
type Server struct {
	cfg   Config
	clock countdown.Clock
	log   logger.Logger

	mu   sync.RWMutex
	data Dataset
}

// NewServer generates a dataset relative to clock and returns a server for it.
func NewServer(cfg Config, clock countdown.Clock, log logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	return &Server{
		cfg:   cfg,
		clock: clock,
		log:   log,
		data:  Generate(cfg, clock.Now()),
	}
}

// Regenerate replaces the dataset with a new one around the current time.
func (s *Server) Regenerate() {
	d := Generate(s.cfg, s.clock.Now())
	s.mu.Lock()
	s.data = d
	s.mu.Unlock()
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/upcoming_matches", s.handleUpcoming)
	mux.HandleFunc("GET /api/matches", s.handleMatches)
	mux.HandleFunc("GET /api/match/{id}", s.handleMatch)
	mux.HandleFunc("GET /api/teams", s.handleTeams)
	mux.HandleFunc("GET /api/team/{id}", s.handleTeam)
	mux.HandleFunc("GET /api/player/{id}", s.handlePlayer)
	mux.HandleFunc("POST /api/regenerate", func(w http.ResponseWriter, _ *http.Request) {
		s.Regenerate()
		w.WriteHeader(http.StatusNoContent)
	})
	return s.logRequests(mux)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.Verbose {
			s.log.Debug(context.Background(), "fake api request",
				logger.String("method", r.Method), logger.String("path", r.URL.Path))
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) snapshot() Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

// handleUpcoming returns unfinished matches, like the backend's
// is_finished=False filter.
func (s *Server) handleUpcoming(w http.ResponseWriter, _ *http.Request) {
	all := s.snapshot().Matches
	out := make([]model.Match, 0, len(all))
	for _, m := range all {
		if !m.IsFinished {
			out = append(out, m)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleMatches(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshot().Matches)
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	for _, m := range s.snapshot().Matches {
		if m.VLRID == id {
			writeJSON(w, http.StatusOK, m)
			return
		}
	}
	notFound(w)
}

func (s *Server) handleTeams(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshot().Teams)
}

func (s *Server) handleTeam(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	for _, t := range s.snapshot().Teams {
		if t.VLRID == id {
			writeJSON(w, http.StatusOK, t)
			return
		}
	}
	notFound(w)
}

func (s *Server) handlePlayer(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	for _, p := range s.snapshot().Players {
		if p.VLRID == id {
			writeJSON(w, http.StatusOK, p)
			return
		}
	}
	notFound(w)
}

func notFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
