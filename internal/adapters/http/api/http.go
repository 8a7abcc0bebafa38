// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/matchclock/internal/adapters/upstream"
	"github.com/okian/matchclock/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	MatchDependencies
	TeamDependencies
	PlayerDependencies
}

// Server wires HTTP routes for the JSON API.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	matchHandler  *MatchHandler
	teamHandler   *TeamHandler
	playerHandler *PlayerHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(statsProvider),
		matchHandler:  NewMatchHandler(deps),
		teamHandler:   NewTeamHandler(deps),
		playerHandler: NewPlayerHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("GET /api/upcoming_matches", RequestIDMiddleware(MetricsMiddleware(s.matchHandler.HandleUpcoming, "upcoming_matches")))
	mux.HandleFunc("GET /api/match/{id}", RequestIDMiddleware(MetricsMiddleware(s.matchHandler.HandleGetMatch, "match")))
	mux.HandleFunc("GET /api/teams", RequestIDMiddleware(MetricsMiddleware(s.teamHandler.HandleListTeams, "teams")))
	mux.HandleFunc("GET /api/team/{id}", RequestIDMiddleware(MetricsMiddleware(s.teamHandler.HandleGetTeam, "team")))
	mux.HandleFunc("GET /api/player/{id}", RequestIDMiddleware(MetricsMiddleware(s.playerHandler.HandleGetPlayer, "player")))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeUpstreamError translates service errors into HTTP responses.
func writeUpstreamError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, upstream.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", WrapKind(op, ErrNotFound, err))
	case errors.Is(err, model.ErrInvalidStart):
		writeError(w, http.StatusBadGateway, "bad_upstream_data", WrapKind(op, ErrUpstream, err))
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "upstream_timeout", WrapKind(op, ErrUpstream, err))
	default:
		writeError(w, http.StatusBadGateway, "upstream_error", WrapKind(op, ErrUpstream, err))
	}
}

// pathID returns the {id} path value, or an error when it is blank.
func pathID(r *http.Request) (string, error) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		return "", errors.New("missing id")
	}
	return id, nil
}
