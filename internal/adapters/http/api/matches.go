package api

import (
	"context"
	"net/http"

	"github.com/okian/matchclock/internal/domain/model"
)

// MatchDependencies defines the interface for match reads.
type MatchDependencies interface {
	UpcomingMatches(ctx context.Context) ([]model.UpcomingMatch, error)
	Match(ctx context.Context, vlrID string) (model.UpcomingMatch, error)
}

// MatchHandler handles match requests.
type MatchHandler struct {
	deps MatchDependencies
}

// NewMatchHandler creates a new match handler.
func NewMatchHandler(deps MatchDependencies) *MatchHandler {
	return &MatchHandler{deps: deps}
}

// HandleUpcoming handles GET /api/upcoming_matches requests.
func (h *MatchHandler) HandleUpcoming(w http.ResponseWriter, r *http.Request) {
	const op = "api.upcoming_matches"
	matches, err := h.deps.UpcomingMatches(r.Context())
	if err != nil {
		writeUpstreamError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

// HandleGetMatch handles GET /api/match/{id} requests.
func (h *MatchHandler) HandleGetMatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_match"
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	m, err := h.deps.Match(r.Context(), id)
	if err != nil {
		writeUpstreamError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}
