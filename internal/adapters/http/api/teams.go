package api

import (
	"context"
	"net/http"

	"github.com/okian/matchclock/internal/domain/model"
)

// TeamDependencies defines the interface for team reads.
type TeamDependencies interface {
	Teams(ctx context.Context) ([]model.Team, error)
	Team(ctx context.Context, vlrID string) (model.Team, error)
}

// TeamHandler handles team requests.
type TeamHandler struct {
	deps TeamDependencies
}

// NewTeamHandler creates a new team handler.
func NewTeamHandler(deps TeamDependencies) *TeamHandler {
	return &TeamHandler{deps: deps}
}

// HandleListTeams handles GET /api/teams requests.
func (h *TeamHandler) HandleListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.deps.Teams(r.Context())
	if err != nil {
		writeUpstreamError(w, "api.list_teams", err)
		return
	}
	writeJSON(w, http.StatusOK, teams)
}

// HandleGetTeam handles GET /api/team/{id} requests.
func (h *TeamHandler) HandleGetTeam(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_team"
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	team, err := h.deps.Team(r.Context(), id)
	if err != nil {
		writeUpstreamError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}
