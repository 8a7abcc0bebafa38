// Package site serves the server-rendered match pages.
package site

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/flosch/pongo2/v6"
	"github.com/okian/matchclock/internal/adapters/http/api"
	"github.com/okian/matchclock/internal/adapters/upstream"
	"github.com/okian/matchclock/internal/domain/model"
	"github.com/okian/matchclock/pkg/logger"
)

// Error constants
var (
	ErrRender = errors.New("site render failed")
)

const defaultTitle = "Upcoming"

// Dependencies are the reads the pages need.
type Dependencies interface {
	UpcomingMatches(ctx context.Context) ([]model.UpcomingMatch, error)
	Match(ctx context.Context, vlrID string) (model.UpcomingMatch, error)
	Teams(ctx context.Context) ([]model.Team, error)
	Player(ctx context.Context, vlrID string) (model.Player, error)
}

// navItem is one navbar entry.
type navItem struct {
	Name    string
	Href    string
	Section string
}

var navigation = []navItem{
	{Name: "Matches", Href: "/matches/", Section: "matches"},
	{Name: "Teams", Href: "/teams/", Section: "teams"},
	{Name: "Players", Href: "/players/", Section: "players"},
}

// Site renders HTML pages backed by Dependencies.
type Site struct {
	deps     Dependencies
	renderer *Renderer
	title    string
	logger   logger.Logger
}

// Option configures a Site.
type Option func(*Site)

// WithTitle sets the heading of the match list page.
func WithTitle(title string) Option {
	return func(s *Site) {
		if title != "" {
			s.title = title
		}
	}
}

// WithLogger sets the logger used for render and upstream failures.
func WithLogger(l logger.Logger) Option {
	return func(s *Site) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Site rendering the embedded templates.
func New(deps Dependencies, opts ...Option) *Site {
	s := &Site{
		deps:     deps,
		renderer: NewRenderer(Templates()),
		title:    defaultTitle,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("site")
	}
	return s
}

// Register attaches the page and static asset routes to mux.
func (s *Site) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /matches/{$}", api.MetricsMiddleware(s.handleMatches, "site_matches"))
	mux.HandleFunc("GET /matches/{id}", api.MetricsMiddleware(s.handleMatch, "site_match"))
	mux.HandleFunc("GET /teams/{$}", api.MetricsMiddleware(s.handleTeams, "site_teams"))
	mux.HandleFunc("GET /players/{$}", api.MetricsMiddleware(s.handlePlayers, "site_players"))
	mux.HandleFunc("GET /players/{id}", api.MetricsMiddleware(s.handlePlayer, "site_player"))
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(FS())))
}

func (s *Site) handleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/matches/", http.StatusFound)
}

func (s *Site) handleMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := s.deps.UpcomingMatches(r.Context())
	if err != nil {
		s.renderError(w, r, "matches", err)
		return
	}
	s.render(w, r, http.StatusOK, "matches.html", pongo2.Context{
		"active":  "matches",
		"heading": s.title,
		"matches": matches,
	})
}

func (s *Site) handleMatch(w http.ResponseWriter, r *http.Request) {
	m, err := s.deps.Match(r.Context(), r.PathValue("id"))
	if err != nil {
		s.renderError(w, r, "matches", err)
		return
	}
	s.render(w, r, http.StatusOK, "match.html", pongo2.Context{
		"active": "matches",
		"match":  m,
	})
}

func (s *Site) handleTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := s.deps.Teams(r.Context())
	if err != nil {
		s.renderError(w, r, "teams", err)
		return
	}
	s.render(w, r, http.StatusOK, "teams.html", pongo2.Context{
		"active": "teams",
		"teams":  teams,
	})
}

// handlePlayers shows the lookup form, or redirects to the player page
// when an id is submitted.
func (s *Site) handlePlayers(w http.ResponseWriter, r *http.Request) {
	if id := strings.TrimSpace(r.URL.Query().Get("id")); id != "" {
		http.Redirect(w, r, "/players/"+url.PathEscape(id), http.StatusFound)
		return
	}
	s.render(w, r, http.StatusOK, "players.html", pongo2.Context{"active": "players"})
}

func (s *Site) handlePlayer(w http.ResponseWriter, r *http.Request) {
	p, err := s.deps.Player(r.Context(), r.PathValue("id"))
	if err != nil {
		s.renderError(w, r, "players", err)
		return
	}
	s.render(w, r, http.StatusOK, "player.html", pongo2.Context{
		"active": "players",
		"player": p,
	})
}

func (s *Site) render(w http.ResponseWriter, r *http.Request, status int, name string, data pongo2.Context) {
	data["navigation"] = navigation
	err := s.renderer.Render(w, status, name, data)
	if err == nil {
		return
	}
	s.logger.Error(r.Context(), "render failed", logger.String("template", name), logger.Error(err))
	if errors.Is(err, ErrRender) {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (s *Site) renderError(w http.ResponseWriter, r *http.Request, active string, err error) {
	status := http.StatusBadGateway
	if errors.Is(err, upstream.ErrNotFound) {
		status = http.StatusNotFound
	}
	s.logger.Warn(r.Context(), "page data unavailable",
		logger.String("path", r.URL.Path),
		logger.Int("status", status),
		logger.Error(err))
	s.render(w, r, status, "error.html", pongo2.Context{
		"active":     active,
		"statusCode": status,
		"message":    err.Error(),
	})
}
