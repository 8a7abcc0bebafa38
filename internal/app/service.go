// Package service decorates match API data with countdowns for the HTTP
// layers.
package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/okian/matchclock/internal/domain/countdown"
	"github.com/okian/matchclock/internal/domain/model"
	"github.com/okian/matchclock/pkg/logger"
	"github.com/okian/matchclock/pkg/metrics"
)

// Source is the match data the service reads from.
type Source interface {
	UpcomingMatches(ctx context.Context) ([]model.Match, error)
	Match(ctx context.Context, vlrID string) (model.Match, error)
	Teams(ctx context.Context) ([]model.Team, error)
	Team(ctx context.Context, vlrID string) (model.Team, error)
	Player(ctx context.Context, vlrID string) (model.Player, error)
}

// Service implements the read operations behind the API and the site.
type Service struct {
	source Source
	clock  countdown.Clock
	logger logger.Logger

	startedAt time.Time

	listCalls      atomic.Int64
	countdowns     atomic.Int64
	invalidStarts  atomic.Int64
	upstreamErrors atomic.Int64
	lastListed     atomic.Int64
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock sets the clock countdowns are measured against.
func WithClock(c countdown.Clock) Option {
	return func(s *Service) {
		if c != nil {
			s.clock = c
		}
	}
}

// New constructs a Service reading from src.
func New(src Source, opts ...Option) *Service {
	s := &Service{
		source: src,
		clock:  clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	s.startedAt = s.clock.Now()
	return s
}

// UpcomingMatches returns the upcoming matches with a countdown each.
// All countdowns in one call are measured against a single now. Matches whose
// start time cannot be parsed are skipped.
func (s *Service) UpcomingMatches(ctx context.Context) ([]model.UpcomingMatch, error) {
	s.listCalls.Add(1)

	matches, err := s.source.UpcomingMatches(ctx)
	if err != nil {
		s.upstreamErrors.Add(1)
		return nil, fmt.Errorf("service.upcoming_matches: %w", err)
	}

	now := s.clock.Now()
	out := make([]model.UpcomingMatch, 0, len(matches))
	started := 0
	for _, m := range matches {
		start, err := model.ParseStart(m.DatePlayed)
		if err != nil {
			s.invalidStarts.Add(1)
			metrics.RecordInvalidStart()
			s.logger.Warn(ctx, "skipping match with invalid start",
				logger.String("vlr_id", m.VLRID),
				logger.String("date_played", m.DatePlayed),
				logger.Error(err),
			)
			continue
		}
		u := model.NewUpcomingMatch(m, start, now)
		if u.Countdown.Started() {
			started++
		}
		out = append(out, u)
	}

	s.countdowns.Add(int64(len(out)))
	s.lastListed.Store(int64(len(out)))
	metrics.RecordCountdowns(len(out))
	metrics.UpdateUpcomingMatches(len(out), started)

	s.logger.Debug(ctx, "listed upcoming matches",
		logger.Int("received", len(matches)),
		logger.Int("listed", len(out)),
		logger.Int("started", started),
	)
	return out, nil
}

// Match returns one match with its countdown.
func (s *Service) Match(ctx context.Context, vlrID string) (model.UpcomingMatch, error) {
	m, err := s.source.Match(ctx, vlrID)
	if err != nil {
		s.upstreamErrors.Add(1)
		return model.UpcomingMatch{}, fmt.Errorf("service.match: %w", err)
	}
	start, err := model.ParseStart(m.DatePlayed)
	if err != nil {
		s.invalidStarts.Add(1)
		metrics.RecordInvalidStart()
		return model.UpcomingMatch{}, fmt.Errorf("service.match %s: %w", vlrID, err)
	}
	s.countdowns.Add(1)
	metrics.RecordCountdowns(1)
	return model.NewUpcomingMatch(m, start, s.clock.Now()), nil
}

// Teams returns all teams.
func (s *Service) Teams(ctx context.Context) ([]model.Team, error) {
	teams, err := s.source.Teams(ctx)
	if err != nil {
		s.upstreamErrors.Add(1)
		return nil, fmt.Errorf("service.teams: %w", err)
	}
	return teams, nil
}

// Team returns one team.
func (s *Service) Team(ctx context.Context, vlrID string) (model.Team, error) {
	team, err := s.source.Team(ctx, vlrID)
	if err != nil {
		s.upstreamErrors.Add(1)
		return model.Team{}, fmt.Errorf("service.team: %w", err)
	}
	return team, nil
}

// Player returns one player.
func (s *Service) Player(ctx context.Context, vlrID string) (model.Player, error) {
	p, err := s.source.Player(ctx, vlrID)
	if err != nil {
		s.upstreamErrors.Add(1)
		return model.Player{}, fmt.Errorf("service.player: %w", err)
	}
	return p, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"uptimeSeconds":      int64(s.clock.Now().Sub(s.startedAt) / time.Second),
		"listCalls":          s.listCalls.Load(),
		"countdownsComputed": s.countdowns.Load(),
		"invalidStarts":      s.invalidStarts.Load(),
		"upstreamErrors":     s.upstreamErrors.Load(),
		"lastListed":         s.lastListed.Load(),
	}
}
