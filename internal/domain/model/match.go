// Package model contains domain models passed between layers.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/okian/matchclock/internal/domain/countdown"
)

// Match status values shown next to a countdown.
const (
	StatusUpcoming = "upcoming"
	StatusStarted  = "started"
	StatusFinished = "finished"
)

// ErrInvalidStart is returned when a match start time cannot be parsed.
var ErrInvalidStart = errors.New("invalid match start")

// Match is a scheduled or finished match as served by the match API.
// Fields mirror the upstream JSON.
type Match struct {
	Event      string `json:"event"`
	Team1ID    string `json:"team1_id"`
	Team2ID    string `json:"team2_id"`
	Team1      string `json:"team1"`
	Team2      string `json:"team2"`
	Team1Logo  string `json:"team1_logo"`
	Team2Logo  string `json:"team2_logo"`
	DatePlayed string `json:"date_played"` // ISO-8601, UTC
	VLRID      string `json:"vlr_id"`
	IsFinished bool   `json:"is_finished"`
	Team1Score int    `json:"team1_score"`
	Team2Score int    `json:"team2_score"`
}

// Team is a team record.
type Team struct {
	Name        string `json:"name"`
	Tag         string `json:"team_tag"`
	Rating      int    `json:"team_rating"`
	VLRID       string `json:"vlr_id"`
	LastUpdated string `json:"last_updated"`
}

// Player is a player record. Team holds the team's VLR id when known.
type Player struct {
	IGN         string `json:"ign"`
	RealName    string `json:"real_name"`
	Team        string `json:"team"`
	VLRID       string `json:"vlr_id"`
	LastUpdated string `json:"last_updated"`
}

// UpcomingMatch is a match decorated with its countdown for display.
type UpcomingMatch struct {
	Match
	StartsAt  time.Time           `json:"starts_at"`
	Countdown countdown.Breakdown `json:"countdown"`
	Phrase    string              `json:"phrase"`
	Status    string              `json:"status"`
}

// NewUpcomingMatch decorates m with the countdown to start as seen at now.
func NewUpcomingMatch(m Match, start, now time.Time) UpcomingMatch {
	b := countdown.Compute(start, now)
	status := StatusUpcoming
	switch {
	case m.IsFinished:
		status = StatusFinished
	case b.Started():
		status = StatusStarted
	}
	return UpcomingMatch{
		Match:     m,
		StartsAt:  start.UTC(),
		Countdown: b,
		Phrase:    countdown.Phrase(b),
		Status:    status,
	}
}

// ParseStart parses a match's date_played into an absolute instant.
// Values without an explicit zone are read as UTC.
func ParseStart(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidStart)
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrInvalidStart, s, err)
	}
	return t, nil
}
