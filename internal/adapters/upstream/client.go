// Package upstream is a client for the remote match API.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/okian/matchclock/internal/domain/model"
	"github.com/okian/matchclock/pkg/logger"
	"github.com/okian/matchclock/pkg/metrics"
)

// Endpoints relative to the base URL.
const (
	upcomingMatchesPath = "/upcoming_matches"
	matchesPath         = "/matches"
	matchPath           = "/match/"
	teamsPath           = "/teams"
	teamPath            = "/team/"
	playerPath          = "/player/"
)

const (
	defaultTimeout = 20 * time.Second
	// maxErrorBody caps how much of a failed response is kept in the error.
	maxErrorBody = 512
)

// Client fetches matches, teams and players. Every call makes exactly one
// request.
type Client struct {
	baseURL string
	client  *http.Client
	headers map[string]string
	logger  logger.Logger
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.client.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

// WithHeader sets a header sent on every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers[key] = value
	}
}

// WithLogger sets the client logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a client for the match API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultTimeout},
		headers: map[string]string{"Accept": "application/json"},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logger.Get().Named("upstream")
	}
	return c
}

// UpcomingMatches returns unfinished matches ordered by start time.
func (c *Client) UpcomingMatches(ctx context.Context) ([]model.Match, error) {
	var out []model.Match
	if err := c.get(ctx, "upcoming_matches", upcomingMatchesPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Matches returns all matches, most recent first.
func (c *Client) Matches(ctx context.Context) ([]model.Match, error) {
	var out []model.Match
	if err := c.get(ctx, "matches", matchesPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Match returns a single match by VLR id.
func (c *Client) Match(ctx context.Context, vlrID string) (model.Match, error) {
	var out model.Match
	err := c.get(ctx, "match", matchPath+url.PathEscape(vlrID), &out)
	return out, err
}

// Teams returns all teams.
func (c *Client) Teams(ctx context.Context) ([]model.Team, error) {
	var out []model.Team
	if err := c.get(ctx, "teams", teamsPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Team returns a single team by VLR id.
func (c *Client) Team(ctx context.Context, vlrID string) (model.Team, error) {
	var out model.Team
	err := c.get(ctx, "team", teamPath+url.PathEscape(vlrID), &out)
	return out, err
}

// Player returns a single player by VLR id.
func (c *Client) Player(ctx context.Context, vlrID string) (model.Player, error) {
	var out model.Player
	err := c.get(ctx, "player", playerPath+url.PathEscape(vlrID), &out)
	return out, err
}

// get performs GET baseURL+path and decodes the JSON body into v.
func (c *Client) get(ctx context.Context, op, path string, v any) error {
	start := time.Now()
	outcome := "ok"
	defer func() {
		metrics.RecordUpstreamRequest(op, outcome, float64(time.Since(start).Milliseconds()))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		outcome = "request_error"
		return fmt.Errorf("upstream.%s: %w: %w", op, ErrUpstream, err)
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		outcome = "transport_error"
		metrics.RecordErrorByComponent("upstream", outcome)
		c.logger.Warn(ctx, "match api request failed",
			logger.String("operation", op),
			logger.String("path", path),
			logger.Error(err),
		)
		return fmt.Errorf("upstream.%s: %w: %w", op, ErrUpstream, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		outcome = "not_found"
		return fmt.Errorf("upstream.%s %s: %w", op, path, ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		outcome = "status_" + strconv.Itoa(resp.StatusCode)
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		metrics.RecordErrorByComponent("upstream", "bad_status")
		c.logger.Warn(ctx, "match api returned error status",
			logger.String("operation", op),
			logger.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("upstream.%s: %w: status %d: %s", op, ErrUpstream, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		outcome = "decode_error"
		metrics.RecordErrorByComponent("upstream", outcome)
		return fmt.Errorf("upstream.%s: %w: %w", op, ErrDecode, err)
	}

	c.logger.Debug(ctx, "match api request done",
		logger.String("operation", op),
		logger.Duration("took", time.Since(start)),
	)
	return nil
}
