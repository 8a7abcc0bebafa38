package fakeapi

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/okian/matchclock/pkg/logger"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Run serves a generated dataset on cfg.Addr until ctx is done.
func Run(ctx context.Context, cfg Config) error {
	log := logger.Named("fakeapi")
	if cfg.Verbose {
		_ = logger.SetLevelString("debug")
	}
	s := NewServer(cfg, clockwork.NewRealClock(), log)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "fake match api listening",
			logger.String("addr", cfg.Addr),
			logger.Int("matches", cfg.NumMatches))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// ShowHelp prints usage information for the fake match API.
func ShowHelp() {
	os.Stdout.WriteString(`matchclock fake match API
=========================

Serves generated matches, teams and players on the match API routes
(/api/upcoming_matches, /api/match/{id}, /api/teams, ...).

Usage:
  go run ./cmd/fake-api [options]

Options:
  -addr string
        Listen address (default ":8000")
  -matches int
        Number of matches to generate (default 12)
  -spread duration
        Window the start times are spread over (default 72h)
  -verbose
        Log every request
  -help
        Show this help message

Examples:
  # Serve the default dataset, then point matchclock at it
  go run ./cmd/fake-api
  MATCHCLOCK_UPSTREAM_BASE_URL=http://localhost:8000/api go run ./cmd
`)
}
