// Package fakeapi serves generated match data on the match API routes so the
// site can be run without the scraper backend.
package fakeapi

import "time"

// Config holds configuration for the fake match API.
type Config struct {
	Addr       string        // Listen address
	NumMatches int           // Number of upcoming matches to generate
	Spread     time.Duration // Start times fall in [-Spread/8, Spread) around now
	Verbose    bool          // Log every request
}

// Default configuration constants.
const (
	DefaultAddr       = ":8000"
	DefaultNumMatches = 12
	DefaultSpread     = 72 * time.Hour
)

// DefaultConfig returns a Config matching the scraper backend's local setup.
func DefaultConfig() Config {
	return Config{
		Addr:       DefaultAddr,
		NumMatches: DefaultNumMatches,
		Spread:     DefaultSpread,
	}
}
