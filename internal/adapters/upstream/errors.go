package upstream

import "errors"

// Sentinel kinds for match API errors.
var (
	ErrNotFound = errors.New("not found")
	ErrUpstream = errors.New("match api request failed")
	ErrDecode   = errors.New("match api response decode failed")
)
