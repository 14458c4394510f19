package usecase

import "errors"

// Use-case level failures. Domain sentinels (scorecard, roster, stats,
// decision) pass through wrapped and stay matchable with errors.Is.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
	// ErrUnauthorized is returned for a missing or wrong ingest token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrDependencyUnavailable covers the scorecard site and the stats store.
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
