package storage

import "errors"

// Common storage errors.
var (
	// ErrNoRuns is returned when the run log holds no runs.
	ErrNoRuns = errors.New("no runs recorded")

	// ErrRunNotFound is returned when a run id is not in the run log.
	ErrRunNotFound = errors.New("run not found")
)
