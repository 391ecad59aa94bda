package ecs

import "errors"

var (
	// ErrInvalidDelta rejects negative or non-finite tick deltas before
	// any system runs.
	ErrInvalidDelta = errors.New("ecs: invalid tick delta")

	// ErrInvalidRate reports a Shooting component whose fire rate is not
	// positive; the entity is skipped rather than dividing by zero.
	ErrInvalidRate = errors.New("ecs: shooting rate must be positive")
)
