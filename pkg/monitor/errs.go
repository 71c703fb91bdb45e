package monitor

import "errors"

var (
	// ErrBadInterval indicates a non-positive sampling interval.
	ErrBadInterval = errors.New("monitor: interval must be > 0")

	// ErrBadDuration indicates a non-positive run duration.
	ErrBadDuration = errors.New("monitor: duration must be > 0")

	// ErrNoTargets indicates Run was started without any targets.
	ErrNoTargets = errors.New("monitor: no targets")
)
