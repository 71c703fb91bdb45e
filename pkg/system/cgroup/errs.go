package cgroup

import "errors"

var (
	// ErrNoValidTargets indicates that target resolution finished with an
	// empty list. The run cannot start without at least one valid cgroup.
	ErrNoValidTargets = errors.New("cgroup: no valid targets to monitor")

	// ErrNotDirectory indicates that a requested cgroup path is not a
	// directory.
	ErrNotDirectory = errors.New("cgroup: not a directory")

	// ErrNoCPUStat indicates that a cgroup directory has no cpu.stat file.
	ErrNoCPUStat = errors.New("cgroup: cpu.stat not found")

	// ErrNotReadable indicates that cpu.stat exists but the process lacks
	// read permission on it.
	ErrNotReadable = errors.New("cgroup: cpu.stat not readable")
)
