//go:build linux

package cgroup

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// Resolve turns the requested cgroup names (or, with discoverAll, the result
// of walking root) into validated targets, preserving order. Individual
// invalid candidates are dropped with a logged reason; an empty final list
// is ErrNoValidTargets and fatal to the run.
func Resolve(requested []string, discoverAll bool, root string, policy ExcludePolicy, log *slog.Logger) ([]Target, error) {
	if log == nil {
		log = slog.Default()
	}

	names := requested
	if discoverAll {
		names = Discover(root, policy)
	}
	if len(names) == 0 {
		names = []string{DefaultTarget}
	}

	targets := make([]Target, 0, len(names))
	for _, name := range names {
		path := filepath.Join(root, name)
		if err := validate(path); err != nil {
			log.Warn("cgroup excluded from run", "cgroup", name, "reason", err)
			continue
		}
		targets = append(targets, Target{Name: name, Path: path, Valid: true})
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("%w (root %s)", ErrNoValidTargets, root)
	}
	return targets, nil
}

// Discover walks the hierarchy under root and returns the root-relative name
// of every directory carrying a cpu.stat file, minus the root itself and
// policy-excluded names. WalkDir visits lexically, so the result order is
// deterministic.
func Discover(root string, policy ExcludePolicy) []string {
	var found []string
	_ = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil || rel == "." {
			return nil
		}
		if policy.Excludes(rel) {
			return nil
		}
		if _, err := os.Stat(filepath.Join(p, "cpu.stat")); err != nil {
			return nil
		}
		found = append(found, rel)
		return nil
	})
	return found
}

// validate checks what the sampler minimally depends on: the directory
// exists and cpu.stat is present and readable.
func validate(path string) error {
	fi, err := os.Stat(path)
	if err != nil || !fi.IsDir() {
		return ErrNotDirectory
	}
	stat := filepath.Join(path, "cpu.stat")
	if _, err := os.Stat(stat); err != nil {
		return ErrNoCPUStat
	}
	if err := unix.Access(stat, unix.R_OK); err != nil {
		return ErrNotReadable
	}
	return nil
}
