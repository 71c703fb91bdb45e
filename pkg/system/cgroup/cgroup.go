//go:build linux

package cgroup

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

type Version int

const (
	Unsupported Version = iota // no cgroup mounts found
	V1                         // legacy multi-hierarchy cgroup v1
	V2                         // unified cgroup v2
	Hybrid                     // both v1 and v2 present
)

func (v Version) String() string {
	switch v {
	case V1:
		return "cgroup v1"
	case V2:
		return "cgroup v2"
	case Hybrid:
		return "cgroup hybrid"
	default:
		return "unsupported"
	}
}

// Detect returns the cgroup version available on this host by scanning
// /proc/self/mountinfo for cgroup filesystems. The monitor only understands
// the v2 control-file layout, so callers use this to warn early instead of
// producing a file of defaults.
func Detect() (Version, error) {
	var hasV1, hasV2 bool
	err := scanMounts(func(mountPoint, fstype string) {
		switch fstype {
		case "cgroup2":
			hasV2 = true
		case "cgroup":
			hasV1 = true
		}
	})
	if err != nil {
		return Unsupported, err
	}
	switch {
	case hasV1 && hasV2:
		return Hybrid, nil
	case hasV2:
		return V2, nil
	case hasV1:
		return V1, nil
	default:
		return Unsupported, nil
	}
}

// MountedV2 reports whether path is itself a cgroup2 mount point.
func MountedV2(path string) (bool, error) {
	found := false
	err := scanMounts(func(mountPoint, fstype string) {
		if mountPoint == path && fstype == "cgroup2" {
			found = true
		}
	})
	return found, err
}

// scanMounts walks /proc/self/mountinfo and invokes fn with the mount point
// and filesystem type of every entry. The line format puts the fstype after
// a " - " separator; the mount point is field 5 of the part before it
// (man 5 proc).
func scanMounts(fn func(mountPoint, fstype string)) error {
	f, err := os.Open("/proc/self/mountinfo")
	if err != nil {
		return fmt.Errorf("open mountinfo: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		sep := " - "
		i := strings.LastIndex(line, sep)
		if i < 0 {
			continue
		}
		pre := strings.Fields(line[:i])
		if len(pre) < 5 {
			continue
		}
		tail := strings.Fields(line[i+len(sep):])
		if len(tail) < 1 {
			continue
		}
		fn(pre[4], tail[0])
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("scan mountinfo: %w", err)
	}
	return nil
}
