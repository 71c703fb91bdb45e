package cgroup

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ExcludePolicy filters cgroup names out of discovery. The defaults skip
// systemd-managed subtrees so that auto-discovery lands on user workloads
// rather than service infrastructure. It is a naming convention, not a
// guarantee: distributions that manage cgroups differently can override it
// from a policy file.
type ExcludePolicy struct {
	// Names are excluded on exact match of the root-relative cgroup name.
	Names []string `yaml:"names"`
	// Suffixes are excluded on suffix match (e.g. ".service").
	Suffixes []string `yaml:"suffixes"`
}

// DefaultExcludePolicy returns the systemd-convention exclusions.
func DefaultExcludePolicy() ExcludePolicy {
	return ExcludePolicy{
		Names:    []string{"init.scope", "system.slice"},
		Suffixes: []string{".service"},
	}
}

// LoadExcludePolicy reads a policy from a yaml file.
func LoadExcludePolicy(path string) (ExcludePolicy, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return ExcludePolicy{}, fmt.Errorf("read exclude policy: %w", err)
	}
	var p ExcludePolicy
	if err := yaml.Unmarshal(b, &p); err != nil {
		return ExcludePolicy{}, fmt.Errorf("parse exclude policy: %w", err)
	}
	return p, nil
}

// Excludes reports whether the root-relative cgroup name matches the policy.
func (p ExcludePolicy) Excludes(rel string) bool {
	for _, n := range p.Names {
		if rel == n {
			return true
		}
	}
	for _, s := range p.Suffixes {
		if s != "" && strings.HasSuffix(rel, s) {
			return true
		}
	}
	return false
}
