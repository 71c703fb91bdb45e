package cgroup

// DefaultTarget is monitored when nothing is requested and discovery finds
// nothing.
const DefaultTarget = "mycpu"

// Target is one validated monitoring target: a cgroup name, its absolute
// path, and whether it passed validation. Targets are resolved once at
// startup and immutable afterward; invalid ones never reach the sampler.
type Target struct {
	Name  string
	Path  string
	Valid bool
}
