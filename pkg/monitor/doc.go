// Package monitor implements the periodic cgroup-v2 sampling loop.
//
// A run is one pass of the Scheduler over a fixed list of validated targets
// (see pkg/system/cgroup). On every tick the Sampler reads each target's
// control files (cpu.stat, cpu.weight, cpu.max, cpu.pressure, memory.*,
// pids.*, cgroup.procs), extracts the configured field set through the total
// parsers in pkg/system/statfile, and produces one Sample. Samples are
// serialized as delimited rows into a bounded buffer (pkg/sink) and appended
// to a CSV file in strict timestamp order.
//
// # Field extraction is total
//
// Every field falls back to a type-specific default when its source file or
// key is missing: "0" for counters and gauges, "max" for unbounded limits,
// "100" for cpu.weight. A cgroup torn down mid-run therefore shows up as an
// all-default row, never as an error. Nothing is logged per tick; sampling
// intervals go down to sub-millisecond and per-occurrence logging would
// drown the output.
//
// # Modes
//
// ModeSimple emits the six essential cpu.stat counters per target.
// ModeFull adds throttling bursts, weight and quota, CPU and memory
// pressure, memory accounting and events, pids accounting, and the live
// process count (29 columns per target).
//
// # Lifecycle
//
// The Scheduler moves Idle -> Running -> Draining -> Stopped. Cancellation
// (via context) is observed at the top of each iteration and during the
// inter-tick sleep, never mid-tick, and always drains: the final flush and
// summary run on every exit path, so an interrupted run loses no buffered
// rows.
package monitor
