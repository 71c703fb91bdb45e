package monitor

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cgmon/cgmon/pkg/system/cgroup"
	"github.com/cgmon/cgmon/pkg/system/statfile"
	"github.com/cgmon/cgmon/pkg/system/util"
)

// TargetSample holds one target's field values in canonical order.
type TargetSample struct {
	Target cgroup.Target
	Values []string
}

// Sample is one tick across all targets. Immutable once built; the scheduler
// writes it into the buffer exactly once.
type Sample struct {
	Timestamp float64 // seconds since epoch
	Elapsed   float64 // seconds since run start
	Targets   []TargetSample
}

// Row serializes the sample in schema order.
func (s Sample) Row() []string {
	n := 2
	for _, t := range s.Targets {
		n += len(t.Values)
	}
	row := make([]string, 0, n)
	row = append(row, util.FmtFloat(s.Timestamp), util.FmtFloat(s.Elapsed))
	for _, t := range s.Targets {
		row = append(row, t.Values...)
	}
	return row
}

// Tick reads every target's control files once and assembles one Sample.
// It never fails: each field independently degrades to its default, so a
// target removed mid-run contributes an all-default row for the tick.
func Tick(targets []cgroup.Target, now, start time.Time, mode Mode) Sample {
	s := Sample{
		Timestamp: float64(now.UnixNano()) / 1e9,
		Elapsed:   now.Sub(start).Seconds(),
		Targets:   make([]TargetSample, 0, len(targets)),
	}
	for _, t := range targets {
		s.Targets = append(s.Targets, TargetSample{Target: t, Values: collect(t.Path, mode)})
	}
	return s
}

// collect extracts one target's fields, mirroring the order of
// FieldSuffixes.
func collect(path string, mode Mode) []string {
	cpuStat := statfile.Read(filepath.Join(path, "cpu.stat"), "")

	vals := make([]string, 0, len(FieldSuffixes(mode)))
	vals = append(vals,
		statfile.KeyValue(cpuStat, "usage_usec", "0"),
		statfile.KeyValue(cpuStat, "user_usec", "0"),
		statfile.KeyValue(cpuStat, "system_usec", "0"),
		statfile.KeyValue(cpuStat, "nr_periods", "0"),
		statfile.KeyValue(cpuStat, "nr_throttled", "0"),
		statfile.KeyValue(cpuStat, "throttled_usec", "0"),
	)
	if mode == ModeSimple {
		return vals
	}

	// Burst accounting is only present on kernels with CFS burst support.
	vals = append(vals,
		statfile.KeyValue(cpuStat, "nr_bursts", "0"),
		statfile.KeyValue(cpuStat, "burst_usec", "0"),
	)

	vals = append(vals, statfile.Scalar(statfile.Read(filepath.Join(path, "cpu.weight"), ""), "100"))

	quota, period := splitQuotaPeriod(statfile.Scalar(statfile.Read(filepath.Join(path, "cpu.max"), ""), "max 100000"))
	vals = append(vals, quota, period)

	cpuPressure := statfile.Read(filepath.Join(path, "cpu.pressure"), "")
	vals = append(vals,
		statfile.Pressure(cpuPressure, "some", "avg10"),
		statfile.Pressure(cpuPressure, "full", "avg10"),
	)

	vals = append(vals,
		statfile.Scalar(statfile.Read(filepath.Join(path, "memory.current"), ""), "0"),
		statfile.Scalar(statfile.Read(filepath.Join(path, "memory.peak"), ""), "0"),
		statfile.Scalar(statfile.Read(filepath.Join(path, "memory.max"), ""), "max"),
	)

	memStat := statfile.Read(filepath.Join(path, "memory.stat"), "")
	vals = append(vals,
		statfile.KeyValue(memStat, "anon", "0"),
		statfile.KeyValue(memStat, "file", "0"),
		statfile.KeyValue(memStat, "kernel", "0"),
	)

	vals = append(vals,
		statfile.Scalar(statfile.Read(filepath.Join(path, "memory.swap.current"), ""), "0"),
		statfile.Scalar(statfile.Read(filepath.Join(path, "memory.swap.max"), ""), "max"),
	)

	memEvents := statfile.Read(filepath.Join(path, "memory.events"), "")
	vals = append(vals,
		statfile.KeyValue(memEvents, "oom", "0"),
		statfile.KeyValue(memEvents, "oom_kill", "0"),
	)

	memPressure := statfile.Read(filepath.Join(path, "memory.pressure"), "")
	vals = append(vals,
		statfile.Pressure(memPressure, "some", "avg10"),
		statfile.Pressure(memPressure, "full", "avg10"),
	)

	vals = append(vals,
		statfile.Scalar(statfile.Read(filepath.Join(path, "pids.current"), ""), "0"),
		statfile.Scalar(statfile.Read(filepath.Join(path, "pids.peak"), ""), "0"),
		statfile.Scalar(statfile.Read(filepath.Join(path, "pids.max"), ""), "max"),
	)

	procs := statfile.Read(filepath.Join(path, "cgroup.procs"), "")
	vals = append(vals, strconv.Itoa(statfile.CountLines(procs)))

	return vals
}

// splitQuotaPeriod parses a cpu.max value: either the single token "max"
// (unlimited, default period) or "<quota> <period>".
func splitQuotaPeriod(v string) (quota, period string) {
	if i := strings.IndexByte(v, ' '); i >= 0 {
		return v[:i], strings.TrimSpace(v[i+1:])
	}
	return "max", "100000"
}
