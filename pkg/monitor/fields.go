package monitor

import (
	"strings"

	"github.com/cgmon/cgmon/pkg/system/cgroup"
)

// Mode selects the per-target field set.
type Mode int

const (
	// ModeFull emits the complete field set.
	ModeFull Mode = iota
	// ModeSimple emits only the essential cpu.stat counters.
	ModeSimple
)

func (m Mode) String() string {
	if m == ModeSimple {
		return "simple"
	}
	return "full"
}

// simpleFields are the essential cpu.stat counters, always present.
var simpleFields = []string{
	"cpu_usage_usec",
	"cpu_user_usec",
	"cpu_system_usec",
	"cpu_nr_periods",
	"cpu_nr_throttled",
	"cpu_throttled_usec",
}

// fullFields extend simpleFields in full mode. Order is canonical: header
// and rows are built from the same slice.
var fullFields = []string{
	"cpu_nr_bursts",
	"cpu_burst_usec",
	"cpu_weight",
	"cpu_max_quota",
	"cpu_max_period",
	"cpu_pressure_some_avg10",
	"cpu_pressure_full_avg10",
	"memory_current",
	"memory_peak",
	"memory_max",
	"memory_anon",
	"memory_file",
	"memory_kernel",
	"memory_swap_current",
	"memory_swap_max",
	"memory_oom_events",
	"memory_oom_kill_events",
	"memory_pressure_some_avg10",
	"memory_pressure_full_avg10",
	"pids_current",
	"pids_peak",
	"pids_max",
	"cgroup_procs_count",
}

// FieldSuffixes returns the canonical per-target column suffixes for a mode.
func FieldSuffixes(m Mode) []string {
	if m == ModeSimple {
		return simpleFields
	}
	return append(append([]string{}, simpleFields...), fullFields...)
}

var nameSanitizer = strings.NewReplacer("/", "_", ".", "_", "-", "_")

// SanitizeName maps a cgroup name to a column-safe prefix: path separators
// and punctuation become underscores.
func SanitizeName(name string) string {
	return nameSanitizer.Replace(name)
}

// Header builds the column schema: timestamp and elapsed_sec, then each
// target's fields in resolution order. Computed once before the first
// sample; every emitted row matches it column for column.
func Header(targets []cgroup.Target, mode Mode) []string {
	suffixes := FieldSuffixes(mode)
	header := make([]string, 0, 2+len(targets)*len(suffixes))
	header = append(header, "timestamp", "elapsed_sec")
	for _, t := range targets {
		safe := SanitizeName(t.Name)
		for _, s := range suffixes {
			header = append(header, safe+"_"+s)
		}
	}
	return header
}
