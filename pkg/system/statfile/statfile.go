package statfile

import (
	"bufio"
	"os"
	"strings"
)

// Read returns the contents of a single control file, or def when the file
// does not exist or cannot be read. Absence is an expected condition here
// (controller not enabled, cgroup torn down mid-run), so no error escapes
// this boundary.
func Read(path, def string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		return def
	}
	return string(b)
}

// KeyValue scans line-oriented "<key> <value>" text (cpu.stat, memory.stat,
// memory.events) and returns the value of the first line whose key matches,
// or def when no line does. Extra columns after the value and surrounding
// whitespace are tolerated.
func KeyValue(text, key, def string) string {
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) >= 2 && fields[0] == key {
			return fields[1]
		}
	}
	return def
}

// Scalar handles single-value files (memory.current, cpu.weight, pids.max):
// the file content is the value, modulo a trailing newline. Empty input
// yields def.
func Scalar(text, def string) string {
	v := strings.TrimSpace(text)
	if v == "" {
		return def
	}
	return v
}

// Pressure extracts one field from a PSI file. metric is "some" or "full",
// field one of avg10/avg60/avg300/total. A missing metric line or field
// yields "0"; kernels built without PSI simply have no pressure files, which
// reads as all-zero upstream.
func Pressure(text, metric, field string) string {
	prefix := metric + " "
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		i := strings.Index(line, field+"=")
		if i < 0 {
			return "0"
		}
		v := line[i+len(field)+1:]
		if j := strings.IndexByte(v, ' '); j >= 0 {
			v = v[:j]
		}
		return v
	}
	return "0"
}

// CountLines returns the number of non-blank lines in text. Used for
// cgroup.procs, where each line is one PID.
func CountLines(text string) int {
	n := 0
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			n++
		}
	}
	return n
}
