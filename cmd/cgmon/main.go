//go:build linux

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/cgmon/cgmon/pkg/monitor"
	"github.com/cgmon/cgmon/pkg/sink"
	"github.com/cgmon/cgmon/pkg/system/cgroup"
	"github.com/cgmon/cgmon/pkg/types"
)

const defaultRoot = "/sys/fs/cgroup"

type opts struct {
	cgroups    []string
	all        bool
	interval   float64 // seconds, fractional
	duration   float64 // seconds, fractional
	output     string
	root       string
	simple     bool
	quiet      bool
	bufferSize int
	policyPath string
}

func main() {
	var o opts

	root := &cobra.Command{
		Use:   "cgmon",
		Short: "Periodic cgroup-v2 resource monitor",
		Long: `cgmon samples CPU, memory, pressure and pids accounting from a set of
cgroup-v2 control groups at a fixed interval and streams one CSV row per
tick. It is strictly read-only with respect to the monitored hierarchy.

Examples:
  cgmon -c mycpu -i 0.001 -d 60 -o run.csv
  cgmon --all-cgroups --simple --duration 10
  cgmon -c batch/a -c batch/b --exclude-policy policy.yaml`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), o)
		},
	}

	root.Flags().StringArrayVarP(&o.cgroups, "cgroup", "c", nil, "cgroup to monitor (repeatable)")
	root.Flags().BoolVarP(&o.all, "all-cgroups", "a", false, "discover and monitor all user cgroups under the root")
	root.Flags().Float64VarP(&o.interval, "interval", "i", 0.001, "polling interval in seconds (fractional allowed)")
	root.Flags().Float64VarP(&o.duration, "duration", "d", 60, "duration to run in seconds (fractional allowed)")
	root.Flags().StringVarP(&o.output, "output", "o", "", "output CSV file (default cgroup_cpu_monitor_<ts>.csv)")
	root.Flags().StringVarP(&o.root, "root", "r", defaultRoot, "cgroup root path")
	root.Flags().BoolVarP(&o.simple, "simple", "s", false, "simple mode - only essential CPU metrics")
	root.Flags().BoolVarP(&o.quiet, "quiet", "q", false, "reduce output verbosity")
	root.Flags().IntVar(&o.bufferSize, "buffer-size", sink.DefaultCapacity, "rows buffered between file writes")
	root.Flags().StringVar(&o.policyPath, "exclude-policy", "", "yaml file overriding the discovery exclusion policy")

	if err := root.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, o opts) error {
	cfg := monitor.Config{
		Interval:   time.Duration(o.interval * float64(time.Second)),
		Duration:   time.Duration(o.duration * float64(time.Second)),
		Mode:       monitor.ModeFull,
		BufferSize: o.bufferSize,
	}
	if o.simple {
		cfg.Mode = monitor.ModeSimple
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if o.output == "" {
		o.output = fmt.Sprintf("cgroup_cpu_monitor_%d.csv", time.Now().Unix())
	}

	policy := cgroup.DefaultExcludePolicy()
	if o.policyPath != "" {
		p, err := cgroup.LoadExcludePolicy(o.policyPath)
		if err != nil {
			return err
		}
		policy = p
	}

	// The parsers only understand the unified-hierarchy file layout;
	// anything else produces a file full of defaults, so say so up front.
	if ok, err := cgroup.MountedV2(o.root); err == nil && !ok && o.root == defaultRoot {
		if v, derr := cgroup.Detect(); derr == nil && v != cgroup.V2 && v != cgroup.Hybrid {
			slog.Warn("cgroup v2 does not appear to be mounted", "root", o.root, "detected", v.String())
		}
	}

	targets, err := cgroup.Resolve(o.cgroups, o.all, o.root, policy, slog.Default())
	if err != nil {
		return err
	}

	out, err := sink.NewCSV(o.output)
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	pretty := !o.quiet && term.IsTerminal(int(os.Stdout.Fd()))
	if pretty {
		names := make([]string, 0, len(targets))
		for _, t := range targets {
			names = append(names, t.Name)
		}
		fmt.Println("Cgroup Monitor")
		fmt.Println("==============")
		fmt.Printf("Cgroups:  %s\n", strings.Join(names, " "))
		fmt.Printf("Interval: %gs\n", o.interval)
		fmt.Printf("Duration: %gs\n", o.duration)
		fmt.Printf("Output:   %s\n", o.output)
		fmt.Printf("Mode:     %s\n", cfg.Mode)
		fmt.Println("Starting monitoring... (Press Ctrl+C to stop)")
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	sum, err := monitor.NewScheduler(cfg, targets, out).Run(ctx)
	if err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	if pretty {
		fmt.Println()
		fmt.Println("Monitoring completed:")
		fmt.Printf("  Duration: %.2fs\n", sum.Elapsed.Seconds())
		fmt.Printf("  Samples:  %d\n", sum.Samples)
		fmt.Printf("  Output:   %s (%s)\n", o.output, types.FileSize(o.output).Humanized())
		fmt.Printf("  Average rate: %.2f Hz\n", sum.Rate)
	}
	return nil
}
