package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/cgmon/cgmon/pkg/sink"
	"github.com/cgmon/cgmon/pkg/system/cgroup"
	"github.com/cgmon/cgmon/pkg/system/util"
)

// Config is the validated sampling configuration.
type Config struct {
	Interval   time.Duration
	Duration   time.Duration
	Mode       Mode
	BufferSize int // rows; 0 means sink.DefaultCapacity
}

func (c Config) Validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("%w: %s", ErrBadInterval, c.Interval)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("%w: %s", ErrBadDuration, c.Duration)
	}
	return nil
}

// State is the scheduler lifecycle. Stopped is terminal and always reached
// through Draining, on normal completion and cancellation alike.
type State int

const (
	Idle State = iota
	Running
	Draining
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Draining:
		return "draining"
	default:
		return "stopped"
	}
}

// Summary describes a finished run.
type Summary struct {
	Elapsed time.Duration
	Samples int
	Rate    float64 // achieved samples per second
}

// Scheduler owns one run: the per-run state (start time, sample counter,
// buffer) lives here rather than in package globals, so runs are reentrant
// and testable in isolation.
type Scheduler struct {
	cfg     Config
	targets []cgroup.Target
	out     sink.Sink
	buf     *sink.Buffer
	state   State
}

func NewScheduler(cfg Config, targets []cgroup.Target, out sink.Sink) *Scheduler {
	return &Scheduler{
		cfg:     cfg,
		targets: targets,
		out:     out,
		buf:     sink.NewBuffer(out, cfg.BufferSize),
		state:   Idle,
	}
}

// State returns the current lifecycle state.
func (s *Scheduler) State() State { return s.state }

// Run writes the header, then ticks at the configured interval until the
// duration elapses or ctx is cancelled, whichever comes first. Cancellation
// is checked at the top of each iteration and during the inter-tick sleep,
// never mid-tick. Both exit paths drain: buffered rows are flushed before
// Run returns, and the summary reflects what actually hit the sink.
//
// The sleep schedule is drift-free: tick n targets start + n*interval, and
// a tick that overruns its slot just starts the next one immediately.
func (s *Scheduler) Run(ctx context.Context) (Summary, error) {
	if err := s.cfg.Validate(); err != nil {
		return Summary{}, err
	}
	if len(s.targets) == 0 {
		return Summary{}, ErrNoTargets
	}

	if err := s.out.WriteHeader(Header(s.targets, s.cfg.Mode)); err != nil {
		return Summary{}, err
	}

	start := time.Now()
	end := start.Add(s.cfg.Duration)
	samples := 0
	s.state = Running

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		default:
		}

		now := time.Now()
		if !now.Before(end) {
			break
		}

		if err := s.buf.Append(Tick(s.targets, now, start, s.cfg.Mode).Row()); err != nil {
			s.drain(start, samples)
			return Summary{}, err
		}
		samples++

		if d := time.Until(start.Add(time.Duration(samples) * s.cfg.Interval)); d > 0 {
			t := time.NewTimer(d)
			select {
			case <-ctx.Done():
				t.Stop()
				break loop
			case <-t.C:
			}
		}
	}

	sum, err := s.drain(start, samples)
	if err != nil {
		return Summary{}, err
	}
	return sum, nil
}

// drain flushes whatever is buffered and settles the final summary. Runs on
// every exit path.
func (s *Scheduler) drain(start time.Time, samples int) (Summary, error) {
	s.state = Draining
	err := s.buf.Flush()
	elapsed := time.Since(start)
	s.state = Stopped
	if err != nil {
		return Summary{}, fmt.Errorf("final flush: %w", err)
	}
	return Summary{
		Elapsed: elapsed,
		Samples: samples,
		Rate:    util.SafeDiv(float64(samples), elapsed.Seconds()),
	}, nil
}
