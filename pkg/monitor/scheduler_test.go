package monitor

import (
	"context"
	"testing"
	"time"

	"github.com/cgmon/cgmon/pkg/system/cgroup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memSink records everything a run emits.
type memSink struct {
	header []string
	rows   [][]string
}

func (m *memSink) WriteHeader(header []string) error {
	m.header = header
	return nil
}

func (m *memSink) AppendRows(rows [][]string) error {
	m.rows = append(m.rows, rows...)
	return nil
}

func TestConfig_Validate(t *testing.T) {
	t.Run("zero_interval", func(t *testing.T) {
		err := Config{Interval: 0, Duration: time.Second}.Validate()
		assert.ErrorIs(t, err, ErrBadInterval)
	})
	t.Run("negative_duration", func(t *testing.T) {
		err := Config{Interval: time.Millisecond, Duration: -time.Second}.Validate()
		assert.ErrorIs(t, err, ErrBadDuration)
	})
	t.Run("valid", func(t *testing.T) {
		require.NoError(t, Config{Interval: time.Millisecond, Duration: time.Second}.Validate())
	})
}

func TestScheduler_RunToCompletion(t *testing.T) {
	tgt := demoTarget(t)
	out := &memSink{}
	sched := NewScheduler(Config{
		Interval: 5 * time.Millisecond,
		Duration: 40 * time.Millisecond,
		Mode:     ModeSimple,
	}, []cgroup.Target{tgt}, out)

	sum, err := sched.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Stopped, sched.State())
	assert.Equal(t, Header([]cgroup.Target{tgt}, ModeSimple), out.header)
	assert.GreaterOrEqual(t, sum.Samples, 1)
	assert.Len(t, out.rows, sum.Samples)
	assert.Greater(t, sum.Rate, 0.0)
	for _, row := range out.rows {
		assert.Len(t, row, len(out.header))
	}
}

func TestScheduler_CancellationFlushesBuffer(t *testing.T) {
	tgt := demoTarget(t)
	out := &memSink{}
	sched := NewScheduler(Config{
		Interval:   5 * time.Millisecond,
		Duration:   time.Hour, // run bounded by cancellation, not duration
		Mode:       ModeFull,
		BufferSize: 1000, // nothing auto-flushes; the drain must
	}, []cgroup.Target{tgt}, out)

	ctx, cancel := context.WithTimeout(context.Background(), 40*time.Millisecond)
	defer cancel()

	sum, err := sched.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, Stopped, sched.State())
	assert.GreaterOrEqual(t, sum.Samples, 1)
	assert.Len(t, out.rows, sum.Samples, "every collected sample must survive cancellation")
}

func TestScheduler_CancelledBeforeFirstTick(t *testing.T) {
	tgt := demoTarget(t)
	out := &memSink{}
	sched := NewScheduler(Config{
		Interval: time.Millisecond,
		Duration: time.Hour,
		Mode:     ModeSimple,
	}, []cgroup.Target{tgt}, out)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sum, err := sched.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, sum.Samples)
	assert.NotNil(t, out.header, "header precedes any sampling")
	assert.Empty(t, out.rows)
}

func TestScheduler_NoTargets(t *testing.T) {
	sched := NewScheduler(Config{
		Interval: time.Millisecond,
		Duration: time.Second,
	}, nil, &memSink{})

	_, err := sched.Run(context.Background())
	assert.ErrorIs(t, err, ErrNoTargets)
}

func TestScheduler_InvalidConfig(t *testing.T) {
	tgt := demoTarget(t)
	out := &memSink{}
	sched := NewScheduler(Config{Interval: -time.Second, Duration: time.Second},
		[]cgroup.Target{tgt}, out)

	_, err := sched.Run(context.Background())
	require.ErrorIs(t, err, ErrBadInterval)
	assert.Nil(t, out.header, "no output written on configuration failure")
}

func TestScheduler_MonotonicTimestamps(t *testing.T) {
	tgt := demoTarget(t)
	out := &memSink{}
	sched := NewScheduler(Config{
		Interval: 2 * time.Millisecond,
		Duration: 30 * time.Millisecond,
		Mode:     ModeSimple,
	}, []cgroup.Target{tgt}, out)

	_, err := sched.Run(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, out.rows)

	prev := ""
	for _, row := range out.rows {
		if prev != "" {
			assert.GreaterOrEqual(t, row[0], prev)
		}
		prev = row[0]
	}
}
