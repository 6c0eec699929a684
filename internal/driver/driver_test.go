package driver

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/joeycumines/behave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// runningFor returns a leaf that is Running for n ticks, then returns final.
func runningFor(name string, n int, final behave.Status) *behave.Func {
	ticks := 0
	return behave.NewFunc(name, func() behave.Status {
		ticks++
		if ticks <= n {
			return behave.Running
		}
		return final
	})
}

func TestRun_StopsOnTerminalStatus(t *testing.T) {
	t.Parallel()

	for _, final := range []behave.Status{behave.Success, behave.Failure} {
		t.Run(final.String(), func(t *testing.T) {
			t.Parallel()
			root := behave.NewSequence("root", runningFor("leaf", 3, final))
			result, err := Run(context.Background(), root,
				WithInterval(time.Millisecond),
				WithLogger(quietLogger()))
			require.NoError(t, err)
			assert.Equal(t, final, result.Status)
			assert.Equal(t, 4, result.Ticks)
			assert.NotEmpty(t, result.RunID)
			assert.Positive(t, result.Elapsed)
		})
	}
}

func TestRun_TickLimit(t *testing.T) {
	t.Parallel()

	result, err := Run(context.Background(), behave.AlwaysRunning{},
		WithInterval(time.Millisecond),
		WithMaxTicks(5),
		WithLogger(quietLogger()))
	require.ErrorIs(t, err, ErrTickLimit)
	assert.Equal(t, 5, result.Ticks)
	assert.Equal(t, behave.Running, result.Status)
}

func TestRun_ContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	result, err := Run(ctx, behave.AlwaysRunning{},
		WithInterval(time.Millisecond),
		WithLogger(quietLogger()))
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, behave.Running, result.Status)
}

func TestRun_ObserverAndTrace(t *testing.T) {
	t.Parallel()

	var reports []Report
	root := behave.NewSequence("root", behave.AlwaysSuccess{}, runningFor("leaf", 1, behave.Success))
	result, err := Run(context.Background(), root,
		WithInterval(time.Millisecond),
		WithTrace(true),
		WithLogger(quietLogger()),
		WithObserver(func(r Report) {
			// the trace is reused between ticks
			r.Trace = append([]behave.TraceEntry(nil), r.Trace...)
			reports = append(reports, r)
		}))
	require.NoError(t, err)
	require.Len(t, reports, 2)

	assert.Equal(t, 1, reports[0].Tick)
	assert.Equal(t, behave.Running, reports[0].Status)
	assert.Equal(t, 2, reports[1].Tick)
	assert.Equal(t, behave.Success, reports[1].Status)
	for _, r := range reports {
		assert.Equal(t, result.RunID, r.RunID)
		assert.Equal(t, []behave.TraceEntry{
			{Depth: 0, Name: "root"},
			{Depth: 1, Name: "success"},
			{Depth: 1, Name: "leaf"},
		}, r.Trace)
	}
}

func TestRun_NoTraceByDefault(t *testing.T) {
	t.Parallel()

	var traced bool
	_, err := Run(context.Background(), behave.AlwaysSuccess{},
		WithInterval(time.Millisecond),
		WithLogger(quietLogger()),
		WithObserver(func(r Report) { traced = r.Trace != nil }))
	require.NoError(t, err)
	assert.False(t, traced)
}

func TestRun_LogsRunID(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	result, err := Run(context.Background(), behave.AlwaysFailure{},
		WithInterval(time.Millisecond),
		WithLogger(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))))
	require.NoError(t, err)
	assert.Equal(t, behave.Failure, result.Status)
	assert.Contains(t, logs.String(), "runId="+result.RunID)
	assert.Contains(t, logs.String(), "status=failure")
}

func TestRun_InvalidOptions(t *testing.T) {
	t.Parallel()

	_, err := Run(context.Background(), nil)
	assert.Error(t, err)
	_, err = Run(context.Background(), behave.AlwaysSuccess{}, WithInterval(0))
	assert.Error(t, err)
	_, err = Run(context.Background(), behave.AlwaysSuccess{}, WithMaxTicks(-1))
	assert.Error(t, err)
}

func TestPrinter_Trace(t *testing.T) {
	t.Parallel()

	entries := []behave.TraceEntry{
		{Depth: 0, Name: "root"},
		{Depth: 1, Name: "child"},
		{Depth: 2, Name: "leaf"},
	}
	var out strings.Builder
	p := NewPrinter(&out, false)
	assert.False(t, p.Styled())
	require.NoError(t, p.Trace(entries))
	assert.Equal(t, "- root\n  - child\n    - leaf\n", out.String())

	out.Reset()
	p = NewPrinter(&out, true)
	require.NoError(t, p.Trace(entries))
	assert.Contains(t, out.String(), "child")
	assert.Contains(t, out.String(), "\x1b[")
	assert.Equal(t, 3, strings.Count(out.String(), "\n"))
}

func TestPrinter_Report(t *testing.T) {
	t.Parallel()

	var out strings.Builder
	p := NewPrinter(&out, false)
	require.NoError(t, p.Report(Report{
		Tick:    2,
		Status:  behave.Running,
		Elapsed: 1500 * time.Microsecond,
		Trace:   []behave.TraceEntry{{Depth: 0, Name: "root"}},
	}))
	assert.Equal(t, "tick 2: running (2ms)\n- root\n", out.String())

	out.Reset()
	require.NoError(t, p.Result(Result{Status: behave.Success, Ticks: 4, Elapsed: 12 * time.Millisecond}))
	assert.Equal(t, "success after 4 tick(s) in 12ms\n", out.String())
}

func TestPrinter_Status(t *testing.T) {
	t.Parallel()

	styled := NewPrinter(io.Discard, true)
	assert.Equal(t, "Status(9)", styled.Status(behave.Status(9)))
	assert.Contains(t, styled.Status(behave.Failure), "failure")
	assert.NotEqual(t, "failure", styled.Status(behave.Failure))
	assert.Equal(t, "failure", NewPrinter(io.Discard, false).Status(behave.Failure))
}
