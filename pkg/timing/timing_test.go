package timing

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdziat/simple-invocation-wrappers/pkg/core"
)

func collect(out *[]Measurement) Reporter {
	return ReporterFunc(func(_ context.Context, m Measurement) {
		*out = append(*out, m)
	})
}

func TestFixedClock_Sequence(t *testing.T) {
	c := SecondsClock(0, 3)

	start := c.Now()
	end := c.Now()
	again := c.Now()

	assert.Equal(t, 3*time.Second, end.Sub(start))
	assert.Equal(t, end, again)
}

func TestFixedClock_Empty(t *testing.T) {
	assert.True(t, NewFixedClock().Now().IsZero())
}

func TestNewMeasurement_ClampsNegative(t *testing.T) {
	now := time.Now()
	m := NewMeasurement("x", now, now.Add(-time.Second), nil)

	assert.Equal(t, time.Duration(0), m.Elapsed)
	assert.Equal(t, 0.0, m.Seconds())
}

func TestMiddleware_ReportsElapsedFromClock(t *testing.T) {
	var got []Measurement
	unit := core.InvokerFunc(func(context.Context, core.Args) (any, error) {
		return "done", nil
	})

	inv := Middleware(SecondsClock(0.0, 3.0), collect(&got), "some_function")(unit)
	out, err := inv.Invoke(context.Background(), core.NewArgs(3))

	require.NoError(t, err)
	assert.Equal(t, "done", out)
	require.Len(t, got, 1)
	assert.Equal(t, 3.0, got[0].Seconds())
	assert.Equal(t, "some_function", got[0].Name)
	assert.NoError(t, got[0].Err)
}

func TestMiddleware_ReadsClockAroundCall(t *testing.T) {
	var got []Measurement
	var readsBeforeCall int
	clock := SecondsClock(1, 5, 9)

	unit := core.InvokerFunc(func(context.Context, core.Args) (any, error) {
		clock.mu.Lock()
		readsBeforeCall = clock.next
		clock.mu.Unlock()
		return nil, nil
	})

	_, err := Middleware(clock, collect(&got), "x")(unit).Invoke(context.Background(), core.NewArgs())
	require.NoError(t, err)
	assert.Equal(t, 1, readsBeforeCall)
	assert.Equal(t, 4.0, got[0].Seconds())
}

func TestMiddleware_ReportsFailures(t *testing.T) {
	var got []Measurement
	sentinel := errors.New("boom")
	unit := core.InvokerFunc(func(context.Context, core.Args) (any, error) {
		return nil, sentinel
	})

	_, err := Middleware(SecondsClock(0, 1), collect(&got), "x")(unit).Invoke(context.Background(), core.NewArgs())

	assert.Same(t, sentinel, err)
	require.Len(t, got, 1)
	assert.Same(t, sentinel, got[0].Err)
}

func TestMiddleware_NoStateAcrossCalls(t *testing.T) {
	var got []Measurement
	unit := core.InvokerFunc(func(context.Context, core.Args) (any, error) { return nil, nil })
	inv := Middleware(SecondsClock(0, 2, 2, 3), collect(&got), "x")(unit)

	_, _ = inv.Invoke(context.Background(), core.NewArgs())
	_, _ = inv.Invoke(context.Background(), core.NewArgs())

	require.Len(t, got, 2)
	assert.Equal(t, 2.0, got[0].Seconds())
	assert.Equal(t, 1.0, got[1].Seconds())
}

func TestMiddleware_NilReporterAndClock(t *testing.T) {
	unit := core.InvokerFunc(func(context.Context, core.Args) (any, error) { return 7, nil })
	out, err := Middleware(nil, nil, "x")(unit).Invoke(context.Background(), core.NewArgs())

	require.NoError(t, err)
	assert.Equal(t, 7, out)
}

func TestCapture(t *testing.T) {
	unit := core.InvokerFunc(func(context.Context, core.Args) (any, error) { return nil, nil })
	ctx, measured := Capture(context.Background())

	_, ok := measured()
	assert.False(t, ok)

	_, err := Middleware(SecondsClock(0, 3), nil, "x")(unit).Invoke(ctx, core.NewArgs())
	require.NoError(t, err)

	m, ok := measured()
	require.True(t, ok)
	assert.Equal(t, 3.0, m.Seconds())
	assert.Equal(t, "x", m.Name)
}

func TestMeasure(t *testing.T) {
	out, m, err := Measure(SecondsClock(10, 12.5), "calc", func() (any, error) {
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, out)
	assert.Equal(t, 2.5, m.Seconds())
}

func TestWriterReporter(t *testing.T) {
	var buf bytes.Buffer
	WriterReporter(&buf).Report(context.Background(), NewMeasurement("x", time.Unix(0, 0), time.Unix(3, 0), nil))

	assert.Equal(t, "Execution took 3 seconds\n", buf.String())
}

func TestLogReporter(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	LogReporter(logger).Report(context.Background(), NewMeasurement("sum", time.Unix(0, 0), time.Unix(1, 0), errors.New("bad")))

	assert.Contains(t, buf.String(), "invocation timed")
	assert.Contains(t, buf.String(), "name=sum")
	assert.Contains(t, buf.String(), "elapsed=1s")
	assert.Contains(t, buf.String(), "error=bad")
}

func TestMulti(t *testing.T) {
	var a, b []Measurement
	Multi(collect(&a), nil, collect(&b)).Report(context.Background(), Measurement{Name: "x"})

	assert.Len(t, a, 1)
	assert.Len(t, b, 1)
}
