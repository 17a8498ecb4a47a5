package timing

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/jdziat/simple-invocation-wrappers/pkg/core"
)

// Measurement is the timing of a single forwarded call.
type Measurement struct {
	Name    string
	Start   time.Time
	End     time.Time
	Elapsed time.Duration
	Err     error
}

// NewMeasurement builds a Measurement. Elapsed is never negative: a clock
// that moved backwards yields zero.
func NewMeasurement(name string, start, end time.Time, err error) Measurement {
	elapsed := end.Sub(start)
	if elapsed < 0 {
		elapsed = 0
	}
	return Measurement{Name: name, Start: start, End: end, Elapsed: elapsed, Err: err}
}

// Seconds returns Elapsed in seconds.
func (m Measurement) Seconds() float64 {
	return m.Elapsed.Seconds()
}

// Reporter receives measurements.
type Reporter interface {
	Report(ctx context.Context, m Measurement)
}

// ReporterFunc adapts an ordinary function to the Reporter interface.
type ReporterFunc func(ctx context.Context, m Measurement)

// Report calls f(ctx, m).
func (f ReporterFunc) Report(ctx context.Context, m Measurement) {
	f(ctx, m)
}

// WriterReporter prints "Execution took <seconds> seconds" to w.
func WriterReporter(w io.Writer) Reporter {
	return ReporterFunc(func(_ context.Context, m Measurement) {
		fmt.Fprintf(w, "Execution took %s seconds\n", strconv.FormatFloat(m.Seconds(), 'f', -1, 64))
	})
}

// LogReporter logs each measurement at info level.
func LogReporter(logger *slog.Logger) Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	return ReporterFunc(func(ctx context.Context, m Measurement) {
		attrs := []any{"name", m.Name, "elapsed", m.Elapsed}
		if m.Err != nil {
			attrs = append(attrs, "error", m.Err)
		}
		logger.InfoContext(ctx, "invocation timed", attrs...)
	})
}

// Multi fans a measurement out to every reporter.
func Multi(reporters ...Reporter) Reporter {
	return ReporterFunc(func(ctx context.Context, m Measurement) {
		for _, r := range reporters {
			if r != nil {
				r.Report(ctx, m)
			}
		}
	})
}

// Middleware times each forwarded call and reports it once. The result and
// error of the next invoker are returned unchanged.
func Middleware(clock Clock, reporter Reporter, name string) core.Middleware {
	if clock == nil {
		clock = SystemClock{}
	}
	return func(next core.Invoker) core.Invoker {
		return core.InvokerFunc(func(ctx context.Context, args core.Args) (any, error) {
			result, m, err := Measure(clock, name, func() (any, error) {
				return next.Invoke(ctx, args)
			})
			if slot, ok := ctx.Value(captureKey{}).(*capture); ok {
				slot.m, slot.ok = m, true
			}
			if reporter != nil {
				reporter.Report(ctx, m)
			}
			return result, err
		})
	}
}

type captureKey struct{}

type capture struct {
	m  Measurement
	ok bool
}

// Capture returns a context in which Middleware stores its measurement, and a
// function that returns it once the call has finished. The boolean is false
// when no timing middleware ran, for example after a rejected call.
func Capture(ctx context.Context) (context.Context, func() (Measurement, bool)) {
	slot := &capture{}
	return context.WithValue(ctx, captureKey{}, slot), func() (Measurement, bool) {
		return slot.m, slot.ok
	}
}

// Measure runs fn once between two clock readings and returns its result
// together with the measurement.
func Measure(clock Clock, name string, fn func() (any, error)) (any, Measurement, error) {
	if clock == nil {
		clock = SystemClock{}
	}
	start := clock.Now()
	result, err := fn()
	end := clock.Now()
	return result, NewMeasurement(name, start, end, err), err
}
