// Package metrics exports invocation counters and durations to Prometheus.
package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jdziat/simple-invocation-wrappers/pkg/core"
	"github.com/jdziat/simple-invocation-wrappers/pkg/timing"
)

// Namespace prefixes every metric name.
const Namespace = "wrappers"

// Collector holds the invocation metrics.
type Collector struct {
	invocations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewCollector creates the metrics and registers them on reg. A nil reg
// uses prometheus.DefaultRegisterer.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	c := &Collector{
		invocations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "invocations_total",
				Help:      "Total invocations by wrapper name and outcome",
			},
			[]string{"name", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "invocation_duration_seconds",
				Help:      "Duration of forwarded calls in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
			},
			[]string{"name"},
		),
	}

	for _, col := range []prometheus.Collector{c.invocations, c.duration} {
		if err := reg.Register(col); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}
	return c, nil
}

// Middleware counts every call by outcome. Durations come from Reporter.
func (c *Collector) Middleware(name string) core.Middleware {
	return func(next core.Invoker) core.Invoker {
		return core.InvokerFunc(func(ctx context.Context, args core.Args) (any, error) {
			result, err := next.Invoke(ctx, args)
			c.invocations.WithLabelValues(name, string(Outcome(err))).Inc()
			return result, err
		})
	}
}

// Reporter returns a timing.Reporter that observes each measurement in the
// duration histogram.
func (c *Collector) Reporter() timing.Reporter {
	return timing.ReporterFunc(func(_ context.Context, m timing.Measurement) {
		c.duration.WithLabelValues(m.Name).Observe(m.Seconds())
	})
}

// Outcome classifies an invocation error the same way records do.
func Outcome(err error) core.RecordStatus {
	switch {
	case err == nil:
		return core.RecordCompleted
	case core.IsRejection(err):
		return core.RecordRejected
	default:
		return core.RecordFailed
	}
}
