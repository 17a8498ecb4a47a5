package wrapper

import (
	"context"
	"log/slog"

	"github.com/jdziat/simple-invocation-wrappers/pkg/core"
	intctx "github.com/jdziat/simple-invocation-wrappers/pkg/internal/context"
	"github.com/jdziat/simple-invocation-wrappers/pkg/security"
	"github.com/jdziat/simple-invocation-wrappers/pkg/timing"
)

// Record writes one core.Record per call to store. A failed save is logged
// and never changes the result of the call.
func Record(store core.RecordStore, name string, clock timing.Clock, logger *slog.Logger) Middleware {
	return record(store, name, clock, logger, false)
}

// recordTimed is Record for a chain that also holds timing.Middleware. The
// record reuses that measurement so both take the same pair of clock
// readings. A call that never reaches the timing middleware is recorded at a
// single instant.
func recordTimed(store core.RecordStore, name string, clock timing.Clock, logger *slog.Logger) Middleware {
	return record(store, name, clock, logger, true)
}

func record(store core.RecordStore, name string, clock timing.Clock, logger *slog.Logger, shared bool) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	if clock == nil {
		clock = timing.SystemClock{}
	}
	return func(next core.Invoker) core.Invoker {
		return core.InvokerFunc(func(ctx context.Context, args core.Args) (any, error) {
			var (
				result any
				m      timing.Measurement
				err    error
			)
			if shared {
				cctx, measured := timing.Capture(ctx)
				result, err = next.Invoke(cctx, args)
				var ok bool
				if m, ok = measured(); !ok {
					now := clock.Now()
					m = timing.NewMeasurement(name, now, now, err)
				}
			} else {
				result, m, err = timing.Measure(clock, name, func() (any, error) {
					return next.Invoke(ctx, args)
				})
			}

			rec := &core.Record{
				Name:         name,
				Status:       core.RecordCompleted,
				ArgCount:     args.Len(),
				StartedAt:    m.Start,
				CompletedAt:  m.End,
				ElapsedNanos: int64(m.Elapsed),
			}
			if inv := intctx.GetInvocation(ctx); inv != nil {
				rec.ID = inv.ID
			}
			if err != nil {
				rec.Status = core.RecordFailed
				if core.IsRejection(err) {
					rec.Status = core.RecordRejected
				}
				rec.Error = security.SanitizeErrorMessage(err.Error())
			}

			if saveErr := store.SaveRecord(ctx, rec); saveErr != nil {
				logger.Error("failed to save invocation record", "name", name, "error", saveErr)
			}
			return result, err
		})
	}
}
