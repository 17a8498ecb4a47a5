// Package wrappers binds a single callable unit and forwards every call to it,
// optionally validating arguments first or timing the forwarded call.
//
// This is the main package users should import. It re-exports all public
// types from the internal pkg/ packages for a clean API surface.
//
// Basic usage:
//
//	sum := func(numbers ...int) int {
//	    total := 0
//	    for _, n := range numbers {
//	        total += n
//	    }
//	    return total
//	}
//
//	w := wrappers.MustNew(sum, wrappers.Name("sum"),
//	    wrappers.Validating(wrappers.NumericOnly()))
//
//	total, err := w.Call(ctx, 1, 2, 3)   // 6, nil
//	_, err = w.Call(ctx, 1, "2", 3)      // errors.Is(err, wrappers.ErrInvalidArgumentKind)
//
// Timing a call with a controllable clock:
//
//	w := wrappers.MustNew(fn, wrappers.Timed(wrappers.WriterReporter(os.Stdout)),
//	    wrappers.WithClock(wrappers.SecondsClock(0, 3)))
//	w.Call(ctx) // prints "Execution took 3 seconds"
package wrappers

import (
	"context"
	"io"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/jdziat/simple-invocation-wrappers/pkg/core"
	"github.com/jdziat/simple-invocation-wrappers/pkg/schedule"
	"github.com/jdziat/simple-invocation-wrappers/pkg/security"
	"github.com/jdziat/simple-invocation-wrappers/pkg/storage"
	"github.com/jdziat/simple-invocation-wrappers/pkg/timing"
	"github.com/jdziat/simple-invocation-wrappers/pkg/validate"
	"github.com/jdziat/simple-invocation-wrappers/pkg/wrapper"
)

type (
	// Wrapper forwards calls to exactly one unit.
	Wrapper = wrapper.Wrapper

	// Option modifies Options.
	Option = wrapper.Option

	// Options holds configuration for a Wrapper.
	Options = wrapper.Options

	// Args carries positional and named arguments.
	Args = core.Args

	// Named holds keyword arguments.
	Named = core.Named

	// Invoker is anything that can be invoked with Args.
	Invoker = core.Invoker

	// InvokerFunc adapts a function to Invoker.
	InvokerFunc = core.InvokerFunc

	// Middleware decorates an Invoker.
	Middleware = core.Middleware

	// Validator checks arguments before the unit runs.
	Validator = validate.Validator

	// Clock supplies the current instant.
	Clock = timing.Clock

	// FixedClock returns a scripted sequence of instants.
	FixedClock = timing.FixedClock

	// Measurement is one timed call.
	Measurement = timing.Measurement

	// Reporter receives measurements.
	Reporter = timing.Reporter

	// Event is the interface for all invocation events.
	Event = core.Event

	// InvocationStarted is emitted before the chain runs.
	InvocationStarted = core.InvocationStarted

	// InvocationCompleted is emitted when the unit returned no error.
	InvocationCompleted = core.InvocationCompleted

	// InvocationFailed is emitted when the call returned an error.
	InvocationFailed = core.InvocationFailed

	// InvocationRejected is emitted when validation refused the arguments.
	InvocationRejected = core.InvocationRejected

	// InvalidArgumentKindError describes a rejected argument.
	InvalidArgumentKindError = core.InvalidArgumentKindError

	// NotInvocableError reports a unit that cannot be called.
	NotInvocableError = core.NotInvocableError

	// Record is the audit entry written for one invocation.
	Record = core.Record

	// RecordStatus is the outcome of a recorded invocation.
	RecordStatus = core.RecordStatus

	// RecordStore persists invocation records.
	RecordStore = core.RecordStore

	// GormStore implements RecordStore using GORM.
	GormStore = storage.GormStore

	// Schedule defines when an entry should run next.
	Schedule = schedule.Schedule

	// Runner invokes a unit on schedules.
	Runner = schedule.Runner

	// Func is a unit with a signature fixed at wrap time.
	Func[A, R any] = wrapper.Func[A, R]
)

// Record status constants
const (
	RecordCompleted = core.RecordCompleted
	RecordFailed    = core.RecordFailed
	RecordRejected  = core.RecordRejected
)

// Security limits
const (
	MaxNameLength         = security.MaxNameLength
	MaxPositionalArgs     = security.MaxPositionalArgs
	MaxErrorMessageLength = security.MaxErrorMessageLength
	MaxListLimit          = security.MaxListLimit
)

// DefaultName is used when no Name option is given.
const DefaultName = wrapper.DefaultName

// Error variables
var (
	ErrInvalidArgumentKind = core.ErrInvalidArgumentKind
	ErrNotInvocable        = core.ErrNotInvocable
	ErrArgumentMismatch    = core.ErrArgumentMismatch
	ErrNilUnit             = core.ErrNilUnit
	ErrInvalidName         = core.ErrInvalidName
	ErrNameTooLong         = core.ErrNameTooLong
	ErrTooManyArguments    = core.ErrTooManyArguments
)

// New binds unit u.
func New(u any, opts ...Option) (*Wrapper, error) {
	return wrapper.New(u, opts...)
}

// MustNew is like New but panics on error.
func MustNew(u any, opts ...Option) *Wrapper {
	return wrapper.MustNew(u, opts...)
}

// NewArgs builds Args from positional values.
func NewArgs(positional ...any) Args {
	return core.NewArgs(positional...)
}

// Callable reports whether v can be bound and invoked as a unit.
func Callable(v any) bool {
	return wrapper.Callable(v)
}

// Wrap applies middleware to a typed function.
func Wrap[A, R any](fn Func[A, R], mw ...Middleware) Func[A, R] {
	return wrapper.Wrap(fn, mw...)
}

// Result invokes inv and converts the result to T.
func Result[T any](ctx context.Context, inv Invoker, positional ...any) (T, error) {
	return wrapper.Result[T](ctx, inv, positional...)
}

// InvalidArgumentKind builds an error matching ErrInvalidArgumentKind.
func InvalidArgumentKind(index int, got, want string) error {
	return core.InvalidArgumentKind(index, got, want)
}

// IsRejection reports whether err came from argument validation.
func IsRejection(err error) bool {
	return core.IsRejection(err)
}

// NewGormStore creates a new GORM-backed record store.
func NewGormStore(db *gorm.DB) *GormStore {
	return storage.NewGormStore(db)
}

// ValidateName validates a wrapper name.
func ValidateName(name string) error {
	return security.ValidateName(name)
}

// Wrapper option functions

// Name sets the wrapper name.
func Name(name string) Option {
	return wrapper.Name(name)
}

// Use appends middleware; the first listed runs outermost.
func Use(mw ...Middleware) Option {
	return wrapper.Use(mw...)
}

// Validating adds argument validators.
func Validating(v ...Validator) Option {
	return wrapper.Validating(v...)
}

// Timed measures each forwarded call and reports it to r.
func Timed(r Reporter) Option {
	return wrapper.Timed(r)
}

// Recorded writes one Record per invocation to store.
func Recorded(store RecordStore) Option {
	return wrapper.Recorded(store)
}

// WithClock sets the clock used for timing and recording.
func WithClock(c Clock) Option {
	return wrapper.Clock(c)
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return wrapper.Logger(l)
}

// Middleware constructors

// Before runs fn ahead of every forwarded call.
func Before(fn func(ctx context.Context, args Args)) Middleware {
	return wrapper.Before(fn)
}

// After runs fn once the forwarded call has returned.
func After(fn func(ctx context.Context, result any, err error)) Middleware {
	return wrapper.After(fn)
}

// MapArgs replaces the arguments before forwarding.
func MapArgs(fn func(args Args) (Args, error)) Middleware {
	return wrapper.MapArgs(fn)
}

// Tap observes successful results.
func Tap(fn func(ctx context.Context, result any)) Middleware {
	return wrapper.Tap(fn)
}

// Validators

// NumericOnly rejects string arguments.
func NumericOnly() Validator {
	return validate.NumericOnly()
}

// StrictNumeric rejects every argument that is not a number.
func StrictNumeric() Validator {
	return validate.StrictNumeric()
}

// MaxArgs rejects calls with more than n positional arguments.
func MaxArgs(n int) Validator {
	return validate.MaxArgs(n)
}

// Timing

// SystemClock returns the wall clock.
func SystemClock() Clock {
	return timing.SystemClock{}
}

// NewFixedClock returns a clock that yields times in order.
func NewFixedClock(times ...time.Time) *FixedClock {
	return timing.NewFixedClock(times...)
}

// SecondsClock returns a fixed clock from second offsets.
func SecondsClock(offsets ...float64) *FixedClock {
	return timing.SecondsClock(offsets...)
}

// WriterReporter prints "Execution took N seconds" lines to w.
func WriterReporter(w io.Writer) Reporter {
	return timing.WriterReporter(w)
}

// LogReporter logs each measurement.
func LogReporter(logger *slog.Logger) Reporter {
	return timing.LogReporter(logger)
}

// Schedule functions

// Every creates a schedule that runs at fixed intervals.
func Every(d time.Duration) Schedule {
	return schedule.Every(d)
}

// Daily creates a schedule that runs at a specific time each day.
func Daily(hour, minute int) Schedule {
	return schedule.Daily(hour, minute)
}

// Weekly creates a schedule that runs at a specific day and time each week.
func Weekly(day time.Weekday, hour, minute int) Schedule {
	return schedule.Weekly(day, hour, minute)
}

// Cron creates a schedule from a cron expression. It panics on invalid input.
func Cron(expr string) Schedule {
	return schedule.Cron(expr)
}

// NewRunner creates a schedule runner for inv.
func NewRunner(inv Invoker, opts ...schedule.RunnerOption) *Runner {
	return schedule.NewRunner(inv, opts...)
}
