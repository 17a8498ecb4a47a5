package wrapper

import (
	"log/slog"

	"github.com/jdziat/simple-invocation-wrappers/pkg/core"
	"github.com/jdziat/simple-invocation-wrappers/pkg/timing"
	"github.com/jdziat/simple-invocation-wrappers/pkg/validate"
)

// DefaultName is used when no Name option is given.
const DefaultName = "unit"

// Options holds configuration for a Wrapper.
type Options struct {
	Name       string
	Middleware []core.Middleware
	Validators []validate.Validator
	Reporter   timing.Reporter
	Store      core.RecordStore
	Clock      timing.Clock
	Logger     *slog.Logger
}

// NewOptions creates Options with defaults.
func NewOptions() *Options {
	return &Options{
		Name:   DefaultName,
		Clock:  timing.SystemClock{},
		Logger: slog.Default(),
	}
}

// Option modifies Options.
type Option interface {
	Apply(*Options)
}

type optionFunc func(*Options)

func (f optionFunc) Apply(o *Options) { f(o) }

// Name sets the wrapper name used in logs, events and records.
func Name(name string) Option {
	return optionFunc(func(o *Options) {
		o.Name = name
	})
}

// Use appends middleware. The first middleware listed runs outermost.
func Use(mw ...core.Middleware) Option {
	return optionFunc(func(o *Options) {
		o.Middleware = append(o.Middleware, mw...)
	})
}

// Validating adds argument validators that run before the unit is forwarded to.
func Validating(v ...validate.Validator) Option {
	return optionFunc(func(o *Options) {
		o.Validators = append(o.Validators, v...)
	})
}

// Timed measures every forwarded call and sends the measurement to r.
func Timed(r timing.Reporter) Option {
	return optionFunc(func(o *Options) {
		o.Reporter = r
	})
}

// Recorded writes one core.Record per invocation to store.
func Recorded(store core.RecordStore) Option {
	return optionFunc(func(o *Options) {
		o.Store = store
	})
}

// Clock sets the clock used by the timing and recording middleware.
func Clock(c timing.Clock) Option {
	return optionFunc(func(o *Options) {
		if c != nil {
			o.Clock = c
		}
	})
}

// Logger sets the logger.
func Logger(l *slog.Logger) Option {
	return optionFunc(func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	})
}
