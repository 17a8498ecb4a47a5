package wrapper

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jdziat/simple-invocation-wrappers/pkg/core"
	intctx "github.com/jdziat/simple-invocation-wrappers/pkg/internal/context"
	"github.com/jdziat/simple-invocation-wrappers/pkg/internal/unit"
	"github.com/jdziat/simple-invocation-wrappers/pkg/security"
	"github.com/jdziat/simple-invocation-wrappers/pkg/timing"
	"github.com/jdziat/simple-invocation-wrappers/pkg/validate"
)

// Wrapper forwards calls to exactly one unit for its entire lifetime.
type Wrapper struct {
	id     string
	name   string
	unit   core.Invoker
	chain  core.Invoker
	logger *slog.Logger
	mu     sync.RWMutex

	// Hooks
	onStart    []func(context.Context, core.Args)
	onComplete []func(context.Context, any)
	onFail     []func(context.Context, error)
	onReject   []func(context.Context, error)

	// Event stream
	eventSubs []chan core.Event
}

// New binds a unit. The unit may be a core.Invoker, a
// func(context.Context, core.Args) (any, error), or any Go function; other
// values are accepted too and fail with core.ErrNotInvocable when invoked.
// Only nil is rejected here.
func New(u any, opts ...Option) (*Wrapper, error) {
	if u == nil {
		return nil, core.ErrNilUnit
	}

	options := NewOptions()
	for _, opt := range opts {
		opt.Apply(options)
	}

	if err := security.ValidateName(options.Name); err != nil {
		return nil, fmt.Errorf("wrappers: invalid name %q: %w", options.Name, err)
	}

	var inv core.Invoker
	switch fn := u.(type) {
	case core.Invoker:
		inv = fn
	case func(context.Context, core.Args) (any, error):
		inv = core.InvokerFunc(fn)
	default:
		inv = unit.New(u)
	}

	// Outermost first: recording sees rejections, timing sees only the
	// forwarded call. With both present they share one measurement.
	var mw []Middleware
	switch {
	case options.Store != nil && options.Reporter != nil:
		mw = append(mw, recordTimed(options.Store, options.Name, options.Clock, options.Logger))
	case options.Store != nil:
		mw = append(mw, Record(options.Store, options.Name, options.Clock, options.Logger))
	}
	mw = append(mw, options.Middleware...)
	if len(options.Validators) > 0 {
		mw = append(mw, Validate(validate.All(options.Validators...)))
	}
	if options.Reporter != nil {
		mw = append(mw, timing.Middleware(options.Clock, options.Reporter, options.Name))
	}

	return &Wrapper{
		id:     uuid.New().String(),
		name:   options.Name,
		unit:   inv,
		chain:  Chain(mw...)(inv),
		logger: options.Logger,
	}, nil
}

// MustNew is like New but panics on error.
func MustNew(u any, opts ...Option) *Wrapper {
	w, err := New(u, opts...)
	if err != nil {
		panic(err)
	}
	return w
}

// ID returns the wrapper's unique identifier.
func (w *Wrapper) ID() string {
	return w.id
}

// Name returns the wrapper's name.
func (w *Wrapper) Name() string {
	return w.name
}

// Unit returns the bound unit.
func (w *Wrapper) Unit() core.Invoker {
	return w.unit
}

// Invoke forwards args through the middleware chain to the unit and returns
// the unit's result unchanged. It blocks until the unit returns.
func (w *Wrapper) Invoke(ctx context.Context, args core.Args) (any, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	inv := &intctx.Invocation{
		ID:        uuid.New().String(),
		WrapperID: w.id,
		Name:      w.name,
	}
	ctx = intctx.WithInvocation(ctx, inv)

	start := time.Now()
	w.logger.Debug("invocation started", "name", w.name, "invocation_id", inv.ID, "args", args.Len())
	w.callStartHooks(ctx, args)
	w.Emit(&core.InvocationStarted{WrapperID: w.id, Name: w.name, Args: args, Timestamp: start})

	result, err := w.chain.Invoke(ctx, args)

	now := time.Now()
	switch {
	case err == nil:
		w.logger.Debug("invocation completed", "name", w.name, "invocation_id", inv.ID, "duration", now.Sub(start))
		w.callCompleteHooks(ctx, result)
		w.Emit(&core.InvocationCompleted{WrapperID: w.id, Name: w.name, Result: result, Duration: now.Sub(start), Timestamp: now})
	case core.IsRejection(err):
		w.logger.Debug("invocation rejected", "name", w.name, "invocation_id", inv.ID, "error", err)
		w.callRejectHooks(ctx, err)
		w.Emit(&core.InvocationRejected{WrapperID: w.id, Name: w.name, Error: err, Timestamp: now})
	default:
		w.logger.Debug("invocation failed", "name", w.name, "invocation_id", inv.ID, "error", err)
		w.callFailHooks(ctx, err)
		w.Emit(&core.InvocationFailed{WrapperID: w.id, Name: w.name, Error: err, Timestamp: now})
	}

	return result, err
}

// Call invokes the wrapper with positional arguments only.
func (w *Wrapper) Call(ctx context.Context, positional ...any) (any, error) {
	return w.Invoke(ctx, core.NewArgs(positional...))
}

// OnStart registers a callback that runs before each invocation.
func (w *Wrapper) OnStart(fn func(context.Context, core.Args)) {
	w.mu.Lock()
	w.onStart = append(w.onStart, fn)
	w.mu.Unlock()
}

// OnComplete registers a callback for invocations that returned no error.
func (w *Wrapper) OnComplete(fn func(context.Context, any)) {
	w.mu.Lock()
	w.onComplete = append(w.onComplete, fn)
	w.mu.Unlock()
}

// OnFail registers a callback for invocations that returned an error other
// than a validation rejection.
func (w *Wrapper) OnFail(fn func(context.Context, error)) {
	w.mu.Lock()
	w.onFail = append(w.onFail, fn)
	w.mu.Unlock()
}

// OnReject registers a callback for invocations refused by validation.
func (w *Wrapper) OnReject(fn func(context.Context, error)) {
	w.mu.Lock()
	w.onReject = append(w.onReject, fn)
	w.mu.Unlock()
}

// Events returns a channel for receiving invocation events.
// The caller must call Unsubscribe when done to prevent resource leaks.
func (w *Wrapper) Events() <-chan core.Event {
	ch := make(chan core.Event, 100)
	w.mu.Lock()
	w.eventSubs = append(w.eventSubs, ch)
	w.mu.Unlock()
	return ch
}

// Unsubscribe removes a subscriber channel created by Events().
// The channel is not closed.
func (w *Wrapper) Unsubscribe(ch <-chan core.Event) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, sub := range w.eventSubs {
		if sub == ch {
			w.eventSubs = append(w.eventSubs[:i], w.eventSubs[i+1:]...)
			return
		}
	}
}

// Emit sends an event to all subscribers without blocking.
func (w *Wrapper) Emit(e core.Event) {
	w.mu.RLock()
	subs := make([]chan core.Event, len(w.eventSubs))
	copy(subs, w.eventSubs)
	w.mu.RUnlock()

	for _, ch := range subs {
		select {
		case ch <- e:
		default:
			// Drop if full
		}
	}
}

func (w *Wrapper) callStartHooks(ctx context.Context, args core.Args) {
	w.mu.RLock()
	hooks := make([]func(context.Context, core.Args), len(w.onStart))
	copy(hooks, w.onStart)
	w.mu.RUnlock()

	for _, fn := range hooks {
		fn(ctx, args)
	}
}

func (w *Wrapper) callCompleteHooks(ctx context.Context, result any) {
	w.mu.RLock()
	hooks := make([]func(context.Context, any), len(w.onComplete))
	copy(hooks, w.onComplete)
	w.mu.RUnlock()

	for _, fn := range hooks {
		fn(ctx, result)
	}
}

func (w *Wrapper) callFailHooks(ctx context.Context, err error) {
	w.mu.RLock()
	hooks := make([]func(context.Context, error), len(w.onFail))
	copy(hooks, w.onFail)
	w.mu.RUnlock()

	for _, fn := range hooks {
		fn(ctx, err)
	}
}

func (w *Wrapper) callRejectHooks(ctx context.Context, err error) {
	w.mu.RLock()
	hooks := make([]func(context.Context, error), len(w.onReject))
	copy(hooks, w.onReject)
	w.mu.RUnlock()

	for _, fn := range hooks {
		fn(ctx, err)
	}
}

// Callable reports whether v can be bound and invoked successfully as a unit:
// a non-nil function or a core.Invoker.
func Callable(v any) bool {
	if _, ok := v.(core.Invoker); ok {
		return true
	}
	return unit.IsInvocable(v)
}
