package wrapper

import (
	"context"

	"github.com/jdziat/simple-invocation-wrappers/pkg/core"
	"github.com/jdziat/simple-invocation-wrappers/pkg/validate"
)

// Middleware decorates an Invoker.
type Middleware = core.Middleware

// Chain composes middleware into one. The first middleware is outermost.
func Chain(mw ...Middleware) Middleware {
	return func(next core.Invoker) core.Invoker {
		for i := len(mw) - 1; i >= 0; i-- {
			if mw[i] != nil {
				next = mw[i](next)
			}
		}
		return next
	}
}

// Before runs fn ahead of every forwarded call.
func Before(fn func(ctx context.Context, args core.Args)) Middleware {
	return Around(fn, nil)
}

// After runs fn once the forwarded call has returned.
func After(fn func(ctx context.Context, result any, err error)) Middleware {
	return Around(nil, fn)
}

// Around runs before ahead of the forwarded call and after once it returns.
// Either may be nil.
func Around(before func(context.Context, core.Args), after func(context.Context, any, error)) Middleware {
	return func(next core.Invoker) core.Invoker {
		return core.InvokerFunc(func(ctx context.Context, args core.Args) (any, error) {
			if before != nil {
				before(ctx, args)
			}
			result, err := next.Invoke(ctx, args)
			if after != nil {
				after(ctx, result, err)
			}
			return result, err
		})
	}
}

// MapArgs replaces the arguments before forwarding. A mapping error stops
// the call before the unit runs.
func MapArgs(fn func(args core.Args) (core.Args, error)) Middleware {
	return func(next core.Invoker) core.Invoker {
		return core.InvokerFunc(func(ctx context.Context, args core.Args) (any, error) {
			mapped, err := fn(args)
			if err != nil {
				return nil, err
			}
			return next.Invoke(ctx, mapped)
		})
	}
}

// Tap observes successful results without changing them.
func Tap(fn func(ctx context.Context, result any)) Middleware {
	return func(next core.Invoker) core.Invoker {
		return core.InvokerFunc(func(ctx context.Context, args core.Args) (any, error) {
			result, err := next.Invoke(ctx, args)
			if err == nil {
				fn(ctx, result)
			}
			return result, err
		})
	}
}

// Validate rejects calls whose arguments fail v. The next invoker is not
// reached on rejection.
func Validate(v validate.Validator) Middleware {
	return func(next core.Invoker) core.Invoker {
		return core.InvokerFunc(func(ctx context.Context, args core.Args) (any, error) {
			if err := v.Validate(args); err != nil {
				return nil, err
			}
			return next.Invoke(ctx, args)
		})
	}
}
