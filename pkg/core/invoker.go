package core

import "context"

// Invoker is anything that can be called with a set of arguments.
type Invoker interface {
	Invoke(ctx context.Context, args Args) (any, error)
}

// InvokerFunc adapts an ordinary function to the Invoker interface.
type InvokerFunc func(ctx context.Context, args Args) (any, error)

// Invoke calls f(ctx, args).
func (f InvokerFunc) Invoke(ctx context.Context, args Args) (any, error) {
	return f(ctx, args)
}

// Middleware decorates an Invoker with behaviour that runs around it.
type Middleware func(next Invoker) Invoker
