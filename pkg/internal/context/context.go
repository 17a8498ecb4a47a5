// Package context provides context helpers for the wrappers package.
package context

import (
	"context"
)

// InvocationKey is the key for storing the current invocation in context.Context.
type InvocationKey struct{}

// Invocation identifies one call through a wrapper.
type Invocation struct {
	ID        string
	WrapperID string
	Name      string
}

// GetInvocation retrieves the invocation from a context.Context.
func GetInvocation(ctx context.Context) *Invocation {
	if inv, ok := ctx.Value(InvocationKey{}).(*Invocation); ok {
		return inv
	}
	return nil
}

// WithInvocation adds an invocation to a context.Context.
func WithInvocation(ctx context.Context, inv *Invocation) context.Context {
	return context.WithValue(ctx, InvocationKey{}, inv)
}
