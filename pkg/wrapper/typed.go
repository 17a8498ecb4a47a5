package wrapper

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jdziat/simple-invocation-wrappers/pkg/core"
)

// Func is a unit whose signature is declared at wrap time.
type Func[A, R any] func(ctx context.Context, a A) (R, error)

// Wrap applies middleware to a typed function. The argument travels through
// the chain as the single positional value.
func Wrap[A, R any](fn Func[A, R], mw ...Middleware) Func[A, R] {
	inner := core.InvokerFunc(func(ctx context.Context, args core.Args) (any, error) {
		var a A
		if v := args.At(0); v != nil {
			typed, ok := v.(A)
			if !ok {
				return nil, fmt.Errorf("%w: parameter 0: cannot use %T as %T", core.ErrArgumentMismatch, v, a)
			}
			a = typed
		}
		return fn(ctx, a)
	})
	inv := Chain(mw...)(inner)

	return func(ctx context.Context, a A) (R, error) {
		return Result[R](ctx, inv, a)
	}
}

// Result invokes inv with positional arguments and converts the result to T.
// On error the converted result is still returned alongside it.
func Result[T any](ctx context.Context, inv core.Invoker, positional ...any) (T, error) {
	out, err := inv.Invoke(ctx, core.NewArgs(positional...))
	if err != nil {
		result, _ := As[T](out)
		return result, err
	}
	return As[T](out)
}

// As converts v to T, falling back to a JSON round trip when v is not
// already a T. A nil v yields the zero value.
func As[T any](v any) (T, error) {
	var zero T
	if v == nil {
		return zero, nil
	}
	if result, ok := v.(T); ok {
		return result, nil
	}

	b, err := json.Marshal(v)
	if err != nil {
		return zero, fmt.Errorf("failed to marshal result: %w", err)
	}
	var result T
	if err := json.Unmarshal(b, &result); err != nil {
		return zero, fmt.Errorf("failed to unmarshal result: %w", err)
	}
	return result, nil
}
