package validate

import (
	"fmt"
	"reflect"

	"github.com/jdziat/simple-invocation-wrappers/pkg/core"
	"github.com/jdziat/simple-invocation-wrappers/pkg/internal/unit"
	"github.com/jdziat/simple-invocation-wrappers/pkg/security"
)

// Validator checks the arguments of a call.
type Validator interface {
	Validate(args core.Args) error
}

// Func adapts an ordinary function to the Validator interface.
type Func func(args core.Args) error

// Validate calls f(args).
func (f Func) Validate(args core.Args) error {
	return f(args)
}

// NumericOnly rejects any positional argument whose kind is string, including
// named string types. Every other kind passes.
func NumericOnly() Validator {
	return RejectKinds("number", reflect.String)
}

// StrictNumeric rejects every positional argument that is not an integer,
// float or complex value.
func StrictNumeric() Validator {
	return Func(func(args core.Args) error {
		for i, v := range args.Positional {
			if !unit.IsNumeric(v) {
				return core.InvalidArgumentKind(i, kindOf(v), "number")
			}
		}
		return nil
	})
}

// RejectKinds rejects positional arguments of the given kinds. want describes
// what the caller expects instead and is reported in the error.
func RejectKinds(want string, kinds ...reflect.Kind) Validator {
	rejected := make(map[reflect.Kind]bool, len(kinds))
	for _, k := range kinds {
		rejected[k] = true
	}
	return Func(func(args core.Args) error {
		for i, v := range args.Positional {
			if v == nil {
				continue
			}
			if k := reflect.TypeOf(v).Kind(); rejected[k] {
				return core.InvalidArgumentKind(i, k.String(), want)
			}
		}
		return nil
	})
}

// MaxArgs rejects calls with more than n positional arguments.
// Values below one fall back to security.MaxPositionalArgs.
func MaxArgs(n int) Validator {
	if n < 1 {
		n = security.MaxPositionalArgs
	}
	return Func(func(args core.Args) error {
		if args.Len() > n {
			return fmt.Errorf("%w: got %d, limit %d", core.ErrTooManyArguments, args.Len(), n)
		}
		return nil
	})
}

// All runs validators in order and returns the first error.
func All(validators ...Validator) Validator {
	return Func(func(args core.Args) error {
		for _, v := range validators {
			if v == nil {
				continue
			}
			if err := v.Validate(args); err != nil {
				return err
			}
		}
		return nil
	})
}

func kindOf(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).Kind().String()
}
