// Package unit provides reflection-based invocation for the wrappers package.
package unit

import (
	"context"
	"fmt"
	"math"
	"reflect"

	"github.com/jdziat/simple-invocation-wrappers/pkg/core"
)

var (
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
	namedType   = reflect.TypeOf(core.Named(nil))
)

// Unit holds an arbitrary value that is expected to be a function.
// Nothing about the value is checked until it is invoked.
type Unit struct {
	fn any
}

// New stores fn without inspecting it.
func New(fn any) *Unit {
	return &Unit{fn: fn}
}

// Value returns the stored value.
func (u *Unit) Value() any {
	return u.fn
}

// IsInvocable reports whether v is a non-nil function.
func IsInvocable(v any) bool {
	fnVal := reflect.ValueOf(v)
	return fnVal.IsValid() && fnVal.Kind() == reflect.Func && !fnVal.IsNil()
}

// Invoke calls the stored function with args.
//
// A leading context.Context parameter receives ctx and a trailing core.Named
// parameter receives args.Named. Positional values must be assignable to the
// parameter types. Numeric values convert between numeric kinds only when the
// value survives the conversion exactly.
func (u *Unit) Invoke(ctx context.Context, args core.Args) (any, error) {
	fnVal := reflect.ValueOf(u.fn)
	if !fnVal.IsValid() {
		return nil, &core.NotInvocableError{Kind: "nil"}
	}
	if fnVal.Kind() != reflect.Func {
		return nil, &core.NotInvocableError{Kind: fnVal.Type().String()}
	}
	if fnVal.IsNil() {
		return nil, &core.NotInvocableError{Kind: "nil " + fnVal.Type().String()}
	}

	in, err := buildArgs(ctx, fnVal.Type(), args)
	if err != nil {
		return nil, err
	}

	return unpack(fnVal.Type(), fnVal.Call(in))
}

func buildArgs(ctx context.Context, fnType reflect.Type, args core.Args) ([]reflect.Value, error) {
	numIn := fnType.NumIn()
	variadic := fnType.IsVariadic()

	first := 0
	if numIn > 0 && fnType.In(0) == contextType {
		first = 1
	}

	last := numIn
	hasNamed := false
	if !variadic && numIn > first && fnType.In(numIn-1) == namedType {
		hasNamed = true
		last = numIn - 1
	}

	fixed := last - first
	if variadic {
		fixed--
	}

	positional := args.Positional
	switch {
	case variadic && len(positional) < fixed:
		return nil, fmt.Errorf("%w: want at least %d positional arguments, got %d", core.ErrArgumentMismatch, fixed, len(positional))
	case !variadic && len(positional) != fixed:
		return nil, fmt.Errorf("%w: want %d positional arguments, got %d", core.ErrArgumentMismatch, fixed, len(positional))
	}
	if !hasNamed && len(args.Named) > 0 {
		return nil, fmt.Errorf("%w: unit does not accept named arguments", core.ErrArgumentMismatch)
	}

	in := make([]reflect.Value, 0, numIn+len(positional))
	if first == 1 {
		if ctx == nil {
			ctx = context.Background()
		}
		in = append(in, reflect.ValueOf(ctx))
	}

	for i, v := range positional {
		var paramType reflect.Type
		if i < fixed {
			paramType = fnType.In(first + i)
		} else {
			paramType = fnType.In(numIn - 1).Elem()
		}
		argVal, err := convert(i, v, paramType)
		if err != nil {
			return nil, err
		}
		in = append(in, argVal)
	}

	if hasNamed {
		named := args.Named
		if named == nil {
			named = core.Named{}
		}
		in = append(in, reflect.ValueOf(named))
	}

	return in, nil
}

func convert(index int, v any, paramType reflect.Type) (reflect.Value, error) {
	if v == nil {
		switch paramType.Kind() {
		case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
			return reflect.Zero(paramType), nil
		}
		return reflect.Value{}, fmt.Errorf("%w: parameter %d: cannot use nil as %s", core.ErrArgumentMismatch, index, paramType)
	}

	argVal := reflect.ValueOf(v)
	if argVal.Type().AssignableTo(paramType) {
		return argVal, nil
	}
	if isNumeric(argVal.Kind()) && isNumeric(paramType.Kind()) && argVal.Type().ConvertibleTo(paramType) {
		if !lossless(argVal, paramType) {
			return reflect.Value{}, fmt.Errorf("%w: parameter %d: %v does not fit %s", core.ErrArgumentMismatch, index, v, paramType)
		}
		return argVal.Convert(paramType), nil
	}
	return reflect.Value{}, fmt.Errorf("%w: parameter %d: cannot use %s as %s", core.ErrArgumentMismatch, index, argVal.Type(), paramType)
}

// lossless reports whether numeric v converts to t without truncation,
// overflow or rounding.
func lossless(v reflect.Value, t reflect.Type) bool {
	zero := reflect.Zero(t)
	switch {
	case isInt(v.Kind()):
		i := v.Int()
		switch {
		case isInt(t.Kind()):
			return !zero.OverflowInt(i)
		case isUint(t.Kind()):
			return i >= 0 && !zero.OverflowUint(uint64(i))
		default:
			return exactInFloat(absInt(i), t)
		}
	case isUint(v.Kind()):
		u := v.Uint()
		switch {
		case isInt(t.Kind()):
			return u <= math.MaxInt64 && !zero.OverflowInt(int64(u))
		case isUint(t.Kind()):
			return !zero.OverflowUint(u)
		default:
			return exactInFloat(u, t)
		}
	case isFloat(v.Kind()):
		f := v.Float()
		switch {
		case isInt(t.Kind()):
			return f == math.Trunc(f) && f >= -(1<<63) && f < 1<<63 && !zero.OverflowInt(int64(f))
		case isUint(t.Kind()):
			return f == math.Trunc(f) && f >= 0 && f < 1<<64 && !zero.OverflowUint(uint64(f))
		default:
			return sameFloat(f, v.Convert(t).Float())
		}
	case isComplex(v.Kind()):
		c := v.Complex()
		out := v.Convert(t).Complex()
		return sameFloat(real(c), real(out)) && sameFloat(imag(c), imag(out))
	}
	return false
}

// exactInFloat reports whether an integer of magnitude mag fits the mantissa
// of float type t.
func exactInFloat(mag uint64, t reflect.Type) bool {
	bits := 53
	if t.Kind() == reflect.Float32 {
		bits = 24
	}
	return mag <= 1<<bits
}

func absInt(i int64) uint64 {
	if i < 0 {
		return uint64(-(i + 1)) + 1
	}
	return uint64(i)
}

func sameFloat(a, b float64) bool {
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
}

func isInt(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUint(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

func isComplex(k reflect.Kind) bool {
	return k == reflect.Complex64 || k == reflect.Complex128
}

func unpack(fnType reflect.Type, results []reflect.Value) (any, error) {
	switch len(results) {
	case 0:
		return nil, nil
	case 1:
		if fnType.Out(0).Implements(errorType) {
			return nil, asError(results[0])
		}
		return results[0].Interface(), nil
	case 2:
		if fnType.Out(1).Implements(errorType) {
			return results[0].Interface(), asError(results[1])
		}
	}

	out := make([]any, len(results))
	for i, r := range results {
		out[i] = r.Interface()
	}
	return out, nil
}

func asError(v reflect.Value) error {
	switch v.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if v.IsNil() {
			return nil
		}
	}
	err, _ := v.Interface().(error)
	return err
}

// IsNumeric reports whether v is an integer, unsigned, float or complex value.
func IsNumeric(v any) bool {
	if v == nil {
		return false
	}
	return isNumeric(reflect.TypeOf(v).Kind())
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	}
	return false
}
