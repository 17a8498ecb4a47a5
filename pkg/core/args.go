package core

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Named holds keyword-style arguments. A wrapped function receives them by
// declaring a trailing Named parameter.
type Named map[string]any

// Args captures the arguments of a single invocation.
type Args struct {
	Positional []any
	Named      Named
}

// NewArgs creates Args from positional values.
func NewArgs(positional ...any) Args {
	return Args{Positional: positional}
}

// WithNamed returns a copy of a with key set to value.
func (a Args) WithNamed(key string, value any) Args {
	out := a.Clone()
	if out.Named == nil {
		out.Named = make(Named, 1)
	}
	out.Named[key] = value
	return out
}

// Len returns the number of positional arguments.
func (a Args) Len() int {
	return len(a.Positional)
}

// At returns the positional argument at index i, or nil when out of range.
func (a Args) At(i int) any {
	if i < 0 || i >= len(a.Positional) {
		return nil
	}
	return a.Positional[i]
}

// Lookup returns a named argument.
func (a Args) Lookup(name string) (any, bool) {
	v, ok := a.Named[name]
	return v, ok
}

// Clone returns a copy that shares no slices or maps with a.
func (a Args) Clone() Args {
	out := Args{}
	if a.Positional != nil {
		out.Positional = slices.Clone(a.Positional)
	}
	if a.Named != nil {
		out.Named = maps.Clone(a.Named)
	}
	return out
}

// String renders positional values space separated, followed by one
// "key == value" line per named value in key order.
func (a Args) String() string {
	var b strings.Builder
	for i, v := range a.Positional {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprint(&b, v)
	}
	for _, k := range slices.Sorted(maps.Keys(a.Named)) {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s == %v", k, a.Named[k])
	}
	return b.String()
}
