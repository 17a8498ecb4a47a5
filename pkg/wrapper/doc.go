// Package wrapper provides the Wrapper type, an invocation wrapper bound to a
// single unit for its entire lifetime.
//
// This package includes:
//   - Wrapper: forwards each call to its unit exactly once and returns the
//     unit's result unchanged
//   - Middleware: Before, After, Around, MapArgs, Tap, Validate and Record
//   - Option: functional configuration for name, logging, validation, timing
//     and recording
//   - Wrap and Result: typed helpers for units whose signature is known
//
// Most users should import the root package github.com/jdziat/simple-invocation-wrappers
// which re-exports these types.
package wrapper
