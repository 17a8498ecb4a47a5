// Package core provides the fundamental types and interfaces for the wrappers package.
//
// This package contains:
//   - Args, the per-call positional and named argument capture
//   - Invoker, the single-method interface every wrapped unit satisfies
//   - Record data model with GORM annotations and the RecordStore contract
//   - Event types for invocation monitoring
//   - Error types for argument validation and invocation failures
//
// Most users should import the root package github.com/jdziat/simple-invocation-wrappers
// instead of this package directly.
package core
