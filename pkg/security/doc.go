// Package security provides validation, sanitization, and limits for the wrappers package.
//
// This package includes:
//   - Wrapper name validation
//   - Error message sanitization before records are stored
//   - Limits on positional argument counts
//
// Most users should import the root package github.com/jdziat/simple-invocation-wrappers
// which re-exports these limits.
package security
