// Package context provides internal context helpers for the wrappers package.
//
// This package is internal and should not be imported directly.
package context
