// Package unit provides internal reflection-based invocation of wrapped functions.
//
// This package is internal and should not be imported directly.
package unit
