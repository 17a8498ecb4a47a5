// Package validate provides argument validators for the validating wrapper variant.
//
// A Validator inspects the positional arguments of a call before the wrapped
// unit runs. When it returns an error the unit is never invoked.
//
// Most users should import the root package github.com/jdziat/simple-invocation-wrappers
// which re-exports these validators.
package validate
