// Package security provides validation, sanitization, and limits for the wrappers package.
package security

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jdziat/simple-invocation-wrappers/pkg/core"
)

// Security limits and configuration
const (
	// MaxNameLength is the maximum length for wrapper names
	MaxNameLength = 255

	// MaxPositionalArgs is the default limit on positional arguments per call
	MaxPositionalArgs = 1024

	// MaxErrorMessageLength is the maximum length for stored error messages
	MaxErrorMessageLength = 4096

	// MaxListLimit caps how many records a single query returns
	MaxListLimit = 1000
)

// validName matches alphanumeric, hyphens, underscores, and dots
var validName = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_\-\.]*$`)

// ValidateName validates a wrapper name
func ValidateName(name string) error {
	if name == "" {
		return core.ErrInvalidName
	}
	if len(name) > MaxNameLength {
		return core.ErrNameTooLong
	}
	if !validName.MatchString(name) {
		return core.ErrInvalidName
	}
	return nil
}

// SanitizeErrorMessage truncates and sanitizes error messages for storage
func SanitizeErrorMessage(msg string) string {
	if msg == "" {
		return ""
	}

	// Remove any null bytes or control characters (except newlines)
	var sanitized strings.Builder
	sanitized.Grow(len(msg))

	for _, r := range msg {
		if r == '\n' || r == '\r' || r == '\t' || (r >= 32 && r != 127) {
			sanitized.WriteRune(r)
		}
	}

	result := sanitized.String()

	if utf8.RuneCountInString(result) > MaxErrorMessageLength {
		runes := []rune(result)
		result = string(runes[:MaxErrorMessageLength-3]) + "..."
	}

	return result
}

// ClampLimit keeps a query limit within [1, MaxListLimit].
func ClampLimit(n int) int {
	if n < 1 {
		return MaxListLimit
	}
	if n > MaxListLimit {
		return MaxListLimit
	}
	return n
}
