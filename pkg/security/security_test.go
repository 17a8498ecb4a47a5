package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jdziat/simple-invocation-wrappers/pkg/core"
)

func TestValidateName_Valid(t *testing.T) {
	validNames := []string{
		"sum",
		"addNumbers",
		"get_square",
		"Timer",
		"a",
		"decorator.inner",
		"some-function-2",
	}

	for _, name := range validNames {
		err := ValidateName(name)
		assert.NoError(t, err, "Expected %q to be valid", name)
	}
}

func TestValidateName_Invalid(t *testing.T) {
	invalidNames := []string{
		"",                       // empty
		"123-task",               // starts with number
		"-task",                  // starts with hyphen
		"name with spaces",       // contains spaces
		"task@email",             // contains special char
		"task/subtask",           // contains slash
		strings.Repeat("a", 300), // too long
	}

	for _, name := range invalidNames {
		err := ValidateName(name)
		assert.Error(t, err, "Expected %q to be invalid", name)
	}
}

func TestValidateName_TooLongError(t *testing.T) {
	assert.ErrorIs(t, ValidateName(strings.Repeat("a", 300)), core.ErrNameTooLong)
	assert.ErrorIs(t, ValidateName("1a"), core.ErrInvalidName)
}

func TestSanitizeErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "normal message",
			input:    "parameter cannot be a string",
			expected: "parameter cannot be a string",
		},
		{
			name:     "message with newlines",
			input:    "error on\nline 2",
			expected: "error on\nline 2",
		},
		{
			name:     "message with null bytes",
			input:    "error\x00with\x00nulls",
			expected: "errorwithnulls",
		},
		{
			name:     "message with escape sequence",
			input:    "red\x1b[31mtext",
			expected: "red[31mtext",
		},
		{
			name:     "empty message",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SanitizeErrorMessage(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSanitizeErrorMessage_Truncation(t *testing.T) {
	longMessage := strings.Repeat("a", 5000)
	result := SanitizeErrorMessage(longMessage)

	assert.LessOrEqual(t, len(result), MaxErrorMessageLength)
	assert.True(t, strings.HasSuffix(result, "..."))
}

func TestClampLimit(t *testing.T) {
	tests := []struct {
		input    int
		expected int
	}{
		{-1, 1000},
		{0, 1000},
		{1, 1},
		{50, 50},
		{1000, 1000},
		{1001, 1000},
	}

	for _, tt := range tests {
		result := ClampLimit(tt.input)
		assert.Equal(t, tt.expected, result, "ClampLimit(%d)", tt.input)
	}
}

func TestConstants(t *testing.T) {
	assert.Equal(t, 255, MaxNameLength)
	assert.Equal(t, 1024, MaxPositionalArgs)
	assert.Equal(t, 4096, MaxErrorMessageLength)
	assert.Equal(t, 1000, MaxListLimit)
}
