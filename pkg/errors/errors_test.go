package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeUnsupportedCommand, "unsupported transform command %q", "skewX")

	if err.Code != ErrCodeUnsupportedCommand {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeUnsupportedCommand)
	}

	if err.Message != `unsupported transform command "skewX"` {
		t.Errorf("Message = %v, want %v", err.Message, `unsupported transform command "skewX"`)
	}

	expected := `UNSUPPORTED_COMMAND: unsupported transform command "skewX"`
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(ErrCodeIO, cause, "write output")

	if err.Code != ErrCodeIO {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeIO)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	expected := "IO_ERROR: write output: disk full"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeNonInvertible, "test"),
			code:     ErrCodeNonInvertible,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeNonInvertible, "test"),
			code:     ErrCodeUsage,
			expected: false,
		},
		{
			name:     "wrapped by fmt",
			err:      fmt.Errorf("context: %w", New(ErrCodeTemplateNotFound, "inner")),
			code:     ErrCodeTemplateNotFound,
			expected: true,
		},
		{
			name:     "outer code wins",
			err:      Wrap(ErrCodeInvalidDocument, New(ErrCodeInvalidArguments, "inner"), "outer"),
			code:     ErrCodeInvalidDocument,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInternal,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInternal,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"Error type", New(ErrCodeInvalidConfig, "test"), ErrCodeInvalidConfig},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Error type", New(ErrCodeTemplateNotFound, "template g1 not found"), "template g1 not found"},
		{"plain error", errors.New("plain error"), "plain error"},
		{
			"nested causes",
			Wrap(ErrCodeInvalidDocument, New(ErrCodeUnsupportedCommand, "skewX"), "element g2"),
			"element g2: skewX",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"usage", New(ErrCodeUsage, "bad args"), ExitUsage},
		{"wrapped usage", fmt.Errorf("cli: %w", New(ErrCodeUsage, "bad args")), ExitUsage},
		{"template missing", New(ErrCodeTemplateNotFound, "missing"), ExitFatal},
		{"plain", errors.New("boom"), ExitFatal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
