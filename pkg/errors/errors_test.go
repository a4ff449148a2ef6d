package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidAlgorithm, "unknown algorithm: %s", "banana")

	if err.Code != ErrCodeInvalidAlgorithm {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidAlgorithm)
	}
	if err.Message != "unknown algorithm: banana" {
		t.Errorf("Message = %v, want %v", err.Message, "unknown algorithm: banana")
	}

	expected := "INVALID_ALGORITHM: unknown algorithm: banana"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeDatabase, cause, "introspect failed")

	if err.Code != ErrCodeDatabase {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeDatabase)
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
			err:      New(ErrCodeInvalidSchema, "test"),
			code:     ErrCodeInvalidSchema,
			expected: true,
		},
		{
			name:     "different code",
			err:      New(ErrCodeInvalidSchema, "test"),
			code:     ErrCodeNotFound,
			expected: false,
		},
		{
			name:     "wrapped structured error",
			err:      fmt.Errorf("outer: %w", New(ErrCodeFileNotFound, "test")),
			code:     ErrCodeFileNotFound,
			expected: true,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
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
	if got := GetCode(New(ErrCodeSnapshotNotFound, "test")); got != ErrCodeSnapshotNotFound {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeSnapshotNotFound)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode() = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidInput, "bad input")); got != "bad input" {
		t.Errorf("UserMessage() = %v, want %v", got, "bad input")
	}
	if got := UserMessage(errors.New("plain error")); got != "plain error" {
		t.Errorf("UserMessage() = %v, want %v", got, "plain error")
	}
}
