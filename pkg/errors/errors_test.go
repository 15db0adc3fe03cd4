package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "new",
			err:  New(ErrCodeDuplicate, "duplicate node name: %s", "0"),
			want: "DUPLICATE_DEFINITION: duplicate node name: 0",
		},
		{
			name: "wrapped",
			err:  Wrap(ErrCodeInvalidInput, errors.New("permission denied"), "read %s", "model.in"),
			want: "INVALID_INPUT: read model.in: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapUnwraps(t *testing.T) {
	cause := errors.New("permission denied")
	err := Wrap(ErrCodeInvalidInput, cause, "read model.in")

	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIsAndGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
	}{
		{"coded", New(ErrCodeUnresolved, "no material MAT2"), ErrCodeUnresolved},
		{"outer code wins", Wrap(ErrCodeInvalidInput, New(ErrCodeInvalidStructure, "inner"), "outer"), ErrCodeInvalidInput},
		{"behind fmt.Errorf", fmt.Errorf("segment 3: %w", New(ErrCodeInvalidValue, "negative area")), ErrCodeInvalidValue},
		{"plain", errors.New("plain error"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.code {
				t.Errorf("GetCode() = %q, want %q", got, tt.code)
			}
			if tt.code != "" && !Is(tt.err, tt.code) {
				t.Errorf("Is(err, %s) = false", tt.code)
			}
			if Is(tt.err, ErrCodeDuplicate) {
				t.Error("Is(err, DUPLICATE_DEFINITION) = true, want false")
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "coded",
			err:  New(ErrCodeInvalidInput, "friendly message"),
			want: "friendly message",
		},
		{
			name: "coded chain",
			err:  Wrap(ErrCodeInvalidInput, New(ErrCodeUnresolved, "unknown material MAT2"), "assemble"),
			want: "assemble: unknown material MAT2",
		},
		{
			name: "context kept",
			err:  fmt.Errorf("parse net.in: %w", New(ErrCodeInvalidStructure, "line 3: NODE: expected 5 fields")),
			want: "parse net.in: line 3: NODE: expected 5 fields",
		},
		{
			name: "plain",
			err:  errors.New("plain error"),
			want: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWarning(t *testing.T) {
	w := Warnf(ErrCodeInvalidValue, "%d segment lengths differ from node distances", 2)
	want := Warning{Code: ErrCodeInvalidValue, Message: "2 segment lengths differ from node distances"}
	if w != want {
		t.Errorf("Warnf() = %+v, want %+v", w, want)
	}
	if got := w.String(); got != "INVALID_VALUE: 2 segment lengths differ from node distances" {
		t.Errorf("String() = %q", got)
	}
}
