// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "error with cause",
			err: &Error{
				Type:    ErrInvalidArgument,
				Message: "test message",
				Cause:   errors.New("underlying error"),
			},
			want: "invalid_argument: test message: underlying error",
		},
		{
			name: "error without cause",
			err: &Error{
				Type:    ErrUnsupportedVersion,
				Message: "Server doesn't support microversions",
			},
			want: "unsupported_version: Server doesn't support microversions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.err.Error()
			if got != tt.want {
				t.Errorf("Error.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("underlying error")
	err := &Error{
		Type:    ErrInternal,
		Message: "test message",
		Cause:   cause,
	}

	if got := err.Unwrap(); got != cause {
		t.Errorf("Error.Unwrap() = %v, want %v", got, cause)
	}

	errNoCause := &Error{
		Type:    ErrInternal,
		Message: "test message",
	}

	if got := errNoCause.Unwrap(); got != nil {
		t.Errorf("Error.Unwrap() = %v, want nil", got)
	}
}

func TestNewErrorConstructors(t *testing.T) {
	t.Parallel()

	cause := errors.New("cause")

	tests := []struct {
		name        string
		constructor func(string, error) *Error
		wantType    string
	}{
		{"NewUnsupportedVersionError", NewUnsupportedVersionError, ErrUnsupportedVersion},
		{"NewTypeMismatchError", NewTypeMismatchError, ErrTypeMismatch},
		{"NewInvalidArgumentError", NewInvalidArgumentError, ErrInvalidArgument},
		{"NewCommandError", NewCommandError, ErrCommand},
		{"NewInternalError", NewInternalError, ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.constructor("test message", cause)
			if err.Type != tt.wantType {
				t.Errorf("%s().Type = %v, want %v", tt.name, err.Type, tt.wantType)
			}
			if err.Message != "test message" {
				t.Errorf("%s().Message = %v, want %v", tt.name, err.Message, "test message")
			}
			if err.Cause != cause {
				t.Errorf("%s().Cause = %v, want %v", tt.name, err.Cause, cause)
			}
		})
	}
}

func TestErrorTypeCheckers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		checker func(error) bool
		want    bool
	}{
		{
			name:    "IsUnsupportedVersion with matching error",
			err:     NewUnsupportedVersionError("test", nil),
			checker: IsUnsupportedVersion,
			want:    true,
		},
		{
			name:    "IsUnsupportedVersion with wrapped error",
			err:     fmt.Errorf("negotiating: %w", NewUnsupportedVersionError("test", nil)),
			checker: IsUnsupportedVersion,
			want:    true,
		},
		{
			name:    "IsUnsupportedVersion with non-matching error",
			err:     NewTypeMismatchError("test", nil),
			checker: IsUnsupportedVersion,
			want:    false,
		},
		{
			name:    "IsTypeMismatch with matching error",
			err:     NewTypeMismatchError("test", nil),
			checker: IsTypeMismatch,
			want:    true,
		},
		{
			name:    "IsInvalidArgument with non-Error type",
			err:     errors.New("regular error"),
			checker: IsInvalidArgument,
			want:    false,
		},
		{
			name:    "IsCommand with matching error",
			err:     NewCommandError("test", nil),
			checker: IsCommand,
			want:    true,
		},
		{
			name:    "IsInternal with nil error",
			err:     nil,
			checker: IsInternal,
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.checker(tt.err)
			if got != tt.want {
				t.Errorf("%s() = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
