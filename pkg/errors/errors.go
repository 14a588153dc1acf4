// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package errors defines the error kinds surfaced by the harbor client.
package errors

import (
	"errors"
	"fmt"
)

// Error types
const (
	// ErrUnsupportedVersion is returned for any client/server version mismatch,
	// malformed version string or invalid use of the null version.
	ErrUnsupportedVersion = "unsupported_version"

	// ErrTypeMismatch is returned when a version is compared against a value
	// that is not a version.
	ErrTypeMismatch = "type_mismatch"

	// ErrInvalidArgument is returned when an invalid argument is provided
	ErrInvalidArgument = "invalid_argument"

	// ErrCommand is returned when a command cannot be carried out as requested
	ErrCommand = "command"

	// ErrInternal is returned when there is an internal error
	ErrInternal = "internal"
)

// Error represents an error in the application
type Error struct {
	// Type is the error type
	Type string

	// Message is the error message
	Message string

	// Cause is the underlying error
	Cause error
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %s", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new error
func NewError(errorType, message string, cause error) *Error {
	return &Error{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// NewUnsupportedVersionError creates a new unsupported version error
func NewUnsupportedVersionError(message string, cause error) *Error {
	return NewError(ErrUnsupportedVersion, message, cause)
}

// NewTypeMismatchError creates a new type mismatch error
func NewTypeMismatchError(message string, cause error) *Error {
	return NewError(ErrTypeMismatch, message, cause)
}

// NewInvalidArgumentError creates a new invalid argument error
func NewInvalidArgumentError(message string, cause error) *Error {
	return NewError(ErrInvalidArgument, message, cause)
}

// NewCommandError creates a new command error
func NewCommandError(message string, cause error) *Error {
	return NewError(ErrCommand, message, cause)
}

// NewInternalError creates a new internal error
func NewInternalError(message string, cause error) *Error {
	return NewError(ErrInternal, message, cause)
}

// IsUnsupportedVersion checks if the error is an unsupported version error
func IsUnsupportedVersion(err error) bool {
	return isType(err, ErrUnsupportedVersion)
}

// IsTypeMismatch checks if the error is a type mismatch error
func IsTypeMismatch(err error) bool {
	return isType(err, ErrTypeMismatch)
}

// IsInvalidArgument checks if the error is an invalid argument error
func IsInvalidArgument(err error) bool {
	return isType(err, ErrInvalidArgument)
}

// IsCommand checks if the error is a command error
func IsCommand(err error) bool {
	return isType(err, ErrCommand)
}

// IsInternal checks if the error is an internal error
func IsInternal(err error) bool {
	return isType(err, ErrInternal)
}

func isType(err error, errorType string) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Type == errorType
}
