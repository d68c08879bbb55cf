// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "errors"

var (
	// ErrNotFound covers unknown ids, unknown share codes and deleted
	// configurations alike.
	ErrNotFound = errors.New("not found")

	// ErrInvalidReference means an outcome points at an item, number or
	// name the configuration no longer has.
	ErrInvalidReference = errors.New("item no longer exists")

	// ErrConflict means a configuration changed between the read and the
	// write of an edit.
	ErrConflict = errors.New("configuration was changed concurrently")

	// ErrValidation is wrapped by every ValidationError.
	ErrValidation = errors.New("validation failed")
)

// ValidationError describes a malformed configuration or draw input.
// Message is safe to show to the owner.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
