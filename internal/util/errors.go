package util

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrUnauthorized     = errors.New("authentication credentials were not provided")
	ErrInvalidToken     = errors.New("token is invalid or expired")
	ErrInvalidFile      = errors.New("invalid file")
	ErrRequestTooLarge  = errors.New("request body is too large")
)

const NonFieldErrorsKey = "non_field_errors"

// ValidationError carries user-facing messages keyed by request field.
// Messages that belong to no field go under non_field_errors.
type ValidationError struct {
	Fields map[string][]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

func NewFieldError(field, message string) *ValidationError {
	return NewValidationError().Add(field, message)
}

func NewNonFieldError(message string) *ValidationError {
	return NewValidationError().Add(NonFieldErrorsKey, message)
}

func (e *ValidationError) Add(field, message string) *ValidationError {
	e.Fields[field] = append(e.Fields[field], message)
	return e
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// OrNil returns nil when nothing was recorded, so callers can return it
// directly as an error.
func (e *ValidationError) OrNil() error {
	if e == nil || !e.HasErrors() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], " "))
	}
	return strings.Join(parts, "; ")
}

// FirstMessage is used as the envelope message of a 400 response.
func (e *ValidationError) FirstMessage() string {
	if msgs := e.Fields[NonFieldErrorsKey]; len(msgs) > 0 {
		return msgs[0]
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if len(e.Fields[k]) > 0 {
			return e.Fields[k][0]
		}
	}
	return "Invalid input."
}
