// Package apperrors holds the error kinds handlers translate into HTTP statuses.
package apperrors

import (
	"errors"
	"strings"
)

var (
	ErrAuthentication = errors.New("authentication failed")
	ErrForbidden      = errors.New("you do not have permission to perform this action")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
)

// ValidationError carries every message collected while checking input.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// Validation builds a ValidationError from one or more messages.
func Validation(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}

// Add appends a message.
func (e *ValidationError) Add(msg string) {
	e.Messages = append(e.Messages, msg)
}

// OrNil returns nil when no message was collected, so callers can
// accumulate checks and return the result directly.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Messages) == 0 {
		return nil
	}
	return e
}

// Authentication wraps ErrAuthentication with a caller-facing message.
func Authentication(msg string) error {
	return &wrapped{msg: msg, kind: ErrAuthentication}
}

// NotFound wraps ErrNotFound with a caller-facing message.
func NotFound(msg string) error {
	return &wrapped{msg: msg, kind: ErrNotFound}
}

// Conflict wraps ErrConflict with a caller-facing message.
func Conflict(msg string) error {
	return &wrapped{msg: msg, kind: ErrConflict}
}

type wrapped struct {
	msg  string
	kind error
}

func (w *wrapped) Error() string { return w.msg }
func (w *wrapped) Unwrap() error { return w.kind }
