package entities

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing order, stay or user record.
	ErrNotFound = errors.New("not found")
	// ErrForbidden signals a requester acting on an order they do not host.
	ErrForbidden = errors.New("forbidden")
)

// ValidationError rejects malformed input before any store mutation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// StoreError wraps a store connectivity or query failure. Surfaced to the
// caller, not retried here.
type StoreError struct {
	Op  string
	Err error
}

func (e StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e StoreError) Unwrap() error { return e.Err }

// NotificationError wraps a composition or delivery failure inside the
// confirmation workflow. It is surfaced to the workflow engine's retry
// mechanism and never affects committed order state.
type NotificationError struct {
	Step string
	Err  error
}

func (e NotificationError) Error() string {
	return fmt.Sprintf("notification: step %s: %v", e.Step, e.Err)
}

func (e NotificationError) Unwrap() error { return e.Err }
