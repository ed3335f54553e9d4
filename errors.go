package gosocial

import (
	"errors"
	"fmt"
)

var (
	// ErrNoResult is returned when there is nothing to export or share.
	ErrNoResult = errors.New("no generation result")
	// ErrBusy is returned when a generation is already in flight.
	ErrBusy = errors.New("generation already in progress")
	// ErrIndexOutOfRange is returned for edits addressing a missing post idea.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrNotEditing is returned when a draft is changed or committed outside an edit.
	ErrNotEditing = errors.New("field is not being edited")
)

// ValidationError indicates rejected user input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return "invalid input: " + e.Message
}

// GenerationError indicates a backend failure (transport, status, bad payload).
type GenerationError struct {
	Message    string
	Cause      error
	StatusCode int  // HTTP status when known
	Retryable  bool // Whether the operation can be retried
}

func (e *GenerationError) Error() string {
	msg := "generation error: " + e.Message
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// StorageError indicates a persistence backend failure.
type StorageError struct {
	Op    string // "read" or "write"
	Key   string
	Cause error
}

func (e *StorageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("storage error: %s %s: %v", e.Op, e.Key, e.Cause)
	}
	return fmt.Sprintf("storage error: %s %s", e.Op, e.Key)
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}

// SchemaError indicates a response that does not match GenerationResult.
type SchemaError struct {
	Field   string
	Message string
}

func (e *SchemaError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("schema error (%s): %s", e.Field, e.Message)
	}
	return "schema error: " + e.Message
}

// UserErrorKind classifies user-visible failures.
type UserErrorKind string

const (
	KindValidation UserErrorKind = "validation"
	KindGeneration UserErrorKind = "generation"
)

// UserError carries a localized message safe to show to a user.
// Cause is for logs only.
type UserError struct {
	Kind    UserErrorKind
	Message string
	Cause   error
}

func (e *UserError) Error() string {
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Cause
}
