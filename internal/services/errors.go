package services

import (
	"errors"
	"fmt"
)

// ErrDesignNotFound is returned for lookups and deletes on unknown ids.
var ErrDesignNotFound = errors.New("design not found")

// ValidationKind identifies what was wrong with the input shape.
type ValidationKind string

const (
	KindIncompleteData      ValidationKind = "INCOMPLETE_DATA"
	KindInvalidImageFormat  ValidationKind = "INVALID_IMAGE_FORMAT"
	KindUnsupportedFileType ValidationKind = "UNSUPPORTED_FILE_TYPE"
)

// ValidationError reports bad input: missing fields, malformed data URLs,
// unsupported file extensions. Always maps to HTTP 400.
type ValidationError struct {
	Kind    ValidationKind
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func newValidationError(kind ValidationKind, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// ResourceKind identifies which limit was exceeded.
type ResourceKind string

const (
	KindFileTooLarge ResourceKind = "FILE_TOO_LARGE"
	KindTooManyFiles ResourceKind = "TOO_MANY_FILES"
)

// ResourceError reports an exceeded upload limit. Maps to HTTP 400.
type ResourceError struct {
	Kind    ResourceKind
	Message string
}

func (e *ResourceError) Error() string { return e.Message }

// NewResourceError builds a limit-exceeded error; exported because the
// upload handler also enforces the per-request file count.
func NewResourceError(kind ResourceKind, format string, args ...interface{}) *ResourceError {
	return &ResourceError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// StorageError wraps an I/O failure on the critical write path. Delete
// failures are never wrapped in this; they are logged and swallowed.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
