// File: internal/domain/errors.go
package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound marks a lookup for an id that does not exist. Repositories map
// driver-level "record not found" results onto it so handlers can translate
// with errors.Is.
var ErrNotFound = errors.New("not found")

// ValidationError reports malformed caller input (empty title, non-array
// message payload). It surfaces to the caller with its message intact.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// StorageError wraps an underlying store failure. The caller sees a generic
// failure; the wrapped cause is for logs only.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("storage: %s: %v", e.Op, e.Err) }
func (e *StorageError) Unwrap() error { return e.Err }

// UpstreamError wraps a failed call to the external completion or image API.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string { return fmt.Sprintf("upstream: %s: %v", e.Op, e.Err) }
func (e *UpstreamError) Unwrap() error { return e.Err }
