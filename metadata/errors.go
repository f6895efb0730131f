package metadata

import (
	"errors"
	"fmt"
)

// MetadataError represents errors that can occur during metadata operations
type MetadataError struct {
	Op      string
	Code    string
	Message string
	Err     error
}

func (e *MetadataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("metadata.%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("metadata.%s: %s", e.Op, e.Message)
}

func (e *MetadataError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeNotFound = "NotFound"
	ErrCodeConflict = "Conflict"
	ErrCodeInternal = "Internal"
)

// NewMetadataError creates a new MetadataError
func NewMetadataError(op string, err error, code, message string) *MetadataError {
	return &MetadataError{
		Op:      op,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsCode reports whether err is a *MetadataError carrying the given code.
func IsCode(err error, code string) bool {
	var merr *MetadataError
	return errors.As(err, &merr) && merr.Code == code
}

// ErrNotFound reports a missing document record.
func ErrNotFound(op, id string) error {
	return NewMetadataError(op, nil, ErrCodeNotFound,
		fmt.Sprintf("document %s not found", id))
}
