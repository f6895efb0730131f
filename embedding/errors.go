package embedding

import (
	"errors"
	"fmt"
)

// EmbeddingError represents errors that can occur during embedding operations
type EmbeddingError struct {
	Op      string
	Err     error
	Code    string
	Message string
}

// Error implements the error interface
func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embedding.%s: %s", e.Op, e.Message)
}

// Unwrap returns the underlying error
func (e *EmbeddingError) Unwrap() error {
	return e.Err
}

// Common error codes for embedding operations
const (
	ErrCodeInvalidInput      = "InvalidInput"
	ErrCodeRateLimitExceeded = "RateLimitExceeded"
	ErrCodeModelNotAvailable = "ModelNotAvailable"
	ErrCodeEmptyInput        = "EmptyInput"
	ErrCodeNoEmbeddings      = "NoEmbeddingsGenerated"
	ErrCodeAPIError          = "APIError"
	ErrCodeInternal          = "Internal"
)

// NewEmbeddingError creates a new EmbeddingError
func NewEmbeddingError(op string, err error, code, message string) *EmbeddingError {
	return &EmbeddingError{
		Op:      op,
		Err:     err,
		Code:    code,
		Message: message,
	}
}

// IsCode reports whether err is an *EmbeddingError carrying the given code.
func IsCode(err error, code string) bool {
	var eerr *EmbeddingError
	return errors.As(err, &eerr) && eerr.Code == code
}

// Common error constructors for frequent error cases
func ErrInvalidInput(op string, err error, details string) error {
	return NewEmbeddingError(op, err, ErrCodeInvalidInput,
		fmt.Sprintf("invalid input: %s", details))
}

func ErrRateLimitExceeded(op string, err error) error {
	return NewEmbeddingError(op, err, ErrCodeRateLimitExceeded,
		"rate limit exceeded for embedding requests")
}

func ErrEmptyInput(op string) error {
	return NewEmbeddingError(op, nil, ErrCodeEmptyInput,
		"input text or documents cannot be empty")
}

// ErrNoEmbeddings reports that every chunk in a batch failed to embed.
// A single chunk failure is skipped; losing the whole batch is terminal.
func ErrNoEmbeddings(op string, err error, failed int) error {
	return NewEmbeddingError(op, err, ErrCodeNoEmbeddings,
		fmt.Sprintf("no embeddings generated: all %d chunks failed", failed))
}
