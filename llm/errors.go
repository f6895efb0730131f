package llm

import (
	"errors"
	"fmt"
)

// LLMError represents errors that can occur during LLM operations
type LLMError struct {
	Op      string
	Code    string
	Message string
	Err     error
}

func (e *LLMError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("llm.%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("llm.%s: %s", e.Op, e.Message)
}

func (e *LLMError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeInvalidInput      = "InvalidInput"
	ErrCodeRateLimitExceeded = "RateLimitExceeded"
	ErrCodeModelNotAvailable = "ModelNotAvailable"
	ErrCodeGenerationFailed  = "GenerationFailed"
	ErrCodeAPIError          = "APIError"
	ErrCodeInternal          = "Internal"
)

// NewLLMError creates a new LLMError
func NewLLMError(op string, err error, code, message string) *LLMError {
	return &LLMError{
		Op:      op,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsCode reports whether err is an *LLMError carrying the given code.
func IsCode(err error, code string) bool {
	var lerr *LLMError
	return errors.As(err, &lerr) && lerr.Code == code
}
