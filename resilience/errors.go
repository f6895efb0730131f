package resilience

import (
	"errors"
	"fmt"
	"time"
)

// Error represents a failure of the retry or timeout envelope itself, as
// opposed to the wrapped operation's own error.
type Error struct {
	Op      string
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("resilience.%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("resilience.%s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Error codes for the resilience envelope
const (
	ErrCodeRetryExhausted    = "RetryExhausted"
	ErrCodeProcessingTimeout = "ProcessingTimeout"
)

// IsCode reports whether err is a resilience *Error carrying the given code.
func IsCode(err error, code string) bool {
	var rerr *Error
	return errors.As(err, &rerr) && rerr.Code == code
}

// ErrRetryExhausted wraps the last attempt's error once every retry has
// been spent.
func ErrRetryExhausted(op string, attempts int, last error) error {
	return &Error{
		Op:      op,
		Code:    ErrCodeRetryExhausted,
		Message: fmt.Sprintf("operation failed after %d attempts", attempts),
		Err:     last,
	}
}

// ErrProcessingTimeout reports a single attempt exceeding its envelope.
func ErrProcessingTimeout(op string, timeout time.Duration) error {
	return &Error{
		Op:      op,
		Code:    ErrCodeProcessingTimeout,
		Message: fmt.Sprintf("operation timed out after %s", timeout),
	}
}
