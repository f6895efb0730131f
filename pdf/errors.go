package pdf

import (
	"errors"
	"fmt"
)

// PDFError represents errors that can occur during PDF validation and extraction
type PDFError struct {
	Op      string
	Code    string
	Message string
	Err     error

	// Readable and Total are set for ErrCodePartialContent
	Readable int
	Total    int
}

// Error implements the error interface
func (e *PDFError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pdf.%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("pdf.%s: %s", e.Op, e.Message)
}

// Unwrap returns the underlying error
func (e *PDFError) Unwrap() error {
	return e.Err
}

// Common error codes for PDF operations
const (
	ErrCodeFileTooLarge         = "FileTooLarge"
	ErrCodeInvalidFileSignature = "InvalidFileSignature"
	ErrCodeCorruptedDocument    = "CorruptedDocument"
	ErrCodePasswordProtected    = "PasswordProtected"
	ErrCodeTooManyPages         = "TooManyPages"
	ErrCodeEmptyContent         = "EmptyContent"
	ErrCodePartialContent       = "PartialContent"
)

// NewPDFError creates a new PDFError
func NewPDFError(op string, err error, code, message string) *PDFError {
	return &PDFError{
		Op:      op,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsCode reports whether err is a *PDFError carrying the given code.
func IsCode(err error, code string) bool {
	var perr *PDFError
	if errors.As(err, &perr) {
		return perr.Code == code
	}
	return false
}

// Common error constructors for frequent error cases
func ErrFileTooLarge(op string, size, maxSize int64) error {
	if size == 0 {
		return NewPDFError(op, nil, ErrCodeFileTooLarge, "file is empty")
	}
	return NewPDFError(op, nil, ErrCodeFileTooLarge,
		fmt.Sprintf("file size %d bytes exceeds maximum allowed size of %d bytes", size, maxSize))
}

func ErrInvalidFileSignature(op string) error {
	return NewPDFError(op, nil, ErrCodeInvalidFileSignature,
		"file does not start with the PDF signature")
}

func ErrCorruptedDocument(op string, err error) error {
	return NewPDFError(op, err, ErrCodeCorruptedDocument,
		"document is corrupted or malformed")
}

func ErrPasswordProtected(op string) error {
	return NewPDFError(op, nil, ErrCodePasswordProtected,
		"document is password protected")
}

func ErrTooManyPages(op string, pages, maxPages int) error {
	return NewPDFError(op, nil, ErrCodeTooManyPages,
		fmt.Sprintf("document has %d pages, exceeding the maximum of %d", pages, maxPages))
}

func ErrEmptyContent(op string) error {
	return NewPDFError(op, nil, ErrCodeEmptyContent,
		"document contains no readable text")
}

func ErrPartialContent(op string, readable, total int) error {
	return &PDFError{
		Op:       op,
		Code:     ErrCodePartialContent,
		Message:  fmt.Sprintf("only %d of %d pages could be read", readable, total),
		Readable: readable,
		Total:    total,
	}
}
