package pdf

import "bytes"

// pdfSignature is the canonical magic header every PDF starts with.
var pdfSignature = []byte("%PDF-")

// ValidationReport summarizes what the validator learned about the file.
type ValidationReport struct {
	FileSize   int64
	TotalPages int
}

// Validator checks raw uploads against size, signature, and structural
// constraints before any extraction work is spent on them.
type Validator struct {
	maxFileSize int64
	maxPages    int
	open        openFunc
}

// NewValidator creates a validator with the given limits.
func NewValidator(maxFileSize int64, maxPages int) *Validator {
	return &Validator{
		maxFileSize: maxFileSize,
		maxPages:    maxPages,
		open:        openDocument,
	}
}

// Validate runs all checks in order of increasing cost: file size, magic
// header, structural parse, then page count. It is a pure function of the
// input bytes and the configured limits.
func (v *Validator) Validate(content []byte) (*ValidationReport, error) {
	const op = "Validate"

	size := int64(len(content))
	if size == 0 || size > v.maxFileSize {
		return nil, ErrFileTooLarge(op, size, v.maxFileSize)
	}

	if !bytes.HasPrefix(content, pdfSignature) {
		return nil, ErrInvalidFileSignature(op)
	}

	doc, err := v.open(op, content)
	if err != nil {
		return nil, err
	}

	pages := doc.NumPages()
	if pages > v.maxPages {
		return nil, ErrTooManyPages(op, pages, v.maxPages)
	}

	return &ValidationReport{
		FileSize:   size,
		TotalPages: pages,
	}, nil
}
