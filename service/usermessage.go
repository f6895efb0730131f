package service

import (
	"errors"
	"fmt"

	"github.com/Abraxas-365/pdfquery/embedding"
	"github.com/Abraxas-365/pdfquery/llm"
	"github.com/Abraxas-365/pdfquery/metadata"
	"github.com/Abraxas-365/pdfquery/pdf"
	"github.com/Abraxas-365/pdfquery/resilience"
	"github.com/Abraxas-365/pdfquery/storage"
)

// UserMessage translates any pipeline error into a message safe to show an
// end user. Each error code maps to a distinct message; unknown errors get
// a generic one so internals never leak.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var pdfErr *pdf.PDFError
	if errors.As(err, &pdfErr) {
		switch pdfErr.Code {
		case pdf.ErrCodeFileTooLarge:
			return "The file is empty or exceeds the maximum allowed size."
		case pdf.ErrCodeInvalidFileSignature:
			return "The file does not appear to be a valid PDF."
		case pdf.ErrCodeCorruptedDocument:
			return "The PDF file is corrupted and could not be read."
		case pdf.ErrCodePasswordProtected:
			return "The PDF is password protected. Please remove the password and try again."
		case pdf.ErrCodeTooManyPages:
			return "The PDF has too many pages to process."
		case pdf.ErrCodeEmptyContent:
			return "No readable text could be extracted from the PDF."
		case pdf.ErrCodePartialContent:
			return fmt.Sprintf("Only %d of %d pages could be read; results may be incomplete.",
				pdfErr.Readable, pdfErr.Total)
		}
	}

	var embErr *embedding.EmbeddingError
	if errors.As(err, &embErr) && embErr.Code == embedding.ErrCodeNoEmbeddings {
		return "The document's content could not be indexed for search. Please try again later."
	}

	var llmErr *llm.LLMError
	if errors.As(err, &llmErr) {
		return "The answer could not be generated. Please try again later."
	}

	var resErr *resilience.Error
	if errors.As(err, &resErr) {
		switch resErr.Code {
		case resilience.ErrCodeProcessingTimeout:
			return "Processing took too long and was aborted. Please try again."
		case resilience.ErrCodeRetryExhausted:
			return "The service is temporarily unavailable. Please try again later."
		}
	}

	var metaErr *metadata.MetadataError
	if errors.As(err, &metaErr) && metaErr.Code == metadata.ErrCodeNotFound {
		return "The requested document was not found."
	}

	var storeErr *storage.StorageError
	if errors.As(err, &storeErr) && storeErr.Code == storage.ErrCodeNotFound {
		return "The document's file could not be found in storage."
	}

	return "An unexpected error occurred. Please try again."
}
