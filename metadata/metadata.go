package metadata

import (
	"context"
	"time"
)

// PDFRecord is the stored description of an uploaded document. The raw
// bytes live in the blob store; this row only points at them.
type PDFRecord struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	URL       string    `json:"url"`
	ObjectKey string    `json:"object_key"`
	Size      int64     `json:"size"`
	Format    string    `json:"format"`
	CreatedAt time.Time `json:"created_at"`
}

// QueryRecord is one answered question against a stored document.
type QueryRecord struct {
	ID        string    `json:"id"`
	PDFID     string    `json:"pdf_id"`
	Query     string    `json:"query"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"created_at"`
}

// Store interface defines methods for document and query metadata
type Store interface {
	// InsertPDF persists a new document record and returns its ID
	InsertPDF(ctx context.Context, record PDFRecord) (string, error)

	// FindPDF retrieves a document record by ID
	FindPDF(ctx context.Context, id string) (*PDFRecord, error)

	// ListPDFs returns document records newest first
	ListPDFs(ctx context.Context, skip, limit int) ([]PDFRecord, error)

	// DeletePDF removes a document record, returning how many rows matched
	DeletePDF(ctx context.Context, id string) (int, error)

	// InsertQuery persists an answered query and returns its ID
	InsertQuery(ctx context.Context, record QueryRecord) (string, error)

	// ListQueries returns a document's query history newest first
	ListQueries(ctx context.Context, pdfID string, skip, limit int) ([]QueryRecord, error)
}
