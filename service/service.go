package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Abraxas-365/pdfquery/engine"
	"github.com/Abraxas-365/pdfquery/metadata"
	"github.com/Abraxas-365/pdfquery/pdf"
	"github.com/Abraxas-365/pdfquery/storage"
)

// QueryEngine is the slice of the engine the service needs.
type QueryEngine interface {
	Process(ctx context.Context, content []byte, filename string) (string, *pdf.ProcessingInfo, error)
	Ask(ctx context.Context, content []byte, filename, query string) (*engine.Answer, error)
}

// Service ties the pipeline to its collaborators: the blob store holding
// raw documents and the metadata store holding document and query rows.
type Service struct {
	engine QueryEngine
	blobs  storage.DataStore
	meta   metadata.Store
	logger *slog.Logger
}

// New creates a service. A nil logger falls back to slog.Default().
func New(eng QueryEngine, blobs storage.DataStore, meta metadata.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		engine: eng,
		blobs:  blobs,
		meta:   meta,
		logger: logger,
	}
}

// QueryResult is an answered question plus its provenance.
type QueryResult struct {
	PDFID    string              `json:"pdf_id"`
	Query    string              `json:"query"`
	Response string              `json:"response"`
	Info     *pdf.ProcessingInfo `json:"processing_info"`
}

// Upload validates the document, stores its bytes, and persists a
// metadata record. If the record cannot be persisted the stored blob is
// deleted best-effort so storage does not accumulate orphans.
func (s *Service) Upload(ctx context.Context, filename string, content []byte) (*metadata.PDFRecord, error) {
	if _, _, err := s.engine.Process(ctx, content, filename); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("pdfs/%s.pdf", uuid.NewString())
	err := s.blobs.Put(ctx, key, bytes.NewReader(content),
		storage.WithContentType("application/pdf"),
		storage.WithMetadata(map[string]string{"filename": filename}),
	)
	if err != nil {
		return nil, err
	}

	record := metadata.PDFRecord{
		Filename:  filename,
		URL:       key,
		ObjectKey: key,
		Size:      int64(len(content)),
		Format:    "pdf",
		CreatedAt: time.Now().UTC(),
	}
	id, err := s.meta.InsertPDF(ctx, record)
	if err != nil {
		// Best-effort, at-least-once compensation: the blob may survive
		// if this delete also fails.
		if delErr := s.blobs.Delete(ctx, key); delErr != nil {
			s.logger.Error("orphaned blob after metadata failure",
				"key", key, "error", delErr)
		}
		return nil, err
	}

	record.ID = id
	s.logger.Info("document uploaded", "id", id, "filename", filename, "size", record.Size)
	return &record, nil
}

// defaultPageSize caps listings when the caller passes no usable limit.
const defaultPageSize = 50

// normalizePage clamps paging arguments so the stores only ever see a
// non-negative skip and a positive limit.
func normalizePage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	return skip, limit
}

// List returns stored documents newest first.
func (s *Service) List(ctx context.Context, skip, limit int) ([]metadata.PDFRecord, error) {
	skip, limit = normalizePage(skip, limit)
	return s.meta.ListPDFs(ctx, skip, limit)
}

// Delete removes the document's blob and metadata.
func (s *Service) Delete(ctx context.Context, id string) error {
	record, err := s.meta.FindPDF(ctx, id)
	if err != nil {
		return err
	}
	if record == nil {
		return metadata.ErrNotFound("Delete", id)
	}

	if err := s.blobs.Delete(ctx, record.ObjectKey); err != nil {
		return err
	}
	if _, err := s.meta.DeletePDF(ctx, id); err != nil {
		return err
	}
	s.logger.Info("document deleted", "id", id)
	return nil
}

// Ask answers a question from a stored document. Persisting the answered
// query is best-effort: a history failure is logged and the answer is
// still returned.
func (s *Service) Ask(ctx context.Context, pdfID, query string) (*QueryResult, error) {
	record, err := s.meta.FindPDF(ctx, pdfID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, metadata.ErrNotFound("Ask", pdfID)
	}

	content, err := s.fetchBlob(ctx, record.ObjectKey)
	if err != nil {
		return nil, err
	}

	answer, err := s.engine.Ask(ctx, content, record.Filename, query)
	if err != nil {
		return nil, err
	}

	if _, err := s.meta.InsertQuery(ctx, metadata.QueryRecord{
		PDFID:     pdfID,
		Query:     query,
		Response:  answer.Text,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		s.logger.Error("failed to persist query history", "pdf_id", pdfID, "error", err)
	}

	return &QueryResult{
		PDFID:    pdfID,
		Query:    query,
		Response: answer.Text,
		Info:     answer.Info,
	}, nil
}

// History returns a document's answered queries newest first.
func (s *Service) History(ctx context.Context, pdfID string, skip, limit int) ([]metadata.QueryRecord, error) {
	record, err := s.meta.FindPDF(ctx, pdfID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, metadata.ErrNotFound("History", pdfID)
	}
	skip, limit = normalizePage(skip, limit)
	return s.meta.ListQueries(ctx, pdfID, skip, limit)
}

func (s *Service) fetchBlob(ctx context.Context, key string) ([]byte, error) {
	body, err := s.blobs.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return io.ReadAll(body)
}
