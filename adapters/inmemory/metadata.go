package inmemory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/Abraxas-365/pdfquery/metadata"
)

// MetadataStore implements metadata.Store using in-memory storage
type MetadataStore struct {
	pdfs    map[string]metadata.PDFRecord
	queries map[string][]metadata.QueryRecord
	mu      sync.RWMutex
}

// NewMetadataStore creates a new in-memory metadata store
func NewMetadataStore() *MetadataStore {
	return &MetadataStore{
		pdfs:    make(map[string]metadata.PDFRecord),
		queries: make(map[string][]metadata.QueryRecord),
	}
}

func (s *MetadataStore) InsertPDF(ctx context.Context, record metadata.PDFRecord) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if _, exists := s.pdfs[record.ID]; exists {
		return "", metadata.NewMetadataError("InsertPDF", nil, metadata.ErrCodeConflict,
			"document record already exists: "+record.ID)
	}

	s.pdfs[record.ID] = record
	return record.ID, nil
}

func (s *MetadataStore) FindPDF(ctx context.Context, id string) (*metadata.PDFRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, exists := s.pdfs[id]
	if !exists {
		return nil, nil
	}
	return &record, nil
}

func (s *MetadataStore) ListPDFs(ctx context.Context, skip, limit int) ([]metadata.PDFRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]metadata.PDFRecord, 0, len(s.pdfs))
	for _, record := range s.pdfs {
		records = append(records, record)
	}

	// Newest first
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	return page(records, skip, limit), nil
}

func (s *MetadataStore) DeletePDF(ctx context.Context, id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.pdfs[id]; !exists {
		return 0, nil
	}

	delete(s.pdfs, id)
	delete(s.queries, id)
	return 1, nil
}

func (s *MetadataStore) InsertQuery(ctx context.Context, record metadata.QueryRecord) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.pdfs[record.PDFID]; !exists {
		return "", metadata.ErrNotFound("InsertQuery", record.PDFID)
	}

	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	s.queries[record.PDFID] = append(s.queries[record.PDFID], record)
	return record.ID, nil
}

func (s *MetadataStore) ListQueries(ctx context.Context, pdfID string, skip, limit int) ([]metadata.QueryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.queries[pdfID]
	records := make([]metadata.QueryRecord, len(stored))
	copy(records, stored)

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	return page(records, skip, limit), nil
}

// page applies skip/limit the way a SQL LIMIT/OFFSET pair would: a
// negative skip reads from the start, and a non-positive limit selects
// nothing.
func page[T any](items []T, skip, limit int) []T {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || skip >= len(items) {
		return []T{}
	}
	end := len(items)
	if skip+limit < end {
		end = skip + limit
	}
	return items[skip:end]
}
