package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Abraxas-365/pdfquery/metadata"
)

// Store implements metadata.Store on a Postgres pool.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, connString string) (*Store, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := &Store{pool: pool}
	if err := store.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return store, nil
}

// Required database schema
const schema = `
CREATE TABLE IF NOT EXISTS pdfs (
    id TEXT PRIMARY KEY,
    filename TEXT NOT NULL,
    url TEXT NOT NULL,
    object_key TEXT NOT NULL,
    size BIGINT NOT NULL,
    format TEXT NOT NULL,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL
);

CREATE TABLE IF NOT EXISTS queries (
    id TEXT PRIMARY KEY,
    pdf_id TEXT NOT NULL REFERENCES pdfs(id) ON DELETE CASCADE,
    query TEXT NOT NULL,
    response TEXT NOT NULL,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_pdfs_created_at ON pdfs(created_at);
CREATE INDEX IF NOT EXISTS idx_queries_pdf_id ON queries(pdf_id);
CREATE INDEX IF NOT EXISTS idx_queries_created_at ON queries(created_at);
`

func (s *Store) initSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return metadata.NewMetadataError("InitSchema", err, metadata.ErrCodeInternal,
			"failed to initialize schema")
	}
	return nil
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) InsertPDF(ctx context.Context, record metadata.PDFRecord) (string, error) {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	query := `
		INSERT INTO pdfs (id, filename, url, object_key, size, format, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.pool.Exec(ctx, query,
		record.ID,
		record.Filename,
		record.URL,
		record.ObjectKey,
		record.Size,
		record.Format,
		record.CreatedAt,
	)
	if err != nil {
		return "", metadata.NewMetadataError("InsertPDF", err, metadata.ErrCodeInternal,
			"failed to insert document record")
	}

	return record.ID, nil
}

func (s *Store) FindPDF(ctx context.Context, id string) (*metadata.PDFRecord, error) {
	query := `
		SELECT id, filename, url, object_key, size, format, created_at
		FROM pdfs
		WHERE id = $1
	`
	var record metadata.PDFRecord
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&record.ID,
		&record.Filename,
		&record.URL,
		&record.ObjectKey,
		&record.Size,
		&record.Format,
		&record.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, metadata.NewMetadataError("FindPDF", err, metadata.ErrCodeInternal,
			"failed to find document record")
	}

	return &record, nil
}

// clampPage keeps skip and limit inside what LIMIT/OFFSET accept: a
// negative offset is a Postgres error, and a negative limit would mean
// unbounded. Limit 0 stays 0 and selects nothing, matching the in-memory
// store.
func clampPage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit < 0 {
		limit = 0
	}
	return skip, limit
}

func (s *Store) ListPDFs(ctx context.Context, skip, limit int) ([]metadata.PDFRecord, error) {
	skip, limit = clampPage(skip, limit)
	query := `
		SELECT id, filename, url, object_key, size, format, created_at
		FROM pdfs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := s.pool.Query(ctx, query, limit, skip)
	if err != nil {
		return nil, metadata.NewMetadataError("ListPDFs", err, metadata.ErrCodeInternal,
			"failed to list document records")
	}
	defer rows.Close()

	var records []metadata.PDFRecord
	for rows.Next() {
		var record metadata.PDFRecord
		err := rows.Scan(
			&record.ID,
			&record.Filename,
			&record.URL,
			&record.ObjectKey,
			&record.Size,
			&record.Format,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, metadata.NewMetadataError("ListPDFs", err, metadata.ErrCodeInternal,
				"failed to scan document record")
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, metadata.NewMetadataError("ListPDFs", err, metadata.ErrCodeInternal,
			"failed to read document records")
	}

	return records, nil
}

func (s *Store) DeletePDF(ctx context.Context, id string) (int, error) {
	// Query rows cascade via the foreign key.
	tag, err := s.pool.Exec(ctx, `DELETE FROM pdfs WHERE id = $1`, id)
	if err != nil {
		return 0, metadata.NewMetadataError("DeletePDF", err, metadata.ErrCodeInternal,
			"failed to delete document record")
	}

	return int(tag.RowsAffected()), nil
}

func (s *Store) InsertQuery(ctx context.Context, record metadata.QueryRecord) (string, error) {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	query := `
		INSERT INTO queries (id, pdf_id, query, response, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.pool.Exec(ctx, query,
		record.ID,
		record.PDFID,
		record.Query,
		record.Response,
		record.CreatedAt,
	)
	if err != nil {
		return "", metadata.NewMetadataError("InsertQuery", err, metadata.ErrCodeInternal,
			"failed to insert query record")
	}

	return record.ID, nil
}

func (s *Store) ListQueries(ctx context.Context, pdfID string, skip, limit int) ([]metadata.QueryRecord, error) {
	skip, limit = clampPage(skip, limit)
	query := `
		SELECT id, pdf_id, query, response, created_at
		FROM queries
		WHERE pdf_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := s.pool.Query(ctx, query, pdfID, limit, skip)
	if err != nil {
		return nil, metadata.NewMetadataError("ListQueries", err, metadata.ErrCodeInternal,
			"failed to list query records")
	}
	defer rows.Close()

	var records []metadata.QueryRecord
	for rows.Next() {
		var record metadata.QueryRecord
		err := rows.Scan(
			&record.ID,
			&record.PDFID,
			&record.Query,
			&record.Response,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, metadata.NewMetadataError("ListQueries", err, metadata.ErrCodeInternal,
				"failed to scan query record")
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, metadata.NewMetadataError("ListQueries", err, metadata.ErrCodeInternal,
			"failed to read query records")
	}

	return records, nil
}
