package embedding

import (
	"context"
)

// Embedder maps text to fixed-length vectors. Implementations delegate to
// an external embedding provider and must be safe to call many times per
// request: the pipeline embeds every chunk individually plus the query.
type Embedder interface {
	// EmbedDocuments converts a slice of documents into vector embeddings
	EmbedDocuments(ctx context.Context, documents []string) ([][]float32, error)

	// EmbedQuery converts a single text into a vector embedding
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}
