package engine

import (
	"log/slog"
	"time"

	"github.com/Abraxas-365/pdfquery/document"
)

// Options contains configuration for the query engine
type Options struct {
	MaxFileSize  int64
	MaxPages     int
	ChunkSize    int
	ChunkOverlap int
	TopK         int
	Splitter     document.Splitter

	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration

	ExtractionTimeout time.Duration
	EmbeddingTimeout  time.Duration
	GenerationTimeout time.Duration

	Logger *slog.Logger
}

// Option is a function type to modify Options
type Option func(*Options)

// Default options
func defaultOptions() *Options {
	return &Options{
		MaxFileSize:       50 * 1024 * 1024,
		MaxPages:          1000,
		ChunkSize:         1000,
		ChunkOverlap:      200,
		TopK:              3,
		MaxRetries:        3,
		BaseDelay:         time.Second,
		MaxDelay:          60 * time.Second,
		ExtractionTimeout: 300 * time.Second,
		EmbeddingTimeout:  60 * time.Second,
		GenerationTimeout: 60 * time.Second,
	}
}

// WithMaxFileSize sets the maximum accepted upload size in bytes
func WithMaxFileSize(size int64) Option {
	return func(o *Options) {
		o.MaxFileSize = size
	}
}

// WithMaxPages sets the maximum accepted page count
func WithMaxPages(pages int) Option {
	return func(o *Options) {
		o.MaxPages = pages
	}
}

// WithChunkSize sets the chunk window size in words
func WithChunkSize(words int) Option {
	return func(o *Options) {
		o.ChunkSize = words
	}
}

// WithChunkOverlap sets how many words consecutive chunks share
func WithChunkOverlap(words int) Option {
	return func(o *Options) {
		o.ChunkOverlap = words
	}
}

// WithSplitter replaces the default word-window splitter, e.g. with a
// document.TokenSplitter sized in encoder tokens. ChunkSize and
// ChunkOverlap are ignored when a splitter is supplied.
func WithSplitter(splitter document.Splitter) Option {
	return func(o *Options) {
		o.Splitter = splitter
	}
}

// WithTopK sets how many chunks are handed to the generation provider
func WithTopK(k int) Option {
	return func(o *Options) {
		o.TopK = k
	}
}

// WithMaxRetries sets the retry budget for provider calls
func WithMaxRetries(n int) Option {
	return func(o *Options) {
		o.MaxRetries = n
	}
}

// WithBackoff sets the retry backoff base and cap
func WithBackoff(base, max time.Duration) Option {
	return func(o *Options) {
		o.BaseDelay = base
		o.MaxDelay = max
	}
}

// WithTimeouts sets the per-attempt envelopes for extraction, embedding,
// and generation
func WithTimeouts(extraction, embedding, generation time.Duration) Option {
	return func(o *Options) {
		o.ExtractionTimeout = extraction
		o.EmbeddingTimeout = embedding
		o.GenerationTimeout = generation
	}
}

// WithLogger sets the engine logger
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}
