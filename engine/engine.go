package engine

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/Abraxas-365/pdfquery/document"
	"github.com/Abraxas-365/pdfquery/embedding"
	"github.com/Abraxas-365/pdfquery/llm"
	"github.com/Abraxas-365/pdfquery/pdf"
	"github.com/Abraxas-365/pdfquery/resilience"
	"github.com/Abraxas-365/pdfquery/retrieval"
)

// Engine runs the document question-answering pipeline: validate and
// extract the PDF, chunk its text, embed chunks and query, rank by
// similarity, and synthesize an answer from the best chunks. It holds no
// per-request state; everything a request produces is request-scoped.
type Engine struct {
	validator *pdf.Validator
	extractor *pdf.Extractor
	splitter  document.Splitter
	embedder  embedding.Embedder
	model     llm.LLM
	retrier   *resilience.Retrier
	opts      *Options
	logger    *slog.Logger
}

// Answer is the result of a query against one document.
type Answer struct {
	Text string              `json:"text"`
	Info *pdf.ProcessingInfo `json:"processing_info"`
}

// New creates an engine with the provided providers and options.
func New(embedder embedding.Embedder, model llm.LLM, opts ...Option) (*Engine, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	splitter := options.Splitter
	if splitter == nil {
		ws, err := document.NewWordSplitter(options.ChunkSize, options.ChunkOverlap)
		if err != nil {
			return nil, err
		}
		splitter = ws
	}

	retrier := resilience.NewRetrier(
		resilience.WithMaxRetries(options.MaxRetries),
		resilience.WithBaseDelay(options.BaseDelay),
		resilience.WithMaxDelay(options.MaxDelay),
		resilience.WithRetryIf(isTransient),
		resilience.WithLogger(logger),
	)

	return &Engine{
		validator: pdf.NewValidator(options.MaxFileSize, options.MaxPages),
		extractor: pdf.NewExtractor(),
		splitter:  splitter,
		embedder:  embedder,
		model:     model,
		retrier:   retrier,
		opts:      options,
		logger:    logger,
	}, nil
}

// isTransient decides retryability: document problems are the caller's
// input and never worth a second attempt, everything else (provider
// failures, timeouts) is.
func isTransient(err error) bool {
	var perr *pdf.PDFError
	return !errors.As(err, &perr)
}

// Process validates the upload and extracts its text, applying the
// graceful-degradation policy: a partial read falls back to whatever text
// was recovered instead of failing, as long as it is non-empty.
func (e *Engine) Process(ctx context.Context, content []byte, filename string) (string, *pdf.ProcessingInfo, error) {
	if _, err := e.validator.Validate(content); err != nil {
		return "", nil, err
	}

	type extraction struct {
		text string
		info *pdf.ProcessingInfo
	}

	result, err := resilience.Do(ctx, e.retrier, "extract", func(ctx context.Context) (extraction, error) {
		return resilience.WithTimeout(ctx, "extract", e.opts.ExtractionTimeout,
			func(ctx context.Context) (extraction, error) {
				text, info, err := e.extractor.Extract(content)
				if err != nil && pdf.IsCode(err, pdf.ErrCodePartialContent) {
					// Fall back to whatever was recovered. The degraded
					// result counts as success so the retrier does not
					// discard it.
					if strings.TrimSpace(text) == "" {
						return extraction{}, pdf.ErrEmptyContent("Process")
					}
					info.FallbackUsed = true
					e.logger.Warn("partial read, reusing recovered text",
						"filename", filename,
						"readable_pages", info.ReadablePages,
						"total_pages", info.TotalPages)
					return extraction{text: text, info: info}, nil
				}
				return extraction{text: text, info: info}, err
			})
	})
	if err != nil {
		return "", nil, err
	}

	result.info.Filename = filename
	return result.text, result.info, nil
}

// Ask answers a natural-language query from the document's content.
func (e *Engine) Ask(ctx context.Context, content []byte, filename, query string) (*Answer, error) {
	text, info, err := e.Process(ctx, content, filename)
	if err != nil {
		return nil, err
	}
	return e.answerFromText(ctx, text, info, query)
}

// answerFromText runs the retrieval and synthesis half of the pipeline
// over already-extracted text.
func (e *Engine) answerFromText(ctx context.Context, text string, info *pdf.ProcessingInfo, query string) (*Answer, error) {
	chunks, err := document.CreateChunks(e.splitter, text)
	if err != nil {
		return nil, err
	}

	vectors, kept, err := e.embedChunks(ctx, chunks)
	if err != nil {
		return nil, err
	}

	queryVector, err := e.embedOne(ctx, "embed_query", query)
	if err != nil {
		return nil, err
	}

	ranked := retrieval.Rank(queryVector, vectors, e.opts.TopK)
	relevant := make([]string, len(ranked))
	for i, r := range ranked {
		relevant[i] = kept[r.Index].Content
	}

	answerText, err := e.synthesize(ctx, query, relevant)
	if err != nil {
		return nil, err
	}

	if info.PartialRead {
		answerText += partialReadNote(info.ReadablePages, info.TotalPages)
	}

	return &Answer{Text: answerText, Info: info}, nil
}

// embedChunks embeds every chunk, isolating failures: a chunk whose
// embedding fails after the resilience envelope is logged and skipped so
// its siblings still contribute. Only the whole batch failing is an error.
func (e *Engine) embedChunks(ctx context.Context, chunks []document.Chunk) ([][]float32, []document.Chunk, error) {
	vectors := make([][]float32, 0, len(chunks))
	kept := make([]document.Chunk, 0, len(chunks))
	var lastErr error

	for _, chunk := range chunks {
		vector, err := e.embedOne(ctx, "embed_chunk", chunk.Content)
		if err != nil {
			if ctx.Err() != nil {
				return nil, nil, ctx.Err()
			}
			lastErr = err
			e.logger.Warn("chunk embedding failed, skipping",
				"chunk_index", chunk.Index, "error", err)
			continue
		}
		vectors = append(vectors, vector)
		kept = append(kept, chunk)
	}

	if len(kept) == 0 && len(chunks) > 0 {
		return nil, nil, embedding.ErrNoEmbeddings("embedChunks", lastErr, len(chunks))
	}
	return vectors, kept, nil
}

func (e *Engine) embedOne(ctx context.Context, op, text string) ([]float32, error) {
	return resilience.Do(ctx, e.retrier, op, func(ctx context.Context) ([]float32, error) {
		return resilience.WithTimeout(ctx, op, e.opts.EmbeddingTimeout,
			func(ctx context.Context) ([]float32, error) {
				return e.embedder.EmbedQuery(ctx, text)
			})
	})
}
