package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/Abraxas-365/pdfquery/llm"
	"github.com/Abraxas-365/pdfquery/resilience"
)

const (
	// noContentFallback is returned without consulting the generation
	// provider when retrieval found nothing relevant.
	noContentFallback = "I could not find any relevant content in the document to answer your question."

	// emptyResponseFallback replaces an empty provider response.
	emptyResponseFallback = "I was unable to generate a response. Please try rephrasing your question."

	systemPrompt = "You are a helpful assistant that answers questions based on the provided PDF content."

	promptTemplate = `Given the following context from a PDF document:

%s

Please answer the following question:
%s

Answer only from the supplied context. If the answer cannot be found in the context, say so explicitly.`
)

// synthesize builds the context-constrained prompt from the ranked chunks
// and obtains the model's answer, applying both fixed fallbacks.
func (e *Engine) synthesize(ctx context.Context, query string, relevant []string) (string, error) {
	if len(relevant) == 0 {
		return noContentFallback, nil
	}

	prompt := fmt.Sprintf(promptTemplate, strings.Join(relevant, "\n\n"), query)
	messages := []llm.Message{
		llm.SystemMessage(systemPrompt),
		llm.UserMessage(prompt),
	}

	response, err := resilience.Do(ctx, e.retrier, "generate", func(ctx context.Context) (*llm.Message, error) {
		return resilience.WithTimeout(ctx, "generate", e.opts.GenerationTimeout,
			func(ctx context.Context) (*llm.Message, error) {
				return e.model.Chat(ctx, messages)
			})
	})
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(response.Content) == "" {
		return emptyResponseFallback, nil
	}
	return response.Content, nil
}

// partialReadNote is appended to answers derived from a partial read so
// the caller knows how much of the document the answer could draw on.
func partialReadNote(readable, total int) string {
	return fmt.Sprintf("\n\nNote: only %d of the document's %d pages were readable; the answer is based on the readable portion.", readable, total)
}
