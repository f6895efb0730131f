package llm

import (
	"context"
)

// LLM represents a text generation provider
type LLM interface {
	// Chat generates a response to the given messages
	Chat(ctx context.Context, messages []Message, opts ...Option) (*Message, error)

	// Complete generates a completion for the given prompt
	Complete(ctx context.Context, prompt string, opts ...Option) (string, error)
}
