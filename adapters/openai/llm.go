package openai

import (
	"context"
	"errors"

	"github.com/sashabaranov/go-openai"

	"github.com/Abraxas-365/pdfquery/llm"
)

type OpenAILLM struct {
	client *openai.Client
	model  string
}

func NewOpenAILLM(apiKey string, model string) *OpenAILLM {
	if model == "" {
		model = openai.GPT4TurboPreview
	}
	return &OpenAILLM{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (o *OpenAILLM) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (*llm.Message, error) {
	options := &llm.ChatOptions{
		Temperature: 0.1,
	}
	for _, opt := range opts {
		opt(options)
	}

	openAIMessages := make([]openai.ChatCompletionMessage, len(messages))
	for i, msg := range messages {
		openAIMessages[i] = openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}

	req := openai.ChatCompletionRequest{
		Model:       o.model,
		Messages:    openAIMessages,
		Temperature: float32(options.Temperature),
		TopP:        float32(options.TopP),
		MaxTokens:   options.MaxTokens,
		Stop:        options.Stop,
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, handleOpenAIError("Chat", err)
	}

	if len(resp.Choices) == 0 {
		return nil, llm.NewLLMError("Chat", nil, llm.ErrCodeGenerationFailed,
			"no response choices returned")
	}

	return &llm.Message{
		Role:    resp.Choices[0].Message.Role,
		Content: resp.Choices[0].Message.Content,
	}, nil
}

func (o *OpenAILLM) Complete(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	messages := []llm.Message{
		{
			Role:    llm.RoleUser,
			Content: prompt,
		},
	}

	resp, err := o.Chat(ctx, messages, opts...)
	if err != nil {
		return "", err
	}

	return resp.Content, nil
}

func handleOpenAIError(op string, err error) error {
	if err == nil {
		return nil
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case 400:
			return llm.NewLLMError(op, err, llm.ErrCodeInvalidInput, "invalid request")
		case 401:
			return llm.NewLLMError(op, err, llm.ErrCodeAPIError, "invalid API key")
		case 429:
			return llm.NewLLMError(op, err, llm.ErrCodeRateLimitExceeded, "rate limit exceeded")
		case 500:
			return llm.NewLLMError(op, err, llm.ErrCodeAPIError, "OpenAI server error")
		}
	}

	return llm.NewLLMError(op, err, llm.ErrCodeInternal, "unexpected error")
}
