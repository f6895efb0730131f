package bedrock

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/smithy-go/ptr"

	"github.com/Abraxas-365/pdfquery/llm"
)

// LLMModelID represents available Bedrock models
type LLMModelID string

const (
	Claude3Sonnet LLMModelID = "anthropic.claude-3-sonnet-20240229-v1:0"
	Claude3Haiku  LLMModelID = "anthropic.claude-3-haiku-20240307-v1:0"
	Claude2       LLMModelID = "anthropic.claude-v2"
)

type BedrockLLM struct {
	client *bedrockruntime.Client
	model  LLMModelID
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Messages         []anthropicMessage `json:"messages"`
	System           string             `json:"system,omitempty"`
	MaxTokens        int                `json:"max_tokens"`
	Temperature      float32            `json:"temperature,omitempty"`
	TopP             float32            `json:"top_p,omitempty"`
	StopSequences    []string           `json:"stop_sequences,omitempty"`
	AnthropicVersion string             `json:"anthropic_version"`
}

type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicResponse struct {
	Type       string             `json:"type,omitempty"`
	Content    []anthropicContent `json:"content,omitempty"`
	StopReason string             `json:"stop_reason,omitempty"`
	Model      string             `json:"model,omitempty"`
}

func NewBedrockLLM(client *bedrockruntime.Client, model LLMModelID) *BedrockLLM {
	if model == "" {
		model = Claude3Sonnet
	}
	return &BedrockLLM{
		client: client,
		model:  model,
	}
}

// splitSystem lifts system messages into the request-level system field,
// which is where the Anthropic messages API expects them.
func splitSystem(messages []llm.Message) (string, []anthropicMessage) {
	var system string
	msgs := make([]anthropicMessage, 0, len(messages))
	for _, msg := range messages {
		if msg.Role == llm.RoleSystem {
			if system != "" {
				system += "\n"
			}
			system += msg.Content
			continue
		}
		msgs = append(msgs, anthropicMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}
	return system, msgs
}

func (b *BedrockLLM) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (*llm.Message, error) {
	options := &llm.ChatOptions{
		Temperature: 0.7,
		MaxTokens:   2000,
	}
	for _, opt := range opts {
		opt(options)
	}

	system, anthropicMsgs := splitSystem(messages)
	anthropicReq := anthropicRequest{
		Messages:         anthropicMsgs,
		System:           system,
		MaxTokens:        options.MaxTokens,
		Temperature:      float32(options.Temperature),
		TopP:             float32(options.TopP),
		StopSequences:    options.Stop,
		AnthropicVersion: "bedrock-2023-05-31",
	}
	requestBody, err := json.Marshal(anthropicReq)
	if err != nil {
		return nil, llm.NewLLMError("Chat", err, llm.ErrCodeInvalidInput,
			"failed to marshal request")
	}

	output, err := b.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     ptr.String(string(b.model)),
		Body:        requestBody,
		ContentType: ptr.String("application/json"),
	})
	if err != nil {
		return nil, handleBedrockError("Chat", err)
	}

	var resp anthropicResponse
	if err := json.Unmarshal(output.Body, &resp); err != nil {
		return nil, llm.NewLLMError("Chat", err, llm.ErrCodeAPIError,
			"failed to unmarshal response")
	}

	var content string
	for _, block := range resp.Content {
		if block.Type == "text" {
			content += block.Text
		}
	}

	return &llm.Message{
		Role:    llm.RoleAssistant,
		Content: content,
	}, nil
}

func (b *BedrockLLM) Complete(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	messages := []llm.Message{
		{
			Role:    llm.RoleUser,
			Content: prompt,
		},
	}

	resp, err := b.Chat(ctx, messages, opts...)
	if err != nil {
		return "", err
	}

	return resp.Content, nil
}

func handleBedrockError(op string, err error) error {
	if err == nil {
		return nil
	}
	return llm.NewLLMError(op, err, llm.ErrCodeAPIError, "Bedrock API error")
}
