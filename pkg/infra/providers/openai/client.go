package openai

import (
	"context"
	"fmt"

	"github.com/VettaLabs/ThesisGate/pkg/infra/providers"
	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

type client struct {
	model  string
	handle openai.Client
}

// NewClient builds the shared OpenAI handle once; the SDK client is
// safe for concurrent use and never mutated afterwards.
func NewClient(apiKey, model string) providers.Client {
	return &client{
		model:  model,
		handle: openai.NewClient(option.WithAPIKey(apiKey)),
	}
}

func (c *client) Complete(ctx context.Context, req *providers.Request) (*providers.Completion, error) {
	messages := []openai.ChatCompletionMessageParamUnion{}
	if req.SystemPrompt != "" {
		messages = append(messages, openai.SystemMessage(req.SystemPrompt))
	}
	messages = append(messages, openai.UserMessage(req.Prompt))

	params := openai.ChatCompletionNewParams{
		Model:    c.model,
		Messages: messages,
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}

	resp, err := c.handle.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no completions returned")
	}

	return &providers.Completion{
		ID:    resp.ID,
		Model: resp.Model,
		Text:  resp.Choices[0].Message.Content,
		Usage: providers.Usage{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
		},
	}, nil
}
