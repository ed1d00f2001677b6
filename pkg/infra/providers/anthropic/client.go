package anthropic

import (
	"context"
	"fmt"

	"github.com/VettaLabs/ThesisGate/pkg/infra/providers"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type client struct {
	model  anthropic.Model
	handle anthropic.Client
}

// NewClient builds the shared Anthropic handle once. An empty model
// falls back to the cheapest current Haiku.
func NewClient(apiKey, model string) providers.Client {
	m := anthropic.ModelClaude3_5HaikuLatest
	if model != "" {
		m = anthropic.Model(model)
	}
	return &client{
		model:  m,
		handle: anthropic.NewClient(option.WithAPIKey(apiKey)),
	}
}

func (c *client) Complete(ctx context.Context, req *providers.Request) (*providers.Completion, error) {
	params := anthropic.MessageNewParams{
		Model: c.model,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
		MaxTokens: int64(req.MaxTokens),
	}
	if req.SystemPrompt != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: req.SystemPrompt, Type: "text"},
		}
	}
	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(req.Temperature)
	}

	message, err := c.handle.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic request failed: %w", err)
	}

	var text string
	for _, content := range message.Content {
		if content.Type == "text" {
			text = content.Text
			break
		}
	}
	if text == "" {
		return nil, fmt.Errorf("no text content returned")
	}

	return &providers.Completion{
		ID:    message.ID,
		Model: string(c.model),
		Text:  text,
		Usage: providers.Usage{
			PromptTokens:     int(message.Usage.InputTokens),
			CompletionTokens: int(message.Usage.OutputTokens),
			TotalTokens:      int(message.Usage.InputTokens + message.Usage.OutputTokens),
		},
	}, nil
}
