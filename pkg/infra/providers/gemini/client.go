package gemini

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/VettaLabs/ThesisGate/pkg/infra/providers"
	"golang.org/x/sync/singleflight"
	"google.golang.org/genai"
)

const defaultModel = "gemini-2.0-flash"

type client struct {
	apiKey string
	model  string
	handle atomic.Pointer[genai.Client]
	sf     singleflight.Group
}

// NewClient defers the genai handle to the first call: construction
// reaches the network, so a failed attempt must stay retryable instead
// of poisoning the process.
func NewClient(apiKey, model string) providers.Client {
	if model == "" {
		model = defaultModel
	}
	return &client{apiKey: apiKey, model: model}
}

func (c *client) Complete(ctx context.Context, req *providers.Request) (*providers.Completion, error) {
	handle, err := c.getHandle(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	generateConfig := &genai.GenerateContentConfig{}
	if req.SystemPrompt != "" {
		generateConfig.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemPrompt}},
			Role:  "system",
		}
	}

	result, err := handle.Models.GenerateContent(ctx, c.model, genai.Text(req.Prompt), generateConfig)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	text := result.Text()
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("no completions returned")
	}

	completion := &providers.Completion{
		ID:    fmt.Sprintf("gemini-%d", time.Now().UnixNano()),
		Model: c.model,
		Text:  text,
	}
	if result.UsageMetadata != nil {
		completion.Usage = providers.Usage{
			PromptTokens:     int(result.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(result.UsageMetadata.TotalTokenCount),
		}
	}
	return completion, nil
}

func (c *client) getHandle(ctx context.Context) (*genai.Client, error) {
	if h := c.handle.Load(); h != nil {
		return h, nil
	}
	v, err, _ := c.sf.Do("init", func() (any, error) {
		if h := c.handle.Load(); h != nil {
			return h, nil
		}
		h, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  c.apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, err
		}
		c.handle.Store(h)
		return h, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*genai.Client), nil
}
