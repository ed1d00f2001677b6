package providers

import (
	"context"
)

// Request is one grading round trip to a hosted model. The system
// prompt carries the scoring rubric, the prompt carries the thesis
// text.
type Request struct {
	SystemPrompt string
	Prompt       string
	MaxTokens    int
	Temperature  float64
}

// Completion is the provider-neutral result of a grading call.
type Completion struct {
	ID    string `json:"id"`
	Model string `json:"model"`
	Text  string `json:"text"`
	Usage Usage  `json:"usage"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

//go:generate mockery --name=Client --dir=. --output=./mocks --filename=provider_client_mock.go --case=underscore --with-expecter

// Client is one hosted-model backend. Implementations are constructed
// once at startup with their credentials and model, and share a single
// lazily built SDK handle across concurrent requests.
type Client interface {
	Complete(ctx context.Context, req *Request) (*Completion, error)
}
