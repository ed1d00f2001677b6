package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/VettaLabs/ThesisGate/pkg/config"
	"github.com/VettaLabs/ThesisGate/pkg/infra/providers"
)

const (
	cognitiveServicesScope = "https://cognitiveservices.azure.com/.default"
	defaultApiVersion      = "2024-02-15-preview"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

type client struct {
	apiKey     string
	deployment string
	endpoint   string
	apiVersion string
	useAD      bool
	httpClient *http.Client
}

// NewClient targets one Azure OpenAI deployment. Authentication goes
// through the api-key header, or an Azure AD token when use_identity
// is set.
func NewClient(apiKey, deployment string, cfg config.AzureProviderConfig) providers.Client {
	apiVersion := cfg.ApiVersion
	if apiVersion == "" {
		apiVersion = defaultApiVersion
	}
	return &client{
		apiKey:     apiKey,
		deployment: deployment,
		endpoint:   cfg.Endpoint,
		apiVersion: apiVersion,
		useAD:      cfg.UseIdentity,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

func (c *client) Complete(ctx context.Context, req *providers.Request) (*providers.Completion, error) {
	messages := []chatMessage{}
	if req.SystemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.SystemPrompt})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.Prompt})

	body, err := json.Marshal(chatRequest{
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		c.endpoint, c.deployment, c.apiVersion)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	if err := c.authorize(ctx, httpReq); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("azure request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("azure returned status %d: %s", resp.StatusCode, respBody)
	}

	var completion chatResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("no completions returned")
	}

	id := completion.ID
	if id == "" {
		id = fmt.Sprintf("azure-%d", time.Now().UnixNano())
	}

	return &providers.Completion{
		ID:    id,
		Model: c.deployment,
		Text:  completion.Choices[0].Message.Content,
		Usage: providers.Usage{
			PromptTokens:     completion.Usage.PromptTokens,
			CompletionTokens: completion.Usage.CompletionTokens,
			TotalTokens:      completion.Usage.TotalTokens,
		},
	}, nil
}

func (c *client) authorize(ctx context.Context, req *http.Request) error {
	if !c.useAD {
		req.Header.Set("api-key", c.apiKey)
		return nil
	}
	token, err := azureADToken(ctx)
	if err != nil {
		return fmt.Errorf("acquiring Azure AD token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return nil
}

func azureADToken(ctx context.Context) (string, error) {
	credential, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return "", err
	}
	token, err := credential.GetToken(ctx, policy.TokenRequestOptions{
		Scopes: []string{cognitiveServicesScope},
	})
	if err != nil {
		return "", err
	}
	return token.Token, nil
}
