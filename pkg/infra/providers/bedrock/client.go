package bedrock

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/VettaLabs/ThesisGate/pkg/config"
	"github.com/VettaLabs/ThesisGate/pkg/infra/providers"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"golang.org/x/sync/singleflight"
)

const (
	ModelPrefixAnthropicClaude   = "anthropic.claude"
	ModelPrefixAnthropicClaudeV3 = "anthropic.claude-3"
	ModelPrefixAmazonTitan       = "amazon.titan"
	ModelPrefixDeepseek          = "deepseek"
	ModelPrefixMistral           = "mistral"
	ModelPrefixMetaLlama         = "meta.llama"
)

// invokeRequest covers every model family Bedrock hosts; only the
// fields the targeted family reads are populated.
type invokeRequest struct {
	Prompt            string  `json:"prompt,omitempty"`
	MaxTokensToSample int     `json:"max_tokens_to_sample,omitempty"`
	Temperature       float64 `json:"temperature,omitempty"`

	// Anthropic Claude
	AnthropicVersion string              `json:"anthropic_version,omitempty"`
	Messages         []map[string]string `json:"messages,omitempty"`
	System           string              `json:"system,omitempty"`

	// Amazon Titan
	InputText            string                 `json:"inputText,omitempty"`
	TextGenerationConfig map[string]interface{} `json:"textGenerationConfig,omitempty"`

	// Mistral / Llama / Deepseek
	MaxTokens int     `json:"max_tokens,omitempty"`
	TopP      float64 `json:"top_p,omitempty"`
}

type invokeResponse struct {
	Completion string                   `json:"completion,omitempty"` // Claude
	Content    []map[string]interface{} `json:"content,omitempty"`    // Claude 3
	Results    []map[string]interface{} `json:"results,omitempty"`    // Titan
	OutputText string                   `json:"outputText,omitempty"`
	Generation string                   `json:"generation,omitempty"` // Mistral / Llama
	Response   string                   `json:"response,omitempty"`
	Text       string                   `json:"text,omitempty"`
	Output     string                   `json:"output,omitempty"`
}

type client struct {
	cfg    config.BedrockProviderConfig
	model  string
	handle atomic.Pointer[bedrockruntime.Client]
	sf     singleflight.Group
}

// NewClient defers the runtime handle to the first call: resolving AWS
// credentials (and an assumed role) does I/O, so a failed attempt must
// stay retryable.
func NewClient(cfg config.BedrockProviderConfig, model string) providers.Client {
	return &client{cfg: cfg, model: model}
}

func (c *client) Complete(ctx context.Context, req *providers.Request) (*providers.Completion, error) {
	handle, err := c.getHandle(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating bedrock client: %w", err)
	}

	body, err := json.Marshal(c.shapeRequest(req))
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	resp, err := handle.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(c.model),
		ContentType: aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return nil, fmt.Errorf("bedrock request failed: %w", err)
	}

	text, err := parseResponse(c.model, resp.Body)
	if err != nil {
		return nil, err
	}

	return &providers.Completion{
		ID:    fmt.Sprintf("bedrock-%d", time.Now().UnixNano()),
		Model: c.model,
		Text:  text,
	}, nil
}

func (c *client) shapeRequest(req *providers.Request) *invokeRequest {
	out := &invokeRequest{}

	switch {
	case isClaudeV3Model(c.model):
		out.AnthropicVersion = "bedrock-2023-05-31"
		out.System = req.SystemPrompt
		out.MaxTokens = req.MaxTokens
		out.Temperature = req.Temperature
		out.Messages = []map[string]string{
			{"role": "user", "content": req.Prompt},
		}
	case isClaudeModel(c.model):
		out.System = req.SystemPrompt
		out.Prompt = req.Prompt
		out.MaxTokensToSample = req.MaxTokens
		out.Temperature = req.Temperature
	case isTitanModel(c.model):
		out.InputText = joinPrompt(req.SystemPrompt, req.Prompt)
		out.TextGenerationConfig = map[string]interface{}{
			"maxTokenCount": req.MaxTokens,
			"temperature":   req.Temperature,
		}
	default:
		// mistral, llama, deepseek and other prompt-shaped families
		out.Prompt = joinPrompt(req.SystemPrompt, req.Prompt)
		out.MaxTokens = req.MaxTokens
		out.Temperature = req.Temperature
		out.TopP = 0.9
	}
	return out
}

func joinPrompt(systemPrompt, prompt string) string {
	if systemPrompt == "" {
		return prompt
	}
	return systemPrompt + "\n\n" + prompt
}

func parseResponse(model string, body []byte) (string, error) {
	var response invokeResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("unmarshaling response: %w", err)
	}

	var text string
	switch {
	case isClaudeV3Model(model):
		for _, content := range response.Content {
			if t, ok := content["text"].(string); ok {
				text = t
				break
			}
		}
	case isClaudeModel(model):
		text = response.Completion
	case isTitanModel(model):
		if len(response.Results) > 0 {
			if t, ok := response.Results[0]["outputText"].(string); ok {
				text = t
			}
		}
		if text == "" {
			text = response.OutputText
		}
	case isMistralModel(model), isLlamaModel(model):
		text = response.Generation
	default:
		for _, candidate := range []string{response.Response, response.Text, response.Output, response.Generation} {
			if candidate != "" {
				text = candidate
				break
			}
		}
	}

	if text == "" {
		return "", fmt.Errorf("no text content returned")
	}
	return text, nil
}

func (c *client) getHandle(ctx context.Context) (*bedrockruntime.Client, error) {
	if h := c.handle.Load(); h != nil {
		return h, nil
	}
	v, err, _ := c.sf.Do("init", func() (any, error) {
		if h := c.handle.Load(); h != nil {
			return h, nil
		}
		awsCfg, err := c.buildAwsConfig(ctx)
		if err != nil {
			return nil, err
		}
		h := bedrockruntime.NewFromConfig(awsCfg)
		c.handle.Store(h)
		return h, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*bedrockruntime.Client), nil
}

func (c *client) buildAwsConfig(ctx context.Context) (aws.Config, error) {
	const defaultRegion = "us-east-1"

	region := c.cfg.Region
	if region == "" {
		region = defaultRegion
	}

	if c.cfg.UseRole && c.cfg.RoleARN != "" {
		creds, err := c.assumeRole(ctx, region)
		if err != nil {
			return aws.Config{}, err
		}
		return loadAWSConfig(ctx, *creds.AccessKeyId, *creds.SecretAccessKey, *creds.SessionToken, region)
	}

	return loadAWSConfig(ctx, c.cfg.AccessKeyID, c.cfg.SecretAccessKey, c.cfg.SessionToken, region)
}

func loadAWSConfig(ctx context.Context, accessKey, secretKey, sessionToken, region string) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(aws.CredentialsProviderFunc(
			func(ctx context.Context) (aws.Credentials, error) {
				return aws.Credentials{
					AccessKeyID:     accessKey,
					SecretAccessKey: secretKey,
					SessionToken:    sessionToken,
				}, nil
			},
		)),
		awsconfig.WithRegion(region),
	)
}

func (c *client) assumeRole(ctx context.Context, region string) (*stsCredentials, error) {
	baseCfg, err := loadAWSConfig(ctx, c.cfg.AccessKeyID, c.cfg.SecretAccessKey, "", region)
	if err != nil {
		return nil, fmt.Errorf("loading base AWS config: %w", err)
	}

	stsClient := sts.NewFromConfig(baseCfg)
	output, err := stsClient.AssumeRole(ctx, &sts.AssumeRoleInput{
		RoleArn:         aws.String(c.cfg.RoleARN),
		RoleSessionName: aws.String(fmt.Sprintf("thesisgate-%d", time.Now().Unix())),
	})
	if err != nil {
		return nil, fmt.Errorf("assuming role: %w", err)
	}
	if output.Credentials == nil {
		return nil, fmt.Errorf("assume role returned no credentials")
	}

	return &stsCredentials{
		AccessKeyId:     output.Credentials.AccessKeyId,
		SecretAccessKey: output.Credentials.SecretAccessKey,
		SessionToken:    output.Credentials.SessionToken,
	}, nil
}

type stsCredentials struct {
	AccessKeyId     *string
	SecretAccessKey *string
	SessionToken    *string
}

func isClaudeModel(model string) bool {
	return strings.HasPrefix(model, ModelPrefixAnthropicClaude)
}

func isClaudeV3Model(model string) bool {
	return strings.HasPrefix(model, ModelPrefixAnthropicClaudeV3)
}

func isTitanModel(model string) bool {
	return strings.HasPrefix(model, ModelPrefixAmazonTitan)
}

func isMistralModel(model string) bool {
	return strings.HasPrefix(model, ModelPrefixMistral)
}

func isLlamaModel(model string) bool {
	return strings.HasPrefix(model, ModelPrefixMetaLlama)
}
