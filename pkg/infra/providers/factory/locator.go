package factory

import (
	"fmt"

	"github.com/VettaLabs/ThesisGate/pkg/config"
	"github.com/VettaLabs/ThesisGate/pkg/domain"
	"github.com/VettaLabs/ThesisGate/pkg/infra/providers"
	"github.com/VettaLabs/ThesisGate/pkg/infra/providers/anthropic"
	"github.com/VettaLabs/ThesisGate/pkg/infra/providers/azure"
	"github.com/VettaLabs/ThesisGate/pkg/infra/providers/bedrock"
	"github.com/VettaLabs/ThesisGate/pkg/infra/providers/gemini"
	"github.com/VettaLabs/ThesisGate/pkg/infra/providers/openai"
)

const (
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
	ProviderBedrock   = "bedrock"
	ProviderAzure     = "azure"
)

// ProviderLocator builds the one refinement client the process runs
// with. Credential gaps surface here, at startup, not per request.
type ProviderLocator interface {
	Get(cfg config.ProviderConfig) (providers.Client, error)
}

type providerLocator struct{}

func NewProviderLocator() ProviderLocator {
	return &providerLocator{}
}

func (f *providerLocator) Get(cfg config.ProviderConfig) (providers.Client, error) {
	switch cfg.Name {
	case ProviderOpenAI:
		if err := requireApiKey(cfg); err != nil {
			return nil, err
		}
		if err := requireModel(cfg); err != nil {
			return nil, err
		}
		return openai.NewClient(cfg.ApiKey, cfg.Model), nil
	case ProviderGemini:
		if err := requireApiKey(cfg); err != nil {
			return nil, err
		}
		return gemini.NewClient(cfg.ApiKey, cfg.Model), nil
	case ProviderAnthropic:
		if err := requireApiKey(cfg); err != nil {
			return nil, err
		}
		return anthropic.NewClient(cfg.ApiKey, cfg.Model), nil
	case ProviderBedrock:
		if err := requireModel(cfg); err != nil {
			return nil, err
		}
		if cfg.Bedrock.Region == "" && !cfg.Bedrock.UseRole {
			return nil, domain.NewConfigurationError("provider.bedrock.region", "required for the bedrock provider")
		}
		return bedrock.NewClient(cfg.Bedrock, cfg.Model), nil
	case ProviderAzure:
		if err := requireModel(cfg); err != nil {
			return nil, err
		}
		if cfg.Azure.Endpoint == "" {
			return nil, domain.NewConfigurationError("provider.azure.endpoint", "required for the azure provider")
		}
		if cfg.ApiKey == "" && !cfg.Azure.UseIdentity {
			return nil, domain.NewConfigurationError("provider.api_key", "required when azure identity is disabled")
		}
		return azure.NewClient(cfg.ApiKey, cfg.Model, cfg.Azure), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Name)
	}
}

func requireApiKey(cfg config.ProviderConfig) error {
	if cfg.ApiKey == "" {
		return domain.NewConfigurationError("provider.api_key", fmt.Sprintf("required for the %s provider", cfg.Name))
	}
	return nil
}

func requireModel(cfg config.ProviderConfig) error {
	if cfg.Model == "" {
		return domain.NewConfigurationError("provider.model", fmt.Sprintf("required for the %s provider", cfg.Name))
	}
	return nil
}
