package factory

import (
	"fmt"

	"github.com/VettaLabs/ThesisGate/pkg/domain"
	"github.com/VettaLabs/ThesisGate/pkg/domain/embedding"
	"github.com/VettaLabs/ThesisGate/pkg/infra/embedding/openai"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"
)

const (
	OpenAIProvider = "openai"
)

// EmbeddingServiceLocator builds the one embeddings backend the
// semantic producer runs with. Missing credentials surface here, at
// startup.
type EmbeddingServiceLocator interface {
	GetService(cfg *embedding.Config) (embedding.Creator, error)
}

type embeddingServiceLocator struct {
	logger     *logrus.Logger
	httpClient *fasthttp.Client
}

func NewServiceLocator(logger *logrus.Logger, httpClient *fasthttp.Client) EmbeddingServiceLocator {
	return &embeddingServiceLocator{
		logger:     logger,
		httpClient: httpClient,
	}
}

func (l *embeddingServiceLocator) GetService(cfg *embedding.Config) (embedding.Creator, error) {
	switch cfg.Provider {
	case OpenAIProvider:
		if cfg.Credentials.ApiKey == "" {
			return nil, domain.NewConfigurationError("embeddings.api_key", "required for the openai embeddings provider")
		}
		if cfg.Model == "" {
			return nil, domain.NewConfigurationError("embeddings.model", "required for the openai embeddings provider")
		}
		return openai.NewOpenAIEmbeddingService(cfg.Credentials.ApiKey, cfg.Model, l.httpClient, l.logger), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Provider)
	}
}
