package embedding

import (
	"errors"
	"time"
)

var ErrProviderNonOKResponse = errors.New("non-OK response from embeddings provider")

type Embedding struct {
	EntityID  string    `json:"entity_id,omitempty"`
	Value     []float64 `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}

// Config selects the embeddings backend for the semantic producer.
type Config struct {
	Enabled     bool        `mapstructure:"enabled"`
	Provider    string      `mapstructure:"provider"`
	Model       string      `mapstructure:"model"`
	Credentials Credentials `mapstructure:"credentials"`
}

type Credentials struct {
	ApiKey string `mapstructure:"api_key"`
}
