package config_test

import (
	"testing"
	"time"

	"github.com/VettaLabs/ThesisGate/pkg/config"
	"github.com/VettaLabs/ThesisGate/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() config.Config {
	return config.Config{
		Moderation: config.ModerationConfig{
			BlockThreshold:       0.5,
			FlagThreshold:        0.2,
			FinancePassThreshold: 0.15,
			FinanceFlagThreshold: 0.05,
			ScamWeight:           0.7,
			ToxicityWeight:       0.7,
			FuzzyWeight:          0.4,
			SemanticWeight:       0.6,
			FuzzyThreshold:       0.80,
			SemanticThreshold:    0.72,
			EnableFuzzy:          true,
			EnableSemantic:       true,
			IssueReportThreshold: 0.3,
		},
		Quality: config.QualityConfig{
			LocalDimensionWeight: 0.4,
			LLMDimensionWeight:   0.6,
			RefinementTimeout:    12 * time.Second,
			RefinementMaxRetries: 1,
		},
		Strikes: config.StrikesConfig{
			Enabled:    true,
			BlockLimit: 5,
			Window:     time.Hour,
		},
	}
}

func TestLoad(t *testing.T) {
	t.Run("Missing Config File Falls Back To Defaults", func(t *testing.T) {
		err := config.Load(t.TempDir())

		require.NoError(t, err)
		cfg := config.GetConfig()
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, 0.5, cfg.Moderation.BlockThreshold)
		assert.Equal(t, 0.4, cfg.Quality.LocalDimensionWeight)
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Run("Valid Configuration", func(t *testing.T) {
		cfg := validConfig()
		assert.NoError(t, cfg.Validate())
	})

	t.Run("Threshold Outside Unit Interval", func(t *testing.T) {
		cfg := validConfig()
		cfg.Moderation.BlockThreshold = 1.5

		err := cfg.Validate()
		require.Error(t, err)
		assert.True(t, domain.IsConfigurationError(err))
	})

	t.Run("Negative Weight", func(t *testing.T) {
		cfg := validConfig()
		cfg.Moderation.FuzzyWeight = -0.1

		err := cfg.Validate()
		require.Error(t, err)
		assert.True(t, domain.IsConfigurationError(err))
	})

	t.Run("Flag Threshold Above Block Threshold", func(t *testing.T) {
		cfg := validConfig()
		cfg.Moderation.FlagThreshold = 0.6

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "flag_threshold")
	})

	t.Run("Finance Flag Threshold Above Pass Threshold", func(t *testing.T) {
		cfg := validConfig()
		cfg.Moderation.FinanceFlagThreshold = 0.2

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "finance_flag_threshold")
	})

	t.Run("Dimension Weights Must Sum To One", func(t *testing.T) {
		cfg := validConfig()
		cfg.Quality.LocalDimensionWeight = 0.5

		err := cfg.Validate()
		require.Error(t, err)
		assert.True(t, domain.IsConfigurationError(err))
	})

	t.Run("Refinement Timeout Must Be Positive", func(t *testing.T) {
		cfg := validConfig()
		cfg.Quality.RefinementTimeout = 0

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "refinement_timeout")
	})

	t.Run("Strike Limit Required When Enabled", func(t *testing.T) {
		cfg := validConfig()
		cfg.Strikes.BlockLimit = 0

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "block_limit")
	})
}
