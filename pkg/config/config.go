package config

import (
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/VettaLabs/ThesisGate/pkg/domain"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Moderation ModerationConfig `mapstructure:"moderation"`
	Quality    QualityConfig    `mapstructure:"quality"`
	Provider   ProviderConfig   `mapstructure:"provider"`
	Embeddings EmbeddingsConfig `mapstructure:"embeddings"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Audit      AuditConfig      `mapstructure:"audit"`
	Strikes    StrikesConfig    `mapstructure:"strikes"`
	Auth       AuthConfig       `mapstructure:"auth"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	MetricsPort  int           `mapstructure:"metrics_port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	BodyLimit    int           `mapstructure:"body_limit"`
}

// ModerationConfig carries the phase-one thresholds and signal weights.
// Risk is the max over weighted producer scores, so each weight scales
// one producer's contribution independently.
type ModerationConfig struct {
	BlockThreshold       float64 `mapstructure:"block_threshold"`
	FlagThreshold        float64 `mapstructure:"flag_threshold"`
	FinancePassThreshold float64 `mapstructure:"finance_pass_threshold"`
	FinanceFlagThreshold float64 `mapstructure:"finance_flag_threshold"`
	ScamWeight           float64 `mapstructure:"scam_weight"`
	ToxicityWeight       float64 `mapstructure:"toxicity_weight"`
	FuzzyWeight          float64 `mapstructure:"fuzzy_weight"`
	SemanticWeight       float64 `mapstructure:"semantic_weight"`
	FuzzyThreshold       float64 `mapstructure:"fuzzy_threshold"`
	SemanticThreshold    float64 `mapstructure:"semantic_threshold"`
	EnableFuzzy          bool    `mapstructure:"enable_fuzzy"`
	EnableSemantic       bool    `mapstructure:"enable_semantic"`
	IssueReportThreshold float64 `mapstructure:"issue_report_threshold"`
}

type QualityConfig struct {
	LocalDimensionWeight float64       `mapstructure:"local_dimension_weight"`
	LLMDimensionWeight   float64       `mapstructure:"llm_dimension_weight"`
	RefinementTimeout    time.Duration `mapstructure:"refinement_timeout"`
	RefinementMaxRetries int           `mapstructure:"refinement_max_retries"`
}

type ProviderConfig struct {
	Name        string                `mapstructure:"name"`
	Model       string                `mapstructure:"model"`
	ApiKey      string                `mapstructure:"api_key"`
	MaxTokens   int64                 `mapstructure:"max_tokens"`
	Temperature float64               `mapstructure:"temperature"`
	Azure       AzureProviderConfig   `mapstructure:"azure"`
	Bedrock     BedrockProviderConfig `mapstructure:"bedrock"`
}

type AzureProviderConfig struct {
	Endpoint    string `mapstructure:"endpoint"`
	ApiVersion  string `mapstructure:"api_version"`
	UseIdentity bool   `mapstructure:"use_identity"`
}

type BedrockProviderConfig struct {
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	SessionToken    string `mapstructure:"session_token"`
	UseRole         bool   `mapstructure:"use_role"`
	RoleARN         string `mapstructure:"role_arn"`
}

type EmbeddingsConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Provider string `mapstructure:"provider"`
	Model    string `mapstructure:"model"`
	ApiKey   string `mapstructure:"api_key"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TLS      bool   `mapstructure:"tls"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type AuditConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Exporter string `mapstructure:"exporter"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Topic    string `mapstructure:"topic"`
}

type StrikesConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	BlockLimit int64         `mapstructure:"block_limit"`
	Window     time.Duration `mapstructure:"window"`
}

type AuthConfig struct {
	JwtSecret string `mapstructure:"jwt_secret"`
}

var globalConfig Config

func Load(configPath string) error {
	setDefaultValues()

	if err := loadConfigFile(configPath, "config", &globalConfig); err != nil {
		return fmt.Errorf("could not load main config file: %w", err)
	}

	if err := globalConfig.Validate(); err != nil {
		return err
	}

	return nil
}

func loadConfigFile(configPath, fileName string, out interface{}) error {
	viper.SetConfigName(fileName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configPath)
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("THESISGATE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file %s.yaml: %w", fileName, err)
		}
		log.Printf("config file %s.yaml not found, using defaults and environment variables", fileName)
	}

	if err := viper.Unmarshal(out); err != nil {
		return fmt.Errorf("failed to unmarshal %s config: %w", fileName, err)
	}

	return nil
}

func setDefaultValues() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.metrics_port", 9090)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)
	viper.SetDefault("server.body_limit", 4*1024*1024)

	viper.SetDefault("moderation.block_threshold", 0.5)
	viper.SetDefault("moderation.flag_threshold", 0.2)
	viper.SetDefault("moderation.finance_pass_threshold", 0.15)
	viper.SetDefault("moderation.finance_flag_threshold", 0.05)
	viper.SetDefault("moderation.scam_weight", 0.7)
	viper.SetDefault("moderation.toxicity_weight", 0.7)
	viper.SetDefault("moderation.fuzzy_weight", 0.4)
	viper.SetDefault("moderation.semantic_weight", 0.6)
	viper.SetDefault("moderation.fuzzy_threshold", 0.80)
	viper.SetDefault("moderation.semantic_threshold", 0.72)
	viper.SetDefault("moderation.enable_fuzzy", true)
	viper.SetDefault("moderation.enable_semantic", true)
	viper.SetDefault("moderation.issue_report_threshold", 0.3)

	viper.SetDefault("quality.local_dimension_weight", 0.4)
	viper.SetDefault("quality.llm_dimension_weight", 0.6)
	viper.SetDefault("quality.refinement_timeout", 12*time.Second)
	viper.SetDefault("quality.refinement_max_retries", 1)

	viper.SetDefault("provider.name", "openai")
	viper.SetDefault("provider.model", "gpt-4o-mini")
	viper.SetDefault("provider.max_tokens", 1024)
	viper.SetDefault("provider.temperature", 0.0)

	viper.SetDefault("embeddings.enabled", true)
	viper.SetDefault("embeddings.provider", "openai")
	viper.SetDefault("embeddings.model", "text-embedding-3-small")

	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)

	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.sslmode", "disable")

	viper.SetDefault("audit.exporter", "kafka")
	viper.SetDefault("audit.topic", "thesisgate.decisions")

	viper.SetDefault("strikes.enabled", true)
	viper.SetDefault("strikes.block_limit", 5)
	viper.SetDefault("strikes.window", time.Hour)
}

// Validate rejects configurations the decision pipeline cannot run on.
// Violations are fatal at startup only.
func (c *Config) Validate() error {
	unitIntervals := map[string]float64{
		"moderation.block_threshold":        c.Moderation.BlockThreshold,
		"moderation.flag_threshold":         c.Moderation.FlagThreshold,
		"moderation.finance_pass_threshold": c.Moderation.FinancePassThreshold,
		"moderation.finance_flag_threshold": c.Moderation.FinanceFlagThreshold,
		"moderation.scam_weight":            c.Moderation.ScamWeight,
		"moderation.toxicity_weight":        c.Moderation.ToxicityWeight,
		"moderation.fuzzy_weight":           c.Moderation.FuzzyWeight,
		"moderation.semantic_weight":        c.Moderation.SemanticWeight,
		"moderation.fuzzy_threshold":        c.Moderation.FuzzyThreshold,
		"moderation.semantic_threshold":     c.Moderation.SemanticThreshold,
		"moderation.issue_report_threshold": c.Moderation.IssueReportThreshold,
		"quality.local_dimension_weight":    c.Quality.LocalDimensionWeight,
		"quality.llm_dimension_weight":      c.Quality.LLMDimensionWeight,
	}
	for field, value := range unitIntervals {
		if value < 0 || value > 1 {
			return domain.NewConfigurationError(field, fmt.Sprintf("must be within [0,1], got %v", value))
		}
	}

	if c.Moderation.FlagThreshold >= c.Moderation.BlockThreshold {
		return domain.NewConfigurationError(
			"moderation.flag_threshold",
			"must be lower than moderation.block_threshold",
		)
	}
	if c.Moderation.FinanceFlagThreshold >= c.Moderation.FinancePassThreshold {
		return domain.NewConfigurationError(
			"moderation.finance_flag_threshold",
			"must be lower than moderation.finance_pass_threshold",
		)
	}

	weightSum := c.Quality.LocalDimensionWeight + c.Quality.LLMDimensionWeight
	if math.Abs(weightSum-1.0) > 1e-9 {
		return domain.NewConfigurationError(
			"quality.local_dimension_weight",
			fmt.Sprintf("local and llm dimension weights must sum to 1.0, got %v", weightSum),
		)
	}

	if c.Quality.RefinementTimeout <= 0 {
		return domain.NewConfigurationError("quality.refinement_timeout", "must be a positive duration")
	}
	if c.Quality.RefinementMaxRetries < 0 {
		return domain.NewConfigurationError("quality.refinement_max_retries", "must not be negative")
	}

	if c.Strikes.Enabled && c.Strikes.BlockLimit < 1 {
		return domain.NewConfigurationError("strikes.block_limit", "must be at least 1 when strikes are enabled")
	}

	return nil
}

func GetConfig() *Config {
	return &globalConfig
}
