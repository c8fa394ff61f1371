package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Backend   BackendConfig
	Weaviate  WeaviateConfig
	Qdrant    QdrantConfig
	Embedding EmbeddingConfig
	Search    SearchConfig
	Upload    UploadConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// BackendConfig selects the search backend implementation
type BackendConfig struct {
	Driver string `mapstructure:"driver"` // "stub", "weaviate" or "qdrant"
}

// WeaviateConfig holds settings for the hosted search wrapper service
type WeaviateConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// QdrantConfig holds Qdrant gRPC connection settings
type QdrantConfig struct {
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	Collection string `mapstructure:"collection"`
}

// EmbeddingConfig holds settings for the embeddings provider
// (OpenAI-compatible /embeddings endpoint)
type EmbeddingConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	APIKey   string `mapstructure:"api_key"`
	Model    string `mapstructure:"model"`
}

// SearchConfig holds query defaults
type SearchConfig struct {
	Limit     int           `mapstructure:"limit"`
	MaxLimit  int           `mapstructure:"max_limit"`
	Alpha     float64       `mapstructure:"alpha"`
	StubDelay time.Duration `mapstructure:"stub_delay"`
}

// UploadConfig holds catalog upload limits
type UploadConfig struct {
	MaxBytes int64 `mapstructure:"max_bytes"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/catalog-search/")

	// Environment variable settings
	v.SetEnvPrefix("CATALOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Backend defaults
	v.SetDefault("backend.driver", "stub")

	// Weaviate wrapper defaults
	v.SetDefault("weaviate.base_url", "http://localhost:8000")
	v.SetDefault("weaviate.timeout", "30s")

	// Qdrant defaults
	v.SetDefault("qdrant.host", "localhost")
	v.SetDefault("qdrant.port", 6334)
	v.SetDefault("qdrant.collection", "catalog")

	// Embedding defaults
	v.SetDefault("embedding.model", "text-embedding-3-small")

	// Search defaults
	v.SetDefault("search.limit", 5)
	v.SetDefault("search.max_limit", 50)
	v.SetDefault("search.alpha", 0.5)
	v.SetDefault("search.stub_delay", "0s")

	// Upload defaults
	v.SetDefault("upload.max_bytes", 5<<20) // 5 MiB
}

// validate validates the configuration
func validate(config *Config) error {
	switch config.Backend.Driver {
	case "stub", "weaviate", "qdrant":
	default:
		return fmt.Errorf("backend driver must be 'stub', 'weaviate' or 'qdrant', got: %s", config.Backend.Driver)
	}

	if config.Backend.Driver == "weaviate" && config.Weaviate.BaseURL == "" {
		return fmt.Errorf("weaviate base URL is required when backend driver is 'weaviate'")
	}

	if config.Backend.Driver == "qdrant" {
		if config.Qdrant.Host == "" {
			return fmt.Errorf("qdrant host is required when backend driver is 'qdrant'")
		}
		if config.Embedding.Endpoint == "" {
			return fmt.Errorf("embedding endpoint is required when backend driver is 'qdrant' (set CATALOG_EMBEDDING_ENDPOINT)")
		}
	}

	if config.Search.Limit < 1 || config.Search.Limit > config.Search.MaxLimit {
		return fmt.Errorf("search limit must be between 1 and %d, got: %d", config.Search.MaxLimit, config.Search.Limit)
	}

	if config.Search.Alpha < 0 || config.Search.Alpha > 1 {
		return fmt.Errorf("search alpha must be between 0 and 1, got: %g", config.Search.Alpha)
	}

	return nil
}
