package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Redaction RedactionConfig `mapstructure:"redaction"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type RedactionConfig struct {
	// PerCharDelay models scrubbing cost proportional to record length.
	PerCharDelay time.Duration `mapstructure:"per_char_delay"`
}

type StorageConfig struct {
	// Backend selects the document store: "firestore" or "opensearch".
	Backend    string           `mapstructure:"backend"`
	Firestore  FirestoreConfig  `mapstructure:"firestore"`
	OpenSearch OpenSearchConfig `mapstructure:"opensearch"`
}

type FirestoreConfig struct {
	ProjectID string `mapstructure:"project_id"`
}

type OpenSearchConfig struct {
	URL           string `mapstructure:"url"`
	Username      string `mapstructure:"username"`
	Password      string `mapstructure:"password"`
	TLSSkipVerify bool   `mapstructure:"tls_skip_verify"`
	IndexPrefix   string `mapstructure:"index_prefix"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("server.port", 8081)
	v.SetDefault("server.read_timeout", "30s")
	// Write timeout covers the length-proportional redaction delay
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("redaction.per_char_delay", "50ms")
	v.SetDefault("storage.backend", "firestore")
	v.SetDefault("storage.firestore.project_id", "scrubline-dev")
	v.SetDefault("storage.opensearch.url", "https://localhost:9200")
	v.SetDefault("storage.opensearch.username", "admin")
	v.SetDefault("storage.opensearch.password", "admin")
	v.SetDefault("storage.opensearch.tls_skip_verify", true)
	v.SetDefault("storage.opensearch.index_prefix", "scrubline")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Read config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/scrubline/worker")
	}

	// Environment variables override
	v.SetEnvPrefix("SCRUBLINE_WORKER")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found; use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
