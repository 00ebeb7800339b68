package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	NATS     NATSConfig     `mapstructure:"nats"`
	Delivery DeliveryConfig `mapstructure:"delivery"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type NATSConfig struct {
	URL    string `mapstructure:"url"`
	Stream string `mapstructure:"stream"`
}

type DeliveryConfig struct {
	// WorkerURL is the push endpoint deliveries are POSTed to.
	WorkerURL string        `mapstructure:"worker_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	// NakDelay spaces out redeliveries after the worker refuses one.
	NakDelay time.Duration `mapstructure:"nak_delay"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("nats.stream", "LOGS")
	v.SetDefault("delivery.worker_url", "http://localhost:8081/")
	// Generous timeout: redaction holds the request for the length of the record
	v.SetDefault("delivery.timeout", "120s")
	v.SetDefault("delivery.nak_delay", "5s")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Read config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/scrubline/relay")
	}

	// Environment variables override
	v.SetEnvPrefix("SCRUBLINE_RELAY")
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
