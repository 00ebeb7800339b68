package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	APIURL    string `mapstructure:"api_url"`
	WorkerURL string `mapstructure:"worker_url"`
}

func Default() *Config {
	return &Config{
		APIURL:    "http://localhost:8080",
		WorkerURL: "http://localhost:8081",
	}
}

// Load reads the CLI config file, falling back to defaults when none
// exists. The default location is $HOME/.scrubctl/config.yaml.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("api_url", "http://localhost:8080")
	v.SetDefault("worker_url", "http://localhost:8081")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		v.SetConfigFile(filepath.Join(home, ".scrubctl", "config.yaml"))
	}

	v.SetEnvPrefix("SCRUBCTL")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing file just means defaults and env apply; anything else
		// (unreadable, invalid YAML) is a real error.
		if !os.IsNotExist(err) {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
