// Package config loads the sarthi configuration from viper.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the configuration for the sarthi client.
type Config struct {
	BaseURL               string   `toml:"base_url" mapstructure:"base_url"`                               // Answering backend, e.g. "http://localhost:5000"
	RequestTimeoutSeconds int      `toml:"request_timeout_seconds" mapstructure:"request_timeout_seconds"` // 0 = client default
	PromptDirs            []string `toml:"prompt_dirs" mapstructure:"prompt_dirs"`
	UserEmail             string   `toml:"user_email" mapstructure:"user_email"`
}

// NewDefaultConfig returns a new Config with default values.
func NewDefaultConfig(promptDir string) *Config {
	return &Config{
		BaseURL:               "http://localhost:5000",
		RequestTimeoutSeconds: 60,
		PromptDirs:            []string{promptDir},
		UserEmail:             "user@lawsarthi.com",
	}
}

// RequestTimeout returns the configured request timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// LoadConfig loads configuration from viper.
func LoadConfig() (*Config, error) {
	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %v", err)
	}

	// Convert prompt directories to absolute paths
	for i, promptDir := range config.PromptDirs {
		absPath, err := ResolvePath(promptDir)
		if err != nil {
			return nil, fmt.Errorf("error resolving prompt directory path '%s': %v", promptDir, err)
		}
		config.PromptDirs[i] = absPath
	}

	return config, nil
}
