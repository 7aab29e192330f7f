// Package config loads client configuration from a YAML file with
// environment-variable overrides.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the full client configuration.
type Config struct {
	API struct {
		BaseURL   string `yaml:"base_url" env:"ARTORI_API_BASE_URL"`
		UserAgent string `yaml:"user_agent" env:"ARTORI_USER_AGENT"`
	} `yaml:"api"`

	Storage struct {
		// Path is the sqlite file holding the session slot. Defaults under
		// the user config dir.
		Path string `yaml:"path" env:"ARTORI_STORAGE_PATH"`
	} `yaml:"storage"`

	Logging struct {
		Level  string `yaml:"level" env:"ARTORI_LOG_LEVEL"`
		Format string `yaml:"format" env:"ARTORI_LOG_FORMAT"`
	} `yaml:"logging"`
}

// Load reads configuration from configPath (skipped when the file does not
// exist), applies env overrides and validates the result.
func Load(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			file, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			if err := yaml.Unmarshal(file, config); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	loadFromEnv(config)

	if err := validate(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

func setDefaults(config *Config) {
	config.API.BaseURL = "http://localhost:8000"
	config.API.UserAgent = "artori-go"

	if dir, err := os.UserConfigDir(); err == nil {
		config.Storage.Path = filepath.Join(dir, "artori", "session.db")
	} else {
		config.Storage.Path = "artori-session.db"
	}

	config.Logging.Level = "info"
	config.Logging.Format = "console"
}

func loadFromEnv(config *Config) {
	overrides := []struct {
		key string
		dst *string
	}{
		{"ARTORI_API_BASE_URL", &config.API.BaseURL},
		{"ARTORI_USER_AGENT", &config.API.UserAgent},
		{"ARTORI_STORAGE_PATH", &config.Storage.Path},
		{"ARTORI_LOG_LEVEL", &config.Logging.Level},
		{"ARTORI_LOG_FORMAT", &config.Logging.Format},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.key); v != "" {
			*o.dst = v
		}
	}
}

func validate(config *Config) error {
	u, err := url.Parse(config.API.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid API base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("API base URL must be http or https, got %q", config.API.BaseURL)
	}
	if config.Storage.Path == "" {
		return fmt.Errorf("storage path is required")
	}
	return nil
}

// PrettyLogging reports whether the configured format asks for console
// output rather than JSON.
func (c *Config) PrettyLogging() bool {
	return c.Logging.Format != "json"
}
