// Package config supplies the driver's credentials and service endpoint,
// either directly or loaded from a YAML file with environment overrides.
package config

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the production service endpoint.
const DefaultBaseURL = "https://api.v3.tabular.dev/"

// Config holds the driver configuration.
type Config struct {
	Key     string        `yaml:"key"`
	Secret  string        `yaml:"secret"`
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"-"`
	Debug   bool          `yaml:"debug"`

	// RawTimeout is the file form of Timeout, e.g. "5s".
	RawTimeout string `yaml:"timeout"`

	// HTTPClient overrides the default client; timeout/retry policy
	// belongs to it. Not loadable from a file.
	HTTPClient *http.Client `yaml:"-"`

	// Logger receives debug-mode request logs.
	Logger *logrus.Logger `yaml:"-"`
}

// Default returns the default configuration for the given credentials.
func Default(key, secret string) *Config {
	return &Config{
		Key:     key,
		Secret:  secret,
		BaseURL: DefaultBaseURL,
		Timeout: 30 * time.Second,
	}
}

// Load reads a YAML config file and applies environment overrides
// (TABULAR_KEY, TABULAR_SECRET, TABULAR_BASE_URL).
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default("", "")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.RawTimeout != "" {
		timeout, err := time.ParseDuration(cfg.RawTimeout)
		if err != nil {
			return nil, fmt.Errorf("parse config timeout: %w", err)
		}
		cfg.Timeout = timeout
	}
	cfg.applyEnv()
	return cfg.normalize()
}

// FromEnv builds a configuration from environment variables alone.
func FromEnv() (*Config, error) {
	cfg := Default("", "")
	cfg.applyEnv()
	return cfg.normalize()
}

func (c *Config) applyEnv() {
	if v := os.Getenv("TABULAR_KEY"); v != "" {
		c.Key = v
	}
	if v := os.Getenv("TABULAR_SECRET"); v != "" {
		c.Secret = v
	}
	if v := os.Getenv("TABULAR_BASE_URL"); v != "" {
		c.BaseURL = v
	}
}

func (c *Config) normalize() (*Config, error) {
	if c.Key == "" || c.Secret == "" {
		return nil, fmt.Errorf("config: key and secret are required")
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	return c, nil
}
