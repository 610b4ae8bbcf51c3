// internal/config/config.go
package config

import (
	"fmt"
	"net/url"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v2"
)

type Config struct {
	API struct {
		BaseURL string `yaml:"baseURL"`
	} `yaml:"api"`

	HTTPClient struct {
		Timeout   int    `yaml:"timeout"`
		UserAgent string `yaml:"userAgent"`
	} `yaml:"httpClient"`

	Output struct {
		Format       string `yaml:"format"`
		PrettyPrint  bool   `yaml:"prettyPrint"`
		ShowProgress bool   `yaml:"showProgress"`
	} `yaml:"output"`

	Log LogConfig `yaml:"log"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	var cfg Config
	setDefaults(&cfg)
	cfg.Output.PrettyPrint = true
	return &cfg
}

// Load reads and parses the configuration file at path. An empty path
// yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening config file: %w", err)
	}
	defer f.Close()

	cfg := Config{}
	cfg.Output.PrettyPrint = true
	decoder := yaml.NewDecoder(f)
	decoder.SetStrict(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}

	setDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default values for configuration
func setDefaults(cfg *Config) {
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "https://baconipsum.com/api/"
	}
	if cfg.HTTPClient.Timeout == 0 {
		cfg.HTTPClient.Timeout = 10
	}
	if cfg.HTTPClient.UserAgent == "" {
		cfg.HTTPClient.UserAgent = "baconipsum-cli/1.0"
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = "plain"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "warn"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("baseURL is invalid: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("baseURL must be an absolute http(s) URL, got %q", c.API.BaseURL)
	}
	if c.HTTPClient.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.Output.Format != "plain" && c.Output.Format != "json" {
		return fmt.Errorf("output format must be plain or json, got %q", c.Output.Format)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		return fmt.Errorf("log format must be console or json, got %q", c.Log.Format)
	}
	return nil
}
