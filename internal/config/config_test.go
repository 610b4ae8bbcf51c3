package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	content := `api:
  baseURL: "http://localhost:9000/api/"
httpClient:
  timeout: 3
  userAgent: "Bacon-Test/1.0"
output:
  format: "json"
  prettyPrint: false
  showProgress: true
log:
  level: "debug"
  format: "json"`

	cfg, err := Load(writeConfig(t, content))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000/api/", cfg.API.BaseURL)
	assert.Equal(t, 3, cfg.HTTPClient.Timeout)
	assert.Equal(t, "Bacon-Test/1.0", cfg.HTTPClient.UserAgent)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.False(t, cfg.Output.PrettyPrint)
	assert.True(t, cfg.Output.ShowProgress)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "httpClient:\n  timeout: 5\n"))
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.HTTPClient.Timeout)
	assert.Equal(t, "https://baconipsum.com/api/", cfg.API.BaseURL)
	assert.Equal(t, "plain", cfg.Output.Format)
	assert.True(t, cfg.Output.PrettyPrint)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadWithoutPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 10, cfg.HTTPClient.Timeout)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed yaml", "api: [unclosed"},
		{"unknown field", "proxy:\n  url: http://example.com\n"},
		{"rate limit section", "rateLimit:\n  requestsPerSecond: 4\n  burst: 2\n"},
		{"invalid output format", "output:\n  format: xml\n"},
		{"negative timeout", "httpClient:\n  timeout: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "relative base URL",
			mutate:  func(c *Config) { c.API.BaseURL = "/api/" },
			wantErr: true,
		},
		{
			name:    "unsupported scheme",
			mutate:  func(c *Config) { c.API.BaseURL = "ftp://baconipsum.com/api/" },
			wantErr: true,
		},
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.Log.Level = "loud" },
			wantErr: true,
		},
		{
			name:    "invalid log format",
			mutate:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
