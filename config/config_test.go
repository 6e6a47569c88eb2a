package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
app_name: walker
client:
  base_url: https://api.example.com
  token: file-token
  timeout: 15s
  per_page: 50
  headers:
    x-api-version: "2"
  breaker:
    failure_ratio: 0.5
logger:
  level: 5
  format: json
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, sampleYAML))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "walker", cfg.AppName)
	assert.Equal(t, "release", cfg.RunMode)
	assert.Equal(t, "https://api.example.com", cfg.Client.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Client.Timeout)
	assert.Equal(t, 50, cfg.Client.PerPage)
	assert.Equal(t, map[string]string{"x-api-version": "2"}, cfg.Client.Headers)
	assert.Equal(t, 0.5, cfg.Client.Breaker.FailureRatio)
	assert.Equal(t, DefaultBreaker().Interval, cfg.Client.Breaker.Interval)
	assert.Equal(t, 5, cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.Equal(t, "stderr", cfg.Logger.Output)
	assert.True(t, cfg.Logger.Redaction.Enabled)
	assert.Equal(t, 1.0, cfg.Observes.Tracer.SamplingRate)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("PAGELINK_CLIENT_TOKEN", "env-token")
	t.Setenv("PAGELINK_CLIENT_PER_PAGE", "25")

	cfg, err := LoadConfig(writeConfig(t, sampleYAML))
	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.Client.Token)
	assert.Equal(t, 25, cfg.Client.PerPage)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "client:\n  per_page: 5000\n"))
	require.NoError(t, err)

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base_url")
	assert.Contains(t, err.Error(), "per_page")

	cfg.Client.BaseURL = "https://api.example.com"
	cfg.Client.PerPage = 10
	assert.NoError(t, cfg.Validate())

	cfg.Logger.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestWatch(t *testing.T) {
	path := writeConfig(t, sampleYAML)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	var (
		baseURL  atomic.Value
		failures atomic.Int32
	)
	cfg.Watch(func(next *Config) {
		baseURL.Store(next.Client.BaseURL)
	}, func(error) {
		failures.Add(1)
	})

	updated := strings.Replace(sampleYAML, "https://api.example.com", "https://api2.example.com", 1)
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o600))
	require.Eventually(t, func() bool {
		return baseURL.Load() == "https://api2.example.com"
	}, 5*time.Second, 20*time.Millisecond)

	seen := failures.Load()
	invalid := strings.Replace(sampleYAML, "https://api.example.com", "not a url", 1)
	require.NoError(t, os.WriteFile(path, []byte(invalid), 0o600))
	require.Eventually(t, func() bool {
		return failures.Load() > seen
	}, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, "https://api2.example.com", baseURL.Load())
}
