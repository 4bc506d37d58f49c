package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, 120, cfg.Generate.TimeoutSeconds)
	assert.Equal(t, 10, cfg.Generate.RatePerMinute)
	assert.Equal(t, "./data/slidedeck.db", cfg.Library.DBPath)
	assert.False(t, cfg.TLS.Enabled)
}

func TestLoadYamlFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
server:
  host: 127.0.0.1
  port: "9000"
providers:
  openai:
    api_key: sk-test
    model: gpt-4o
generate:
  rate_per_minute: 3
library:
  external_templates_path: /srv/templates
static_dir: ./web
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr())
	assert.Equal(t, "sk-test", cfg.Providers.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o", cfg.Providers.OpenAI.Model)
	assert.Equal(t, 3, cfg.Generate.RatePerMinute)
	assert.Equal(t, "/srv/templates", cfg.Library.ExternalTemplatesPath)
	assert.Equal(t, "./web", cfg.StaticDir)
	// Untouched sections keep their defaults.
	assert.Equal(t, 120, cfg.Generate.TimeoutSeconds)
}

func TestMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
}

func TestMalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: \"9000\"\n"), 0644))

	t.Setenv("PORT", "7777")
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("TLS_ENABLED", "true")
	t.Setenv("GENERATE_RATE_PER_MINUTE", "42")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7777", cfg.Server.Port)
	assert.Equal(t, "sk-env", cfg.Providers.OpenAI.APIKey)
	assert.True(t, cfg.TLS.Enabled)
	assert.Equal(t, 42, cfg.Generate.RatePerMinute)
}

func TestBadEnvValuesIgnored(t *testing.T) {
	t.Setenv("GENERATE_RATE_PER_MINUTE", "lots")
	t.Setenv("TLS_ENABLED", "maybe")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Generate.RatePerMinute)
	assert.False(t, cfg.TLS.Enabled)
}
