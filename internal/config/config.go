// Package config loads server configuration from an optional yaml file and
// environment overrides. Env wins over file, file wins over defaults.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Credentials configures one completion provider slot.
type Credentials struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// Config is the full server configuration.
type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port string `yaml:"port"`
	} `yaml:"server"`
	TLS struct {
		Enabled    bool   `yaml:"enabled"`
		CertFile   string `yaml:"cert_file"`
		KeyFile    string `yaml:"key_file"`
		MinVersion string `yaml:"min_version"`
	} `yaml:"tls"`
	Providers struct {
		OpenAI     Credentials `yaml:"openai"`
		OpenRouter Credentials `yaml:"openrouter"`
		Anthropic  Credentials `yaml:"anthropic"`
		Google     Credentials `yaml:"google"`
	} `yaml:"providers"`
	Generate struct {
		TimeoutSeconds int `yaml:"timeout_seconds"`
		RatePerMinute  int `yaml:"rate_per_minute"`
	} `yaml:"generate"`
	Library struct {
		DataDir               string `yaml:"data_dir"`
		DBPath                string `yaml:"db_path"`
		ExternalTemplatesPath string `yaml:"external_templates_path"`
	} `yaml:"library"`
	StaticDir string `yaml:"static_dir"`
}

// Addr returns host:port for the HTTP server.
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

func defaults() *Config {
	cfg := &Config{}
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = "8080"
	cfg.Generate.TimeoutSeconds = 120
	cfg.Generate.RatePerMinute = 10
	cfg.Library.DataDir = "./data"
	cfg.Library.DBPath = "./data/slidedeck.db"
	return cfg
}

// Load reads the yaml file at path (skipped when path is empty or the file
// does not exist) and applies env overrides on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	envString(&cfg.Server.Host, "HOST")
	envString(&cfg.Server.Port, "PORT")

	envBool(&cfg.TLS.Enabled, "TLS_ENABLED")
	envString(&cfg.TLS.CertFile, "TLS_CERT_FILE")
	envString(&cfg.TLS.KeyFile, "TLS_KEY_FILE")
	envString(&cfg.TLS.MinVersion, "TLS_MIN_VERSION")

	envString(&cfg.Providers.OpenAI.APIKey, "OPENAI_API_KEY")
	envString(&cfg.Providers.OpenAI.BaseURL, "OPENAI_BASE_URL")
	envString(&cfg.Providers.OpenAI.Model, "OPENAI_MODEL")
	envString(&cfg.Providers.OpenRouter.APIKey, "OPENROUTER_API_KEY")
	envString(&cfg.Providers.OpenRouter.Model, "OPENROUTER_MODEL")
	envString(&cfg.Providers.Anthropic.APIKey, "ANTHROPIC_API_KEY")
	envString(&cfg.Providers.Anthropic.Model, "ANTHROPIC_MODEL")
	envString(&cfg.Providers.Google.APIKey, "GOOGLE_API_KEY")
	envString(&cfg.Providers.Google.Model, "GOOGLE_MODEL")

	envInt(&cfg.Generate.TimeoutSeconds, "GENERATE_TIMEOUT_SECONDS")
	envInt(&cfg.Generate.RatePerMinute, "GENERATE_RATE_PER_MINUTE")

	envString(&cfg.Library.DataDir, "DATA_DIR")
	envString(&cfg.Library.DBPath, "DB_PATH")
	envString(&cfg.Library.ExternalTemplatesPath, "EXTERNAL_TEMPLATES_PATH")
	envString(&cfg.StaticDir, "STATIC_DIR")
}

func envString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func envBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
