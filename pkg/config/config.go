package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the application configuration for tools built on the SDK. It
// loads from an optional YAML file, then environment variables (including
// a .env file) override individual fields.
type Config struct {
	API struct {
		BaseURL        string `yaml:"base_url"`
		AccessToken    string `yaml:"access_token"`
		PageSize       int    `yaml:"page_size"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"api"`
	Log struct {
		Level      string `yaml:"level"`
		File       string `yaml:"file"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
		MaxAgeDays int    `yaml:"max_age_days"`
	} `yaml:"log"`
}

// Environment variable names recognized by Load.
const (
	EnvBaseURL     = "ALGOBULLS_API_URL"
	EnvAccessToken = "ALGOBULLS_ACCESS_TOKEN"
	EnvLogLevel    = "ALGOBULLS_LOG_LEVEL"
	EnvLogFile     = "ALGOBULLS_LOG_FILE"
	EnvPageSize    = "ALGOBULLS_PAGE_SIZE"
)

// Load reads configuration. path may be empty or point to a missing file;
// environment variables and defaults still apply then.
func Load(path string) (*Config, error) {
	// Best effort; running without a .env file is normal.
	_ = godotenv.Load()

	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, errors.Wrapf(err, "parse config file %s", path)
			}
		case os.IsNotExist(err):
			// fall through to env + defaults
		default:
			return nil, errors.Wrapf(err, "read config file %s", path)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv(EnvAccessToken); v != "" {
		c.API.AccessToken = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv(EnvPageSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.API.PageSize = n
		}
	}
}

func (c *Config) applyDefaults() {
	if c.API.TimeoutSeconds <= 0 {
		c.API.TimeoutSeconds = 30
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.MaxSizeMB <= 0 {
		c.Log.MaxSizeMB = 100
	}
	if c.Log.MaxBackups <= 0 {
		c.Log.MaxBackups = 3
	}
	if c.Log.MaxAgeDays <= 0 {
		c.Log.MaxAgeDays = 7
	}
}
