package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Wiki    WikiConfig
	Fetch   FetchConfig
	Load    LoadConfig
	Logging LogConfig
}

// WikiConfig describes the wiki the data pages are scraped from.
type WikiConfig struct {
	BaseURL      string `envconfig:"WIKI_BASE_URL" default:"https://wiki.supercombo.gg"`
	Game         string `envconfig:"WIKI_GAME" default:"Street_Fighter_6"`
	DefaultImage string `envconfig:"WIKI_DEFAULT_IMAGE" default:"https://wiki.supercombo.gg/images/thumb/4/42/SF6_Logo.png/300px-SF6_Logo.png"`
}

// FetchConfig holds outbound HTTP configuration.
type FetchConfig struct {
	Timeout   time.Duration `envconfig:"FETCH_TIMEOUT" default:"30s"`
	Retries   int           `envconfig:"FETCH_RETRIES" default:"0"`
	RateLimit float64       `envconfig:"FETCH_RATE_LIMIT_RPS" default:"0"`
	UserAgent string        `envconfig:"FETCH_USER_AGENT" default:"framedata/1.0"`
}

// LoadConfig holds roster load configuration.
type LoadConfig struct {
	Concurrency int    `envconfig:"LOAD_CONCURRENCY" default:"0"`
	RosterFile  string `envconfig:"ROSTER_FILE"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Wiki: WikiConfig{
			BaseURL:      "https://wiki.supercombo.gg",
			Game:         "Street_Fighter_6",
			DefaultImage: "https://wiki.supercombo.gg/images/thumb/4/42/SF6_Logo.png/300px-SF6_Logo.png",
		},
		Fetch: FetchConfig{
			Timeout:   30 * time.Second,
			UserAgent: "framedata/1.0",
		},
		Logging: LogConfig{
			Level: "info",
		},
	}
}

// Validate rejects values the loader cannot work with.
func (c *Config) Validate() error {
	if c.Wiki.BaseURL == "" {
		return fmt.Errorf("invalid config: WIKI_BASE_URL is empty")
	}
	if c.Wiki.Game == "" {
		return fmt.Errorf("invalid config: WIKI_GAME is empty")
	}
	if c.Fetch.Timeout <= 0 {
		return fmt.Errorf("invalid config: FETCH_TIMEOUT must be positive")
	}
	if c.Fetch.Retries < 0 || c.Fetch.Retries > 10 {
		return fmt.Errorf("invalid config: FETCH_RETRIES must be between 0 and 10")
	}
	if c.Fetch.RateLimit < 0 {
		return fmt.Errorf("invalid config: FETCH_RATE_LIMIT_RPS cannot be negative")
	}
	if c.Load.Concurrency < 0 {
		return fmt.Errorf("invalid config: LOAD_CONCURRENCY cannot be negative")
	}
	return nil
}
