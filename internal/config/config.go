// Package config holds the single application configuration struct.
// It is populated once at process start and passed into the gateway
// components; nothing reads the environment after startup.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	envcfg "startpage/pkg/config"
)

// Defaults.
const (
	DefaultListenPort     = 5001
	DefaultFeedURL        = "https://hnrss.org/frontpage"
	DefaultFeedLimit      = 20
	DefaultQuoteWorkers   = 4
	defaultUpstreamBound  = 5 * time.Second
	defaultQuoteBound     = 5 * time.Second
	defaultRequestTimeout = 30 * time.Second
)

// Config enumerates every recognized option.
type Config struct {
	// ListenPort is the HTTP listen port for the API server.
	ListenPort int `yaml:"listen_port"`

	// FeedURL is the default feed address used by /api/news when the
	// caller supplies no url parameter.
	FeedURL string `yaml:"feed_url"`

	// UpstreamTimeout bounds each outbound call (weather, feed,
	// article, per-symbol quote history).
	UpstreamTimeout time.Duration `yaml:"upstream_timeout"`

	// QuoteTimeout bounds the resolution of one ticker symbol.
	QuoteTimeout time.Duration `yaml:"quote_timeout"`

	// QuoteWorkers caps concurrent ticker resolutions within one
	// /api/stocks request.
	QuoteWorkers int `yaml:"quote_workers"`

	// RequestTimeout bounds one inbound dashboard request end to end.
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// StaticDir is the directory served at / (index, favicon, assets).
	StaticDir string `yaml:"static_dir"`

	// LogLevel selects slog verbosity ("debug", "info", "warn", "error").
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ListenPort:      DefaultListenPort,
		FeedURL:         DefaultFeedURL,
		UpstreamTimeout: defaultUpstreamBound,
		QuoteTimeout:    defaultQuoteBound,
		QuoteWorkers:    DefaultQuoteWorkers,
		RequestTimeout:  defaultRequestTimeout,
		StaticDir:       "static",
		LogLevel:        "info",
	}
}

// Load builds the configuration in three layers: built-in defaults,
// then an optional YAML file named by DASHBOARD_CONFIG, then
// environment variable overrides.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("DASHBOARD_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.ListenPort = envcfg.GetEnvInt("PORT", cfg.ListenPort)
	cfg.FeedURL = envcfg.GetEnvString("NEWS_RSS_URL", cfg.FeedURL)
	cfg.UpstreamTimeout = envcfg.GetEnvDuration("UPSTREAM_TIMEOUT", cfg.UpstreamTimeout)
	cfg.QuoteTimeout = envcfg.GetEnvDuration("QUOTE_TIMEOUT", cfg.QuoteTimeout)
	cfg.QuoteWorkers = envcfg.GetEnvInt("QUOTE_WORKERS", cfg.QuoteWorkers)
	cfg.RequestTimeout = envcfg.GetEnvDuration("REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.StaticDir = envcfg.GetEnvString("STATIC_DIR", cfg.StaticDir)
	cfg.LogLevel = envcfg.GetEnvString("LOG_LEVEL", cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects configurations that cannot serve requests.
func (c Config) Validate() error {
	if c.ListenPort < 1 || c.ListenPort > 65535 {
		return fmt.Errorf("listen port must be between 1 and 65535, got %d", c.ListenPort)
	}
	if c.FeedURL == "" {
		return fmt.Errorf("default feed URL must not be empty")
	}
	if c.UpstreamTimeout <= 0 {
		return fmt.Errorf("upstream timeout must be positive, got %v", c.UpstreamTimeout)
	}
	if c.QuoteTimeout <= 0 {
		return fmt.Errorf("quote timeout must be positive, got %v", c.QuoteTimeout)
	}
	if c.QuoteWorkers < 1 || c.QuoteWorkers > 50 {
		return fmt.Errorf("quote workers must be between 1 and 50, got %d", c.QuoteWorkers)
	}
	return nil
}

// Addr returns the listen address for net/http.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.ListenPort)
}
