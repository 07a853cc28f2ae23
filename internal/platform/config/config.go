// Copyright (c) 2026 Velora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (API client, token store) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// developmentBaseURL is the storefront API address assumed when no explicit
// base URL is configured in development mode.
const developmentBaseURL = "http://localhost:8000"

// # Configuration Schema

// Config holds all runtime configuration for the Velora storefront client.
type Config struct {

	// Runtime mode
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Remote storefront API. Empty means "use the per-mode default".
	APIBaseURL string `env:"API_BASE_URL"`

	// RequestTimeout bounds every single HTTP attempt against the API.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`

	// MaxRetries caps additional attempts after a transient failure.
	// Retries never apply to 4xx application errors.
	MaxRetries int `env:"MAX_RETRIES" envDefault:"2"`

	// RequestsPerSecond throttles outbound API traffic. Zero disables it.
	RequestsPerSecond float64 `env:"REQUESTS_PER_SECOND" envDefault:"0"`

	// TokenPath is the filesystem location of the persisted token pair.
	// Empty means "use the OS user config directory".
	TokenPath string `env:"TOKEN_PATH"`

	// RedisURL, when set, switches the token store to the shared Redis
	// backend (kiosk / shared-terminal deployments).
	RedisURL string `env:"REDIS_URL"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the client is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the client is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// BaseURL resolves the effective storefront API base URL.
//
// An explicit API_BASE_URL always wins. Otherwise development mode falls back
// to the local API server; any other mode has no safe default and must be
// configured explicitly.
func (c *Config) BaseURL() (string, error) {
	if c.APIBaseURL != "" {
		return c.APIBaseURL, nil
	}
	if c.IsDevelopment() {
		return developmentBaseURL, nil
	}
	return "", fmt.Errorf("config: API_BASE_URL is required outside development mode")
}

// TokenFilePath resolves the effective path of the token pair file.
//
// Defaults to <user-config-dir>/velora/tokens.json when TOKEN_PATH is unset.
func (c *Config) TokenFilePath() (string, error) {
	if c.TokenPath != "" {
		return c.TokenPath, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot resolve user config dir: %w", err)
	}
	return filepath.Join(dir, "velora", "tokens.json"), nil
}
