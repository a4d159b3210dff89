// Package config provides configuration loading for the back-office server.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete server configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Auth   AuthConfig   `yaml:"auth"`
}

// ServerConfig configures the HTTP server and its database.
type ServerConfig struct {
	// Port the HTTP server listens on
	Port int `yaml:"port"`
	// DBPath is the SQLite database file (":memory:" for ephemeral)
	DBPath string `yaml:"db_path"`
	// CORSOrigins is the list of allowed browser origins
	CORSOrigins []string `yaml:"cors_origins"`
}

// AuthConfig configures session tokens.
type AuthConfig struct {
	// Secret signs session tokens. Required in production.
	Secret string `yaml:"secret"`
	// TokenTTL is how long an issued token stays valid
	TokenTTL time.Duration `yaml:"token_ttl"`
}

// Default returns a Config with development defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8080,
			DBPath:      "./data/backoffice.db",
			CORSOrigins: []string{"http://localhost:5173"},
		},
		Auth: AuthConfig{
			Secret:   "dev-secret-change-me",
			TokenTTL: 12 * time.Hour,
		},
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	if c.Server.DBPath == "" {
		return fmt.Errorf("server.db_path is required")
	}
	if c.Auth.Secret == "" {
		return fmt.Errorf("auth.secret is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive")
	}
	return nil
}

// Load reads configuration from a YAML file layered over the defaults.
// An empty path returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
