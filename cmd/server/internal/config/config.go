package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the unified configuration for the contribution service.
// Values come from an optional YAML file, with environment variables
// taking precedence over file values.
type Config struct {
	Server ServerConfig `yaml:"server"`
	GitHub GitHubConfig `yaml:"github"`
	Cache  CacheConfig  `yaml:"cache"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Env  string `yaml:"env"`  // dev, development, staging, production
	Port string `yaml:"port"`
}

// GitHubConfig holds settings for the outbound GraphQL call.
// An empty Token is a valid, expected state: the service then serves
// synthetic data without attempting any call.
type GitHubConfig struct {
	Token          string `yaml:"token"`
	GraphQLURL     string `yaml:"graphql_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// CacheConfig holds settings for the per-(username, year) result cache.
type CacheConfig struct {
	TTLMinutes int `yaml:"ttl_minutes"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // empty means stdout
}

const (
	defaultGraphQLURL     = "https://api.github.com/graphql"
	defaultTimeoutSeconds = 10
	defaultTTLMinutes     = 30
)

// LoadConfig builds the configuration. When path is non-empty the YAML
// file is read first; environment variables then override file values.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Env:  "dev",
			Port: "8000",
		},
		GitHub: GitHubConfig{
			GraphQLURL:     defaultGraphQLURL,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Cache: CacheConfig{
			TTLMinutes: defaultTTLMinutes,
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	cfg.Server.Env = getEnv("ENV", cfg.Server.Env)
	cfg.Server.Port = getEnv("PORT", cfg.Server.Port)
	cfg.GitHub.Token = getEnv("GITHUB_TOKEN", cfg.GitHub.Token)
	cfg.GitHub.GraphQLURL = getEnv("GITHUB_GRAPHQL_URL", cfg.GitHub.GraphQLURL)
	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.File = getEnv("LOG_FILE", cfg.Log.File)

	if v := os.Getenv("GITHUB_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.GitHub.TimeoutSeconds = n
		}
	}
	if v := os.Getenv("CACHE_TTL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Cache.TTLMinutes = n
		}
	}
}

// ValidateConfig checks the configuration and reports every violation at once.
func ValidateConfig(cfg *Config) error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Server.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid PORT value: %s (must be 1-65535)", cfg.Server.Port))
	}

	validEnvs := map[string]bool{"dev": true, "development": true, "staging": true, "production": true}
	if !validEnvs[cfg.Server.Env] {
		errors = append(errors, fmt.Sprintf("invalid ENV: %s (must be: dev, development, staging, production)", cfg.Server.Env))
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[cfg.Log.Level] {
		errors = append(errors, fmt.Sprintf("invalid LOG_LEVEL: %s (must be: debug, info, warn, error)", cfg.Log.Level))
	}

	if cfg.GitHub.GraphQLURL == "" {
		errors = append(errors, "github graphql_url cannot be empty")
	}
	if cfg.GitHub.TimeoutSeconds <= 0 {
		errors = append(errors, fmt.Sprintf("invalid github timeout_seconds: %d (must be > 0)", cfg.GitHub.TimeoutSeconds))
	}
	if cfg.Cache.TTLMinutes <= 0 {
		errors = append(errors, fmt.Sprintf("invalid cache ttl_minutes: %d (must be > 0)", cfg.Cache.TTLMinutes))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}
	return nil
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// GetServerAddr returns the listen address.
func (c *Config) GetServerAddr() string {
	return ":" + c.Server.Port
}

// PrintConfig renders the configuration with secrets masked.
func (c *Config) PrintConfig() string {
	return fmt.Sprintf(`Configuration Loaded:
  Environment: %s
  Server Port: %s
  GitHub:
    - GraphQL URL: %s
    - Token: %s
    - Timeout: %ds
  Cache:
    - TTL: %dm
  Logging:
    - Level: %s
    - File: %s`,
		c.Server.Env,
		c.Server.Port,
		c.GitHub.GraphQLURL,
		maskSecret(c.GitHub.Token),
		c.GitHub.TimeoutSeconds,
		c.Cache.TTLMinutes,
		c.Log.Level,
		valueOr(c.Log.File, "<stdout>"),
	)
}

// getEnv returns the environment variable value, or the fallback when unset.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// maskSecret hides sensitive values in printed output.
func maskSecret(secret string) string {
	if secret == "" {
		return "<not set>"
	}
	if len(secret) <= 8 {
		return "***"
	}
	return secret[:4] + "***" + secret[len(secret)-4:]
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
