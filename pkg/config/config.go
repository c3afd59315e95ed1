package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/platinummonkey/taskd/pkg/auth"
	"github.com/platinummonkey/taskd/pkg/observability"
)

// Config holds all application configuration
type Config struct {
	Server        ServerConfig
	Auth          AuthConfig
	Observability ObservabilityConfig
	Seed          SeedConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// Ops server (separate port for probes and metrics)
	OpsPort string

	Environment  string
	CORSOrigins  []string
	MaxBodyBytes int64
}

// AuthConfig holds credential and session settings
type AuthConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

// ObservabilityConfig holds logging and metrics settings
type ObservabilityConfig struct {
	LogLevel       observability.LogLevel
	MetricsEnabled bool
}

// SeedConfig optionally creates one account at startup. Useful for
// demos against the in-memory store, which starts empty on every boot.
type SeedConfig struct {
	AdminEmail    string
	AdminPassword string
	AdminName     string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("TASKD_HOST", "0.0.0.0"),
			Port:            getEnv("TASKD_PORT", "8080"),
			ReadTimeout:     getEnvDuration("TASKD_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvDuration("TASKD_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:     getEnvDuration("TASKD_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvDuration("TASKD_SHUTDOWN_TIMEOUT", 30*time.Second),
			OpsPort:         getEnv("TASKD_OPS_PORT", "9090"),
			Environment:     getEnv("TASKD_ENV", "development"),
			CORSOrigins:     getEnvList("TASKD_CORS_ORIGINS", []string{"*"}),
			MaxBodyBytes:    getEnvInt64("TASKD_MAX_BODY_BYTES", 1<<20),
		},
		Auth: AuthConfig{
			JWTSecret:  getEnv("TASKD_JWT_SECRET", ""),
			TokenTTL:   getEnvDuration("TASKD_TOKEN_TTL", auth.DefaultTokenTTL),
			BcryptCost: getEnvInt("TASKD_BCRYPT_COST", auth.DefaultBcryptCost),
		},
		Observability: ObservabilityConfig{
			LogLevel:       parseLogLevel(getEnv("TASKD_LOG_LEVEL", "info")),
			MetricsEnabled: getEnvBool("TASKD_METRICS_ENABLED", true),
		},
		Seed: SeedConfig{
			AdminEmail:    getEnv("TASKD_SEED_ADMIN_EMAIL", ""),
			AdminPassword: getEnv("TASKD_SEED_ADMIN_PASSWORD", ""),
			AdminName:     getEnv("TASKD_SEED_ADMIN_NAME", "Admin"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if c.Server.OpsPort == "" {
		return fmt.Errorf("ops port is required")
	}
	if c.Server.Port == c.Server.OpsPort {
		return fmt.Errorf("server port and ops port must be different")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body bytes must be positive")
	}

	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("token TTL must be positive")
	}
	// The well-known fallback secret is for development only
	if c.IsProduction() && (c.Auth.JWTSecret == "" || c.Auth.JWTSecret == auth.DevSecret) {
		return fmt.Errorf("a real JWT secret is required in production")
	}

	if c.Seed.AdminEmail != "" && c.Seed.AdminPassword == "" {
		return fmt.Errorf("seed admin password is required when a seed admin email is set")
	}

	return nil
}

// IsProduction reports whether the configured environment is production
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Environment, "production")
}

// Addr returns the API listen address
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// OpsAddr returns the ops listen address
func (c *ServerConfig) OpsAddr() string {
	return c.Host + ":" + c.OpsPort
}

// parseLogLevel parses a log level string
func parseLogLevel(level string) observability.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return observability.DebugLevel
	case "info":
		return observability.InfoLevel
	case "warn", "warning":
		return observability.WarnLevel
	case "error":
		return observability.ErrorLevel
	default:
		return observability.InfoLevel
	}
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvInt64 returns an int64 environment variable or a default
func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvList returns a comma-separated environment variable or a default
func getEnvList(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}
