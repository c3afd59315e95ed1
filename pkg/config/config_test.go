package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/taskd/pkg/auth"
	"github.com/platinummonkey/taskd/pkg/observability"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "9090", cfg.Server.OpsPort)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, auth.DefaultTokenTTL, cfg.Auth.TokenTTL)
	assert.Equal(t, auth.DefaultBcryptCost, cfg.Auth.BcryptCost)
	assert.Equal(t, observability.InfoLevel, cfg.Observability.LogLevel)
	assert.True(t, cfg.Observability.MetricsEnabled)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("TASKD_PORT", "3000")
	t.Setenv("TASKD_TOKEN_TTL", "1h")
	t.Setenv("TASKD_LOG_LEVEL", "debug")
	t.Setenv("TASKD_METRICS_ENABLED", "false")
	t.Setenv("TASKD_CORS_ORIGINS", "http://a.example, http://b.example")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, observability.DebugLevel, cfg.Observability.LogLevel)
	assert.False(t, cfg.Observability.MetricsEnabled)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.Server.CORSOrigins)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{
				Port:         "8080",
				OpsPort:      "9090",
				Environment:  "development",
				MaxBodyBytes: 1 << 20,
			},
			Auth: AuthConfig{TokenTTL: time.Hour},
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("port collision", func(t *testing.T) {
		cfg := valid()
		cfg.Server.OpsPort = cfg.Server.Port
		assert.Error(t, cfg.Validate())
	})

	t.Run("production refuses the dev secret", func(t *testing.T) {
		cfg := valid()
		cfg.Server.Environment = "production"

		cfg.Auth.JWTSecret = ""
		assert.Error(t, cfg.Validate())

		cfg.Auth.JWTSecret = auth.DevSecret
		assert.Error(t, cfg.Validate())

		cfg.Auth.JWTSecret = "an-actual-secret"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("seed email without password", func(t *testing.T) {
		cfg := valid()
		cfg.Seed.AdminEmail = "admin@x.com"
		assert.Error(t, cfg.Validate())

		cfg.Seed.AdminPassword = "p"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("non-positive token TTL", func(t *testing.T) {
		cfg := valid()
		cfg.Auth.TokenTTL = 0
		assert.Error(t, cfg.Validate())
	})
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, observability.DebugLevel, parseLogLevel("debug"))
	assert.Equal(t, observability.WarnLevel, parseLogLevel("WARNING"))
	assert.Equal(t, observability.ErrorLevel, parseLogLevel("error"))
	assert.Equal(t, observability.InfoLevel, parseLogLevel("nonsense"))
}
