package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_FileAndDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9090"
database:
  driver: memory
jwt:
  secret: s3cret
redis:
  stats_ttl: 2m
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, 2*time.Minute, cfg.Redis.StatsTTL)
	assert.Equal(t, "24h", cfg.JWT.AccessTokenExpiration)
	assert.Equal(t, 256, cfg.Realtime.SendBuffer)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, "no-reply@alumnihub.app", cfg.SMTP.FromEmail)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "jwt:\n  secret: from-file\n")

	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("SERVER_READ_TIMEOUT", "3s")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REALTIME_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "465")
	t.Setenv("SMTP_USE_TLS", "true")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Realtime.AllowedOrigins)
	assert.Equal(t, "smtp.example.com", cfg.SMTP.Host)
	assert.Equal(t, 465, cfg.SMTP.Port)
	assert.True(t, cfg.SMTP.UseTLS)
}

func TestLoadConfig_Validation(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "database:\n  driver: memory\n"))
		require.Error(t, err)
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "database:\n  driver: mysql\njwt:\n  secret: x\n"))
		require.Error(t, err)
	})

	t.Run("smtp host without sender", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "jwt:\n  secret: x\nsmtp:\n  host: smtp.example.com\n  from_email: \"\"\n"))
		require.Error(t, err)
	})

	t.Run("bad env integer", func(t *testing.T) {
		t.Setenv("DB_MAX_OPEN_CONNS", "many")
		_, err := LoadConfig(writeConfig(t, "jwt:\n  secret: x\n"))
		require.Error(t, err)
	})
}
