package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("API_KEY", "test-secret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, 100, cfg.RateLimit.Requests)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window())
	assert.Equal(t, "dev", cfg.App.Environment)
	assert.Contains(t, cfg.Database.DSN(), "sslmode=disable")
	assert.Contains(t, cfg.Database.DSN(), "pool_max_conns=10")
}

func TestLoadConfig_FromFile(t *testing.T) {
	t.Setenv("API_KEY", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  address: ":9090"
auth:
  api_key: "file-secret"
rate_limit:
  requests: 5
  window_seconds: 10
cors:
  allowed_origins:
    - "http://localhost:5173"
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTP.Address)
	assert.Equal(t, "file-secret", cfg.Auth.APIKey)
	assert.Equal(t, 5, cfg.RateLimit.Requests)
	assert.Equal(t, 10*time.Second, cfg.RateLimit.Window())
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORS.AllowedOrigins)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/tickets")
	t.Setenv("API_KEY", "env-secret")
	t.Setenv("CORS_ORIGINS", "http://a.example, http://b.example")
	t.Setenv("RATE_LIMIT", "42")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.HTTP.Address)
	assert.Equal(t, "postgres://u:p@db:5432/tickets", cfg.Database.DSN())
	assert.Equal(t, "env-secret", cfg.Auth.APIKey)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 42, cfg.RateLimit.Requests)
}

func TestLoadConfig_RequiresKey(t *testing.T) {
	// a blank key would reject every request on the protected routes,
	// so loading must fail in any environment
	for _, env := range []string{"dev", "production"} {
		t.Run(env, func(t *testing.T) {
			t.Setenv("API_KEY", "")
			t.Setenv("ENVIRONMENT", env)

			_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
			assert.Error(t, err)
		})
	}
}
