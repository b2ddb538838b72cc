package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SESSION_STORE", "")
	t.Setenv("API_BASE_URL", "")
	t.Setenv("SESSION_TERMINAL_ID", "till-1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StoreFile, cfg.Session.Store)
	assert.Equal(t, "till-1", cfg.Session.TerminalID)
	assert.Equal(t, "http://localhost:8080", cfg.Backend.BaseURL)
	assert.Equal(t, "/login", cfg.Routes.LoginPath)
	assert.Equal(t, "/unauthorized", cfg.Routes.UnauthorizedPath)
	assert.Equal(t, "/tables", cfg.Routes.LandingPath)
	assert.NotEmpty(t, cfg.Session.FilePath)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SESSION_STORE", "Redis")
	t.Setenv("API_BASE_URL", "https://api.example.com/")
	t.Setenv("API_TIMEOUT_SECONDS", "3")
	t.Setenv("APP_HOST", "0.0.0.0")
	t.Setenv("APP_PORT", "9000")
	t.Setenv("REDIS_DB", "2")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StoreRedis, cfg.Session.Store)
	assert.Equal(t, "https://api.example.com", cfg.Backend.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Backend.Timeout())
	assert.Equal(t, "0.0.0.0:9000", cfg.App.Addr())
	assert.Equal(t, 2, cfg.Redis.DB)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("SESSION_STORE", "memcached")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("SESSION_STORE", StorePostgres)
	t.Setenv("POSTGRES_DSN", "")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("SESSION_STORE", StoreFile)
	t.Setenv("REDIS_DB", "one")
	_, err = Load()
	assert.Error(t, err)
}

func TestTimeoutFallbacks(t *testing.T) {
	assert.Equal(t, time.Duration(0), AppConfig{}.RequestTimeout())
	assert.Equal(t, 10*time.Second, BackendConfig{}.Timeout())
}
