package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, int64(400), cfg.Billing.DefaultPerDayRate)
	assert.Equal(t, "https://api.thedogapi.com", cfg.DogAPI.BaseURL)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
http:
  port: "9090"
  read_timeout: 2s
log:
  level: debug
billing:
  default_per_day_rate: 550
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("DB_DSN", "postgres://localhost/kennels")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTP.Port)
	assert.Equal(t, 2*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, int64(550), cfg.Billing.DefaultPerDayRate)
	assert.Equal(t, "postgres://localhost/kennels", cfg.DB.DSN)
}

func TestEnvOverrides_RejectsBadRate(t *testing.T) {
	t.Setenv("DEFAULT_PER_DAY_RATE", "-3")

	cfg := Default()
	err := cfg.applyEnvOverrides()
	require.Error(t, err)
}

func TestEnvOverrides_Timeouts(t *testing.T) {
	t.Setenv("HTTP_WRITE_TIMEOUT", "30s")

	cfg := Default()
	require.NoError(t, cfg.applyEnvOverrides())
	assert.Equal(t, 30*time.Second, cfg.HTTP.WriteTimeout)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http: [unclosed"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}
