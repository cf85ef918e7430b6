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
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))
	return dir
}

func TestLoadConfig(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: "9090"
  mode: debug
database:
  driver: postgres
  host: db
  port: 5432
jwt:
  secret: test-secret
  access_expire_minutes: 15
  refresh_expire_hours: 48
cors:
  allowed_origins: ["http://a.example"]
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessExpire)
	assert.Equal(t, 48*time.Hour, cfg.JWT.RefreshExpire)
	assert.Equal(t, []string{"http://a.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 6000, cfg.RateLimit.MaxRequests)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	dir := writeConfig(t, `
jwt:
  secret: from-file
`)
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("DATABASE_HOST", "env-host")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, "env-host", cfg.Database.Host)
	assert.Equal(t, "mysql", cfg.Database.Driver)
}

func TestLoadConfigRejectsShortSecretInRelease(t *testing.T) {
	dir := writeConfig(t, `
server:
  mode: release
jwt:
  secret: short
`)
	_, err := LoadConfig(dir)
	assert.Error(t, err)
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	dir := writeConfig(t, `
database:
  driver: oracle
jwt:
  secret: test-secret
`)
	_, err := LoadConfig(dir)
	assert.Error(t, err)
}

func TestLoadConfigIgnoresFlagOnlyFields(t *testing.T) {
	dir := writeConfig(t, `
forcemigrate: true
jwt:
  secret: test-secret
`)
	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.False(t, cfg.ForceMigrate)
}
