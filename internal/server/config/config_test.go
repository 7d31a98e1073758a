package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args []string) {
	t.Helper()
	old := os.Args
	os.Args = append([]string{old[0]}, args...)
	t.Cleanup(func() { os.Args = old })
}

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, ":8080", cfg.EndpointAddr)
	assert.Equal(t, AdapterSQLite, cfg.DatabaseAdapter)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenValidityDuration)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenValidityDuration)
	assert.Empty(t, cfg.SecretKey, "secret must not have a default")
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	withArgs(t, nil)

	_, err := LoadConfig()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingSecretKey))
}

func TestLoadConfig_EnvOverlay(t *testing.T) {
	withArgs(t, nil)
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("ADDRESS", ":9090")
	t.Setenv("DATABASE_ADAPTER", "postgres")
	t.Setenv("DATABASE_DSN", "postgres://localhost/opennote")
	t.Setenv("ACCESS_TOKEN_TTL", "30m")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.SecretKey)
	assert.Equal(t, ":9090", cfg.EndpointAddr)
	assert.Equal(t, AdapterPostgres, cfg.DatabaseAdapter)
	assert.Equal(t, "postgres://localhost/opennote", cfg.DatabaseDSN)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenValidityDuration)
	// untouched fields keep their defaults
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenValidityDuration)
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	withArgs(t, []string{"-a", ":7070", "-t", "5"})
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("ADDRESS", ":9090")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.EndpointAddr)
	assert.Equal(t, 5*time.Minute, cfg.AccessTokenValidityDuration)
}

func TestLoadConfig_UnknownAdapter(t *testing.T) {
	withArgs(t, nil)
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("DATABASE_ADAPTER", "oracle")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown database adapter")
}

func TestParseJson(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.json")
	payload, err := json.Marshal(map[string]any{
		"endpoint_addr":                   ":6060",
		"database_adapter":                "postgres",
		"database_dsn":                    "postgres://db/opennote",
		"secret_key":                      "json-secret",
		"access_token_validity_duration":  "20m",
		"refresh_token_validity_duration": "48h",
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(file, payload, 0o600))

	withArgs(t, []string{"-config", file})

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, ":6060", cfg.EndpointAddr)
	assert.Equal(t, "json-secret", cfg.SecretKey)
	assert.Equal(t, 20*time.Minute, cfg.AccessTokenValidityDuration)
	assert.Equal(t, 48*time.Hour, cfg.RefreshTokenValidityDuration)
}

func TestParseJson_NoFile(t *testing.T) {
	withArgs(t, nil)

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, ":8080", cfg.EndpointAddr)
}
