package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(map[string]string{"JWT_SECRET": "s3cret"})
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "./data/tallyup.db", cfg.DBPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "USD", cfg.DefaultCurrency)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestParse_Overrides(t *testing.T) {
	cfg, err := Parse(map[string]string{
		"JWT_SECRET":       "s3cret",
		"PORT":             "9090",
		"TOKEN_TTL":        "90m",
		"DEFAULT_CURRENCY": " eur ",
	})
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 90*time.Minute, cfg.TokenTTL)
	assert.Equal(t, "EUR", cfg.DefaultCurrency)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
	}{
		{name: "missing secret", vars: map[string]string{}},
		{name: "bad port", vars: map[string]string{"JWT_SECRET": "x", "PORT": "70000"}},
		{name: "bad ttl", vars: map[string]string{"JWT_SECRET": "x", "TOKEN_TTL": "-1h"}},
		{name: "unknown currency", vars: map[string]string{"JWT_SECRET": "x", "DEFAULT_CURRENCY": "XYZ"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.vars)
			assert.Error(t, err)
		})
	}
}

func TestLoad_DotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("JWT_SECRET=from-file\nDB_PATH=/tmp/x.db\n"), 0o600))

	t.Setenv("JWT_SECRET", "")
	require.NoError(t, os.Unsetenv("JWT_SECRET"))
	t.Setenv("DB_PATH", "/from/env.db")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.JWTSecret)
	assert.Equal(t, "/from/env.db", cfg.DBPath)
}

func TestLoad_MissingFileIsFine(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, "env-secret", cfg.JWTSecret)
}
