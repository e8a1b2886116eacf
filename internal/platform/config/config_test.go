package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 18, cfg.MajorityAge)
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.AllowedOrigins())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("USERS_MAJORITY_AGE", "21")
	t.Setenv("USERS_STORE", "Postgres")
	t.Setenv("USERS_DATABASE_URL", "postgres://localhost/users")
	t.Setenv("USERS_LOG_LEVEL", "debug")
	t.Setenv("USERS_PORT", "9090")
	t.Setenv("USERS_CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 21, cfg.MajorityAge)
	assert.Equal(t, StorePostgres, cfg.Store)
	assert.Equal(t, "postgres://localhost/users", cfg.DatabaseURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins())
}

func TestLoadPortOverride(t *testing.T) {
	t.Setenv("USERS_PORT", "9090")
	t.Setenv("PORT", "7000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.Port)
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown store":        {"USERS_STORE": "redis"},
		"negative age":         {"USERS_MAJORITY_AGE": "-1"},
		"postgres without url": {"USERS_STORE": "postgres"},
		"firestore without id": {"USERS_STORE": "firestore"},
		"bad log level":        {"USERS_LOG_LEVEL": "verbose"},
		"non numeric port":     {"USERS_PORT": "http"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("PORT", "")
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
