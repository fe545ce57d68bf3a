package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		setEnv       bool
		envValue     string
		expected     string
	}{
		{
			name:         "env variable set",
			key:          "TEST_KEY",
			defaultValue: "default",
			setEnv:       true,
			envValue:     "custom",
			expected:     "custom",
		},
		{
			name:         "env variable not set",
			key:          "TEST_KEY_NOT_SET",
			defaultValue: "default",
			setEnv:       false,
			expected:     "default",
		},
		{
			name:         "env variable empty",
			key:          "TEST_KEY_EMPTY",
			defaultValue: "default",
			setEnv:       true,
			envValue:     "",
			expected:     "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				t.Setenv(tt.key, tt.envValue)
			}

			result := getEnv(tt.key, tt.defaultValue)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "testuser",
			Password: "testpass",
			Name:     "testdb",
			SSLMode:  "require",
		},
	}

	dsn := cfg.DSN()
	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=require"
	assert.Equal(t, expected, dsn)
}

// clearEnv unsets every variable Load reads for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"BOT_TOKEN", "DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD", "DB_SSLMODE",
		"CONTENT_FILE", "SEED_FILE", "MIGRATIONS_PATH", "LOG_LEVEL", "STATE_TTL",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_WithDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "test_token")
	t.Setenv("DB_PASSWORD", "test_db_password")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "test_token", cfg.BotToken)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "wordtrainer", cfg.Database.Name)
	assert.Equal(t, "wordtrainer", cfg.Database.User)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "file://migrations", cfg.MigrationsPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 24*time.Hour, cfg.StateTTL)
	assert.Empty(t, cfg.ContentFile)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "test_token")
	t.Setenv("DB_PASSWORD", "test_db_password")
	t.Setenv("DB_HOST", "db")
	t.Setenv("STATE_TTL", "30m")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SEED_FILE", "data/words.json")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 30*time.Minute, cfg.StateTTL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "data/words.json", cfg.SeedFile)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		errContains string
	}{
		{
			name:        "missing bot token",
			env:         map[string]string{"DB_PASSWORD": "secret"},
			errContains: "BOT_TOKEN",
		},
		{
			name:        "missing db password",
			env:         map[string]string{"BOT_TOKEN": "token"},
			errContains: "DB_PASSWORD",
		},
		{
			name:        "bad state ttl",
			env:         map[string]string{"BOT_TOKEN": "token", "DB_PASSWORD": "secret", "STATE_TTL": "soon"},
			errContains: "STATE_TTL",
		},
		{
			name:        "negative state ttl",
			env:         map[string]string{"BOT_TOKEN": "token", "DB_PASSWORD": "secret", "STATE_TTL": "-1h"},
			errContains: "STATE_TTL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			assert.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestLoadDatabase_NoBotToken(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_PASSWORD", "secret")

	cfg, err := LoadDatabase()
	require.NoError(t, err)
	assert.Empty(t, cfg.BotToken)
	assert.Equal(t, "secret", cfg.Database.Password)
}
