package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv clears name for the duration of the test.
func unsetEnv(t *testing.T, name string) {
	t.Helper()
	t.Setenv(name, "")
	require.NoError(t, os.Unsetenv(name))
}

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("WEBAPP_URL", "https://forms.example.com")
	for _, name := range []string{
		"PORT", "ADMIN_TELEGRAM_IDS", "LOG_LEVEL", "ENVIRONMENT",
		"CRON_SPEC_DAILY_DIGEST", "SUPPORT_CONTACT", "PARTNERS_URL", "ADMIN_LIST_LIMIT",
	} {
		unsetEnv(t, name)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "123:abc", cfg.BotToken)
	assert.Equal(t, "https://forms.example.com", cfg.WebAppURL)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, []int64{848907805}, cfg.AdminTelegramIDs)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "0 10 * * *", cfg.CronSpecDailyDigest)
	assert.Equal(t, "@astafeva_alisiia", cfg.SupportContact)
	assert.Equal(t, "https://i.moscow/lomonosov_resident", cfg.PartnersURL)
	assert.Equal(t, 10, cfg.AdminListLimit)
}

func TestLoad_MissingMandatory(t *testing.T) {
	tests := []struct {
		name    string
		unset   string
		message string
	}{
		{"no token", "BOT_TOKEN", "BOT_TOKEN is not set"},
		{"no webapp url", "WEBAPP_URL", "WEBAPP_URL is not set"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			unsetEnv(t, tt.unset)

			cfg, err := Load()

			assert.Nil(t, cfg)
			assert.EqualError(t, err, tt.message)
		})
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "8080")
	t.Setenv("ADMIN_TELEGRAM_IDS", "1, 2,3,")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("ENVIRONMENT", "Production")
	t.Setenv("CRON_SPEC_DAILY_DIGEST", "")
	t.Setenv("ADMIN_LIST_LIMIT", "25")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, []int64{1, 2, 3}, cfg.AdminTelegramIDs)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "production", cfg.Environment)
	assert.Empty(t, cfg.CronSpecDailyDigest)
	assert.Equal(t, 25, cfg.AdminListLimit)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"port", "PORT", "http"},
		{"admin ids", "ADMIN_TELEGRAM_IDS", "12,abc"},
		{"list limit", "ADMIN_LIST_LIMIT", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}
