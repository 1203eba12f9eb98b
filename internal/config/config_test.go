package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/tgidbot/internal/estimator"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// clearEnv blanks variables the loader reads so the host environment cannot
// leak into assertions.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, names := range envAliases {
		for _, name := range names {
			t.Setenv(name, "")
		}
	}
}

func TestLoadConfig_DefaultsWithoutFile(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultLogLevel, cfg.Logger.Level)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, DefaultServerServiceName, cfg.Server.ServiceName)
	assert.Equal(t, DefaultServerVersion, cfg.Server.Version)
	assert.Equal(t, ModeWebhook, cfg.Telegram.Mode)
	assert.Equal(t, DefaultTelegramRequestTimeout, cfg.Telegram.RequestTimeout)
	assert.Empty(t, cfg.Telegram.Token)
	assert.Equal(t, DefaultWelcomeMessage, cfg.Messages.Welcome)
	assert.Equal(t, DefaultHelpMessage, cfg.Messages.Help)
	assert.Empty(t, cfg.Calibration.Points)

	task, ok := cfg.Scheduler.Tasks["webhook_watchdog"]
	require.True(t, ok)
	assert.True(t, task.Enabled)
	assert.Equal(t, DefaultWebhookWatchdogSchedule, task.Schedule)

	task, ok = cfg.Scheduler.Tasks["sql_maintenance"]
	require.True(t, ok)
	assert.True(t, task.Enabled)
	assert.Equal(t, DefaultSQLMaintenanceSchedule, task.Schedule)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	path := writeConfig(t, `
logger:
  level: debug
  json: true
server:
  port: 8081
  read_header_timeout: 3s
telegram:
  mode: polling
  bot_username: idbot
calibration:
  points:
    - user_id: 1000
      created_at_ms: 1400000000000
    - user_id: 2000
      created_at_ms: 1500000000000
messages:
  help: "just send me something"
`)

	clearEnv(t)
	t.Setenv("TELOXIDE_TOKEN", "123:abc")
	t.Setenv("PORT", "9090")
	t.Setenv("BOT_TELEGRAM_REQUEST_TIMEOUT", "45s")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.True(t, cfg.Logger.JSON)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadHeaderTimeout)
	assert.Equal(t, ModePolling, cfg.Telegram.Mode)
	assert.Equal(t, "idbot", cfg.Telegram.BotUsername)
	assert.Equal(t, "123:abc", cfg.Telegram.Token)
	assert.Equal(t, 45*time.Second, cfg.Telegram.RequestTimeout)
	assert.Equal(t, "just send me something", cfg.Messages.Help)
	assert.Equal(t, DefaultWelcomeMessage, cfg.Messages.Welcome)
	assert.Equal(t, []estimator.Point{
		{UserID: 1000, CreatedAtMs: 1400000000000},
		{UserID: 2000, CreatedAtMs: 1500000000000},
	}, cfg.Calibration.Points)
}

func TestLoadConfig_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "bad log level", body: "logger:\n  level: loud\n"},
		{name: "bad mode", body: "telegram:\n  mode: carrier_pigeon\n"},
		{name: "bad webhook url", body: "telegram:\n  webhook_url: not a url\n"},
		{name: "port out of range", body: "server:\n  port: 70000\n"},
		{name: "enabled task without schedule", body: "scheduler:\n  tasks:\n    webhook_watchdog:\n      enabled: true\n      schedule: \"\"\n"},
		{name: "negative calibration id", body: "calibration:\n  points:\n    - {user_id: -5, created_at_ms: 1}\n"},
		{name: "duplicate calibration id", body: "calibration:\n  points:\n    - {user_id: 1, created_at_ms: 1}\n    - {user_id: 1, created_at_ms: 2}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			_, err := LoadConfig(writeConfig(t, tt.body))
			require.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestLoadConfig_UnreadableFile(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "logger: [unclosed"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrValidation)
}
