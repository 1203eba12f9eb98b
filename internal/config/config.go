// Package config manages application configuration from defaults, an
// optional YAML file and BOT_* environment variables.
package config

import (
	"errors"
	"time"

	"github.com/edgard/tgidbot/internal/estimator"
)

// ErrValidation wraps every configuration validation failure.
var ErrValidation = errors.New("validation error")

// Update source modes.
const (
	ModeWebhook = "webhook"
	ModePolling = "polling"
)

// Config defines the application configuration. Values can be set via
// environment variables prefixed with BOT_ (e.g. BOT_TELEGRAM_TOKEN) or
// through config.yaml.
type Config struct {
	Logger      LoggerConfig      `mapstructure:"logger"`
	Server      ServerConfig      `mapstructure:"server"`
	Telegram    TelegramConfig    `mapstructure:"telegram"`
	Calibration CalibrationConfig `mapstructure:"calibration"`
	Messages    MessagesConfig    `mapstructure:"messages"`
	Scheduler   SchedulerConfig   `mapstructure:"scheduler"`
}

// LoggerConfig controls slog output.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// ServerConfig controls the HTTP listener that serves the webhook and
// health endpoints.
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"                validate:"min=1,max=65535"`
	ServiceName       string        `mapstructure:"service_name"        validate:"required"`
	Version           string        `mapstructure:"version"             validate:"required"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" validate:"min=1s"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"    validate:"min=1s"`
}

// TelegramConfig configures the Bot API client.
//
// Token is deliberately not required: a missing or wrong token surfaces as a
// failed send, not as a startup error.
type TelegramConfig struct {
	Token          string        `mapstructure:"token"`
	Mode           string        `mapstructure:"mode"            validate:"required,oneof=webhook polling"`
	WebhookURL     string        `mapstructure:"webhook_url"     validate:"omitempty,url"`
	APIURL         string        `mapstructure:"api_url"         validate:"omitempty,url"`
	BotUsername    string        `mapstructure:"bot_username"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"min=1s,max=5m"`
}

// CalibrationConfig selects where account-age anchor points come from.
// DBPath wins over Points; with neither set the builtin table is used.
type CalibrationConfig struct {
	DBPath string            `mapstructure:"db_path"`
	Points []estimator.Point `mapstructure:"points" validate:"dive"`
}

// MessagesConfig holds canned replies. "{name}" in Welcome is replaced with
// the sender's first name.
type MessagesConfig struct {
	Welcome string `mapstructure:"welcome" validate:"required"`
	Help    string `mapstructure:"help"    validate:"required"`
}

// SchedulerConfig lists scheduled tasks by name.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks" validate:"dive"`
}

// TaskConfig enables a task and sets its cron schedule.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule" validate:"required_if=Enabled true"`
}
