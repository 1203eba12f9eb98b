package config

import (
	"time"

	"github.com/spf13/viper"
)

// Default values for configuration.
const (
	DefaultLogLevel = "info"

	DefaultServerPort              = 3000
	DefaultServerServiceName       = "Telegram ID Analyzer Bot"
	DefaultServerVersion           = "1.0.0"
	DefaultServerReadHeaderTimeout = 10 * time.Second
	DefaultServerShutdownTimeout   = 10 * time.Second

	DefaultTelegramMode           = ModeWebhook
	DefaultTelegramRequestTimeout = 30 * time.Second

	DefaultWebhookWatchdogSchedule = "0 */10 * * * *"
	DefaultSQLMaintenanceSchedule  = "0 0 4 * * 0"
)

// DefaultWelcomeMessage is the /start reply.
const DefaultWelcomeMessage = "Hi {name}!\n\n" +
	"🤖 Telegram ID Bot\n\n" +
	"How this bot works:\n" +
	"• Send me any message to see your detailed user information\n" +
	"• Forward any message to me to see both your info and the original sender's details\n" +
	"• I can estimate account creation dates based on user IDs\n" +
	"• All information is displayed in a clean tree format\n\n" +
	"Try sending me a message or forwarding one to see it in action!"

// DefaultHelpMessage is the /help reply.
const DefaultHelpMessage = "Available commands:\n/start - Start the bot\n/help - Show this help message"

// setDefaults registers default values for optional configuration parameters.
func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", DefaultLogLevel)
	v.SetDefault("logger.json", false)

	v.SetDefault("server.host", "")
	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("server.service_name", DefaultServerServiceName)
	v.SetDefault("server.version", DefaultServerVersion)
	v.SetDefault("server.read_header_timeout", DefaultServerReadHeaderTimeout)
	v.SetDefault("server.shutdown_timeout", DefaultServerShutdownTimeout)

	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.mode", DefaultTelegramMode)
	v.SetDefault("telegram.webhook_url", "")
	v.SetDefault("telegram.api_url", "")
	v.SetDefault("telegram.bot_username", "")
	v.SetDefault("telegram.request_timeout", DefaultTelegramRequestTimeout)

	v.SetDefault("calibration.db_path", "")

	v.SetDefault("messages.welcome", DefaultWelcomeMessage)
	v.SetDefault("messages.help", DefaultHelpMessage)

	v.SetDefault("scheduler.tasks.webhook_watchdog.enabled", true)
	v.SetDefault("scheduler.tasks.webhook_watchdog.schedule", DefaultWebhookWatchdogSchedule)
	v.SetDefault("scheduler.tasks.sql_maintenance.enabled", true)
	v.SetDefault("scheduler.tasks.sql_maintenance.schedule", DefaultSQLMaintenanceSchedule)
}
