// Package tasks implements the bot's scheduled background jobs.
package tasks

import (
	"log/slog"

	"github.com/edgard/tgidbot/internal/config"
	"github.com/edgard/tgidbot/internal/database"
	"github.com/edgard/tgidbot/internal/telegram"
)

// TaskDeps contains all dependencies required by scheduled tasks. Webhook
// and Store are nil when no Bot API client or calibration database exists.
type TaskDeps struct {
	Logger  *slog.Logger
	Config  *config.Config
	Webhook telegram.WebhookAPI
	Store   database.Store
}
