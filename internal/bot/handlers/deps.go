// Package handlers implements the replies the bot sends for commands and
// for every other message it receives.
package handlers

import (
	"context"
	"log/slog"

	"github.com/edgard/tgidbot/internal/config"
	"github.com/edgard/tgidbot/internal/report"
)

// Notifier delivers a reply to a chat.
type Notifier interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// HandlerDeps provides dependencies for message handlers.
type HandlerDeps struct {
	Logger    *slog.Logger
	Config    *config.Config
	Notifier  Notifier
	Formatter *report.Formatter
}
