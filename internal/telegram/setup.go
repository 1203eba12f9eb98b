// Package telegram wraps the go-telegram/bot client: the outbound notifier,
// webhook registration and the long-polling update source.
package telegram

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-telegram/bot"
)

// ClientOptions returns the bot options shared by every client the
// application creates. apiURL overrides the Bot API server (empty keeps the
// public one); timeout bounds each HTTP call.
func ClientOptions(apiURL string, timeout time.Duration) []bot.Option {
	opts := []bot.Option{
		bot.WithSkipGetMe(),
		bot.WithHTTPClient(timeout, &http.Client{Timeout: timeout}),
	}
	if apiURL != "" {
		opts = append(opts, bot.WithServerURL(apiURL))
	}
	return opts
}

// NewTelegramBot creates a new Telegram bot instance using the go-telegram/bot library.
func NewTelegramBot(token string, logger *slog.Logger, opts ...bot.Option) (*bot.Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "telegram_bot")

	b, err := bot.New(token, opts...)
	if err != nil {
		log.Error("Failed to create Telegram bot instance", "error", err)
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	log.Info("Telegram bot instance created successfully", "token_prefix", maskToken(token))
	return b, nil
}

func maskToken(token string) string {
	const visible = 8
	if len(token) <= visible {
		return "..."
	}
	return token[:visible] + "..."
}
