package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// ErrNotifierUnavailable is returned by SendMessage when no Bot API client
// could be built, typically because the token is missing.
var ErrNotifierUnavailable = errors.New("telegram notifier unavailable")

// Notifier sends replies through the Bot API sendMessage method.
type Notifier struct {
	bot     *bot.Bot
	initErr error
	logger  *slog.Logger
}

// NewNotifier builds a Notifier. A client that cannot be created (for
// example, an empty token) is not fatal here; the error is reported by every
// SendMessage call instead.
func NewNotifier(token string, logger *slog.Logger, opts ...bot.Option) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "telegram_notifier")

	b, err := NewTelegramBot(token, logger, opts...)
	if err != nil {
		log.Warn("Telegram client unavailable, outbound messages will fail", "error", err)
	}

	return &Notifier{bot: b, initErr: err, logger: log}
}

// Bot returns the underlying client, or nil when it could not be created.
func (n *Notifier) Bot() *bot.Bot {
	return n.bot
}

// SendMessage sends text to chatID using HTML parse mode.
func (n *Notifier) SendMessage(ctx context.Context, chatID int64, text string) error {
	if n.bot == nil {
		return fmt.Errorf("%w: %v", ErrNotifierUnavailable, n.initErr)
	}

	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		return fmt.Errorf("failed to send message to chat %d: %w", chatID, err)
	}

	n.logger.DebugContext(ctx, "Message sent", "chat_id", chatID, "length", len(text))
	return nil
}
