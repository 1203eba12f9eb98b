package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/tgidbot/internal/inbound"
)

// MessageHandler processes a single inbound message.
type MessageHandler interface {
	HandleMessage(ctx context.Context, msg *inbound.Message) error
}

// Poller feeds updates received through getUpdates into a MessageHandler.
// It is the alternative to the webhook server for hosts without a public URL.
type Poller struct {
	bot     *bot.Bot
	handler MessageHandler
	logger  *slog.Logger
}

// NewPoller registers the message handler on b and returns a Poller.
func NewPoller(b *bot.Bot, handler MessageHandler, logger *slog.Logger) *Poller {
	p := &Poller{
		bot:     b,
		handler: handler,
		logger:  logger.With("component", "telegram_poller"),
	}
	b.RegisterHandlerMatchFunc(func(update *models.Update) bool {
		return update.Message != nil
	}, p.handle)
	return p
}

// Run removes any webhook and polls until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) error {
	if err := RemoveWebhook(ctx, p.bot, p.logger); err != nil {
		return err
	}

	p.logger.InfoContext(ctx, "Starting long polling...")
	p.bot.Start(ctx)
	p.logger.InfoContext(ctx, "Long polling stopped.")

	if ctx.Err() == nil {
		return fmt.Errorf("telegram poller stopped unexpectedly")
	}
	return nil
}

func (p *Poller) handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	msg := FromModel(update.Message)
	if err := p.handler.HandleMessage(ctx, msg); err != nil {
		p.logger.ErrorContext(ctx, "Failed to handle message", "error", err, "update_id", update.ID, "chat_id", msg.Chat.ID)
	}
}

// FromModel converts a go-telegram message into the transport-independent
// record.
func FromModel(m *models.Message) *inbound.Message {
	msg := &inbound.Message{
		ID:   int64(m.ID),
		From: userFromModel(m.From),
		Chat: chatFromModel(m.Chat),
		Text: m.Text,
	}
	if m.ForwardOrigin != nil {
		msg.Forward = originFromModel(m.ForwardOrigin)
	}
	return msg
}

func originFromModel(o *models.MessageOrigin) *inbound.ForwardOrigin {
	switch {
	case o.MessageOriginUser != nil:
		return &inbound.ForwardOrigin{
			Kind: inbound.OriginUser,
			Date: unixDate(o.MessageOriginUser.Date),
			User: userFromModel(&o.MessageOriginUser.SenderUser),
		}
	case o.MessageOriginHiddenUser != nil:
		return &inbound.ForwardOrigin{
			Kind:       inbound.OriginHiddenUser,
			Date:       unixDate(o.MessageOriginHiddenUser.Date),
			SenderName: o.MessageOriginHiddenUser.SenderUserName,
		}
	case o.MessageOriginChat != nil:
		chat := chatFromModel(o.MessageOriginChat.SenderChat)
		return &inbound.ForwardOrigin{
			Kind: inbound.OriginChat,
			Date: unixDate(o.MessageOriginChat.Date),
			Chat: &chat,
		}
	case o.MessageOriginChannel != nil:
		chat := chatFromModel(o.MessageOriginChannel.Chat)
		return &inbound.ForwardOrigin{
			Kind: inbound.OriginChannel,
			Date: unixDate(o.MessageOriginChannel.Date),
			Chat: &chat,
		}
	}
	return nil
}

func userFromModel(u *models.User) *inbound.User {
	if u == nil {
		return nil
	}
	return &inbound.User{
		ID:           u.ID,
		IsBot:        u.IsBot,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Username:     u.Username,
		LanguageCode: u.LanguageCode,
	}
}

func chatFromModel(c models.Chat) inbound.Chat {
	return inbound.Chat{
		ID:       c.ID,
		Type:     string(c.Type),
		Title:    c.Title,
		Username: c.Username,
	}
}

func unixDate(sec int) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(int64(sec), 0).UTC()
}
