package handlers

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/edgard/tgidbot/internal/inbound"
)

// NewStartHandler returns a handler for the /start command.
func NewStartHandler(deps HandlerDeps) HandlerFunc {
	return startHandler{deps}.Handle
}

// startHandler greets the sender by first name.
type startHandler struct {
	deps HandlerDeps
}

func (h startHandler) Handle(ctx context.Context, msg *inbound.Message) error {
	log := h.deps.Logger.With("handler", "start")

	name := "there"
	if msg.From != nil && msg.From.FirstName != "" {
		name = msg.From.FirstName
	}

	log.InfoContext(ctx, "Handling /start command", "chat_id", msg.Chat.ID)

	welcome := strings.ReplaceAll(h.deps.Config.Messages.Welcome, "{name}", html.EscapeString(name))
	if err := h.deps.Notifier.SendMessage(ctx, msg.Chat.ID, welcome); err != nil {
		log.ErrorContext(ctx, "Failed to send welcome message", "error", err, "chat_id", msg.Chat.ID)
		return fmt.Errorf("failed to send welcome message: %w", err)
	}

	log.DebugContext(ctx, "Successfully sent welcome message", "chat_id", msg.Chat.ID)
	return nil
}
