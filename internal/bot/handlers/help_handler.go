package handlers

import (
	"context"
	"fmt"

	"github.com/edgard/tgidbot/internal/inbound"
)

// NewHelpHandler returns a handler for the /help command.
func NewHelpHandler(deps HandlerDeps) HandlerFunc {
	return helpHandler{deps}.Handle
}

// helpHandler processes the /help command using injected dependencies.
type helpHandler struct {
	deps HandlerDeps
}

func (h helpHandler) Handle(ctx context.Context, msg *inbound.Message) error {
	log := h.deps.Logger.With("handler", "help")

	log.InfoContext(ctx, "Handling /help command", "chat_id", msg.Chat.ID)

	if err := h.deps.Notifier.SendMessage(ctx, msg.Chat.ID, h.deps.Config.Messages.Help); err != nil {
		log.ErrorContext(ctx, "Failed to send help message", "error", err, "chat_id", msg.Chat.ID)
		return fmt.Errorf("failed to send help message: %w", err)
	}

	log.DebugContext(ctx, "Successfully sent help message", "chat_id", msg.Chat.ID)
	return nil
}
