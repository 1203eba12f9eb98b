package handlers

import (
	"context"
	"fmt"

	"github.com/edgard/tgidbot/internal/inbound"
)

// NewReportHandler returns the handler for any message that is not a known
// command: it replies with the identity report for the message.
func NewReportHandler(deps HandlerDeps) HandlerFunc {
	return reportHandler{deps}.Handle
}

type reportHandler struct {
	deps HandlerDeps
}

func (h reportHandler) Handle(ctx context.Context, msg *inbound.Message) error {
	log := h.deps.Logger.With("handler", "report")

	text := h.deps.Formatter.Format(msg)
	log.DebugContext(ctx, "Sending report", "chat_id", msg.Chat.ID, "forwarded", msg.Forward != nil)

	if err := h.deps.Notifier.SendMessage(ctx, msg.Chat.ID, text); err != nil {
		log.ErrorContext(ctx, "Failed to send report", "error", err, "chat_id", msg.Chat.ID)
		return fmt.Errorf("failed to send report: %w", err)
	}
	return nil
}
