package handlers

import (
	"context"

	"github.com/edgard/tgidbot/internal/inbound"
)

// HandlerFunc handles one message and returns an error when the reply could
// not be delivered.
type HandlerFunc func(ctx context.Context, msg *inbound.Message) error

// RegisteredHandler represents a command handler with its description.
type RegisteredHandler struct {
	Command     string
	Description string
	Handler     HandlerFunc
}

// RegisterAllCommands initializes and returns all available bot commands,
// keyed by command name without the leading slash.
func RegisterAllCommands(deps HandlerDeps) map[string]RegisteredHandler {
	handlers := make(map[string]RegisteredHandler)

	handlers["start"] = RegisteredHandler{
		Command:     "start",
		Description: "Start the bot",
		Handler:     NewStartHandler(deps),
	}
	handlers["help"] = RegisteredHandler{
		Command:     "help",
		Description: "Show this help message",
		Handler:     NewHelpHandler(deps),
	}

	return handlers
}
