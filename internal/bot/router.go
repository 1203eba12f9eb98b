package bot

import (
	"context"
	"log/slog"
	"strings"

	"github.com/edgard/tgidbot/internal/bot/handlers"
	"github.com/edgard/tgidbot/internal/inbound"
)

// Router dispatches inbound messages: /start and /help go to their command
// handlers, everything else gets the identity report.
type Router struct {
	logger      *slog.Logger
	commands    map[string]handlers.RegisteredHandler
	fallback    handlers.HandlerFunc
	botUsername string
}

// NewRouter builds a Router from the registered command handlers.
func NewRouter(deps handlers.HandlerDeps) *Router {
	return &Router{
		logger:      deps.Logger.With("component", "router"),
		commands:    handlers.RegisterAllCommands(deps),
		fallback:    handlers.NewReportHandler(deps),
		botUsername: deps.Config.Telegram.BotUsername,
	}
}

// HandleUpdate handles the message carried by u. Updates without a message
// are ignored.
func (r *Router) HandleUpdate(ctx context.Context, u *inbound.Update) error {
	if u == nil || u.Message == nil {
		r.logger.DebugContext(ctx, "Ignoring update without message")
		return nil
	}
	return r.HandleMessage(ctx, u.Message)
}

// HandleMessage routes msg to a command handler or to the report handler.
func (r *Router) HandleMessage(ctx context.Context, msg *inbound.Message) error {
	if name, ok := ParseCommand(msg.Text, r.botUsername); ok {
		if cmd, found := r.commands[name]; found {
			return cmd.Handler(ctx, msg)
		}
	}
	return r.fallback(ctx, msg)
}

// ParseCommand extracts the command name from the first token of text.
// "/start@name" only counts as a command when botUsername is empty or equals
// name (case-insensitive).
func ParseCommand(text, botUsername string) (string, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return "", false
	}

	name := strings.TrimPrefix(fields[0], "/")
	if cmd, target, found := strings.Cut(name, "@"); found {
		if botUsername != "" && !strings.EqualFold(target, strings.TrimPrefix(botUsername, "@")) {
			return "", false
		}
		name = cmd
	}
	if name == "" {
		return "", false
	}
	return name, true
}

// Commands returns the registered command names with their descriptions.
func (r *Router) Commands() map[string]string {
	out := make(map[string]string, len(r.commands))
	for name, cmd := range r.commands {
		out[name] = cmd.Description
	}
	return out
}
