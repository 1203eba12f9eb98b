package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// CommandsAPI is the subset of *bot.Bot used to publish the command menu.
type CommandsAPI interface {
	SetMyCommands(ctx context.Context, params *bot.SetMyCommandsParams) (bool, error)
}

// PublishCommands sets the bot's command menu from name/description pairs.
func PublishCommands(ctx context.Context, api CommandsAPI, commands map[string]string, logger *slog.Logger) error {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	list := make([]models.BotCommand, 0, len(names))
	for _, name := range names {
		list = append(list, models.BotCommand{Command: name, Description: commands[name]})
	}

	if _, err := api.SetMyCommands(ctx, &bot.SetMyCommandsParams{Commands: list}); err != nil {
		return fmt.Errorf("failed to set bot commands: %w", err)
	}
	logger.InfoContext(ctx, "Bot commands published", "count", len(list))
	return nil
}
