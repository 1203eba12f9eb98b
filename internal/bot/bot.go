// Package bot wires the message router, update sources, HTTP server and
// scheduled tasks together and manages their lifecycle.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/edgard/tgidbot/internal/config"
	"github.com/edgard/tgidbot/internal/server"
	"github.com/edgard/tgidbot/internal/telegram"
)

// ErrNoTelegramClient is returned when polling is configured without a
// usable Bot API client.
var ErrNoTelegramClient = errors.New("polling mode requires a telegram bot token")

// TelegramAPI is the part of the Bot API the orchestrator calls at startup.
type TelegramAPI interface {
	telegram.WebhookAPI
	telegram.CommandsAPI
}

// Bot represents the main application and manages its components' lifecycle.
type Bot struct {
	logger    *slog.Logger
	cfg       *config.Config
	server    *server.Server
	api       TelegramAPI
	poller    *telegram.Poller
	scheduler *Scheduler
	commands  map[string]string
}

// NewBot creates the orchestrator. api and poller are nil when no token is
// configured; poller is also nil in webhook mode. scheduler may be nil.
func NewBot(
	logger *slog.Logger,
	cfg *config.Config,
	srv *server.Server,
	api TelegramAPI,
	poller *telegram.Poller,
	scheduler *Scheduler,
	commands map[string]string,
) *Bot {
	return &Bot{
		logger:    logger.With("component", "bot_orchestrator"),
		cfg:       cfg,
		server:    srv,
		api:       api,
		poller:    poller,
		scheduler: scheduler,
		commands:  commands,
	}
}

// Run starts every component and blocks until ctx is cancelled or one of
// them fails.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("Starting bot orchestrator...", "mode", b.cfg.Telegram.Mode)

	if err := b.prepare(ctx); err != nil {
		return err
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return b.server.Run(gCtx)
	})

	if b.poller != nil {
		g.Go(func() error {
			return b.poller.Run(gCtx)
		})
	}

	if b.scheduler != nil {
		g.Go(func() error {
			if err := b.scheduler.Start(gCtx); err != nil {
				return fmt.Errorf("failed to start scheduler: %w", err)
			}

			<-gCtx.Done()
			b.logger.Info("Shutdown signal received, stopping scheduler...")
			if err := b.scheduler.Stop(); err != nil {
				b.logger.Error("Error stopping scheduler", "error", err)
			}
			return nil
		})
	}

	b.logger.Info("Bot orchestrator running. Waiting for shutdown signal or error...")
	err := g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		b.logger.Error("Bot orchestrator stopped due to error", "error", err)
		return err
	}

	b.logger.Info("Bot orchestrator stopped gracefully.")
	return nil
}

// prepare publishes the command menu and registers the webhook. Only a
// failed webhook registration is fatal.
func (b *Bot) prepare(ctx context.Context) error {
	tg := b.cfg.Telegram

	if b.api == nil {
		if tg.Mode == config.ModePolling {
			return ErrNoTelegramClient
		}
		b.logger.Warn("No Telegram client configured, replies will fail until a token is set")
		return nil
	}

	if len(b.commands) > 0 {
		if err := telegram.PublishCommands(ctx, b.api, b.commands, b.logger); err != nil {
			b.logger.WarnContext(ctx, "Could not publish bot commands", "error", err)
		}
	}

	if tg.Mode == config.ModeWebhook {
		if tg.WebhookURL == "" {
			b.logger.Info("No webhook URL configured, expecting the webhook to be registered externally")
			return nil
		}
		if err := telegram.RegisterWebhook(ctx, b.api, tg.WebhookURL, b.logger); err != nil {
			return err
		}
	}
	return nil
}
