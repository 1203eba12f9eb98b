// Package main contains the entrypoint for the Telegram ID bot.
package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/joho/godotenv"

	"github.com/edgard/tgidbot/internal/bot"
	"github.com/edgard/tgidbot/internal/bot/handlers"
	"github.com/edgard/tgidbot/internal/bot/tasks"
	"github.com/edgard/tgidbot/internal/config"
	"github.com/edgard/tgidbot/internal/database"
	"github.com/edgard/tgidbot/internal/logger"
	"github.com/edgard/tgidbot/internal/report"
	"github.com/edgard/tgidbot/internal/server"
	"github.com/edgard/tgidbot/internal/telegram"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run wires every component, runs until ctx is cancelled and returns the
// process exit code.
func run(ctx context.Context) int {
	configPath := flag.String("config", "./config.yaml", "Path to configuration file")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Failed to load .env file", "error", err)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Logger.Level, cfg.Logger.JSON)
	slog.SetDefault(log)
	log.Info("Logger initialized", "level", cfg.Logger.Level, "json", cfg.Logger.JSON)

	var store database.Store
	if cfg.Calibration.DBPath != "" {
		db, err := database.NewDB(cfg.Calibration.DBPath, log)
		if err != nil {
			log.Error("Failed to open calibration database", "path", cfg.Calibration.DBPath, "error", err)
			return 1
		}
		defer database.CloseDB(db, log)
		store = database.NewStore(db, log)
	}

	est, err := bot.LoadEstimator(ctx, cfg.Calibration, store, log)
	if err != nil {
		log.Error("Failed to load calibration", "error", err)
		return 1
	}

	opts := append(telegram.ClientOptions(cfg.Telegram.APIURL, cfg.Telegram.RequestTimeout),
		tgbot.WithMiddlewares(logger.Middleware(log)))
	notifier := telegram.NewNotifier(cfg.Telegram.Token, log, opts...)

	router := bot.NewRouter(handlers.HandlerDeps{
		Logger:    log,
		Config:    cfg,
		Notifier:  notifier,
		Formatter: report.NewFormatter(est),
	})

	var (
		api    bot.TelegramAPI
		poller *telegram.Poller
		tDeps  = tasks.TaskDeps{Logger: log, Config: cfg, Store: store}
	)
	if tg := notifier.Bot(); tg != nil {
		api = tg
		tDeps.Webhook = tg
		if cfg.Telegram.Mode == config.ModePolling {
			poller = telegram.NewPoller(tg, router, log)
		}
	}

	sched, err := bot.NewScheduler(log, &cfg.Scheduler, tasks.RegisterAllTasks(tDeps))
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}

	srv := server.New(cfg.Server, router, log)
	app := bot.NewBot(log, cfg, srv, api, poller, sched, router.Commands())

	log.Info("Starting bot...", "service", cfg.Server.ServiceName, "version", cfg.Server.Version)
	runErr := app.Run(ctx)
	log.Info("Bot run loop finished. Initiating shutdown...")

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		time.Sleep(time.Second)
		return 1
	}

	log.Info("Bot stopped gracefully.")
	return 0
}
