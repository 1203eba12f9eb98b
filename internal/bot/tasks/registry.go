package tasks

import (
	"context"

	"github.com/edgard/tgidbot/internal/config"
)

// Task names, matching the keys under scheduler.tasks in the configuration.
const (
	WebhookWatchdogTask = "webhook_watchdog"
	SQLMaintenanceTask  = "sql_maintenance"
)

// ScheduledTaskFunc defines the signature for all scheduled tasks. The
// context is cancelled on shutdown.
type ScheduledTaskFunc func(ctx context.Context) error

// RegisterAllTasks returns the tasks that can run with the given
// dependencies, keyed by configuration name.
func RegisterAllTasks(deps TaskDeps) map[string]ScheduledTaskFunc {
	tasks := make(map[string]ScheduledTaskFunc)

	tg := deps.Config.Telegram
	if deps.Webhook != nil && tg.Mode == config.ModeWebhook && tg.WebhookURL != "" {
		tasks[WebhookWatchdogTask] = newWebhookWatchdogTask(deps)
	}
	if deps.Store != nil {
		tasks[SQLMaintenanceTask] = newSQLMaintenanceTask(deps)
	}

	deps.Logger.Info("Initialized scheduled tasks", "count", len(tasks))
	return tasks
}
