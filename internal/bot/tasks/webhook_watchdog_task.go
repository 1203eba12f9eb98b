package tasks

import (
	"context"
	"fmt"

	"github.com/edgard/tgidbot/internal/telegram"
)

// newWebhookWatchdogTask re-registers the webhook whenever Telegram reports
// a different URL than the configured one.
func newWebhookWatchdogTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", WebhookWatchdogTask)
	url := deps.Config.Telegram.WebhookURL

	return func(ctx context.Context) error {
		changed, err := telegram.EnsureWebhook(ctx, deps.Webhook, url, log)
		if err != nil {
			return fmt.Errorf("webhook check failed: %w", err)
		}
		if changed {
			log.InfoContext(ctx, "Webhook re-registered", "url", url)
		}
		return nil
	}
}
