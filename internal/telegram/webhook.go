package telegram

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// WebhookAPI is the subset of *bot.Bot used to manage webhook registration.
type WebhookAPI interface {
	SetWebhook(ctx context.Context, params *bot.SetWebhookParams) (bool, error)
	GetWebhookInfo(ctx context.Context) (*models.WebhookInfo, error)
	DeleteWebhook(ctx context.Context, params *bot.DeleteWebhookParams) (bool, error)
}

// RegisterWebhook points Telegram at url.
func RegisterWebhook(ctx context.Context, api WebhookAPI, url string, logger *slog.Logger) error {
	ok, err := api.SetWebhook(ctx, &bot.SetWebhookParams{URL: url})
	if err != nil {
		return fmt.Errorf("failed to set webhook: %w", err)
	}
	if !ok {
		return fmt.Errorf("failed to set webhook: telegram returned false")
	}
	logger.InfoContext(ctx, "Webhook registered", "url", url)
	return nil
}

// EnsureWebhook re-registers url if Telegram reports a different webhook.
// It returns true when a registration was made.
func EnsureWebhook(ctx context.Context, api WebhookAPI, url string, logger *slog.Logger) (bool, error) {
	info, err := api.GetWebhookInfo(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get webhook info: %w", err)
	}

	logger.InfoContext(ctx, "Webhook status",
		"url", info.URL,
		"pending_update_count", info.PendingUpdateCount,
		"last_error_message", info.LastErrorMessage)

	if info.URL == url {
		return false, nil
	}

	logger.WarnContext(ctx, "Webhook URL drifted, re-registering", "expected", url, "actual", info.URL)
	if err := RegisterWebhook(ctx, api, url, logger); err != nil {
		return false, err
	}
	return true, nil
}

// RemoveWebhook deletes any registered webhook so getUpdates can be used.
func RemoveWebhook(ctx context.Context, api WebhookAPI, logger *slog.Logger) error {
	if _, err := api.DeleteWebhook(ctx, &bot.DeleteWebhookParams{}); err != nil {
		return fmt.Errorf("failed to delete webhook: %w", err)
	}
	logger.InfoContext(ctx, "Webhook removed")
	return nil
}
