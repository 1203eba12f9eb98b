package telegram

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/tgidbot/internal/inbound"
	"github.com/edgard/tgidbot/internal/logger"
)

// fakeBotAPI records sendMessage calls and answers with a canned status.
type fakeBotAPI struct {
	mu     sync.Mutex
	status int
	calls  []map[string]string
}

func (f *fakeBotAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if !strings.HasSuffix(r.URL.Path, "/sendMessage") {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":404,"description":"Not Found"}`))
		return
	}

	f.mu.Lock()
	f.calls = append(f.calls, map[string]string{
		"path":       r.URL.Path,
		"chat_id":    r.FormValue("chat_id"),
		"text":       r.FormValue("text"),
		"parse_mode": r.FormValue("parse_mode"),
	})
	f.mu.Unlock()

	if f.status == http.StatusUnauthorized {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":401,"description":"Unauthorized"}`))
		return
	}
	_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":1,"date":1700000000,"chat":{"id":5,"type":"private"},"text":"ok"}}`))
}

func newTestNotifier(t *testing.T, token string, api *fakeBotAPI) *Notifier {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	return NewNotifier(token, logger.Discard(), ClientOptions(srv.URL, 5*time.Second)...)
}

func TestNotifier_SendMessage(t *testing.T) {
	api := &fakeBotAPI{status: http.StatusOK}
	n := newTestNotifier(t, "123456:TEST-TOKEN", api)
	require.NotNil(t, n.Bot())

	err := n.SendMessage(context.Background(), 5, "<b>hi</b>")
	require.NoError(t, err)

	require.Len(t, api.calls, 1)
	assert.Equal(t, "/bot123456:TEST-TOKEN/sendMessage", api.calls[0]["path"])
	assert.Equal(t, "5", api.calls[0]["chat_id"])
	assert.Equal(t, "<b>hi</b>", api.calls[0]["text"])
	assert.Contains(t, api.calls[0]["parse_mode"], "HTML")
}

func TestNotifier_SendMessageRejected(t *testing.T) {
	api := &fakeBotAPI{status: http.StatusUnauthorized}
	n := newTestNotifier(t, "123456:WRONG", api)

	err := n.SendMessage(context.Background(), 5, "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat 5")
}

func TestNotifier_MissingToken(t *testing.T) {
	n := NewNotifier("", logger.Discard())
	assert.Nil(t, n.Bot())

	err := n.SendMessage(context.Background(), 5, "hi")
	require.ErrorIs(t, err, ErrNotifierUnavailable)
}

func TestMaskToken(t *testing.T) {
	assert.Equal(t, "...", maskToken("short"))
	assert.Equal(t, "12345678...", maskToken("12345678:secret"))
}

type fakeWebhookAPI struct {
	info       *models.WebhookInfo
	infoErr    error
	setURLs    []string
	deleteRuns int
}

func (f *fakeWebhookAPI) SetWebhook(_ context.Context, params *bot.SetWebhookParams) (bool, error) {
	f.setURLs = append(f.setURLs, params.URL)
	return true, nil
}

func (f *fakeWebhookAPI) GetWebhookInfo(context.Context) (*models.WebhookInfo, error) {
	return f.info, f.infoErr
}

func (f *fakeWebhookAPI) DeleteWebhook(context.Context, *bot.DeleteWebhookParams) (bool, error) {
	f.deleteRuns++
	return true, nil
}

func TestEnsureWebhook(t *testing.T) {
	ctx := context.Background()
	const url = "https://example.com/webhook"

	api := &fakeWebhookAPI{info: &models.WebhookInfo{URL: url}}
	changed, err := EnsureWebhook(ctx, api, url, logger.Discard())
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Empty(t, api.setURLs)

	api.info = &models.WebhookInfo{URL: ""}
	changed, err = EnsureWebhook(ctx, api, url, logger.Discard())
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, []string{url}, api.setURLs)

	api.infoErr = errors.New("boom")
	_, err = EnsureWebhook(ctx, api, url, logger.Discard())
	require.Error(t, err)
}

func TestRemoveWebhook(t *testing.T) {
	api := &fakeWebhookAPI{}
	require.NoError(t, RemoveWebhook(context.Background(), api, logger.Discard()))
	assert.Equal(t, 1, api.deleteRuns)
}

func TestFromModel(t *testing.T) {
	m := &models.Message{
		ID:   9,
		From: &models.User{ID: 1, FirstName: "Ann", LanguageCode: "en"},
		Chat: models.Chat{ID: 5, Type: models.ChatTypePrivate, Username: "ann"},
		Text: "hello",
		ForwardOrigin: &models.MessageOrigin{
			Type: models.MessageOriginTypeUser,
			MessageOriginUser: &models.MessageOriginUser{
				Type:       models.MessageOriginTypeUser,
				Date:       1700000000,
				SenderUser: models.User{ID: 42, FirstName: "Bob"},
			},
		},
	}

	got := FromModel(m)
	assert.Equal(t, &inbound.Message{
		ID:   9,
		From: &inbound.User{ID: 1, FirstName: "Ann", LanguageCode: "en"},
		Chat: inbound.Chat{ID: 5, Type: "private", Username: "ann"},
		Text: "hello",
		Forward: &inbound.ForwardOrigin{
			Kind: inbound.OriginUser,
			Date: time.Unix(1700000000, 0).UTC(),
			User: &inbound.User{ID: 42, FirstName: "Bob"},
		},
	}, got)

	hidden := FromModel(&models.Message{
		Chat: models.Chat{ID: 5, Type: models.ChatTypePrivate},
		ForwardOrigin: &models.MessageOrigin{
			Type:                    models.MessageOriginTypeHiddenUser,
			MessageOriginHiddenUser: &models.MessageOriginHiddenUser{SenderUserName: "Ghost"},
		},
	})
	require.NotNil(t, hidden.Forward)
	assert.Equal(t, inbound.OriginHiddenUser, hidden.Forward.Kind)
	assert.Equal(t, "Ghost", hidden.Forward.SenderName)
	assert.Nil(t, hidden.From)
}

type fakeCommandsAPI struct {
	got []models.BotCommand
}

func (f *fakeCommandsAPI) SetMyCommands(_ context.Context, params *bot.SetMyCommandsParams) (bool, error) {
	f.got = params.Commands
	return true, nil
}

func TestPublishCommands(t *testing.T) {
	api := &fakeCommandsAPI{}
	err := PublishCommands(context.Background(), api, map[string]string{
		"start": "Start the bot",
		"help":  "Show this help message",
	}, logger.Discard())
	require.NoError(t, err)

	assert.Equal(t, []models.BotCommand{
		{Command: "help", Description: "Show this help message"},
		{Command: "start", Description: "Start the bot"},
	}, api.got)
}
