package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/tgidbot/internal/config"
	"github.com/edgard/tgidbot/internal/estimator"
	"github.com/edgard/tgidbot/internal/inbound"
	"github.com/edgard/tgidbot/internal/logger"
	"github.com/edgard/tgidbot/internal/report"
)

type sentMessage struct {
	chatID int64
	text   string
}

type fakeNotifier struct {
	sent []sentMessage
	err  error
}

func (f *fakeNotifier) SendMessage(_ context.Context, chatID int64, text string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMessage{chatID: chatID, text: text})
	return nil
}

func testDeps(n Notifier) HandlerDeps {
	return HandlerDeps{
		Logger: logger.Discard(),
		Config: &config.Config{Messages: config.MessagesConfig{
			Welcome: "Hi {name}!",
			Help:    config.DefaultHelpMessage,
		}},
		Notifier:  n,
		Formatter: report.NewFormatter(estimator.Default()),
	}
}

func TestRegisterAllCommands(t *testing.T) {
	cmds := RegisterAllCommands(testDeps(&fakeNotifier{}))

	require.Len(t, cmds, 2)
	for _, name := range []string{"start", "help"} {
		h, ok := cmds[name]
		require.True(t, ok, name)
		assert.Equal(t, name, h.Command)
		assert.NotEmpty(t, h.Description)
		assert.NotNil(t, h.Handler)
	}
}

func TestStartHandler(t *testing.T) {
	tests := []struct {
		name string
		from *inbound.User
		want string
	}{
		{name: "first name", from: &inbound.User{ID: 1, FirstName: "Ann"}, want: "Hi Ann!"},
		{name: "escaped", from: &inbound.User{ID: 1, FirstName: "<b>"}, want: "Hi &lt;b&gt;!"},
		{name: "no sender", from: nil, want: "Hi there!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &fakeNotifier{}
			err := NewStartHandler(testDeps(n))(context.Background(), &inbound.Message{
				From: tt.from,
				Chat: inbound.Chat{ID: 5, Type: "private"},
				Text: "/start",
			})
			require.NoError(t, err)
			require.Len(t, n.sent, 1)
			assert.Equal(t, sentMessage{chatID: 5, text: tt.want}, n.sent[0])
		})
	}
}

func TestHelpHandler(t *testing.T) {
	n := &fakeNotifier{}
	err := NewHelpHandler(testDeps(n))(context.Background(), &inbound.Message{
		Chat: inbound.Chat{ID: -9, Type: "group"},
		Text: "/help",
	})
	require.NoError(t, err)
	require.Len(t, n.sent, 1)
	assert.Equal(t, int64(-9), n.sent[0].chatID)
	assert.Equal(t, config.DefaultHelpMessage, n.sent[0].text)
}

func TestReportHandler(t *testing.T) {
	deps := testDeps(nil)
	msg := &inbound.Message{
		From: &inbound.User{ID: 1, FirstName: "Ann"},
		Chat: inbound.Chat{ID: 5, Type: "private"},
		Text: "hello",
	}

	n := &fakeNotifier{}
	deps.Notifier = n
	require.NoError(t, NewReportHandler(deps)(context.Background(), msg))
	require.Len(t, n.sent, 1)
	assert.Equal(t, deps.Formatter.Format(msg), n.sent[0].text)

	deps.Notifier = &fakeNotifier{err: errors.New("unauthorized")}
	err := NewReportHandler(deps)(context.Background(), msg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unauthorized")
}
