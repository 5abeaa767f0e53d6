package notifications

import (
	"context"
	"errors"
	"testing"

	"restaurant-system/pkg/telegram"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeBot struct {
	chatID int64
	text   string
	opts   int
}

func (b *fakeBot) SendMessageEx(ctx context.Context, chatID int64, text string, options ...telegram.MessageOption) error {
	b.chatID, b.text, b.opts = chatID, text, len(options)
	return nil
}

func (b *fakeBot) AnswerCallbackQuery(ctx context.Context, callbackQueryID string, text string) error {
	return nil
}

func (b *fakeBot) EditMessageText(ctx context.Context, chatID int64, messageID int, text string, options ...telegram.MessageOption) error {
	return nil
}

func (b *fakeBot) SetWebhook(ctx context.Context, url, secretToken string) error { return nil }

type fakeBroadcaster struct {
	payloads []interface{}
	err      error
}

func (b *fakeBroadcaster) Broadcast(payload interface{}, messageType string) error {
	b.payloads = append(b.payloads, payload)
	return b.err
}

func TestTelegramSender_AddsKeyboardOnlyWithButtons(t *testing.T) {
	bot := &fakeBot{}
	sender := NewTelegramSender(bot)

	require.NoError(t, sender.Send(context.Background(), Message{ChatID: 5, Text: "hi"}))
	assert.Equal(t, 1, bot.opts)

	require.NoError(t, sender.Send(context.Background(), Message{
		ChatID:  5,
		Text:    "hi",
		Buttons: [][]telegram.InlineKeyboardButton{{{Text: "x", CallbackData: "y"}}},
	}))
	assert.Equal(t, 2, bot.opts)
}

func TestMirrorSender_MirrorsDeliveryResult(t *testing.T) {
	primary := &recordingSender{failOn: map[int64]bool{2: true}}
	mirror := &fakeBroadcaster{err: errors.New("hub closed")}
	sender := NewMirrorSender(primary, mirror, zap.NewNop())

	require.NoError(t, sender.Send(context.Background(), Message{ChatID: 1, Kind: KindReady, OrderID: 7}))
	require.Error(t, sender.Send(context.Background(), Message{ChatID: 2, Kind: KindReady, OrderID: 7}))

	require.Len(t, mirror.payloads, 2)
	assert.True(t, mirror.payloads[0].(DashboardPayload).Delivered)
	assert.False(t, mirror.payloads[1].(DashboardPayload).Delivered)
}
