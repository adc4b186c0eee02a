package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easayliu/movie-browser/internal/application/contracts"
	"github.com/easayliu/movie-browser/internal/infrastructure/config"
)

type fakeSender struct {
	sent   map[int64]string
	failOn map[int64]bool
}

func (f *fakeSender) SendMessageWithParseMode(chatID int64, text, parseMode string) error {
	if f.failOn[chatID] {
		return errors.New("chat not found")
	}
	if f.sent == nil {
		f.sent = make(map[int64]string)
	}
	f.sent[chatID] = text
	return nil
}

func TestNotify_SendsToChatsAndAdminsOnce(t *testing.T) {
	sender := &fakeSender{}
	svc := NewAppNotificationService(&config.TelegramConfig{
		Enabled:  true,
		ChatIDs:  []int64{1, 2},
		AdminIDs: []int64{2, 3},
	}, sender)

	err := svc.Notify(context.Background(), contracts.Notification{
		Title: "Trending <Today>",
		Lines: []string{"1. Dune (2024) ★ 8.2"},
	})
	require.NoError(t, err)
	assert.Len(t, sender.sent, 3)
	assert.Equal(t, "<b>Trending &lt;Today&gt;</b>\n\n1. Dune (2024) ★ 8.2", sender.sent[1])
}

func TestNotify_PartialFailureIsSuccess(t *testing.T) {
	sender := &fakeSender{failOn: map[int64]bool{1: true}}
	svc := NewAppNotificationService(&config.TelegramConfig{Enabled: true, ChatIDs: []int64{1, 2}}, sender)

	assert.NoError(t, svc.Notify(context.Background(), contracts.Notification{Title: "x"}))
}

func TestNotify_AllFailed(t *testing.T) {
	sender := &fakeSender{failOn: map[int64]bool{1: true}}
	svc := NewAppNotificationService(&config.TelegramConfig{Enabled: true, ChatIDs: []int64{1}}, sender)

	assert.Error(t, svc.Notify(context.Background(), contracts.Notification{Title: "x"}))
}

func TestNotify_Disabled(t *testing.T) {
	sender := &fakeSender{}
	svc := NewAppNotificationService(&config.TelegramConfig{Enabled: false, ChatIDs: []int64{1}}, sender)

	assert.NoError(t, svc.Notify(context.Background(), contracts.Notification{Title: "x"}))
	assert.Empty(t, sender.sent)

	svc = NewAppNotificationService(&config.TelegramConfig{Enabled: true, ChatIDs: []int64{1}}, nil)
	assert.NoError(t, svc.Notify(context.Background(), contracts.Notification{Title: "x"}))
}
