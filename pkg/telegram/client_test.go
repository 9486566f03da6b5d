package telegram

import (
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []tgbotapi.Chattable
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, f.err
}

func TestNotifier_SendMessage(t *testing.T) {
	sender := &fakeSender{}
	n := NewNotifier(sender, 42)

	require.NoError(t, n.SendMessage("*hello*"))
	require.Len(t, sender.sent, 1)

	msg, ok := sender.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.EqualValues(t, 42, msg.ChatID)
	assert.Equal(t, "*hello*", msg.Text)
	assert.Equal(t, tgbotapi.ModeMarkdown, msg.ParseMode)
	assert.True(t, msg.DisableWebPagePreview)
}

func TestNotifier_SendMessageError(t *testing.T) {
	sender := &fakeSender{err: errors.New("chat not found")}
	n := NewNotifier(sender, 42)

	err := n.SendMessage("x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestNewClient_RequiresChatID(t *testing.T) {
	_, err := NewClient("token", 0)
	assert.Error(t, err)
}
