package app

import (
	"io"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/mock"
	"gopkg.in/telebot.v3"
)

type mockTelegramClient struct {
	mock.Mock
}

func (m *mockTelegramClient) SendMessage(recipientChatID int64, text string, options *telebot.SendOptions) error {
	args := m.Called(recipientChatID, text, options)
	return args.Error(0)
}

func (m *mockTelegramClient) EditMessage(chatID int64, messageID int, text string, options *telebot.SendOptions) error {
	args := m.Called(chatID, messageID, text, options)
	return args.Error(0)
}

func (m *mockTelegramClient) SendDocument(recipientChatID int64, fileName string, content io.Reader, caption string) error {
	args := m.Called(recipientChatID, fileName, content, caption)
	return args.Error(0)
}

func newTestLogger() (*logrus.Entry, *test.Hook) {
	logger, hook := test.NewNullLogger()
	return logrus.NewEntry(logger), hook
}
