// internal/infra/telegram/client.go
package telegram

import (
	"io"
	"strconv"

	"gopkg.in/telebot.v3"
)

// TelebotAdapter implements the Client interface using the gopkg.in/telebot.v3 library.
type TelebotAdapter struct {
	bot *telebot.Bot
}

func NewTelebotAdapter(b *telebot.Bot) *TelebotAdapter {
	return &TelebotAdapter{bot: b}
}

// SendMessage sends a text message to the specified recipient.
func (tba *TelebotAdapter) SendMessage(recipientChatID int64, text string, options *telebot.SendOptions) error {
	if options == nil {
		options = &telebot.SendOptions{}
	}

	recipient := &telebot.Chat{ID: recipientChatID}
	_, err := tba.bot.Send(recipient, text, options)
	return err
}

// EditMessage replaces the text and markup of a message the bot sent earlier.
func (tba *TelebotAdapter) EditMessage(chatID int64, messageID int, text string, options *telebot.SendOptions) error {
	if options == nil {
		options = &telebot.SendOptions{}
	}

	msg := telebot.StoredMessage{MessageID: strconv.Itoa(messageID), ChatID: chatID}
	_, err := tba.bot.Edit(msg, text, options)
	return err
}

// SendDocument uploads content as a file attachment.
func (tba *TelebotAdapter) SendDocument(recipientChatID int64, fileName string, content io.Reader, caption string) error {
	doc := &telebot.Document{
		File:     telebot.FromReader(content),
		FileName: fileName,
		Caption:  caption,
	}
	_, err := tba.bot.Send(&telebot.Chat{ID: recipientChatID}, doc)
	return err
}
