package telegram

import (
	"errors"

	"technohunter_bot/internal/app"
	"technohunter_bot/internal/domain/form"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

func RegisterWebAppHandlers(b *telebot.Bot, deps *Deps) {
	b.Handle(telebot.OnWebApp, handleWebAppData(deps))
}

// handleWebAppData accepts the envelope sent by the mini-app. The record is
// stored and administrators are notified before the submitter is answered.
func handleWebAppData(deps *Deps) telebot.HandlerFunc {
	return func(c telebot.Context) error {
		senderID := c.Sender().ID
		logCtx := deps.Logger.WithFields(logrus.Fields{
			"handler":   "web_app_data",
			"sender_id": senderID,
			"chat_id":   c.Chat().ID,
		})

		msg := c.Message()
		if msg == nil || msg.WebAppData == nil {
			logCtx.Warn("Web app event without data")
			return c.Send(msgSubmissionError)
		}
		logCtx.Info("Received web app data")

		rec, err := deps.Intake.Submit(deps.Ctx, senderID, msg.WebAppData.Data)
		if err != nil {
			if !errors.Is(err, form.ErrInvalidEnvelope) {
				logCtx.WithError(err).Error("Failed to accept application")
			}
			return c.Send(msgSubmissionError)
		}

		deps.Sessions.Delete(senderID)
		return c.Send(app.FormatConfirmation(rec, deps.Partners), &telebot.SendOptions{
			ParseMode:   telebot.ModeHTML,
			ReplyMarkup: &telebot.ReplyMarkup{RemoveKeyboard: true},
		})
	}
}
