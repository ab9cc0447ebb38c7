// internal/infra/telegram/handlers.go
package telegram

import (
	"context"
	"net/url"
	"time"

	"technohunter_bot/internal/app"
	"technohunter_bot/internal/domain/application"
	"technohunter_bot/internal/domain/form"
	domainTelegram "technohunter_bot/internal/domain/telegram"
	"technohunter_bot/internal/infra/memory"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// User-facing texts shared by several handlers.
const (
	msgNotAdmin        = "❌ У вас нет прав администратора."
	msgGenericFailure  = "Произошла ошибка. Попробуйте команду /start еще раз."
	msgSubmissionError = "Произошла ошибка при обработке заявки. Пожалуйста, попробуйте еще раз или обратитесь в поддержку."
)

// Callback endpoints. Payloads travel in Callback().Data.
var (
	btnSelectBranch = telebot.Btn{Unique: "select_branch"}
	btnBackToStart  = telebot.Btn{Unique: "back_to_start"}
	btnViewApp      = telebot.Btn{Unique: "app_view"}
)

// Deps carries everything the handlers need.
type Deps struct {
	Ctx      context.Context
	Catalog  *form.Catalog
	Sessions *memory.SessionStore
	Repo     application.Repository
	Intake   *app.IntakeService
	Admin    *app.AdminService
	Client   domainTelegram.Client
	WebApp   string
	Support  string
	Partners string
	Logger   *logrus.Entry
	Now      func() time.Time
}

func (d *Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// RegisterHandlers wires every command, callback and web-app handler onto b.
func RegisterHandlers(b *telebot.Bot, deps *Deps) {
	RegisterBotCommands(b, deps)
	RegisterCallbackHandlers(b, deps)
	RegisterAdminHandlers(b, deps)
	RegisterWebAppHandlers(b, deps)
}

// webAppURL opens the mini-app on the given branch.
func webAppURL(base string, branch form.Branch) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	q := u.Query()
	q.Set("type", string(branch))
	u.RawQuery = q.Encode()
	return u.String()
}

func branchChoiceMarkup() *telebot.ReplyMarkup {
	menu := &telebot.ReplyMarkup{}
	menu.Inline(
		menu.Row(menu.Data("🏢 Компания", btnSelectBranch.Unique, string(form.BranchCompany))),
		menu.Row(menu.Data("🎓 Участник программы", btnSelectBranch.Unique, string(form.BranchParticipant))),
	)
	return menu
}

func backMarkup() *telebot.ReplyMarkup {
	menu := &telebot.ReplyMarkup{}
	menu.Inline(menu.Row(menu.Data("◀️ Назад к выбору", btnBackToStart.Unique)))
	return menu
}

// formKeyboard is the reply keyboard whose web-app button can send data back to the bot.
func formKeyboard(label, link string) *telebot.ReplyMarkup {
	return &telebot.ReplyMarkup{
		ResizeKeyboard: true,
		ReplyKeyboard:  [][]telebot.ReplyButton{{{Text: label, WebApp: &telebot.WebApp{URL: link}}}},
	}
}

// editOrSend replaces the text of the message behind a callback, falling
// back to a new message when the edit is rejected.
func editOrSend(deps *Deps, c telebot.Context, text string, markup *telebot.ReplyMarkup, logCtx *logrus.Entry) error {
	opts := &telebot.SendOptions{ParseMode: telebot.ModeHTML, ReplyMarkup: markup}
	chatID := c.Chat().ID
	if cb := c.Callback(); cb != nil && cb.Message != nil {
		err := deps.Client.EditMessage(chatID, cb.Message.ID, text, opts)
		if err == nil {
			return nil
		}
		logCtx.WithError(err).Warn("Could not edit message, sending new one")
	}
	return deps.Client.SendMessage(chatID, text, opts)
}
