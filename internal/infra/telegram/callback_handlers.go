// internal/infra/telegram/callback_handlers.go
package telegram

import (
	"errors"
	"fmt"
	"strings"

	"technohunter_bot/internal/app"
	"technohunter_bot/internal/domain/application"
	"technohunter_bot/internal/domain/form"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

func RegisterCallbackHandlers(b *telebot.Bot, deps *Deps) {
	b.Handle(&btnSelectBranch, handleSelectBranch(deps))
	b.Handle(&btnBackToStart, handleBackToStart(deps))
	b.Handle(&btnViewApp, handleViewCallback(deps))

	b.Handle(telebot.OnCallback, func(c telebot.Context) error {
		data := c.Callback().Data
		c.Bot().OnError(fmt.Errorf("unhandled callback data: %s", data), c)
		return c.Respond(&telebot.CallbackResponse{Text: "Неизвестное действие."})
	})
}

func branchSelectedText(def *form.Definition) string {
	var b strings.Builder
	switch def.Branch {
	case form.BranchCompany:
		b.WriteString("✅ Вы выбрали: Компания\n\n")
		b.WriteString("Сейчас откроется форма для регистрации заявки компании. Заполнение займет около 5-10 минут.\n\n")
	default:
		b.WriteString("✅ Вы выбрали: Участник программы\n\n")
		b.WriteString("Сейчас откроется форма для регистрации заявки участника. Заполнение займет около 5-10 минут.\n\n")
	}
	b.WriteString("Нажмите кнопку «📋 Заполнить заявку» под полем ввода, чтобы начать.")
	return b.String()
}

func branchUnavailableText(def *form.Definition) string {
	return fmt.Sprintf("🔧 %s\n\nК сожалению, эта форма пока находится в разработке.\n\n"+
		"Пожалуйста, обратитесь позже или свяжитесь с организаторами программы напрямую.", def.Title)
}

// handleSelectBranch moves the session out of branch selection and hands the
// user a keyboard that opens the mini-app on the chosen branch.
func handleSelectBranch(deps *Deps) telebot.HandlerFunc {
	return func(c telebot.Context) error {
		senderID := c.Sender().ID
		branch := form.Branch(c.Callback().Data)
		logCtx := deps.Logger.WithFields(logrus.Fields{
			"handler":   "select_branch",
			"sender_id": senderID,
			"branch":    branch,
		})

		def, _ := deps.Catalog.Lookup(branch)
		selectBranch := func(s *form.Session) error { return s.SelectBranch(branch) }
		err := deps.Sessions.With(senderID, selectBranch)
		if errors.Is(err, form.ErrBranchLocked) {
			// Keyboard from an earlier /start.
			deps.Sessions.Reset(senderID)
			err = deps.Sessions.With(senderID, selectBranch)
		}

		switch {
		case errors.Is(err, form.ErrBranchUnavailable):
			logCtx.Info("Branch not available yet")
			if err := editOrSend(deps, c, branchUnavailableText(def), backMarkup(), logCtx); err != nil {
				logCtx.WithError(err).Error("Failed to send branch-unavailable message")
			}
			return c.Respond()
		case err != nil:
			logCtx.WithError(err).Warn("Failed to select branch")
			return c.Respond(&telebot.CallbackResponse{Text: "Неизвестное действие."})
		}

		logCtx.Info("User selected branch")
		if err := editOrSend(deps, c, branchSelectedText(def), backMarkup(), logCtx); err != nil {
			logCtx.WithError(err).Error("Failed to confirm branch selection")
		}
		keyboard := formKeyboard("📋 Заполнить заявку", webAppURL(deps.WebApp, def.Branch))
		if err := deps.Client.SendMessage(c.Chat().ID, "Форма готова к заполнению 👇", &telebot.SendOptions{ReplyMarkup: keyboard}); err != nil {
			logCtx.WithError(err).Error("Failed to send web app keyboard")
			return c.Respond(&telebot.CallbackResponse{Text: "Произошла ошибка."})
		}
		return c.Respond()
	}
}

// handleBackToStart walks the session back to branch selection and shows the choice again.
func handleBackToStart(deps *Deps) telebot.HandlerFunc {
	return func(c telebot.Context) error {
		senderID := c.Sender().ID
		logCtx := deps.Logger.WithFields(logrus.Fields{"handler": "back_to_start", "sender_id": senderID})
		logCtx.Info("Processing back to start")

		reset := false
		_ = deps.Sessions.With(senderID, func(s *form.Session) error {
			s.Back()
			reset = s.State() != form.StateBranchSelect
			return nil
		})
		if reset {
			deps.Sessions.Reset(senderID)
		}

		if err := editOrSend(deps, c, welcomeText(c.Sender().FirstName), branchChoiceMarkup(), logCtx); err != nil {
			logCtx.WithError(err).Error("Failed to show branch choice")
			return c.Respond(&telebot.CallbackResponse{Text: "Произошла ошибка."})
		}
		return c.Respond()
	}
}

// handleViewCallback is admin-view behind the inline button of the admin list.
func handleViewCallback(deps *Deps) telebot.HandlerFunc {
	return func(c telebot.Context) error {
		senderID := c.Sender().ID
		appID := c.Callback().Data
		logCtx := deps.Logger.WithFields(logrus.Fields{
			"handler":        "app_view",
			"sender_id":      senderID,
			"application_id": appID,
		})

		rec, err := deps.Admin.View(deps.Ctx, senderID, appID)
		if err != nil {
			_ = c.Respond()
			return c.Send(viewErrorText(err, appID, logCtx))
		}
		_ = c.Respond()
		return c.Send(app.FormatApplicationDetails(rec), &telebot.SendOptions{ParseMode: telebot.ModeHTML})
	}
}

func viewErrorText(err error, appID string, logCtx *logrus.Entry) string {
	switch {
	case errors.Is(err, app.ErrAdminNotAuthorized):
		logCtx.Warn("Unauthorized access attempt")
		return msgNotAdmin
	case errors.Is(err, application.ErrApplicationNotFound):
		logCtx.Info("Application not found")
		return fmt.Sprintf("Заявка %s не найдена.", appID)
	default:
		logCtx.WithError(err).Error("Failed to load application")
		return "Произошла ошибка при получении заявки. Пожалуйста, попробуйте позже."
	}
}
