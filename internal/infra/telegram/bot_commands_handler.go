// internal/infra/telegram/bot_commands_handler.go
package telegram

import (
	"fmt"
	"strings"

	"technohunter_bot/internal/app"

	"gopkg.in/telebot.v3"
)

func RegisterBotCommands(b *telebot.Bot, deps *Deps) {
	b.Handle("/start", handleStart(deps))
	b.Handle("/help", handleHelp(deps))
	b.Handle("/status", handleStatus(deps))
}

func welcomeText(firstName string) string {
	if firstName == "" {
		firstName = "Пользователь"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "🚀 Добро пожаловать в Технохантер, %s!\n\n", firstName)
	b.WriteString("Технохантер — это эффективный механизм ранней профессиональной интеграции студентов и аспирантов ведущих российских вузов в R&D-процессы технологичных компаний Москвы.\n\n")
	b.WriteString("Выберите, кто вы:")
	return b.String()
}

// handleStart resets the user's form session and shows the branch choice.
func handleStart(deps *Deps) telebot.HandlerFunc {
	startLogger := deps.Logger.WithField("handler_group", "start_help")
	return func(c telebot.Context) error {
		senderID := c.Sender().ID
		logCtx := startLogger.WithField("command", "/start").WithField("sender_id", senderID)
		logCtx.Info("Processing /start command")

		deps.Sessions.Reset(senderID)
		return c.Send(welcomeText(c.Sender().FirstName), &telebot.SendOptions{
			ParseMode:   telebot.ModeHTML,
			ReplyMarkup: branchChoiceMarkup(),
		})
	}
}

func handleHelp(deps *Deps) telebot.HandlerFunc {
	helpLogger := deps.Logger.WithField("handler_group", "start_help")
	return func(c telebot.Context) error {
		helpLogger.WithField("command", "/help").WithField("sender_id", c.Sender().ID).Info("Processing /help command")

		var helpText strings.Builder
		helpText.WriteString("🤖 <b>Помощь по боту Технохантер</b>\n\n")
		helpText.WriteString("<b>Доступные команды:</b>\n")
		helpText.WriteString("/start - Начать регистрацию заявки\n")
		helpText.WriteString("/help - Показать эту справку\n")
		helpText.WriteString("/status - Проверить статус бота\n\n")
		helpText.WriteString("<b>Что делает этот бот:</b>\n")
		helpText.WriteString("• Помогает компаниям и студентам подавать заявки на участие в программе Технохантер\n")
		helpText.WriteString("• Предоставляет удобную форму для заполнения всех необходимых данных\n")
		helpText.WriteString("• Автоматически уведомляет организаторов о новых заявках\n\n")
		helpText.WriteString("<b>Нужна помощь?</b>\n")
		fmt.Fprintf(&helpText, "Напишите %s или воспользуйтесь командой /start для начала работы.", deps.Support)
		return c.Send(helpText.String(), &telebot.SendOptions{ParseMode: telebot.ModeHTML})
	}
}

// handleStatus is a read-only snapshot of the process.
func handleStatus(deps *Deps) telebot.HandlerFunc {
	return func(c telebot.Context) error {
		logCtx := deps.Logger.WithField("command", "/status").WithField("sender_id", c.Sender().ID)
		logCtx.Info("Processing /status command")

		total, err := deps.Repo.Count(deps.Ctx)
		if err != nil {
			logCtx.WithError(err).Error("Failed to count applications for /status")
			return c.Send("Не удалось получить статус. Пожалуйста, попробуйте позже.")
		}

		webApp := "❌ Не настроен"
		if deps.WebApp != "" {
			webApp = "✅ Настроен"
		}

		var b strings.Builder
		b.WriteString("✅ <b>Статус бота: Активен</b>\n\n")
		fmt.Fprintf(&b, "🕐 Время сервера: %s\n", app.FormatTime(deps.now()))
		fmt.Fprintf(&b, "📁 Заявок в хранилище: %d\n", total)
		fmt.Fprintf(&b, "👥 Активных сессий: %d\n", deps.Sessions.Count())
		fmt.Fprintf(&b, "🌐 Web App URL: %s\n\n", webApp)
		b.WriteString("Бот работает нормально!")
		return c.Send(b.String(), &telebot.SendOptions{ParseMode: telebot.ModeHTML})
	}
}
