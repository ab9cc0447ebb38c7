package telegram

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"technohunter_bot/internal/app"
	"technohunter_bot/internal/domain/application"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// RegisterAdminHandlers registers handlers for admin commands.
// Authorization is checked by the admin service on every invocation.
func RegisterAdminHandlers(b *telebot.Bot, deps *Deps) {
	b.Handle("/admin", handleAdminOverview(deps))
	b.Handle("/admin_list", handleAdminList(deps))
	b.Handle("/admin_view", handleAdminView(deps))
	b.Handle("/admin_toggle", handleAdminToggle(deps))
	b.Handle("/admin_export", handleAdminExport(deps))
}

func adminLogger(deps *Deps, c telebot.Context, handler string) *logrus.Entry {
	l := deps.Logger.WithFields(logrus.Fields{
		"handler":   handler,
		"sender_id": c.Sender().ID,
	})
	l.Info("Command received")
	return l
}

// adminFailure maps a service error to the reply text.
func adminFailure(err error, logCtx *logrus.Entry, action string) string {
	logWithError := logCtx.WithError(err)
	if errors.Is(err, app.ErrAdminNotAuthorized) {
		logWithError.Warn("Unauthorized access attempt")
		return msgNotAdmin
	}
	logWithError.Error("Admin command failed")
	return fmt.Sprintf("Произошла ошибка при %s. Пожалуйста, попробуйте позже.", action)
}

// recentListMarkup puts one view button per record under the list.
func recentListMarkup(records []*application.Record) *telebot.ReplyMarkup {
	if len(records) == 0 {
		return nil
	}
	menu := &telebot.ReplyMarkup{}
	rows := make([]telebot.Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, menu.Row(menu.Data("🔍 "+rec.ID, btnViewApp.Unique, rec.ID)))
	}
	menu.Inline(rows...)
	return menu
}

func formatRecentList(records []*application.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>Последние %d заявок:</b>\n", len(records))
	if len(records) == 0 {
		b.WriteString("Заявок пока нет.")
		return b.String()
	}
	for i, rec := range records {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(app.FormatRecordLine(rec))
	}
	return b.String()
}

func notificationsLine(enabled bool) string {
	if enabled {
		return "🔔 Уведомления: включены"
	}
	return "🔕 Уведомления: выключены"
}

func handleAdminOverview(deps *Deps) telebot.HandlerFunc {
	return func(c telebot.Context) error {
		logCtx := adminLogger(deps, c, "/admin")

		stats, err := deps.Admin.Stats(deps.Ctx, c.Sender().ID)
		if err != nil {
			return c.Send(adminFailure(err, logCtx, "получении статистики"))
		}
		recent, err := deps.Admin.Recent(deps.Ctx, c.Sender().ID)
		if err != nil {
			return c.Send(adminFailure(err, logCtx, "получении списка заявок"))
		}

		var b strings.Builder
		b.WriteString(app.FormatStats(stats))
		b.WriteString("\n")
		b.WriteString(notificationsLine(deps.Admin.NotificationsEnabled()))
		b.WriteString("\n\n")
		b.WriteString(formatRecentList(recent))
		b.WriteString("\n\n/admin_list • /admin_view &lt;ID&gt; • /admin_toggle • /admin_export")

		logCtx.WithField("total", stats.Total).Info("Admin overview sent")
		return c.Send(b.String(), &telebot.SendOptions{ParseMode: telebot.ModeHTML, ReplyMarkup: recentListMarkup(recent)})
	}
}

func handleAdminList(deps *Deps) telebot.HandlerFunc {
	return func(c telebot.Context) error {
		logCtx := adminLogger(deps, c, "/admin_list")

		recent, err := deps.Admin.Recent(deps.Ctx, c.Sender().ID)
		if err != nil {
			return c.Send(adminFailure(err, logCtx, "получении списка заявок"))
		}
		logCtx.WithField("count", len(recent)).Info("Successfully retrieved application list")
		return c.Send(formatRecentList(recent), &telebot.SendOptions{ParseMode: telebot.ModeHTML, ReplyMarkup: recentListMarkup(recent)})
	}
}

func handleAdminView(deps *Deps) telebot.HandlerFunc {
	return func(c telebot.Context) error {
		logCtx := adminLogger(deps, c, "/admin_view")

		args := c.Args()
		// Expected format: /admin_view <ID>
		if len(args) != 1 {
			if !deps.Admin.IsAdmin(c.Sender().ID) {
				logCtx.Warn("Unauthorized access attempt")
				return c.Send(msgNotAdmin)
			}
			return c.Send("Неверный формат команды. Используйте: /admin_view <ID заявки>")
		}
		appID := strings.TrimSpace(args[0])
		logCtx = logCtx.WithField("application_id", appID)

		rec, err := deps.Admin.View(deps.Ctx, c.Sender().ID, appID)
		if err != nil {
			return c.Send(viewErrorText(err, appID, logCtx))
		}
		return c.Send(app.FormatApplicationDetails(rec), &telebot.SendOptions{ParseMode: telebot.ModeHTML})
	}
}

func handleAdminToggle(deps *Deps) telebot.HandlerFunc {
	return func(c telebot.Context) error {
		logCtx := adminLogger(deps, c, "/admin_toggle")

		enabled, err := deps.Admin.ToggleNotifications(c.Sender().ID)
		if err != nil {
			return c.Send(adminFailure(err, logCtx, "переключении уведомлений"))
		}
		logCtx.WithField("notifications_enabled", enabled).Info("Notifications toggled")
		return c.Send(notificationsLine(enabled))
	}
}

func handleAdminExport(deps *Deps) telebot.HandlerFunc {
	return func(c telebot.Context) error {
		logCtx := adminLogger(deps, c, "/admin_export")

		data, n, err := deps.Admin.ExportCSV(deps.Ctx, c.Sender().ID)
		if err != nil {
			return c.Send(adminFailure(err, logCtx, "выгрузке заявок"))
		}

		fileName := fmt.Sprintf("technohunter_applications_%s.csv", deps.now().Format("20060102_150405"))
		caption := fmt.Sprintf("📤 Выгрузка заявок: %d", n)
		if err := deps.Client.SendDocument(c.Chat().ID, fileName, bytes.NewReader(data), caption); err != nil {
			logCtx.WithError(err).Error("Failed to send export document")
			return c.Send("Не удалось отправить файл выгрузки. Пожалуйста, попробуйте позже.")
		}
		logCtx.WithField("rows", n).Info("Export sent")
		return nil
	}
}
