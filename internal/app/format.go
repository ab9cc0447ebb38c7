package app

import (
	"fmt"
	"html"
	"strings"
	"time"

	"technohunter_bot/internal/domain/application"
	"technohunter_bot/internal/domain/form"
)

const notSpecified = "Не указано"

var moscowTime = time.FixedZone("MSK", 3*60*60)

// FormatTime renders a timestamp the way admins read it (Moscow time).
func FormatTime(t time.Time) string {
	return t.In(moscowTime).Format("02.01.2006, 15:04:05")
}

func typeTitle(t form.Branch) (emoji, title string) {
	switch t {
	case form.BranchCompany:
		return "🏢", "Компания"
	case form.BranchParticipant:
		return "🎓", "Участник"
	default:
		return "❔", string(t)
	}
}

func value(rec *application.Record, key, placeholder string) string {
	v := rec.Field(key)
	if v == "" {
		return placeholder
	}
	return html.EscapeString(v)
}

// formatResumeLink adds https:// to links entered without a scheme.
func formatResumeLink(link string) string {
	if link == "" {
		return notSpecified
	}
	if !strings.HasPrefix(link, "http://") && !strings.HasPrefix(link, "https://") {
		link = "https://" + link
	}
	return html.EscapeString(link)
}

func formatResidency(v any) string {
	b, ok := v.(bool)
	switch {
	case !ok:
		return notSpecified
	case b:
		return "Да"
	default:
		return "Нет"
	}
}

// FormatApplicationDetails renders the full HTML summary sent to administrators.
func FormatApplicationDetails(rec *application.Record) string {
	emoji, title := typeTitle(rec.Type)

	var b strings.Builder
	fmt.Fprintf(&b, "🆕 <b>НОВАЯ ЗАЯВКА: %s</b>\n\n", strings.ToUpper(title))
	fmt.Fprintf(&b, "%s <b>Тип:</b> %s\n", emoji, title)
	fmt.Fprintf(&b, "🆔 <b>ID:</b> <code>%s</code>\n", rec.ID)
	fmt.Fprintf(&b, "⏰ <b>Время:</b> %s\n", FormatTime(rec.SubmittedAt))

	switch rec.Type {
	case form.BranchCompany:
		b.WriteString("\n<b>- ИНФОРМАЦИЯ О КОМПАНИИ</b>\n")
		fmt.Fprintf(&b, "🏢 <b>Название:</b> %s\n", value(rec, form.KeyCompanyName, notSpecified))
		fmt.Fprintf(&b, "📊 <b>ИНН:</b> %s\n", value(rec, form.KeyINN, notSpecified))
		fmt.Fprintf(&b, "🟢 <b>Готовность:</b> %s\n", value(rec, form.KeyReadiness, notSpecified))

		b.WriteString("\n<b>- КОНТАКТЫ МЕНТОРА</b>\n")
		fmt.Fprintf(&b, "👤 <b>ФИО и должность:</b> %s\n", value(rec, form.KeyMentorName, notSpecified))
		fmt.Fprintf(&b, "📧 <b>Email:</b> %s\n", value(rec, form.KeyMentorEmail, notSpecified))
		fmt.Fprintf(&b, "📱 <b>Телефон:</b> %s\n", value(rec, form.KeyMentorPhone, notSpecified))
		fmt.Fprintf(&b, "💬 <b>Telegram:</b> %s\n", value(rec, form.KeyMentorTelegram, notSpecified))

		b.WriteString("\n<b>- ДЕТАЛИ СТАЖИРОВКИ</b>\n")
		fmt.Fprintf(&b, "🏛️ <b>Подразделение:</b> %s\n", value(rec, form.KeyDepartment, notSpecified))
		fmt.Fprintf(&b, "👥 <b>Количество участников:</b> %s\n", value(rec, form.KeyParticipantsCount, notSpecified))
		fmt.Fprintf(&b, "🔧 <b>Ресурсы:</b> %s\n", value(rec, form.KeyResources, notSpecified))
		fmt.Fprintf(&b, "🎯 <b>Краткосрочные цели:</b> %s\n", value(rec, form.KeyShortTermGoals, notSpecified))

		b.WriteString("\n<b>- ТРЕБОВАНИЯ И УСЛОВИЯ</b>\n")
		fmt.Fprintf(&b, "💼 <b>Навыки:</b> %s\n", value(rec, form.KeySkillRequirements, notSpecified))
		fmt.Fprintf(&b, "📋 <b>Другие требования:</b> %s\n", value(rec, form.KeyOtherRequirements, notSpecified))
		fmt.Fprintf(&b, "🏠 <b>Режим работы:</b> %s\n", value(rec, form.KeyWorkMode, notSpecified))
		fmt.Fprintf(&b, "⏱️ <b>График:</b> %s\n", value(rec, form.KeyWorkSchedule, notSpecified))
		fmt.Fprintf(&b, "💰 <b>Оплата:</b> %s\n", value(rec, form.KeyPaymentAbility, notSpecified))
		fmt.Fprintf(&b, "🚀 <b>Трудоустройство:</b> %s\n", value(rec, form.KeyEmploymentProspects, notSpecified))
		fmt.Fprintf(&b, "💭 <b>Прочие пожелания:</b> %s\n", value(rec, form.KeyOtherWishes, "Нет"))

	case form.BranchParticipant:
		b.WriteString("\n<b>- ЛИЧНАЯ ИНФОРМАЦИЯ</b>\n")
		fmt.Fprintf(&b, "👤 <b>ФИО:</b> %s\n", value(rec, form.KeyFullName, notSpecified))
		fmt.Fprintf(&b, "🎂 <b>Возраст:</b> %s\n", value(rec, form.KeyAge, notSpecified))
		fmt.Fprintf(&b, "🏠 <b>Проживает в Москве:</b> %s\n", formatResidency(rec.Data[form.KeyLivesInMoscow]))

		b.WriteString("\n<b>- КОНТАКТЫ</b>\n")
		fmt.Fprintf(&b, "📧 <b>Email:</b> %s\n", value(rec, form.KeyEmail, notSpecified))
		fmt.Fprintf(&b, "📱 <b>Телефон:</b> %s\n", value(rec, form.KeyPhone, notSpecified))
		fmt.Fprintf(&b, "💬 <b>Telegram:</b> %s\n", value(rec, form.KeyTelegram, notSpecified))
		fmt.Fprintf(&b, "📄 <b>Резюме:</b> %s\n", formatResumeLink(rec.Field(form.KeyResumeLink)))

		b.WriteString("\n<b>- ОБРАЗОВАНИЕ</b>\n")
		fmt.Fprintf(&b, "🎓 <b>ВУЗ:</b> %s\n", value(rec, form.KeyUniversity, notSpecified))
		fmt.Fprintf(&b, "📚 <b>Направление:</b> %s\n", value(rec, form.KeyDirection, notSpecified))
		fmt.Fprintf(&b, "🎯 <b>Уровень:</b> %s\n", value(rec, form.KeyEducationLevel, notSpecified))
		fmt.Fprintf(&b, "📖 <b>Статус:</b> %s\n", value(rec, form.KeyStudyStatus, notSpecified))
		if course := rec.Field(form.KeyCourse); course != "" {
			fmt.Fprintf(&b, "📋 <b>Курс:</b> %s\n", html.EscapeString(course))
		}

		b.WriteString("\n<b>- ПРЕДПОЧТЕНИЯ ПО РАБОТЕ</b>\n")
		fmt.Fprintf(&b, "🏠 <b>Режим работы:</b> %s\n", value(rec, form.KeyWorkMode, notSpecified))
		fmt.Fprintf(&b, "⏱️ <b>График:</b> %s\n", value(rec, form.KeyWorkSchedule, notSpecified))
		if hours := rec.Field(form.KeyCustomHours); hours != "" {
			fmt.Fprintf(&b, "⏰ <b>Часов в неделю:</b> %s\n", html.EscapeString(hours))
		}
		fmt.Fprintf(&b, "💰 <b>Оплата:</b> %s\n", value(rec, form.KeyPaymentPossibility, notSpecified))
	}

	b.WriteString("\n<b>══════════════</b>\n")
	fmt.Fprintf(&b, "#новая_заявка #%s", rec.Type)
	return b.String()
}

// FormatRecordLine is the one-line entry used in admin lists.
func FormatRecordLine(rec *application.Record) string {
	emoji, _ := typeTitle(rec.Type)
	name := rec.DisplayName()
	if name == "" {
		name = "Без названия"
	}
	return fmt.Sprintf("• %s %s (<code>%s</code>)", emoji, html.EscapeString(name), rec.ID)
}

// FormatStats renders the statistics block shared by /admin and the daily digest.
func FormatStats(stats Stats) string {
	var b strings.Builder
	b.WriteString("📊 <b>Статистика заявок</b>\n\n")
	fmt.Fprintf(&b, "📁 Всего заявок: %d\n", stats.Total)
	fmt.Fprintf(&b, "🏢 Заявок от компаний: %d\n", stats.Company)
	fmt.Fprintf(&b, "🎓 Заявок от участников: %d\n", stats.Participant)
	fmt.Fprintf(&b, "⏰ За последние 24 часа: %d", stats.Last24h)
	return b.String()
}

// FormatConfirmation is the reply the submitter gets once the application is stored.
func FormatConfirmation(rec *application.Record, partnersURL string) string {
	email := rec.ContactEmail()
	if email == "" {
		email = "не указан"
	}

	var b strings.Builder
	switch rec.Type {
	case form.BranchCompany:
		b.WriteString("🎉 Заявка компании успешно отправлена!\n\n")
		fmt.Fprintf(&b, "📋 Номер заявки: <code>%s</code>\n\n", rec.ID)
		b.WriteString("Спасибо за участие в программе Технохантер! Наши специалисты рассмотрят вашу заявку и свяжутся с вами в ближайшее время.\n\n")
		fmt.Fprintf(&b, "Информация о следующих этапах будет направлена на указанный вами email: <code>%s</code>", html.EscapeString(email))
	default:
		b.WriteString("🎓 Заявка участника успешно отправлена!\n\n")
		fmt.Fprintf(&b, "📋 Номер заявки: <code>%s</code>\n\n", rec.ID)
		b.WriteString("Спасибо за интерес к программе Технохантер! Мы рассмотрим вашу заявку и свяжемся с вами для обсуждения подходящих вакансий.\n\n")
		fmt.Fprintf(&b, "Ожидайте ответ на email: <code>%s</code>", html.EscapeString(email))
		if partnersURL != "" {
			fmt.Fprintf(&b, "\n\nВы можете ознакомиться с компаниями-партнерами по ссылке:\n%s", partnersURL)
		}
	}
	b.WriteString("\n\nДля подачи новой заявки используйте команду /start")
	return b.String()
}
