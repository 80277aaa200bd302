package telegram

import (
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// reminderTitle заголовок напоминания на языке пользователя
var reminderTitle = map[domain.Language]string{
	domain.LanguageEn: "Reminder",
	domain.LanguageRu: "Напоминание",
	domain.LanguageUz: "Eslatma",
}

// FormatReminder собирает текст вида "Reminder: Hotels - 2026-11-02 10:00"
func FormatReminder(reminder domain.Reminder) string {
	title, ok := reminderTitle[reminder.Language]
	if !ok {
		title = reminderTitle[domain.DefaultLanguage]
	}
	return fmt.Sprintf("%s: %s - %s %s",
		title, reminder.CategoryName, reminder.Date.Format(domain.DateFormat), reminder.Time)
}
