package send_reminders

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetDueReminders(ctx context.Context, window domain.ReminderWindow) ([]*domain.BookingDetails, error)
	MarkReminderSent(ctx context.Context, id int64) error
}

// LanguageResolver возвращает язык пользователя
type LanguageResolver interface {
	Language(ctx context.Context, chatID int64) (domain.Language, error)
}

// Notifier отправляет напоминание пользователю
type Notifier interface {
	SendReminder(ctx context.Context, chatID int64, reminder domain.Reminder) error
}

// Metrics учитывает результат отправки
type Metrics interface {
	ObserveReminder(result string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
