package send_reminders

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Результаты отправки для метрик
const (
	ResultSent       = "sent"
	ResultSendFailed = "send_failed"
	ResultMarkFailed = "mark_failed"
)

// Config параметры окна напоминаний
type Config struct {
	Lead     time.Duration  // За сколько до визита напоминать
	Window   time.Duration  // Ширина окна
	Location *time.Location // Часовой пояс дат и времени бронирований
}

// DefaultConfig 24 часа до визита, окно 1 час, UTC
func DefaultConfig() Config {
	return Config{
		Lead:     domain.DefaultReminderLead,
		Window:   domain.DefaultReminderWindow,
		Location: time.UTC,
	}
}

// Response итог одного цикла
type Response struct {
	Window domain.ReminderWindow
	Due    int // Бронирований в окне
	Sent   int // Отправлено и помечено
	Failed int // Не отправлено или не помечено
}
