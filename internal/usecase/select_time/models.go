package select_time

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request модель запроса на выбор времени
type Request struct {
	UserID    int64            // ID пользователя (chat id)
	BookingID int64            // ID незавершенного бронирования
	Time      types.TimeString // Время слота, например "10:00"
}

// Response модель ответа с обновленным бронированием
type Response struct {
	BookingID  int64
	CategoryID int64
	Date       time.Time
	Time       types.TimeString
	Status     string
	Capacity   int // Вместимость слота, для подсказки перед вводом количества гостей
}
