package select_date

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request модель запроса на выбор даты
type Request struct {
	UserID     int64     // ID пользователя (chat id)
	CategoryID int64     // ID категории
	Date       time.Time // Дата бронирования (без времени)
}

// Response модель ответа с созданным незавершенным бронированием
type Response struct {
	BookingID      int64              // ID созданного бронирования
	CategoryID     int64              // ID категории
	Date           time.Time          // Дата бронирования
	Status         string             // Статус бронирования
	Abandoned      int64              // Сколько незавершенных бронирований было удалено
	AvailableSlots []types.TimeString // Свободные слоты на дату
}
