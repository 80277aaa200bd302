package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	UserID     int64     // ID пользователя (для логирования, не влияет на результат)
	CategoryID int64     // ID категории
	Date       time.Time // Дата (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date     time.Time          // Дата, на которую запрашивались слоты
	Category domain.Category    // Категория
	Capacity int                // Вместимость слота в категории
	Slots    []types.TimeString // Свободные слоты по возрастанию
}
