package confirm_party_size

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Outcome результат подтверждения
type Outcome string

const (
	OutcomeAdmitted         Outcome = "admitted"
	OutcomeCapacityExceeded Outcome = "capacity_exceeded"
)

// Request модель запроса на подтверждение количества гостей
type Request struct {
	UserID    int64 // ID пользователя (chat id)
	BookingID int64 // ID бронирования в статусе awaiting_party_size
	PartySize int   // Количество гостей
}

// Response модель ответа.
// AlternativeSlots заполняется только при OutcomeCapacityExceeded.
type Response struct {
	Outcome          Outcome
	BookingID        int64
	CategoryID       int64
	Date             time.Time
	Time             types.TimeString
	PartySize        int
	Capacity         int
	Admitted         int // Завершенных бронирований на слот после операции
	AlternativeSlots []types.TimeString
}
