package confirm_party_size

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	LockSlot(ctx context.Context, slot domain.SlotKey) error
	CountComplete(ctx context.Context, slot domain.SlotKey) (int, error)
	Complete(ctx context.Context, id int64, partySize int) error
}

// AvailabilityCalculator вычисляет свободные слоты категории на дату
type AvailabilityCalculator interface {
	Available(ctx context.Context, categoryID int64, date time.Time) ([]types.TimeString, error)
}

// SlotLocker внутрипроцессная блокировка по ключу слота
type SlotLocker interface {
	Lock(key string) func()
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics учитывает результат подтверждения
type Metrics interface {
	ObserveAdmission(outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
