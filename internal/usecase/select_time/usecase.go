package select_time

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/booking"
)

// UseCase use case выбора времени для незавершенного бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	grid         domain.SlotGrid
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	grid domain.SlotGrid,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		grid:         grid,
		timeProvider: &RealTimeProvider{},
		location:     location,
		logger:       logger,
	}
}

// Execute выполняет use case выбора времени.
// Повторный выбор после отказа по вместимости перезаписывает время.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SelectTime: user=%d, booking=%d, time=%s", req.UserID, req.BookingID, req.Time)

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.grid); err != nil {
		uc.logger.Warn("SelectTime: validation failed: %v", err)
		return nil, err
	}

	var booking *domain.Booking

	// 2. Блокируем бронирование и записываем время
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		booking, err = uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrNoPendingBooking
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrStoreUnavailable, err)
		}

		if !booking.IsOwnedBy(req.UserID) || !booking.CanSelectTime() {
			return ErrNoPendingBooking
		}

		// Слот сегодняшнего дня, который уже начался, выбрать нельзя
		start, err := req.Time.OnDate(booking.BookingDate, uc.location)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
		}
		if !start.After(uc.timeProvider.Now().In(uc.location)) {
			return fmt.Errorf("%w: %s on %s", ErrSlotInPast, req.Time, booking.BookingDate.Format(domain.DateFormat))
		}

		if err := uc.bookingRepo.SetTime(txCtx, booking.ID, req.Time); err != nil {
			return fmt.Errorf("%w: failed to set time: %v", ErrStoreUnavailable, err)
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNoPendingBooking):
			uc.logger.Warn("SelectTime: no pending booking id=%d for user=%d", req.BookingID, req.UserID)
		case errors.Is(err, ErrSlotInPast), errors.Is(err, ErrInvalidTimeSlot):
			uc.logger.Warn("SelectTime: %v", err)
		case errors.Is(err, ErrStoreUnavailable):
			uc.logger.Error("SelectTime: %v", err)
		default:
			uc.logger.Error("SelectTime: transaction failed: %v", err)
			err = fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		return nil, err
	}

	uc.logger.Info("SelectTime: booking id=%d now awaits party size at %s", booking.ID, req.Time)

	return &Response{
		BookingID:  booking.ID,
		CategoryID: booking.CategoryID,
		Date:       booking.BookingDate,
		Time:       req.Time,
		Status:     string(domain.StatusAwaitingPartySize),
		Capacity:   domain.CapacityOf(booking.CategoryID),
	}, nil
}
