package confirm_party_size

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/booking"
)

// UseCase use case подтверждения количества гостей с проверкой вместимости слота
type UseCase struct {
	bookingRepo  BookingRepository
	availability AvailabilityCalculator
	locker       SlotLocker
	txManager    TransactionManager
	metrics      Metrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case. metrics может быть nil.
func NewUseCase(
	bookingRepo BookingRepository,
	availability AvailabilityCalculator,
	locker SlotLocker,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		availability: availability,
		locker:       locker,
		txManager:    txManager,
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute выполняет use case подтверждения.
// Проверка и запись атомарны для слота (категория, дата, время): внутри процесса
// слот защищен SlotLocker, между процессами advisory-блокировкой в сериализуемой транзакции.
// Превышение вместимости не ошибка, а Outcome со списком альтернативных слотов.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmPartySize: user=%d, booking=%d, party_size=%d", req.UserID, req.BookingID, req.PartySize)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ConfirmPartySize: validation failed: %v", err)
		return nil, err
	}

	// 2. Находим бронирование, чтобы узнать слот
	booking, err := uc.pendingBooking(ctx, req)
	if err != nil {
		return nil, err
	}
	slot, _ := booking.Slot()
	capacity := domain.CapacityOf(slot.CategoryID)

	// 3. Сериализуем подтверждения на один слот внутри процесса
	unlock := uc.locker.Lock(slot.String())
	defer unlock()

	resp := &Response{
		BookingID:  booking.ID,
		CategoryID: slot.CategoryID,
		Date:       slot.Date,
		Time:       slot.Time,
		PartySize:  req.PartySize,
		Capacity:   capacity,
	}

	// 4. Проверяем вместимость и записываем в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Блокировка слота до конца транзакции
		if err := uc.bookingRepo.LockSlot(txCtx, slot); err != nil {
			return fmt.Errorf("%w: failed to lock slot: %v", ErrStoreUnavailable, err)
		}

		// 4.2. Перечитываем бронирование под блокировкой строки
		locked, err := uc.pendingBooking(txCtx, req)
		if err != nil {
			return err
		}
		if lockedSlot, _ := locked.Slot(); lockedSlot.String() != slot.String() {
			uc.logger.Warn("ConfirmPartySize: booking id=%d slot changed from %s to %s", booking.ID, slot, lockedSlot)
			return ErrNoPendingBooking
		}

		// 4.3. Считаем завершенные бронирования на слот
		count, err := uc.bookingRepo.CountComplete(txCtx, slot)
		if err != nil {
			return fmt.Errorf("%w: failed to count bookings: %v", ErrStoreUnavailable, err)
		}

		if count >= capacity {
			uc.logger.Warn("ConfirmPartySize: slot %s is full, %d/%d", slot, count, capacity)
			resp.Outcome = OutcomeCapacityExceeded
			resp.Admitted = count
			return nil
		}

		// 4.4. Записываем количество гостей
		if err := uc.bookingRepo.Complete(txCtx, booking.ID, req.PartySize); err != nil {
			return fmt.Errorf("%w: failed to complete booking: %v", ErrStoreUnavailable, err)
		}

		resp.Outcome = OutcomeAdmitted
		resp.Admitted = count + 1
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNoPendingBooking):
		case errors.Is(err, ErrStoreUnavailable):
			uc.logger.Error("ConfirmPartySize: %v", err)
		default:
			uc.logger.Error("ConfirmPartySize: transaction failed for booking id=%d: %v", booking.ID, err)
			err = fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.ObserveAdmission(string(resp.Outcome))
	}

	if resp.Outcome == OutcomeAdmitted {
		uc.logger.Info("ConfirmPartySize: booking id=%d admitted, %d/%d at %s", booking.ID, resp.Admitted, capacity, slot)
		return resp, nil
	}

	// 5. Предлагаем другие слоты на ту же дату
	alternatives, err := uc.availability.Available(ctx, slot.CategoryID, slot.Date)
	if err != nil {
		uc.logger.Error("ConfirmPartySize: failed to get alternative slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get alternative slots: %v", ErrStoreUnavailable, err)
	}
	resp.AlternativeSlots = alternatives

	return resp, nil
}

// pendingBooking возвращает бронирование пользователя, ожидающее количества гостей
func (uc *UseCase) pendingBooking(ctx context.Context, req *Request) (*domain.Booking, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("ConfirmPartySize: booking id=%d not found", req.BookingID)
			return nil, ErrNoPendingBooking
		}
		uc.logger.Error("ConfirmPartySize: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrStoreUnavailable, err)
	}

	if !booking.IsOwnedBy(req.UserID) || !booking.CanConfirmPartySize() {
		uc.logger.Warn("ConfirmPartySize: booking id=%d is not pending for user=%d, status=%s",
			req.BookingID, req.UserID, booking.Status)
		return nil, ErrNoPendingBooking
	}

	return booking, nil
}
