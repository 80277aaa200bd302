package select_date

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	categoryRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/category"
)

// UseCase use case выбора даты: создает незавершенное бронирование
type UseCase struct {
	bookingRepo  BookingRepository
	categoryRepo CategoryRepository
	availability AvailabilityCalculator
	txManager    TransactionManager
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	categoryRepo CategoryRepository,
	availability AvailabilityCalculator,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		categoryRepo: categoryRepo,
		availability: availability,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		location:     location,
		logger:       logger,
	}
}

// Execute выполняет use case выбора даты.
// Предыдущие незавершенные бронирования пользователя удаляются в той же транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SelectDate: user=%d, category=%d, date=%s",
		req.UserID, req.CategoryID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SelectDate: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата не должна быть в прошлом
	now := uc.timeProvider.Now().In(uc.location)
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("SelectDate: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 3. Проверяем категорию
	if _, err := uc.categoryRepo.GetByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, categoryRepo.ErrCategoryNotFound) {
			uc.logger.Warn("SelectDate: category id=%d not found", req.CategoryID)
			return nil, ErrCategoryNotFound
		}
		uc.logger.Error("SelectDate: failed to get category id=%d: %v", req.CategoryID, err)
		return nil, fmt.Errorf("%w: failed to get category: %v", ErrStoreUnavailable, err)
	}

	var (
		created   *domain.Booking
		abandoned int64
	)

	// 4. Удаляем старые незавершенные бронирования и создаем новое
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		deleted, err := uc.bookingRepo.DeletePendingByUser(txCtx, req.UserID)
		if err != nil {
			return fmt.Errorf("%w: failed to delete pending bookings: %v", ErrStoreUnavailable, err)
		}
		abandoned = deleted

		created, err = uc.bookingRepo.Create(txCtx, &domain.Booking{
			CategoryID:  req.CategoryID,
			UserID:      req.UserID,
			BookingDate: req.Date,
			Status:      domain.StatusAwaitingTime,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to create booking: %v", ErrStoreUnavailable, err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Error("SelectDate: transaction failed for user=%d: %v", req.UserID, err)
		if !errors.Is(err, ErrStoreUnavailable) {
			err = fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		return nil, err
	}

	if abandoned > 0 {
		uc.logger.Info("SelectDate: abandoned %d pending bookings of user=%d", abandoned, req.UserID)
	}

	// 5. Свободные слоты для следующего шага
	slots, err := uc.availability.Available(ctx, req.CategoryID, req.Date)
	if err != nil {
		uc.logger.Error("SelectDate: failed to get available slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get available slots: %v", ErrStoreUnavailable, err)
	}

	uc.logger.Info("SelectDate: created booking id=%d for user=%d", created.ID, req.UserID)

	return &Response{
		BookingID:      created.ID,
		CategoryID:     created.CategoryID,
		Date:           created.BookingDate,
		Status:         string(created.Status),
		Abandoned:      abandoned,
		AvailableSlots: slots,
	}, nil
}
