package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	categoryRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/category"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// UseCase use case для получения доступных слотов
type UseCase struct {
	bookingRepo  BookingRepository
	categoryRepo CategoryRepository
	grid         domain.SlotGrid
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	categoryRepo CategoryRepository,
	grid domain.SlotGrid,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		categoryRepo: categoryRepo,
		grid:         grid,
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов.
// Слот занят, если на него есть хотя бы одно бронирование в любом статусе,
// вместимость категории здесь не учитывается.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%d, category=%d, date=%s",
		req.UserID, req.CategoryID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем категорию
	category, err := uc.categoryRepo.GetByID(ctx, req.CategoryID)
	if err != nil {
		if errors.Is(err, categoryRepo.ErrCategoryNotFound) {
			uc.logger.Warn("GetAvailableSlots: category id=%d not found", req.CategoryID)
			return nil, ErrCategoryNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get category id=%d: %v", req.CategoryID, err)
		return nil, fmt.Errorf("%w: failed to get category: %v", ErrStoreUnavailable, err)
	}

	// 3. Вычитаем занятые слоты из сетки
	slots, err := uc.Available(ctx, req.CategoryID, req.Date)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("GetAvailableSlots: %d/%d slots available for category=%d on %s",
		len(slots), len(uc.grid.Slots()), req.CategoryID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:     req.Date,
		Category: *category,
		Capacity: category.Capacity(),
		Slots:    slots,
	}, nil
}

// Available возвращает свободные слоты сетки без проверки категории
func (uc *UseCase) Available(ctx context.Context, categoryID int64, date time.Time) ([]types.TimeString, error) {
	taken, err := uc.bookingRepo.GetTakenTimes(ctx, categoryID, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get taken times for category=%d: %v", categoryID, err)
		return nil, fmt.Errorf("%w: failed to get taken times: %v", ErrStoreUnavailable, err)
	}

	return uc.grid.Subtract(taken), nil
}
