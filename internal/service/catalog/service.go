package catalog

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings/models"
)

// Service сервис каталога категорий
type Service struct {
	categoryRepo CategoryRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(categoryRepo CategoryRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		categoryRepo: categoryRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Seed заполняет каталог категориями по умолчанию, если он пуст.
// Возвращает true, если категории были добавлены.
func (s *Service) Seed(ctx context.Context) (bool, error) {
	var inserted int64

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		count, err := s.categoryRepo.Count(ctx)
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		inserted, err = s.categoryRepo.InsertMany(ctx, domain.DefaultCategories())
		return err
	})
	if err != nil {
		s.logger.Error("Seed: failed to seed categories: %v", err)
		return false, fmt.Errorf("%w: Seed - seed categories: %v", ErrStoreUnavailable, err)
	}

	if inserted == 0 {
		s.logger.Info("Seed: categories already present")
		return false, nil
	}

	s.logger.Info("Seed: inserted %d categories", inserted)
	return true, nil
}

// ListCategories возвращает все категории в порядке добавления
func (s *Service) ListCategories(ctx context.Context) ([]models.CategoryResponse, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListCategories: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListCategories - repository error: %v", ErrStoreUnavailable, err)
	}

	resp := make([]models.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		resp = append(resp, models.FromDomainCategory(c))
	}
	return resp, nil
}

// CapacityOf возвращает вместимость категории
func (s *Service) CapacityOf(categoryID int64) int {
	return domain.CapacityOf(categoryID)
}
