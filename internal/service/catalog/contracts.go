package catalog

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// CategoryRepository интерфейс репозитория категорий
type CategoryRepository interface {
	Count(ctx context.Context) (int, error)
	InsertMany(ctx context.Context, categories []domain.Category) (int64, error)
	List(ctx context.Context) ([]domain.Category, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
