package users

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// UserRepository интерфейс хранилища пользователей.
// Реализуется Postgres репозиторием и mongostore.UserRepository.
type UserRepository interface {
	Upsert(ctx context.Context, chatID int64, fullName string, lang domain.Language) (*domain.User, bool, error)
	UpsertLanguage(ctx context.Context, chatID int64, lang domain.Language) (*domain.User, error)
	SetPhone(ctx context.Context, chatID int64, phone string) (*domain.User, error)
	GetByChatID(ctx context.Context, chatID int64) (*domain.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
