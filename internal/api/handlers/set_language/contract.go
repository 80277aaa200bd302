package set_language

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/service/users"
)

type UserService interface {
	SetLanguage(ctx context.Context, chatID int64, language string) (*users.UserResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
