package set_phone

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/service/users"
)

type UserService interface {
	SetPhone(ctx context.Context, chatID int64, phone string) (*users.UserResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
