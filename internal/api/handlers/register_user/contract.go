package register_user

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/service/users"
)

type UserService interface {
	Register(ctx context.Context, chatID int64, fullName string, language string) (*users.UserResponse, bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
