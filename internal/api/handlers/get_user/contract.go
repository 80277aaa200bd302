package get_user

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/service/users"
)

type UserService interface {
	GetByChatID(ctx context.Context, chatID int64) (*users.UserResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
