package select_time

import (
	"context"

	selectTime "github.com/m04kA/SMC-ReservationService/internal/usecase/select_time"
)

type SelectTimeUseCase interface {
	Execute(ctx context.Context, req *selectTime.Request) (*selectTime.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
