package confirm_party_size

import (
	"context"

	confirmPartySize "github.com/m04kA/SMC-ReservationService/internal/usecase/confirm_party_size"
)

type ConfirmPartySizeUseCase interface {
	Execute(ctx context.Context, req *confirmPartySize.Request) (*confirmPartySize.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
