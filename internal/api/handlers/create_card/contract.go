package create_card

import (
	"context"

	createCard "github.com/avtoagent/STO-BookingService/internal/usecase/create_card"
)

type CreateCardUseCase interface {
	Execute(ctx context.Context, req *createCard.Request) (*createCard.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
