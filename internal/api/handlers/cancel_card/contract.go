package cancel_card

import (
	"context"

	"github.com/avtoagent/STO-BookingService/internal/service/cards/models"
)

type CardService interface {
	Cancel(ctx context.Context, cardID int64, req *models.CancelCardRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
