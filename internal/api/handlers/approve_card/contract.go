package approve_card

import (
	"context"

	"github.com/avtoagent/STO-BookingService/internal/service/cards/models"
)

type CardService interface {
	Approve(ctx context.Context, cardID int64, req *models.ApproveCardRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
