package get_card

import (
	"context"

	"github.com/avtoagent/STO-BookingService/internal/service/cards/models"
)

type CardService interface {
	GetByID(ctx context.Context, id int64, actorID int64) (*models.CardResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
