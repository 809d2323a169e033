package get_station_cards

import (
	"context"

	"github.com/avtoagent/STO-BookingService/internal/service/cards/models"
)

type CardService interface {
	GetStationCards(ctx context.Context, req *models.GetStationCardsRequest) (*models.CardListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
