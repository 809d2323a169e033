package get_agent_cards

import (
	"context"

	"github.com/avtoagent/STO-BookingService/internal/service/cards/models"
)

type CardService interface {
	GetAgentCards(ctx context.Context, req *models.GetAgentCardsRequest) (*models.CardListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
