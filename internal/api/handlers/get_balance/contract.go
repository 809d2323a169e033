package get_balance

import (
	"context"

	"github.com/avtoagent/STO-BookingService/internal/service/balance/models"
)

type BalanceService interface {
	GetBalance(ctx context.Context, agentID int64, actorID int64) (*models.BalanceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
