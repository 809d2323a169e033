package get_payments

import (
	"context"

	"github.com/avtoagent/STO-BookingService/internal/service/balance/models"
)

type BalanceService interface {
	GetPayments(ctx context.Context, agentID int64, actorID int64) (*models.PaymentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
