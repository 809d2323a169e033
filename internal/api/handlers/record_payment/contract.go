package record_payment

import (
	"context"

	"github.com/avtoagent/STO-BookingService/internal/service/balance/models"
)

type BalanceService interface {
	RecordPayment(ctx context.Context, req *models.RecordPaymentRequest) (*models.PaymentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
