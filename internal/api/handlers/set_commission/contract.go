package set_commission

import (
	"context"

	"github.com/avtoagent/STO-BookingService/internal/service/agents/models"
)

type AgentService interface {
	SetCommission(ctx context.Context, agentID int64, req *models.SetCommissionRequest) (*models.AgentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
