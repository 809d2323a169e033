package register_agent

import (
	"context"

	"github.com/avtoagent/STO-BookingService/internal/service/agents/models"
)

type AgentService interface {
	Register(ctx context.Context, req *models.RegisterAgentRequest) (*models.AgentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
