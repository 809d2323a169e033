package list_agents

import (
	"context"

	"github.com/avtoagent/STO-BookingService/internal/service/agents/models"
)

type AgentService interface {
	List(ctx context.Context, actorID int64) (*models.AgentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
