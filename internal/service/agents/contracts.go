package agents

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/avtoagent/STO-BookingService/internal/domain"
)

// AgentRepository интерфейс репозитория агентов
type AgentRepository interface {
	Create(ctx context.Context, agent *domain.Agent) (*domain.Agent, error)
	GetByID(ctx context.Context, id int64) (*domain.Agent, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*domain.Agent, error)
	List(ctx context.Context) ([]*domain.Agent, error)
	UpdateCommission(ctx context.Context, id int64, rate decimal.Decimal) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}
