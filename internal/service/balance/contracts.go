package balance

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/avtoagent/STO-BookingService/internal/domain"
)

// CardRepository интерфейс репозитория карточек ТО для расчета баланса
type CardRepository interface {
	SumApprovedByAgent(ctx context.Context, agentID int64) (decimal.Decimal, error)
	CountByAgentAndStatus(ctx context.Context, agentID int64, status domain.TOCardStatus) (int, error)
}

// PaymentRepository интерфейс репозитория журнала выплат
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
	GetByAgentID(ctx context.Context, agentID int64) ([]*domain.Payment, error)
	SumByAgentID(ctx context.Context, agentID int64) (decimal.Decimal, error)
}

// AgentRepository интерфейс репозитория агентов
type AgentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Agent, error)
}

// TransactionManager интерфейс менеджера транзакций
// Слагаемые баланса читаются в одной read-only транзакции, чтобы сумма
// одобренных карточек и сумма выплат относились к одному снимку данных
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}
