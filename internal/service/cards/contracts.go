package cards

import (
	"context"

	"github.com/avtoagent/STO-BookingService/internal/domain"
)

// CardRepository интерфейс репозитория карточек ТО
type CardRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.TOCard, error)
	GetByAgentID(ctx context.Context, agentID int64, status *domain.TOCardStatus) ([]*domain.TOCard, error)
	GetByStationWithFilter(ctx context.Context, filter domain.StationCardsFilter) ([]*domain.TOCard, error)
	UpdateStatusFrom(ctx context.Context, id int64, from, to domain.TOCardStatus, comment *string) error
}

// AgentRepository интерфейс репозитория агентов
type AgentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Agent, error)
}

// Notifier интерфейс отправки уведомлений агентам
// Доставка best-effort: ошибки логируются и проглатываются
type Notifier interface {
	Notify(ctx context.Context, chatID int64, message string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
