package create_card

import (
	"context"
	"time"

	"github.com/avtoagent/STO-BookingService/internal/domain"
)

// CardRepository интерфейс репозитория карточек ТО
type CardRepository interface {
	Create(ctx context.Context, card *domain.TOCard) (*domain.TOCard, error)
	GetByStationWithFilter(ctx context.Context, filter domain.StationCardsFilter) ([]*domain.TOCard, error)
	CountByAgentSince(ctx context.Context, agentID int64, from time.Time) (int, error)
}

// AgentRepository интерфейс репозитория агентов
type AgentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Agent, error)
}

// StationProvider интерфейс справочника станций ТО
type StationProvider interface {
	GetStation(id string) (*domain.Station, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
