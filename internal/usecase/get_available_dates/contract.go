package get_available_dates

import (
	"context"
	"time"

	"github.com/avtoagent/STO-BookingService/internal/domain"
)

// CardRepository интерфейс репозитория карточек ТО
type CardRepository interface {
	GetByStationWithFilter(ctx context.Context, filter domain.StationCardsFilter) ([]*domain.TOCard, error)
}

// StationProvider интерфейс справочника станций ТО
type StationProvider interface {
	GetStation(id string) (*domain.Station, error)
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
