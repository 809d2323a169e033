package list_stations

import (
	"github.com/avtoagent/STO-BookingService/internal/domain"
)

type StationProvider interface {
	ListStations() []*domain.Station
	ListByCategory(category domain.VehicleCategory) []*domain.Station
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
