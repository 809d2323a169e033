package list_stations

import (
	"net/http"

	"github.com/avtoagent/STO-BookingService/internal/api/handlers"
	"github.com/avtoagent/STO-BookingService/internal/domain"
)

const (
	msgInvalidCategory = "неизвестная категория ТС"
)

type Handler struct {
	stations StationProvider
	logger   Logger
}

func NewHandler(stations StationProvider, logger Logger) *Handler {
	return &Handler{
		stations: stations,
		logger:   logger,
	}
}

// Handle GET /api/v1/stations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var result []*domain.Station

	if category := r.URL.Query().Get("category"); category != "" {
		if !domain.IsValidCategory(domain.VehicleCategory(category)) {
			h.logger.Warn("GET /stations - Invalid category: %s", category)
			handlers.RespondBadRequest(w, msgInvalidCategory)
			return
		}
		result = h.stations.ListByCategory(domain.VehicleCategory(category))
	} else {
		result = h.stations.ListStations()
	}

	h.logger.Info("GET /stations - Stations listed successfully: count=%d", len(result))
	handlers.RespondJSON(w, http.StatusOK, FromDomainStationList(result))
}
