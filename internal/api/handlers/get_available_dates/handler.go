package get_available_dates

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/avtoagent/STO-BookingService/internal/api/handlers"
	"github.com/avtoagent/STO-BookingService/internal/domain"
	getAvailableDates "github.com/avtoagent/STO-BookingService/internal/usecase/get_available_dates"
)

const (
	msgStationNotFound = "станция не найдена"
)

// DateResponse HTTP модель одной даты
type DateResponse struct {
	Date      string `json:"date"`
	Available bool   `json:"available"`
}

// DatesResponse HTTP модель ответа с датами станции
type DatesResponse struct {
	StationID string         `json:"stationId"`
	Dates     []DateResponse `json:"dates"`
}

type Handler struct {
	useCase GetAvailableDatesUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableDatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/stations/{stationId}/available-dates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	stationID := vars["stationId"]

	result, err := h.useCase.Execute(r.Context(), &getAvailableDates.Request{StationID: stationID})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableDates.ErrStationNotFound):
			h.logger.Warn("GET /stations/{stationId}/available-dates - Station not found: station_id=%s", stationID)
			handlers.RespondNotFound(w, msgStationNotFound)

		default:
			h.logger.Error("GET /stations/{stationId}/available-dates - Failed to get dates: station_id=%s, error=%v",
				stationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	dates := make([]DateResponse, 0, len(result.Dates))
	for _, d := range result.Dates {
		dates = append(dates, DateResponse{
			Date:      d.Date.Format(domain.DateFormat),
			Available: d.Available,
		})
	}

	h.logger.Info("GET /stations/{stationId}/available-dates - Dates retrieved: station_id=%s, count=%d",
		stationID, len(dates))
	handlers.RespondJSON(w, http.StatusOK, &DatesResponse{
		StationID: result.StationID,
		Dates:     dates,
	})
}
