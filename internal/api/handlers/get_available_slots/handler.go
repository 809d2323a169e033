package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/avtoagent/STO-BookingService/internal/api/handlers"
	"github.com/avtoagent/STO-BookingService/internal/domain"
	getAvailableSlots "github.com/avtoagent/STO-BookingService/internal/usecase/get_available_slots"
)

const (
	msgMissingDate     = "отсутствует параметр date"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgStationNotFound = "станция не найдена"
	msgDateInPast      = "дата в прошлом"
	msgDateTooFar      = "дата слишком далеко в будущем"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/stations/{stationId}/available-slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	stationID := vars["stationId"]

	rawDate := r.URL.Query().Get("date")
	if rawDate == "" {
		h.logger.Warn("GET /stations/{stationId}/available-slots - Missing date param")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, rawDate)
	if err != nil {
		h.logger.Warn("GET /stations/{stationId}/available-slots - Invalid date %q: %v", rawDate, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		StationID: stationID,
		Date:      date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrStationNotFound):
			h.logger.Warn("GET /stations/{stationId}/available-slots - Station not found: station_id=%s", stationID)
			handlers.RespondNotFound(w, msgStationNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /stations/{stationId}/available-slots - Date in past: station_id=%s, date=%s",
				stationID, rawDate)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /stations/{stationId}/available-slots - Date too far: station_id=%s, date=%s",
				stationID, rawDate)
			handlers.RespondBadRequest(w, msgDateTooFar)

		default:
			h.logger.Error("GET /stations/{stationId}/available-slots - Failed to get slots: station_id=%s, error=%v",
				stationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /stations/{stationId}/available-slots - Slots retrieved: station_id=%s, date=%s, count=%d",
		stationID, rawDate, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
