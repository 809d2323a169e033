package get_station_cards

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/avtoagent/STO-BookingService/internal/api/handlers"
	"github.com/avtoagent/STO-BookingService/internal/api/middleware"
	"github.com/avtoagent/STO-BookingService/internal/domain"
	"github.com/avtoagent/STO-BookingService/internal/service/cards"
	"github.com/avtoagent/STO-BookingService/internal/service/cards/models"
)

const (
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingAgentID = "отсутствует ID агента"
	msgForbidden      = "список карточек станции доступен только администратору"
	msgAgentNotFound  = "агент не найден"
)

type Handler struct {
	service CardService
	logger  Logger
}

func NewHandler(service CardService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/stations/{stationId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	stationID := vars["stationId"]

	actorID, ok := middleware.GetAgentID(r.Context())
	if !ok {
		h.logger.Warn("GET /stations/{stationId}/bookings - Missing agent ID")
		handlers.RespondUnauthorized(w, msgMissingAgentID)
		return
	}

	from, err := parseDateParam(r, "from")
	if err != nil {
		h.logger.Warn("GET /stations/{stationId}/bookings - Invalid from date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	to, err := parseDateParam(r, "to")
	if err != nil {
		h.logger.Warn("GET /stations/{stationId}/bookings - Invalid to date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	// Верхняя граница эксклюзивная: включаем весь день "to"
	if to != nil {
		end := to.AddDate(0, 0, 1)
		to = &end
	}

	includeCancelled := r.URL.Query().Get("includeCancelled") == "true"

	result, err := h.service.GetStationCards(r.Context(), &models.GetStationCardsRequest{
		ActorID:          actorID,
		StationID:        stationID,
		From:             from,
		To:               to,
		IncludeCancelled: includeCancelled,
	})
	if err != nil {
		switch {
		case errors.Is(err, cards.ErrAgentNotFound):
			h.logger.Warn("GET /stations/{stationId}/bookings - Agent not found: actor_id=%d", actorID)
			handlers.RespondNotFound(w, msgAgentNotFound)

		case errors.Is(err, cards.ErrAccessDenied):
			h.logger.Warn("GET /stations/{stationId}/bookings - Access denied: station_id=%s, actor_id=%d",
				stationID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /stations/{stationId}/bookings - Failed to get cards: station_id=%s, error=%v",
				stationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /stations/{stationId}/bookings - Cards retrieved successfully: station_id=%s, count=%d",
		stationID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// parseDateParam парсит опциональный query-параметр с датой YYYY-MM-DD
func parseDateParam(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	date, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		return nil, err
	}
	return &date, nil
}
