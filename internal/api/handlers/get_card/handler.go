package get_card

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avtoagent/STO-BookingService/internal/api/handlers"
	"github.com/avtoagent/STO-BookingService/internal/api/middleware"
	"github.com/avtoagent/STO-BookingService/internal/service/cards"
)

const (
	msgInvalidCardID  = "некорректный ID карточки"
	msgNotFound       = "карточка ТО не найдена"
	msgMissingAgentID = "отсутствует ID агента"
	msgForbidden      = "доступ запрещен"
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

// Handle GET /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	cardID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /bookings/{id} - Invalid card ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCardID)
		return
	}

	agentID, ok := middleware.GetAgentID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/{id} - Missing agent ID")
		handlers.RespondUnauthorized(w, msgMissingAgentID)
		return
	}

	card, err := h.service.GetByID(r.Context(), cardID, agentID)
	if err != nil {
		switch {
		case errors.Is(err, cards.ErrCardNotFound), errors.Is(err, cards.ErrAgentNotFound):
			h.logger.Warn("GET /bookings/{id} - Card not found: card_id=%d", cardID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cards.ErrAccessDenied):
			h.logger.Warn("GET /bookings/{id} - Access denied: card_id=%d, agent_id=%d", cardID, agentID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /bookings/{id} - Failed to get card: card_id=%d, error=%v", cardID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{id} - Card retrieved successfully: card_id=%d, agent_id=%d", cardID, agentID)
	handlers.RespondJSON(w, http.StatusOK, card)
}
