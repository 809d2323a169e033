package cancel_card

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avtoagent/STO-BookingService/internal/api/handlers"
	"github.com/avtoagent/STO-BookingService/internal/api/middleware"
	"github.com/avtoagent/STO-BookingService/internal/service/cards"
	"github.com/avtoagent/STO-BookingService/internal/service/cards/models"
)

const (
	msgInvalidCardID     = "некорректный ID карточки"
	msgNotFound          = "карточка ТО не найдена"
	msgMissingAgentID    = "отсутствует ID агента"
	msgForbidden         = "доступ запрещен"
	msgInvalidTransition = "карточку нельзя отменить в текущем статусе"
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

// Handle PATCH /api/v1/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	cardID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid card ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCardID)
		return
	}

	agentID, ok := middleware.GetAgentID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Missing agent ID")
		handlers.RespondUnauthorized(w, msgMissingAgentID)
		return
	}

	err = h.service.Cancel(r.Context(), cardID, &models.CancelCardRequest{ActorID: agentID})
	if err != nil {
		switch {
		case errors.Is(err, cards.ErrCardNotFound), errors.Is(err, cards.ErrAgentNotFound):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Card not found: card_id=%d", cardID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cards.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Access denied: card_id=%d, agent_id=%d", cardID, agentID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, cards.ErrInvalidTransition):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid transition: card_id=%d", cardID)
			handlers.RespondConflict(w, msgInvalidTransition)

		default:
			h.logger.Error("PATCH /bookings/{id}/cancel - Failed to cancel card: card_id=%d, error=%v", cardID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/cancel - Card cancelled successfully: card_id=%d, agent_id=%d", cardID, agentID)
	w.WriteHeader(http.StatusNoContent)
}
