package reject_card

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
	msgInvalidCardID      = "некорректный ID карточки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "карточка ТО не найдена"
	msgMissingAgentID     = "отсутствует ID агента"
	msgForbidden          = "отклонение доступно только администратору"
	msgInvalidTransition  = "карточку нельзя отклонить в текущем статусе"
	msgReasonRequired     = "необходимо указать причину отклонения"
)

// RejectCardHTTPRequest тело запроса на отклонение
type RejectCardHTTPRequest struct {
	Reason string `json:"reason"`
}

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

// Handle PATCH /api/v1/bookings/{bookingId}/reject
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	cardID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reject - Invalid card ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCardID)
		return
	}

	agentID, ok := middleware.GetAgentID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/reject - Missing agent ID")
		handlers.RespondUnauthorized(w, msgMissingAgentID)
		return
	}

	var req RejectCardHTTPRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reject - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err = h.service.Reject(r.Context(), cardID, &models.RejectCardRequest{
		ActorID: agentID,
		Reason:  req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, cards.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/reject - Empty reason: card_id=%d", cardID)
			handlers.RespondBadRequest(w, msgReasonRequired)

		case errors.Is(err, cards.ErrCardNotFound), errors.Is(err, cards.ErrAgentNotFound):
			h.logger.Warn("PATCH /bookings/{id}/reject - Card not found: card_id=%d", cardID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cards.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/reject - Access denied: card_id=%d, agent_id=%d", cardID, agentID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, cards.ErrInvalidTransition):
			h.logger.Warn("PATCH /bookings/{id}/reject - Invalid transition: card_id=%d", cardID)
			handlers.RespondConflict(w, msgInvalidTransition)

		default:
			h.logger.Error("PATCH /bookings/{id}/reject - Failed to reject card: card_id=%d, error=%v", cardID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/reject - Card rejected successfully: card_id=%d, admin_id=%d", cardID, agentID)
	w.WriteHeader(http.StatusNoContent)
}
