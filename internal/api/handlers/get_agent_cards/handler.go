package get_agent_cards

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
	msgInvalidAgentID = "некорректный ID агента"
	msgInvalidStatus  = "некорректный статус карточки"
	msgMissingAgentID = "отсутствует ID агента"
	msgForbidden      = "доступ запрещен"
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

// Handle GET /api/v1/agents/{agentId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	agentID, err := strconv.ParseInt(vars["agentId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /agents/{agentId}/bookings - Invalid agent ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAgentID)
		return
	}

	actorID, ok := middleware.GetAgentID(r.Context())
	if !ok {
		h.logger.Warn("GET /agents/{agentId}/bookings - Missing agent ID")
		handlers.RespondUnauthorized(w, msgMissingAgentID)
		return
	}

	var statusPtr *string
	if status := r.URL.Query().Get("status"); status != "" {
		statusPtr = &status
	}

	result, err := h.service.GetAgentCards(r.Context(), &models.GetAgentCardsRequest{
		ActorID: actorID,
		AgentID: agentID,
		Status:  statusPtr,
	})
	if err != nil {
		switch {
		case errors.Is(err, cards.ErrInvalidInput):
			h.logger.Warn("GET /agents/{agentId}/bookings - Invalid status: agent_id=%d", agentID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, cards.ErrAgentNotFound):
			h.logger.Warn("GET /agents/{agentId}/bookings - Agent not found: actor_id=%d", actorID)
			handlers.RespondNotFound(w, msgAgentNotFound)

		case errors.Is(err, cards.ErrAccessDenied):
			h.logger.Warn("GET /agents/{agentId}/bookings - Access denied: agent_id=%d, actor_id=%d", agentID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /agents/{agentId}/bookings - Failed to get cards: agent_id=%d, error=%v", agentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /agents/{agentId}/bookings - Cards retrieved successfully: agent_id=%d, count=%d",
		agentID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
