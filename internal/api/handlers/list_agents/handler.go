package list_agents

import (
	"errors"
	"net/http"

	"github.com/avtoagent/STO-BookingService/internal/api/handlers"
	"github.com/avtoagent/STO-BookingService/internal/api/middleware"
	"github.com/avtoagent/STO-BookingService/internal/service/agents"
)

const (
	msgMissingAgentID = "отсутствует ID агента"
	msgAgentNotFound  = "агент не найден"
	msgForbidden      = "список агентов доступен только администратору"
)

type Handler struct {
	service AgentService
	logger  Logger
}

func NewHandler(service AgentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/agents
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetAgentID(r.Context())
	if !ok {
		h.logger.Warn("GET /agents - Missing agent ID")
		handlers.RespondUnauthorized(w, msgMissingAgentID)
		return
	}

	result, err := h.service.List(r.Context(), actorID)
	if err != nil {
		switch {
		case errors.Is(err, agents.ErrAgentNotFound):
			h.logger.Warn("GET /agents - Agent not found: actor_id=%d", actorID)
			handlers.RespondNotFound(w, msgAgentNotFound)

		case errors.Is(err, agents.ErrAccessDenied):
			h.logger.Warn("GET /agents - Access denied: actor_id=%d", actorID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /agents - Failed to list agents: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /agents - Agents listed: count=%d", result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
