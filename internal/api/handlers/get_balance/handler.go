package get_balance

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avtoagent/STO-BookingService/internal/api/handlers"
	"github.com/avtoagent/STO-BookingService/internal/api/middleware"
	"github.com/avtoagent/STO-BookingService/internal/service/balance"
)

const (
	msgInvalidAgentID = "некорректный ID агента"
	msgMissingAgentID = "отсутствует ID агента"
	msgAgentNotFound  = "агент не найден"
	msgForbidden      = "доступ запрещен"
)

type Handler struct {
	service BalanceService
	logger  Logger
}

func NewHandler(service BalanceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/agents/{agentId}/balance
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	agentID, err := strconv.ParseInt(vars["agentId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /agents/{agentId}/balance - Invalid agent ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAgentID)
		return
	}

	actorID, ok := middleware.GetAgentID(r.Context())
	if !ok {
		h.logger.Warn("GET /agents/{agentId}/balance - Missing agent ID")
		handlers.RespondUnauthorized(w, msgMissingAgentID)
		return
	}

	result, err := h.service.GetBalance(r.Context(), agentID, actorID)
	if err != nil {
		switch {
		case errors.Is(err, balance.ErrAgentNotFound):
			h.logger.Warn("GET /agents/{agentId}/balance - Agent not found: agent_id=%d", agentID)
			handlers.RespondNotFound(w, msgAgentNotFound)

		case errors.Is(err, balance.ErrAccessDenied):
			h.logger.Warn("GET /agents/{agentId}/balance - Access denied: agent_id=%d, actor_id=%d", agentID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /agents/{agentId}/balance - Failed to get balance: agent_id=%d, error=%v", agentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /agents/{agentId}/balance - Balance retrieved: agent_id=%d, balance=%s", agentID, result.Balance)
	handlers.RespondJSON(w, http.StatusOK, result)
}
