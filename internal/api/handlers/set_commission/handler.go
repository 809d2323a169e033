package set_commission

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avtoagent/STO-BookingService/internal/api/handlers"
	"github.com/avtoagent/STO-BookingService/internal/api/middleware"
	"github.com/avtoagent/STO-BookingService/internal/service/agents"
	"github.com/avtoagent/STO-BookingService/internal/service/agents/models"
)

const (
	msgInvalidAgentID     = "некорректный ID агента"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRate        = "ставка комиссии должна быть от 0 до 100"
	msgMissingAgentID     = "отсутствует ID агента"
	msgAgentNotFound      = "агент не найден"
	msgForbidden          = "изменение комиссии доступно только администратору"
)

// SetCommissionHTTPRequest тело запроса на изменение комиссии
type SetCommissionHTTPRequest struct {
	Rate string `json:"rate"`
}

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

// Handle PUT /api/v1/agents/{agentId}/commission
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	agentID, err := strconv.ParseInt(vars["agentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /agents/{agentId}/commission - Invalid agent ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAgentID)
		return
	}

	actorID, ok := middleware.GetAgentID(r.Context())
	if !ok {
		h.logger.Warn("PUT /agents/{agentId}/commission - Missing agent ID")
		handlers.RespondUnauthorized(w, msgMissingAgentID)
		return
	}

	var req SetCommissionHTTPRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /agents/{agentId}/commission - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.SetCommission(r.Context(), agentID, &models.SetCommissionRequest{
		ActorID: actorID,
		Rate:    req.Rate,
	})
	if err != nil {
		switch {
		case errors.Is(err, agents.ErrInvalidInput):
			h.logger.Warn("PUT /agents/{agentId}/commission - Invalid rate %q: agent_id=%d", req.Rate, agentID)
			handlers.RespondBadRequest(w, msgInvalidRate)

		case errors.Is(err, agents.ErrAgentNotFound):
			h.logger.Warn("PUT /agents/{agentId}/commission - Agent not found: agent_id=%d", agentID)
			handlers.RespondNotFound(w, msgAgentNotFound)

		case errors.Is(err, agents.ErrAccessDenied):
			h.logger.Warn("PUT /agents/{agentId}/commission - Access denied: agent_id=%d, actor_id=%d", agentID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PUT /agents/{agentId}/commission - Failed to set commission: agent_id=%d, error=%v",
				agentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /agents/{agentId}/commission - Commission updated: agent_id=%d, rate=%s",
		agentID, result.CommissionRate)
	handlers.RespondJSON(w, http.StatusOK, result)
}
