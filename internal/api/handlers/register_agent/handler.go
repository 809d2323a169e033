package register_agent

import (
	"errors"
	"net/http"

	"github.com/avtoagent/STO-BookingService/internal/api/handlers"
	"github.com/avtoagent/STO-BookingService/internal/service/agents"
	"github.com/avtoagent/STO-BookingService/internal/service/agents/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "необходимо указать telegram_id и ФИО"
	msgDuplicateAgent     = "агент с таким telegram_id уже зарегистрирован"
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

// Handle POST /api/v1/agents
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterAgentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /agents - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Register(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, agents.ErrInvalidInput):
			h.logger.Warn("POST /agents - Invalid input: telegram_id=%d", req.TelegramID)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, agents.ErrDuplicateAgent):
			h.logger.Warn("POST /agents - Duplicate agent: telegram_id=%d", req.TelegramID)
			handlers.RespondConflict(w, msgDuplicateAgent)

		default:
			h.logger.Error("POST /agents - Failed to register agent: telegram_id=%d, error=%v", req.TelegramID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /agents - Agent registered: agent_id=%d, telegram_id=%d", result.ID, result.TelegramID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
