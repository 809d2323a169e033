package record_payment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avtoagent/STO-BookingService/internal/api/handlers"
	"github.com/avtoagent/STO-BookingService/internal/api/middleware"
	"github.com/avtoagent/STO-BookingService/internal/service/balance"
	"github.com/avtoagent/STO-BookingService/internal/service/balance/models"
)

const (
	msgInvalidAgentID     = "некорректный ID агента"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidAmount      = "некорректная сумма выплаты"
	msgMissingAgentID     = "отсутствует ID агента"
	msgAgentNotFound      = "агент не найден"
	msgForbidden          = "регистрация выплат доступна только администратору"
)

// RecordPaymentHTTPRequest тело запроса на регистрацию выплаты
type RecordPaymentHTTPRequest struct {
	Amount  string `json:"amount"`
	Comment string `json:"comment,omitempty"`
}

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

// Handle POST /api/v1/agents/{agentId}/payments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	agentID, err := strconv.ParseInt(vars["agentId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /agents/{agentId}/payments - Invalid agent ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAgentID)
		return
	}

	actorID, ok := middleware.GetAgentID(r.Context())
	if !ok {
		h.logger.Warn("POST /agents/{agentId}/payments - Missing agent ID")
		handlers.RespondUnauthorized(w, msgMissingAgentID)
		return
	}

	var req RecordPaymentHTTPRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /agents/{agentId}/payments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.RecordPayment(r.Context(), &models.RecordPaymentRequest{
		ActorID: actorID,
		AgentID: agentID,
		Amount:  req.Amount,
		Comment: req.Comment,
	})
	if err != nil {
		switch {
		case errors.Is(err, balance.ErrInvalidInput):
			h.logger.Warn("POST /agents/{agentId}/payments - Invalid amount %q: agent_id=%d", req.Amount, agentID)
			handlers.RespondBadRequest(w, msgInvalidAmount)

		case errors.Is(err, balance.ErrAgentNotFound):
			h.logger.Warn("POST /agents/{agentId}/payments - Agent not found: agent_id=%d", agentID)
			handlers.RespondNotFound(w, msgAgentNotFound)

		case errors.Is(err, balance.ErrAccessDenied):
			h.logger.Warn("POST /agents/{agentId}/payments - Access denied: agent_id=%d, actor_id=%d", agentID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /agents/{agentId}/payments - Failed to record payment: agent_id=%d, error=%v",
				agentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /agents/{agentId}/payments - Payment recorded: payment_id=%d, agent_id=%d, amount=%s",
		result.ID, agentID, result.Amount)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
