package create_card

import (
	"errors"
	"net/http"

	"github.com/avtoagent/STO-BookingService/internal/api/handlers"
	"github.com/avtoagent/STO-BookingService/internal/api/middleware"
	createCard "github.com/avtoagent/STO-BookingService/internal/usecase/create_card"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingAgentID     = "отсутствует ID агента"
	msgAgentNotFound      = "агент не найден"
	msgStationNotFound    = "станция не найдена"
	msgCategoryNotServed  = "станция не обслуживает эту категорию ТС"
	msgSlotNotAvailable   = "выбранный слот недоступен"
	msgSlotInPast         = "выбранное время уже прошло"
	msgInvalidDate        = "некорректная дата записи"
	msgDateTooFar         = "дата записи слишком далеко в будущем"
	msgInvalidInput       = "некорректные данные карточки"
)

type Handler struct {
	useCase CreateCardUseCase
	logger  Logger
}

func NewHandler(useCase CreateCardUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	agentID, ok := middleware.GetAgentID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing agent ID")
		handlers.RespondUnauthorized(w, msgMissingAgentID)
		return
	}

	var req CreateCardRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(agentID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createCard.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: agent_id=%d, station_id=%s", agentID, req.StationID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createCard.ErrAgentNotFound):
			h.logger.Warn("POST /bookings - Agent not found: agent_id=%d", agentID)
			handlers.RespondNotFound(w, msgAgentNotFound)

		case errors.Is(err, createCard.ErrStationNotFound):
			h.logger.Warn("POST /bookings - Station not found: station_id=%s", req.StationID)
			handlers.RespondNotFound(w, msgStationNotFound)

		case errors.Is(err, createCard.ErrCategoryNotServed):
			h.logger.Warn("POST /bookings - Category not served: station_id=%s, category=%s", req.StationID, req.Category)
			handlers.RespondBadRequest(w, msgCategoryNotServed)

		case errors.Is(err, createCard.ErrSlotInPast):
			h.logger.Warn("POST /bookings - Slot in past: agent_id=%d, station_id=%s", agentID, req.StationID)
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.Is(err, createCard.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid date: agent_id=%d, date=%s", agentID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createCard.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings - Date too far in future: agent_id=%d, date=%s", agentID, req.Date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createCard.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: agent_id=%d: %v", agentID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create card: agent_id=%d, station_id=%s, error=%v",
				agentID, req.StationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Card created successfully: card_id=%d, number=%s, agent_id=%d",
		result.ID, result.CardNumber, agentID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
