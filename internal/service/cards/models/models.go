package models

import (
	"errors"
	"time"

	"github.com/avtoagent/STO-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid card status")
)

// Request модели

// CancelCardRequest запрос на отмену карточки ТО
type CancelCardRequest struct {
	ActorID int64 `json:"actorId"`
}

// ApproveCardRequest запрос на согласование карточки ТО
type ApproveCardRequest struct {
	ActorID int64 `json:"actorId"`
}

// RejectCardRequest запрос на отклонение карточки ТО
type RejectCardRequest struct {
	ActorID int64  `json:"actorId"`
	Reason  string `json:"reason"`
}

// GetAgentCardsRequest запрос на получение карточек агента
type GetAgentCardsRequest struct {
	ActorID int64   `json:"actorId"`
	AgentID int64   `json:"agentId"`
	Status  *string `json:"status,omitempty"`
}

// GetStationCardsRequest запрос на получение карточек станции
type GetStationCardsRequest struct {
	ActorID   int64      `json:"actorId"`
	StationID string     `json:"stationId"`
	From      *time.Time `json:"from,omitempty"`
	To        *time.Time `json:"to,omitempty"`
	// IncludeCancelled включать ли отменённые карточки (аудит)
	IncludeCancelled bool `json:"includeCancelled,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetStationCardsRequest) ToDomainFilter() domain.StationCardsFilter {
	return domain.StationCardsFilter{
		StationID:        r.StationID,
		From:             r.From,
		To:               r.To,
		IncludeCancelled: r.IncludeCancelled,
	}
}

// Response модели

// CardResponse ответ с данными карточки ТО
type CardResponse struct {
	ID              int64  `json:"id"`
	CardNumber      string `json:"cardNumber"`
	AgentID         int64  `json:"agentId"`
	StationID       string `json:"stationId"`
	StationName     string `json:"stationName"`
	Category        string `json:"category"`
	AppointmentTime string `json:"appointmentTime"` // RFC3339

	ClientName  string `json:"clientName"`
	CarNumber   string `json:"carNumber"`
	VINNumber   string `json:"vinNumber"`
	ClientPhone string `json:"clientPhone"`

	HasDefects        bool    `json:"hasDefects"`
	DefectType        string  `json:"defectType"`
	DefectDescription *string `json:"defectDescription,omitempty"`

	TotalPrice   string  `json:"totalPrice"`
	Status       string  `json:"status"`
	AdminComment *string `json:"adminComment,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// CardListResponse ответ со списком карточек ТО
type CardListResponse struct {
	Cards []*CardResponse `json:"cards"`
	Total int             `json:"total"`
}

// FromDomainCard конвертирует domain карточку в response
func FromDomainCard(card *domain.TOCard) *CardResponse {
	return &CardResponse{
		ID:                card.ID,
		CardNumber:        card.CardNumber,
		AgentID:           card.AgentID,
		StationID:         card.StationID,
		StationName:       card.StationName,
		Category:          string(card.Category),
		AppointmentTime:   card.AppointmentTime.Format(time.RFC3339),
		ClientName:        card.ClientName,
		CarNumber:         card.CarNumber,
		VINNumber:         card.VINNumber,
		ClientPhone:       card.ClientPhone,
		HasDefects:        card.HasDefects,
		DefectType:        string(card.DefectType),
		DefectDescription: card.DefectDescription,
		TotalPrice:        card.TotalPrice.StringFixed(2),
		Status:            string(card.Status),
		AdminComment:      card.AdminComment,
		CreatedAt:         card.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         card.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainCardList конвертирует список domain карточек в response
func FromDomainCardList(cards []*domain.TOCard) *CardListResponse {
	result := make([]*CardResponse, 0, len(cards))
	for _, card := range cards {
		result = append(result, FromDomainCard(card))
	}
	return &CardListResponse{
		Cards: result,
		Total: len(result),
	}
}

// ToDomainCardStatus валидирует и конвертирует строковый статус
func ToDomainCardStatus(status string) (domain.TOCardStatus, error) {
	parsed, err := domain.ParseStatus(status)
	if err != nil {
		return "", ErrInvalidStatus
	}
	return parsed, nil
}
