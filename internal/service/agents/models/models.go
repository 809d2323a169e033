package models

import (
	"time"

	"github.com/avtoagent/STO-BookingService/internal/domain"
)

// RegisterAgentRequest запрос на регистрацию нового агента
type RegisterAgentRequest struct {
	TelegramID int64  `json:"telegram_id"`
	FullName   string `json:"full_name"`
	Phone      string `json:"phone"`
	Company    string `json:"company"`
}

// SetCommissionRequest запрос на изменение ставки комиссии агента
type SetCommissionRequest struct {
	ActorID int64  `json:"-"`
	Rate    string `json:"rate"`
}

// AgentResponse данные агента
type AgentResponse struct {
	ID             int64  `json:"id"`
	TelegramID     int64  `json:"telegram_id"`
	FullName       string `json:"full_name"`
	Phone          string `json:"phone"`
	Company        string `json:"company"`
	Role           string `json:"role"`
	CommissionRate string `json:"commission_rate"`
	CreatedAt      string `json:"created_at"`
}

// AgentListResponse список агентов
type AgentListResponse struct {
	Agents []*AgentResponse `json:"agents"`
	Total  int              `json:"total"`
}

// FromDomainAgent преобразует доменного агента в модель ответа
func FromDomainAgent(a *domain.Agent) *AgentResponse {
	return &AgentResponse{
		ID:             a.ID,
		TelegramID:     a.TelegramID,
		FullName:       a.FullName,
		Phone:          a.Phone,
		Company:        a.Company,
		Role:           string(a.Role),
		CommissionRate: a.CommissionRate.StringFixed(2),
		CreatedAt:      a.CreatedAt.Format(time.RFC3339),
	}
}

// FromDomainAgentList преобразует список доменных агентов в модель ответа
func FromDomainAgentList(agents []*domain.Agent) *AgentListResponse {
	resp := &AgentListResponse{
		Agents: make([]*AgentResponse, 0, len(agents)),
		Total:  len(agents),
	}
	for _, a := range agents {
		resp.Agents = append(resp.Agents, FromDomainAgent(a))
	}
	return resp
}
