package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/avtoagent/STO-BookingService/internal/domain"
)

// BalanceResponse ответ с текущим балансом агента и его слагаемыми
// Баланс всегда выводится из хранимых данных и нигде не кэшируется:
// balance = approved_sum - commission_amount - payments_sum
type BalanceResponse struct {
	AgentID          int64  `json:"agent_id"`
	ApprovedCount    int    `json:"approved_count"`
	ApprovedSum      string `json:"approved_sum"`
	CommissionRate   string `json:"commission_rate"`
	CommissionAmount string `json:"commission_amount"`
	PaymentsSum      string `json:"payments_sum"`
	Balance          string `json:"balance"`
}

// RecordPaymentRequest запрос на регистрацию выплаты агенту
// Amount со знаком: положительная — выплата агенту, отрицательная — корректировка
type RecordPaymentRequest struct {
	ActorID int64  `json:"-"`
	AgentID int64  `json:"agent_id"`
	Amount  string `json:"amount"`
	Comment string `json:"comment"`
}

// PaymentResponse одна запись журнала выплат
type PaymentResponse struct {
	ID        int64  `json:"id"`
	AgentID   int64  `json:"agent_id"`
	Amount    string `json:"amount"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"created_at"`
}

// PaymentListResponse журнал выплат агента
type PaymentListResponse struct {
	Payments []*PaymentResponse `json:"payments"`
	Total    int                `json:"total"`
}

// FromDomainPayment преобразует доменную выплату в модель ответа
func FromDomainPayment(p *domain.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:        p.ID,
		AgentID:   p.AgentID,
		Amount:    p.Amount.StringFixed(2),
		Comment:   p.Comment,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}

// FromDomainPaymentList преобразует список доменных выплат в модель ответа
func FromDomainPaymentList(payments []*domain.Payment) *PaymentListResponse {
	resp := &PaymentListResponse{
		Payments: make([]*PaymentResponse, 0, len(payments)),
		Total:    len(payments),
	}
	for _, p := range payments {
		resp.Payments = append(resp.Payments, FromDomainPayment(p))
	}
	return resp
}

// NewBalanceResponse собирает ответ из слагаемых баланса
func NewBalanceResponse(agentID int64, approvedCount int, approvedSum, rate, paymentsSum decimal.Decimal) *BalanceResponse {
	commission := approvedSum.Mul(rate).Div(decimal.NewFromInt(100))
	balance := approvedSum.Sub(commission).Sub(paymentsSum)

	return &BalanceResponse{
		AgentID:          agentID,
		ApprovedCount:    approvedCount,
		ApprovedSum:      approvedSum.StringFixed(2),
		CommissionRate:   rate.StringFixed(2),
		CommissionAmount: commission.StringFixed(2),
		PaymentsSum:      paymentsSum.StringFixed(2),
		Balance:          balance.StringFixed(2),
	}
}
