package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AgentRole роль пользователя в системе
type AgentRole string

const (
	RoleAgent AgentRole = "agent"
	RoleAdmin AgentRole = "admin"
)

// Agent торговый агент, оформляющий записи на ТО для клиентов
// Создается один раз при регистрации и никогда не удаляется:
// на агента ссылаются исторические карточки ТО и платежи
type Agent struct {
	ID         int64
	TelegramID int64
	FullName   string
	Phone      string
	Company    string
	Role       AgentRole

	// CommissionRate процент комиссии, удерживаемый с согласованных карточек
	// Меняется только действием администратора
	CommissionRate decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin возвращает true, если агент является администратором
func (a *Agent) IsAdmin() bool {
	return a.Role == RoleAdmin
}
