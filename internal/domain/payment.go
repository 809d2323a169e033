package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment ручная корректировка баланса агента
// Append-only: платежи никогда не редактируются и не удаляются.
// Сумма знаковая: положительная уменьшает баланс к выплате (выплата агенту),
// отрицательная увеличивает (начисление)
type Payment struct {
	ID        int64
	AgentID   int64
	Amount    decimal.Decimal
	Comment   string
	CreatedAt time.Time
}
