package payment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/avtoagent/STO-BookingService/internal/domain"
	"github.com/avtoagent/STO-BookingService/pkg/dbmetrics"
	"github.com/avtoagent/STO-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с платежами
// Таблица append-only: операций обновления и удаления нет
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create записывает платеж
func (r *Repository) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payments").
		Columns("agent_id", "amount", "comment").
		Values(payment.AgentID, payment.Amount, payment.Comment).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&payment.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	payment.CreatedAt = createdAt.Time

	return payment, nil
}

// GetByAgentID возвращает платежи агента, новые первыми
func (r *Repository) GetByAgentID(ctx context.Context, agentID int64) ([]*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "agent_id", "amount", "comment", "created_at").
		From("payments").
		Where(squirrel.Eq{"agent_id": agentID}).
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByAgentID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAgentID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	payments := make([]*domain.Payment, 0)
	for rows.Next() {
		var p domain.Payment
		var createdAt sql.NullTime

		if err := rows.Scan(&p.ID, &p.AgentID, &p.Amount, &p.Comment, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: GetByAgentID - scan row: %w", ErrScanRow, err)
		}

		p.CreatedAt = createdAt.Time
		payments = append(payments, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByAgentID - rows error: %w", ErrScanRow, err)
	}

	return payments, nil
}

// SumByAgentID возвращает сумму всех платежей агента
func (r *Repository) SumByAgentID(ctx context.Context, agentID int64) (decimal.Decimal, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(SUM(amount), 0)").
		From("payments").
		Where(squirrel.Eq{"agent_id": agentID}).
		ToSql()

	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: SumByAgentID - build select query: %v", ErrBuildQuery, err)
	}

	var sum decimal.Decimal
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&sum); err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: SumByAgentID - scan sum: %w", ErrScanRow, err)
	}

	return sum, nil
}
