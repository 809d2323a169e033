package agent

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/avtoagent/STO-BookingService/internal/domain"
	"github.com/avtoagent/STO-BookingService/pkg/dbmetrics"
	"github.com/avtoagent/STO-BookingService/pkg/psqlbuilder"
)

const pgUniqueViolation = "23505"

var agentColumns = []string{
	"id",
	"telegram_id",
	"full_name",
	"phone",
	"company",
	"role",
	"commission_rate",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с агентами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория агентов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create регистрирует нового агента
func (r *Repository) Create(ctx context.Context, agent *domain.Agent) (*domain.Agent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("agents").
		Columns("telegram_id", "full_name", "phone", "company", "role", "commission_rate").
		Values(agent.TelegramID, agent.FullName, agent.Phone, agent.Company, agent.Role, agent.CommissionRate).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&agent.ID, &createdAt, &updatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return nil, ErrDuplicateAgent
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	agent.CreatedAt = createdAt.Time
	agent.UpdatedAt = updatedAt.Time

	return agent, nil
}

// GetByID получает агента по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Agent, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByTelegramID получает агента по telegram id
func (r *Repository) GetByTelegramID(ctx context.Context, telegramID int64) (*domain.Agent, error) {
	return r.getOne(ctx, squirrel.Eq{"telegram_id": telegramID})
}

// List возвращает всех агентов
func (r *Repository) List(ctx context.Context) ([]*domain.Agent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(agentColumns...).
		From("agents").
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	agents := make([]*domain.Agent, 0)
	for rows.Next() {
		agent, err := scanAgent(rows)
		if err != nil {
			return nil, err
		}
		agents = append(agents, agent)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return agents, nil
}

// UpdateCommission устанавливает ставку комиссии агента
func (r *Repository) UpdateCommission(ctx context.Context, id int64, rate decimal.Decimal) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("agents").
		Set("commission_rate", rate).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateCommission - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateCommission - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateCommission - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAgentNotFound
	}

	return nil
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq) (*domain.Agent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(agentColumns...).
		From("agents").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	var agent domain.Agent
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&agent.ID,
		&agent.TelegramID,
		&agent.FullName,
		&agent.Phone,
		&agent.Company,
		&agent.Role,
		&agent.CommissionRate,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrAgentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - scan agent: %w", ErrScanRow, err)
	}

	agent.CreatedAt = createdAt.Time
	agent.UpdatedAt = updatedAt.Time

	return &agent, nil
}

func scanAgent(rows *sql.Rows) (*domain.Agent, error) {
	var agent domain.Agent
	var createdAt, updatedAt sql.NullTime

	err := rows.Scan(
		&agent.ID,
		&agent.TelegramID,
		&agent.FullName,
		&agent.Phone,
		&agent.Company,
		&agent.Role,
		&agent.CommissionRate,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: scanAgent - scan row: %w", ErrScanRow, err)
	}

	agent.CreatedAt = createdAt.Time
	agent.UpdatedAt = updatedAt.Time

	return &agent, nil
}
