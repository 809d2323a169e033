package card

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/avtoagent/STO-BookingService/internal/domain"
	"github.com/avtoagent/STO-BookingService/pkg/dbmetrics"
	"github.com/avtoagent/STO-BookingService/pkg/psqlbuilder"
)

// pgUniqueViolation код ошибки PostgreSQL при нарушении уникального индекса
const pgUniqueViolation = "23505"

// slotIndexName частичный уникальный индекс (station_id, appointment_time)
// среди неотменённых карточек — авторитетная защита от двойного бронирования
const slotIndexName = "uniq_active_station_slot"

var cardColumns = []string{
	"id",
	"card_number",
	"agent_id",
	"station_id",
	"station_name",
	"category",
	"appointment_time",
	"client_name",
	"car_number",
	"vin_number",
	"client_phone",
	"has_defects",
	"defect_type",
	"defect_description",
	"total_price",
	"status",
	"admin_comment",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с карточками ТО
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория карточек ТО
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую карточку ТО
// Если в контексте передана активная транзакция, использует её — создание
// всегда выполняется внутри сериализуемой транзакции usecase вместе с
// повторной проверкой доступности слота.
// Нарушение частичного уникального индекса по (станция, время записи)
// транслируется в ErrSlotTaken: конкурентная вставка на тот же слот проиграла
func (r *Repository) Create(ctx context.Context, card *domain.TOCard) (*domain.TOCard, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("to_cards").
		Columns(
			"card_number",
			"agent_id",
			"station_id",
			"station_name",
			"category",
			"appointment_time",
			"client_name",
			"car_number",
			"vin_number",
			"client_phone",
			"has_defects",
			"defect_type",
			"defect_description",
			"total_price",
			"status",
		).
		Values(
			card.CardNumber,
			card.AgentID,
			card.StationID,
			card.StationName,
			card.Category,
			card.AppointmentTime,
			card.ClientName,
			card.CarNumber,
			card.VINNumber,
			card.ClientPhone,
			card.HasDefects,
			card.DefectType,
			card.DefectDescription,
			card.TotalPrice,
			card.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&card.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isSlotUniqueViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	card.CreatedAt = createdAt.Time
	card.UpdatedAt = updatedAt.Time

	return card, nil
}

// GetByID получает карточку ТО по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.TOCard, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(cardColumns...).
		From("to_cards").
		Where(squirrel.Eq{"id": id})

	// Внутри транзакции блокируем строку: смена статуса должна видеть
	// актуальное состояние
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanCard(executor.QueryRowContext(ctx, query, args...))
}

// GetByAgentID получает карточки агента, опционально фильтруя по статусу
// Отменённые карточки включаются — агент видит их в истории
func (r *Repository) GetByAgentID(ctx context.Context, agentID int64, status *domain.TOCardStatus) ([]*domain.TOCard, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(cardColumns...).
		From("to_cards").
		Where(squirrel.Eq{"agent_id": agentID}).
		OrderBy("appointment_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAgentID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAgentID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanCards(rows)
}

// GetByStationWithFilter получает карточки станции с фильтрацией по периоду
// и статусу. Для подсчёта занятости отменённые исключаются
// (IncludeCancelled=false); для аудита их можно включить.
//
// Внутри транзакции с заданным периодом добавляется FOR UPDATE — выборка
// блокирует прочитанные карточки до конца транзакции создания, закрывая
// гонку между повторной проверкой доступности и вставкой
func (r *Repository) GetByStationWithFilter(ctx context.Context, filter domain.StationCardsFilter) ([]*domain.TOCard, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(cardColumns...).
		From("to_cards").
		Where(squirrel.Eq{"station_id": filter.StationID})

	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"appointment_time": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"appointment_time": *filter.To})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": domain.StatusCancelled})
	}

	selectBuilder = selectBuilder.OrderBy("appointment_time ASC")

	if dbmetrics.IsInTransaction(ctx) && filter.From != nil && filter.To != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStationWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStationWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanCards(rows)
}

// CountByAgentSince подсчитывает карточки агента, созданные начиная с from
// Используется для порядкового номера в номере карточки ТО
func (r *Repository) CountByAgentSince(ctx context.Context, agentID int64, from time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("to_cards").
		Where(squirrel.Eq{"agent_id": agentID}).
		Where(squirrel.GtOrEq{"created_at": from}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountByAgentSince - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByAgentSince - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// UpdateStatusFrom выполняет compare-and-set перехода статуса: строка
// обновляется только если текущий статус равен from. Проверка и запись
// происходят одним UPDATE, поэтому два конкурентных перехода разрешаются
// в ровно одного победителя.
//
// comment записывается в admin_comment; nil очищает комментарий
// (при согласовании устаревший комментарий стирается).
// Возвращает ErrStatusConflict, если строка существует, но статус уже другой,
// и ErrCardNotFound, если карточки нет
func (r *Repository) UpdateStatusFrom(ctx context.Context, id int64, from, to domain.TOCardStatus, comment *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("to_cards").
		Set("status", to).
		Set("admin_comment", comment).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatusFrom - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusFrom - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusFrom - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		// Различаем "нет карточки" и "статус уже сменился"
		exists, err := r.exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return ErrCardNotFound
		}
		return ErrStatusConflict
	}

	return nil
}

// SumApprovedByAgent возвращает сумму total_price согласованных карточек агента
func (r *Repository) SumApprovedByAgent(ctx context.Context, agentID int64) (decimal.Decimal, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(SUM(total_price), 0)").
		From("to_cards").
		Where(squirrel.Eq{"agent_id": agentID, "status": domain.StatusApproved}).
		ToSql()

	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: SumApprovedByAgent - build select query: %v", ErrBuildQuery, err)
	}

	var sum decimal.Decimal
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&sum); err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: SumApprovedByAgent - scan sum: %w", ErrScanRow, err)
	}

	return sum, nil
}

// CountByAgentAndStatus подсчитывает карточки агента в заданном статусе
func (r *Repository) CountByAgentAndStatus(ctx context.Context, agentID int64, status domain.TOCardStatus) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("to_cards").
		Where(squirrel.Eq{"agent_id": agentID, "status": status}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountByAgentAndStatus - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByAgentAndStatus - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

func (r *Repository) exists(ctx context.Context, id int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("to_cards").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: exists - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: exists - scan row: %w", ErrScanRow, err)
	}

	return true, nil
}

// scanCard сканирует одну карточку из строки результата
func (r *Repository) scanCard(row *sql.Row) (*domain.TOCard, error) {
	var card domain.TOCard
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&card.ID,
		&card.CardNumber,
		&card.AgentID,
		&card.StationID,
		&card.StationName,
		&card.Category,
		&card.AppointmentTime,
		&card.ClientName,
		&card.CarNumber,
		&card.VINNumber,
		&card.ClientPhone,
		&card.HasDefects,
		&card.DefectType,
		&card.DefectDescription,
		&card.TotalPrice,
		&card.Status,
		&card.AdminComment,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrCardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanCard - scan row: %w", ErrScanRow, err)
	}

	card.CreatedAt = createdAt.Time
	card.UpdatedAt = updatedAt.Time

	return &card, nil
}

// scanCards сканирует результаты запроса в слайс карточек
func (r *Repository) scanCards(rows *sql.Rows) ([]*domain.TOCard, error) {
	cards := make([]*domain.TOCard, 0)

	for rows.Next() {
		var card domain.TOCard
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&card.ID,
			&card.CardNumber,
			&card.AgentID,
			&card.StationID,
			&card.StationName,
			&card.Category,
			&card.AppointmentTime,
			&card.ClientName,
			&card.CarNumber,
			&card.VINNumber,
			&card.ClientPhone,
			&card.HasDefects,
			&card.DefectType,
			&card.DefectDescription,
			&card.TotalPrice,
			&card.Status,
			&card.AdminComment,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanCards - scan row: %w", ErrScanRow, err)
		}

		card.CreatedAt = createdAt.Time
		card.UpdatedAt = updatedAt.Time

		cards = append(cards, &card)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanCards - rows error: %w", ErrScanRow, err)
	}

	return cards, nil
}

// isSlotUniqueViolation распознает нарушение индекса уникальности слота
func isSlotUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgUniqueViolation && pqErr.Constraint == slotIndexName
	}
	return false
}
