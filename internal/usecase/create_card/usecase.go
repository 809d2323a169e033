package create_card

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avtoagent/STO-BookingService/internal/domain"
	agentRepo "github.com/avtoagent/STO-BookingService/internal/infra/storage/agent"
	cardRepo "github.com/avtoagent/STO-BookingService/internal/infra/storage/card"
	"github.com/avtoagent/STO-BookingService/internal/stations"
	"github.com/avtoagent/STO-BookingService/pkg/ptr"
)

// UseCase use case для создания карточки ТО
type UseCase struct {
	cardRepo     CardRepository
	agentRepo    AgentRepository
	stations     StationProvider
	txManager    TransactionManager
	timeProvider TimeProvider
	daysAhead    int
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	cardRepo CardRepository,
	agentRepo AgentRepository,
	stationProvider StationProvider,
	txManager TransactionManager,
	daysAhead int,
	logger Logger,
) *UseCase {
	if daysAhead <= 0 {
		daysAhead = domain.DefaultDaysAhead
	}
	return &UseCase{
		cardRepo:     cardRepo,
		agentRepo:    agentRepo,
		stations:     stationProvider,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		daysAhead:    daysAhead,
		logger:       logger,
	}
}

// Execute выполняет use case создания карточки ТО
// Проверка доступности слота и вставка выполняются в одной сериализуемой
// транзакции: из двух агентов, одновременно выбравших один слот, запись
// получает ровно один
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateCard: agent=%d, station=%s, category=%s, date=%s, time=%s",
		req.AgentID, req.StationID, req.Category, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateCard: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем существование агента
	if _, err := uc.agentRepo.GetByID(ctx, req.AgentID); err != nil {
		if errors.Is(err, agentRepo.ErrAgentNotFound) {
			uc.logger.Warn("CreateCard: agent id=%d not found", req.AgentID)
			return nil, ErrAgentNotFound
		}
		uc.logger.Error("CreateCard: failed to get agent id=%d: %v", req.AgentID, err)
		return nil, fmt.Errorf("%w: failed to get agent: %v", ErrInternal, err)
	}

	// 4. Получаем станцию из справочника
	station, err := uc.stations.GetStation(req.StationID)
	if err != nil {
		if errors.Is(err, stations.ErrStationNotFound) {
			uc.logger.Warn("CreateCard: station id=%s not found", req.StationID)
			return nil, ErrStationNotFound
		}
		uc.logger.Error("CreateCard: failed to get station id=%s: %v", req.StationID, err)
		return nil, fmt.Errorf("%w: failed to get station: %v", ErrInternal, err)
	}

	// 5. Проверяем, что станция обслуживает категорию, и фиксируем цену
	category := domain.VehicleCategory(req.Category)
	defect := resolveDefectType(req)

	price, err := domain.CalculatePrice(station, category, defect)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownCategory) {
			uc.logger.Warn("CreateCard: station=%s does not serve category=%s", req.StationID, req.Category)
			return nil, ErrCategoryNotServed
		}
		uc.logger.Warn("CreateCard: price calculation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 6. Валидация даты и попадания времени в рабочие часы станции
	if err := validateDate(req.Date, now, uc.daysAhead); err != nil {
		uc.logger.Warn("CreateCard: date validation failed: %v", err)
		return nil, err
	}
	if err := validateWorkingHours(station, req.StartTime); err != nil {
		uc.logger.Warn("CreateCard: working hours validation failed: %v", err)
		return nil, err
	}

	slotTime, err := req.StartTime.OnDate(req.Date)
	if err != nil {
		uc.logger.Warn("CreateCard: failed to combine date and time: %v", err)
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	var result *domain.TOCard

	// 7. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Читаем активные карточки станции за день с блокировкой (FOR UPDATE)
		dayStart := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, req.Date.Location())
		dayEnd := dayStart.AddDate(0, 0, 1)

		existing, err := uc.cardRepo.GetByStationWithFilter(txCtx, domain.StationCardsFilter{
			StationID: station.ID,
			From:      ptr.Ptr(dayStart),
			To:        ptr.Ptr(dayEnd),
		})
		if err != nil {
			uc.logger.Error("CreateCard: failed to get station cards: %v", err)
			return fmt.Errorf("%w: failed to get station cards: %w", ErrInternal, err)
		}

		// 7.2. Повторно проверяем доступность слота по актуальным данным
		switch reason := domain.CheckSlot(station, slotTime, existing, now); reason {
		case domain.ReasonPast:
			uc.logger.Warn("CreateCard: slot %s is in the past", slotTime.Format(time.RFC3339))
			return ErrSlotInPast
		case domain.ReasonSlotTaken, domain.ReasonHourCapacity:
			uc.logger.Warn("CreateCard: slot %s not available: %s", slotTime.Format(time.RFC3339), reason)
			return ErrSlotNotAvailable
		}

		// 7.3. Формируем номер карточки: дата + id агента + порядковый номер за день
		todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		seq, err := uc.cardRepo.CountByAgentSince(txCtx, req.AgentID, todayStart)
		if err != nil {
			uc.logger.Error("CreateCard: failed to count agent cards: %v", err)
			return fmt.Errorf("%w: failed to count agent cards: %w", ErrInternal, err)
		}
		cardNumber := domain.FormatCardNumber(now, req.AgentID, seq+1)

		// 7.4. Создаем карточку с денормализацией данных станции
		card := &domain.TOCard{
			CardNumber:        cardNumber,
			AgentID:           req.AgentID,
			StationID:         station.ID,
			StationName:       station.Name,
			Category:          category,
			AppointmentTime:   slotTime,
			ClientName:        req.ClientName,
			CarNumber:         req.CarNumber,
			VINNumber:         req.VINNumber,
			ClientPhone:       req.ClientPhone,
			HasDefects:        req.HasDefects,
			DefectType:        defect,
			DefectDescription: req.DefectDescription,
			TotalPrice:        price,
			Status:            domain.StatusPending,
		}

		created, err := uc.cardRepo.Create(txCtx, card)
		if err != nil {
			// Уникальный индекс по (station_id, appointment_time) — последний
			// рубеж против гонки двух транзакций за один слот
			if errors.Is(err, cardRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateCard: slot %s taken concurrently", slotTime.Format(time.RFC3339))
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateCard: failed to create card: %v", err)
			return fmt.Errorf("%w: failed to create card: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateCard: successfully created card id=%d, number=%s", result.ID, result.CardNumber)

	return &Response{
		ID:                result.ID,
		CardNumber:        result.CardNumber,
		AgentID:           result.AgentID,
		StationID:         result.StationID,
		StationName:       result.StationName,
		Category:          string(result.Category),
		AppointmentTime:   result.AppointmentTime,
		ClientName:        result.ClientName,
		CarNumber:         result.CarNumber,
		VINNumber:         result.VINNumber,
		ClientPhone:       result.ClientPhone,
		HasDefects:        result.HasDefects,
		DefectType:        string(result.DefectType),
		DefectDescription: result.DefectDescription,
		TotalPrice:        result.TotalPrice,
		Status:            string(result.Status),
		CreatedAt:         result.CreatedAt,
		UpdatedAt:         result.UpdatedAt,
	}, nil
}
