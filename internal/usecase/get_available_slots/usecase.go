package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avtoagent/STO-BookingService/internal/domain"
	"github.com/avtoagent/STO-BookingService/internal/stations"
	"github.com/avtoagent/STO-BookingService/pkg/ptr"
)

// UseCase use case для получения слотов станции на дату
type UseCase struct {
	cardRepo     CardRepository
	stations     StationProvider
	timeProvider TimeProvider
	daysAhead    int
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	cardRepo CardRepository,
	stationProvider StationProvider,
	daysAhead int,
	logger Logger,
) *UseCase {
	if daysAhead <= 0 {
		daysAhead = domain.DefaultDaysAhead
	}
	return &UseCase{
		cardRepo:     cardRepo,
		stations:     stationProvider,
		timeProvider: &RealTimeProvider{},
		daysAhead:    daysAhead,
		logger:       logger,
	}
}

// Execute выполняет use case получения слотов
// Результат носит справочный характер: к моменту создания карточки слот
// мог быть занят, окончательная проверка выполняется в транзакции создания
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: station=%s, date=%s", req.StationID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if strings.TrimSpace(req.StationID) == "" {
		return nil, fmt.Errorf("%w: stationID is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем станцию из справочника
	station, err := uc.stations.GetStation(req.StationID)
	if err != nil {
		if errors.Is(err, stations.ErrStationNotFound) {
			uc.logger.Warn("GetAvailableSlots: station id=%s not found", req.StationID)
			return nil, ErrStationNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get station id=%s: %v", req.StationID, err)
		return nil, fmt.Errorf("%w: failed to get station: %v", ErrInternal, err)
	}

	// 4. Валидация даты: не в прошлом и в пределах горизонта записи
	if err := uc.validateDate(req.Date, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 5. Генерируем сетку слотов станции
	grid, err := domain.GenerateTimeSlots(station)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	// 6. Читаем активные карточки станции за день
	dayStart := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, req.Date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	existing, err := uc.cardRepo.GetByStationWithFilter(ctx, domain.StationCardsFilter{
		StationID: station.ID,
		From:      ptr.Ptr(dayStart),
		To:        ptr.Ptr(dayEnd),
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get station cards: %v", err)
		return nil, fmt.Errorf("%w: failed to get station cards: %v", ErrInternal, err)
	}

	// 7. Вычисляем доступность каждого слота
	slots := make([]Slot, 0, len(grid))
	available := 0
	for _, slotStart := range grid {
		slotTime, err := slotStart.OnDate(req.Date)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to combine date and slot %s: %v", slotStart, err)
			return nil, fmt.Errorf("%w: failed to build slot time: %v", ErrInternal, err)
		}

		reason := domain.CheckSlot(station, slotTime, existing, now)
		if reason == "" {
			available++
		}
		slots = append(slots, Slot{
			Time:      slotStart,
			Available: reason == "",
			Reason:    string(reason),
		})
	}

	uc.logger.Info("GetAvailableSlots: station=%s, date=%s: %d/%d slots available",
		req.StationID, req.Date.Format(domain.DateFormat), available, len(slots))

	return &Response{
		StationID: station.ID,
		Date:      req.Date,
		Slots:     slots,
	}, nil
}

// validateDate проверяет, что дата не в прошлом и в пределах daysAhead
func (uc *UseCase) validateDate(date, now time.Time) error {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if dateOnly.Before(nowOnly) {
		return ErrInvalidDate
	}

	maxDate := nowOnly.AddDate(0, 0, uc.daysAhead-1)
	if dateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only view %d days ahead", ErrDateTooFarInFuture, uc.daysAhead)
	}

	return nil
}
