package get_available_dates

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avtoagent/STO-BookingService/internal/domain"
	"github.com/avtoagent/STO-BookingService/internal/stations"
	"github.com/avtoagent/STO-BookingService/pkg/ptr"
	"github.com/avtoagent/STO-BookingService/pkg/types"
)

// UseCase use case для получения ближайших дат записи на станцию
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

// Execute возвращает daysAhead ближайших дат начиная с сегодняшней,
// помечая даты, на которых не осталось ни одного свободного слота.
// Карточки всего горизонта читаются одним запросом, доступность
// считается в памяти по дням
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableDates: station=%s", req.StationID)

	if strings.TrimSpace(req.StationID) == "" {
		return nil, fmt.Errorf("%w: stationID is required", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	station, err := uc.stations.GetStation(req.StationID)
	if err != nil {
		if errors.Is(err, stations.ErrStationNotFound) {
			uc.logger.Warn("GetAvailableDates: station id=%s not found", req.StationID)
			return nil, ErrStationNotFound
		}
		uc.logger.Error("GetAvailableDates: failed to get station id=%s: %v", req.StationID, err)
		return nil, fmt.Errorf("%w: failed to get station: %v", ErrInternal, err)
	}

	grid, err := domain.GenerateTimeSlots(station)
	if err != nil {
		uc.logger.Error("GetAvailableDates: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	dates := domain.CandidateDates(now, uc.daysAhead)

	horizonStart := dates[0]
	horizonEnd := dates[len(dates)-1].AddDate(0, 0, 1)

	cards, err := uc.cardRepo.GetByStationWithFilter(ctx, domain.StationCardsFilter{
		StationID: station.ID,
		From:      ptr.Ptr(horizonStart),
		To:        ptr.Ptr(horizonEnd),
	})
	if err != nil {
		uc.logger.Error("GetAvailableDates: failed to get station cards: %v", err)
		return nil, fmt.Errorf("%w: failed to get station cards: %v", ErrInternal, err)
	}

	result := make([]DateInfo, 0, len(dates))
	for _, date := range dates {
		available, err := uc.hasAvailableSlot(station, grid, date, cards, now)
		if err != nil {
			return nil, err
		}
		result = append(result, DateInfo{Date: date, Available: available})
	}

	uc.logger.Info("GetAvailableDates: station=%s: %d dates in horizon", req.StationID, len(result))

	return &Response{
		StationID: station.ID,
		Dates:     result,
	}, nil
}

// hasAvailableSlot проверяет, остался ли на дату хотя бы один свободный слот
func (uc *UseCase) hasAvailableSlot(
	station *domain.Station,
	grid []types.TimeString,
	date time.Time,
	cards []*domain.TOCard,
	now time.Time,
) (bool, error) {
	for _, slotStart := range grid {
		slotTime, err := slotStart.OnDate(date)
		if err != nil {
			uc.logger.Error("GetAvailableDates: failed to combine date and slot %s: %v", slotStart, err)
			return false, fmt.Errorf("%w: failed to build slot time: %v", ErrInternal, err)
		}
		if domain.IsSlotAvailable(station, slotTime, cards, now) {
			return true, nil
		}
	}
	return false, nil
}
