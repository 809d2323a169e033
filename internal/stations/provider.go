package stations

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/avtoagent/STO-BookingService/internal/config"
	"github.com/avtoagent/STO-BookingService/internal/domain"
	"github.com/avtoagent/STO-BookingService/pkg/types"
)

var (
	// ErrStationNotFound возвращается, когда станция не сконфигурирована
	ErrStationNotFound = errors.New("stations: station not found")

	// ErrInvalidStationConfig возвращается при некорректной конфигурации станции
	ErrInvalidStationConfig = errors.New("stations: invalid station config")
)

// Provider read-only провайдер конфигурации станций
// Станции валидируются один раз при старте (fail-fast): отсутствующая цена
// категории или нераспознаваемые рабочие часы — ошибка загрузки, а не ошибка
// первой попытки бронирования
type Provider struct {
	byID map[string]*domain.Station
	ids  []string // отсортированы для стабильного порядка листинга
}

// NewProvider валидирует конфигурацию станций и строит провайдер
func NewProvider(configs map[string]config.StationConfig) (*Provider, error) {
	byID := make(map[string]*domain.Station, len(configs))
	ids := make([]string, 0, len(configs))

	for id, cfg := range configs {
		station, err := buildStation(id, cfg)
		if err != nil {
			return nil, err
		}
		byID[id] = station
		ids = append(ids, id)
	}

	sort.Strings(ids)

	return &Provider{byID: byID, ids: ids}, nil
}

// GetStation возвращает станцию по идентификатору
func (p *Provider) GetStation(id string) (*domain.Station, error) {
	station, ok := p.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: id=%s", ErrStationNotFound, id)
	}
	return station, nil
}

// ListStations возвращает все станции в стабильном порядке
func (p *Provider) ListStations() []*domain.Station {
	result := make([]*domain.Station, 0, len(p.ids))
	for _, id := range p.ids {
		result = append(result, p.byID[id])
	}
	return result
}

// ListByCategory возвращает станции, обслуживающие категорию
func (p *Provider) ListByCategory(category domain.VehicleCategory) []*domain.Station {
	result := make([]*domain.Station, 0)
	for _, id := range p.ids {
		if p.byID[id].ServesCategory(category) {
			result = append(result, p.byID[id])
		}
	}
	return result
}

func buildStation(id string, cfg config.StationConfig) (*domain.Station, error) {
	start := cfg.WorkingHoursStart
	if start == "" {
		start = domain.DefaultWorkingHoursStart
	}
	end := cfg.WorkingHoursEnd
	if end == "" {
		end = domain.DefaultWorkingHoursEnd
	}

	startTime, err := types.NewTimeStringFromString(start)
	if err != nil {
		return nil, fmt.Errorf("%w: station=%s working_hours_start: %v", ErrInvalidStationConfig, id, err)
	}
	endTime, err := types.NewTimeStringFromString(end)
	if err != nil {
		return nil, fmt.Errorf("%w: station=%s working_hours_end: %v", ErrInvalidStationConfig, id, err)
	}
	if !startTime.IsBefore(endTime) {
		return nil, fmt.Errorf("%w: station=%s working hours start %s must be before end %s",
			ErrInvalidStationConfig, id, startTime, endTime)
	}

	slotDuration := cfg.SlotDurationMinutes
	if slotDuration == 0 {
		slotDuration = domain.DefaultSlotDurationMinutes
	}
	if slotDuration < domain.MinSlotDurationMinutes || slotDuration > domain.MaxSlotDurationMinutes {
		return nil, fmt.Errorf("%w: station=%s slot_duration_minutes=%d out of range [%d, %d]",
			ErrInvalidStationConfig, id, slotDuration, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	slotsPerHour := cfg.SlotsPerHour
	if slotsPerHour == 0 {
		slotsPerHour = domain.DefaultSlotsPerHour
	}
	if slotsPerHour < domain.MinSlotsPerHour || slotsPerHour > domain.MaxSlotsPerHour {
		return nil, fmt.Errorf("%w: station=%s slots_per_hour=%d out of range [%d, %d]",
			ErrInvalidStationConfig, id, slotsPerHour, domain.MinSlotsPerHour, domain.MaxSlotsPerHour)
	}

	prices := make(map[domain.VehicleCategory]decimal.Decimal, len(cfg.Prices))
	for category, raw := range cfg.Prices {
		if !domain.IsValidCategory(domain.VehicleCategory(category)) {
			return nil, fmt.Errorf("%w: station=%s unknown category %q", ErrInvalidStationConfig, id, category)
		}
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: station=%s price for category %s: %v", ErrInvalidStationConfig, id, category, err)
		}
		if price.IsNegative() {
			return nil, fmt.Errorf("%w: station=%s price for category %s is negative", ErrInvalidStationConfig, id, category)
		}
		prices[domain.VehicleCategory(category)] = price
	}

	defectPrices := make(map[domain.DefectType]decimal.Decimal, len(cfg.DefectPrices))
	for defect, raw := range cfg.DefectPrices {
		parsed, err := domain.ParseDefectType(defect)
		if err != nil || parsed == domain.DefectNone {
			return nil, fmt.Errorf("%w: station=%s defect surcharge key %q (expected minor or major)",
				ErrInvalidStationConfig, id, defect)
		}
		surcharge, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: station=%s defect surcharge %s: %v", ErrInvalidStationConfig, id, defect, err)
		}
		if surcharge.IsNegative() {
			return nil, fmt.Errorf("%w: station=%s defect surcharge %s is negative", ErrInvalidStationConfig, id, defect)
		}
		defectPrices[parsed] = surcharge
	}

	return &domain.Station{
		ID:                  id,
		Name:                cfg.Name,
		Address:             cfg.Address,
		WorkingHoursStart:   startTime,
		WorkingHoursEnd:     endTime,
		SlotDurationMinutes: slotDuration,
		SlotsPerHour:        slotsPerHour,
		Prices:              prices,
		DefectPrices:        defectPrices,
	}, nil
}
