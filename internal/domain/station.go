package domain

import (
	"github.com/shopspring/decimal"

	"github.com/avtoagent/STO-BookingService/pkg/types"
)

// VehicleCategory категория транспортного средства
type VehicleCategory string

const (
	CategoryB VehicleCategory = "B" // легковые
	CategoryC VehicleCategory = "C" // грузовые
	CategoryD VehicleCategory = "D" // автобусы
	CategoryE VehicleCategory = "E" // прицепы
)

// KnownCategories список всех поддерживаемых категорий ТС
var KnownCategories = []VehicleCategory{CategoryB, CategoryC, CategoryD, CategoryE}

// IsValidCategory возвращает true, если категория поддерживается
func IsValidCategory(c VehicleCategory) bool {
	for _, known := range KnownCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Station станция СТО с рабочими часами, пропускной способностью и ценами
// Конфигурация станции read-mostly: загружается при старте и не меняется
// в течение жизни процесса. Цена бронирования фиксируется в карточке ТО
// в момент создания, поэтому изменение цен станции между рестартами не
// затрагивает существующие карточки.
type Station struct {
	ID                  string
	Name                string
	Address             string
	WorkingHoursStart   types.TimeString
	WorkingHoursEnd     types.TimeString
	SlotDurationMinutes int
	SlotsPerHour        int // пропускная способность: записей в час

	// Prices базовая цена ТО по категориям, которые обслуживает станция
	Prices map[VehicleCategory]decimal.Decimal

	// DefectPrices надбавка к базовой цене по типу дефектов
	DefectPrices map[DefectType]decimal.Decimal
}

// Categories возвращает категории, которые обслуживает станция
func (s *Station) Categories() []VehicleCategory {
	categories := make([]VehicleCategory, 0, len(s.Prices))
	for _, c := range KnownCategories {
		if _, ok := s.Prices[c]; ok {
			categories = append(categories, c)
		}
	}
	return categories
}

// ServesCategory возвращает true, если станция обслуживает категорию
func (s *Station) ServesCategory(c VehicleCategory) bool {
	_, ok := s.Prices[c]
	return ok
}
