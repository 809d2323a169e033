package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrUnknownCategory возвращается, когда у станции нет цены для категории
	ErrUnknownCategory = errors.New("station has no price for category")

	// ErrUnknownDefectType возвращается, когда у станции нет надбавки для типа дефектов
	ErrUnknownDefectType = errors.New("station has no surcharge for defect type")
)

// CalculatePrice вычисляет итоговую стоимость ТО: базовая цена категории
// плюс надбавка за дефекты. Отсутствие сконфигурированной цены — ошибка,
// а не ноль: молчаливый дефолт занизил бы счёт клиенту.
//
// Результат фиксируется в карточке ТО при создании и больше не пересчитывается
func CalculatePrice(station *Station, category VehicleCategory, defect DefectType) (decimal.Decimal, error) {
	base, ok := station.Prices[category]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: station=%s category=%s", ErrUnknownCategory, station.ID, category)
	}

	if defect == DefectNone || defect == "" {
		return base, nil
	}

	surcharge, ok := station.DefectPrices[defect]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: station=%s defect=%s", ErrUnknownDefectType, station.ID, defect)
	}

	return base.Add(surcharge), nil
}
