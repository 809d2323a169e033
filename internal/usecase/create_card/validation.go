package create_card

import (
	"fmt"
	"strings"
	"time"

	"github.com/avtoagent/STO-BookingService/internal/domain"
	"github.com/avtoagent/STO-BookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AgentID <= 0 {
		return fmt.Errorf("%w: agentID must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.StationID) == "" {
		return fmt.Errorf("%w: stationID is required", ErrInvalidInput)
	}

	if !domain.IsValidCategory(domain.VehicleCategory(req.Category)) {
		return fmt.Errorf("%w: unknown vehicle category %q", ErrInvalidInput, req.Category)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if strings.TrimSpace(req.ClientName) == "" {
		return fmt.Errorf("%w: clientName is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.CarNumber) == "" {
		return fmt.Errorf("%w: carNumber is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.VINNumber) == "" {
		return fmt.Errorf("%w: vinNumber is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.ClientPhone) == "" {
		return fmt.Errorf("%w: clientPhone is required", ErrInvalidInput)
	}

	if err := validateDefects(req); err != nil {
		return err
	}

	return nil
}

// validateDefects проверяет согласованность полей о дефектах
// При has_defects тип обязателен (minor или major); без дефектов
// тип и описание должны отсутствовать
func validateDefects(req *Request) error {
	if !req.HasDefects {
		if req.DefectType != "" && req.DefectType != string(domain.DefectNone) {
			return fmt.Errorf("%w: defectType must be empty when hasDefects is false", ErrInvalidInput)
		}
		return nil
	}

	defect, err := domain.ParseDefectType(req.DefectType)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if defect == domain.DefectNone {
		return fmt.Errorf("%w: defectType is required when hasDefects is true", ErrInvalidInput)
	}

	if req.DefectDescription == nil || strings.TrimSpace(*req.DefectDescription) == "" {
		return fmt.Errorf("%w: defectDescription is required when hasDefects is true", ErrInvalidInput)
	}

	return nil
}

// resolveDefectType возвращает доменный тип дефектов для карточки
func resolveDefectType(req *Request) domain.DefectType {
	if !req.HasDefects {
		return domain.DefectNone
	}
	return domain.DefectType(req.DefectType)
}

// validateDate проверяет, что дата записи не в прошлом и в пределах
// горизонта записи daysAhead
func validateDate(date time.Time, now time.Time, daysAhead int) error {
	dateOnly := truncateToDay(date)
	nowOnly := truncateToDay(now)

	if dateOnly.Before(nowOnly) {
		return ErrInvalidDate
	}

	maxDate := nowOnly.AddDate(0, 0, daysAhead-1)
	if dateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days ahead", ErrDateTooFarInFuture, daysAhead)
	}

	return nil
}

// validateWorkingHours проверяет, что приём целиком укладывается в рабочие
// часы станции. Кратность сетке слотов не требуется: станция принимает
// несколько записей в час на разные минуты, их число ограничивает
// проверка доступности внутри транзакции
func validateWorkingHours(station *domain.Station, startTime types.TimeString) error {
	if startTime.IsBefore(station.WorkingHoursStart) {
		return fmt.Errorf("%w: %s is before station opening %s",
			ErrSlotNotAvailable, startTime, station.WorkingHoursStart)
	}

	slotEnd, err := startTime.AddMinutes(station.SlotDurationMinutes)
	if err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	// перенос через полночь означает выход за рабочий день
	if slotEnd.IsBefore(startTime) || slotEnd.IsAfter(station.WorkingHoursEnd) {
		return fmt.Errorf("%w: %s does not fit working hours ending at %s",
			ErrSlotNotAvailable, startTime, station.WorkingHoursEnd)
	}

	return nil
}

// truncateToDay обнуляет время, оставляя только дату
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
