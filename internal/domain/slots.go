package domain

import (
	"time"

	"github.com/avtoagent/STO-BookingService/pkg/types"
)

// GenerateTimeSlots генерирует все слоты рабочего дня станции с шагом
// slot_duration_minutes. Интервал полуоткрытый: последний слот должен
// закончиться не позже конца рабочего дня. Прошедшие слоты не
// отбрасываются — их помечает недоступными CheckSlot, чтобы интерфейс
// мог показать их зачёркнутыми
func GenerateTimeSlots(station *Station) ([]types.TimeString, error) {
	openTime := station.WorkingHoursStart
	closeTime := station.WorkingHoursEnd

	if err := openTime.Validate(); err != nil {
		return nil, err
	}
	if err := closeTime.Validate(); err != nil {
		return nil, err
	}

	slots := make([]types.TimeString, 0)
	current := openTime

	for current.IsBefore(closeTime) {
		slotEnd, err := current.AddMinutes(station.SlotDurationMinutes)
		if err != nil {
			return nil, err
		}
		// перенос через полночь означает выход за рабочий день
		if slotEnd.IsAfter(closeTime) || slotEnd.IsBefore(current) {
			break
		}

		slots = append(slots, current)

		current, err = current.AddMinutes(station.SlotDurationMinutes)
		if err != nil {
			return nil, err
		}
		// рабочий день до полуночи; перенос через 00:00 означает конец дня
		if current == "00:00" {
			break
		}
	}

	return slots, nil
}

// CandidateDates возвращает count последовательных календарных дат,
// начиная со start (используется для предложения записи на ближайшие N дней)
func CandidateDates(start time.Time, count int) []time.Time {
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	dates := make([]time.Time, 0, count)
	for i := 0; i < count; i++ {
		dates = append(dates, day.AddDate(0, 0, i))
	}
	return dates
}
