package domain

import "time"

// UnavailableReason причина недоступности слота
type UnavailableReason string

const (
	ReasonPast         UnavailableReason = "past"           // время уже прошло
	ReasonSlotTaken    UnavailableReason = "slot_taken"     // точное время уже занято
	ReasonHourCapacity UnavailableReason = "hour_capacity"  // исчерпана пропускная способность часа
)

// CheckSlot проверяет доступность слота по двухуровневому правилу:
//
//  1. Прошедшее время недоступно.
//  2. На одно точное время допустима ровно одна активная карточка,
//     независимо от пропускной способности часа (один бокс — одна запись).
//  3. Число активных карточек в пределах часа [hh:00, hh+1:00) ограничено
//     slots_per_hour станции.
//
// existing — карточки станции, среди которых ведётся подсчёт; отменённые
// пропускаются. Возвращает причину недоступности или пустую строку,
// если слот доступен.
//
// Проверка выполняется и при листинге слотов, и повторно внутри
// транзакции создания карточки — листинговый результат к моменту
// подтверждения мог устареть.
func CheckSlot(station *Station, slotTime time.Time, existing []*TOCard, now time.Time) UnavailableReason {
	if slotTime.Before(now) {
		return ReasonPast
	}

	hourStart := slotTime.Truncate(time.Hour)
	hourEnd := hourStart.Add(time.Hour)

	inHour := 0
	for _, card := range existing {
		if !card.IsActive() {
			continue
		}
		if card.StationID != station.ID {
			continue
		}
		if card.AppointmentTime.Equal(slotTime) {
			return ReasonSlotTaken
		}
		if !card.AppointmentTime.Before(hourStart) && card.AppointmentTime.Before(hourEnd) {
			inHour++
		}
	}

	if inHour >= station.SlotsPerHour {
		return ReasonHourCapacity
	}

	return ""
}

// IsSlotAvailable возвращает true, если слот доступен для записи
func IsSlotAvailable(station *Station, slotTime time.Time, existing []*TOCard, now time.Time) bool {
	return CheckSlot(station, slotTime, existing, now) == ""
}
