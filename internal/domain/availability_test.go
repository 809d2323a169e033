package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func testStation(slotsPerHour int) *Station {
	return &Station{
		ID:                  "central",
		Name:                "СТО Центральная",
		WorkingHoursStart:   "09:00",
		WorkingHoursEnd:     "18:00",
		SlotDurationMinutes: 30,
		SlotsPerHour:        slotsPerHour,
		Prices: map[VehicleCategory]decimal.Decimal{
			CategoryB: decimal.NewFromInt(1200),
		},
	}
}

func cardAt(station string, at time.Time, status TOCardStatus) *TOCard {
	return &TOCard{
		StationID:       station,
		AppointmentTime: at,
		Status:          status,
	}
}

func TestCheckSlot_Past(t *testing.T) {
	station := testStation(2)
	now := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)
	slot := time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC)

	reason := CheckSlot(station, slot, nil, now)
	assert.Equal(t, ReasonPast, reason)
}

func TestCheckSlot_ExactSlotTaken(t *testing.T) {
	station := testStation(2)
	now := time.Date(2025, 10, 15, 8, 0, 0, 0, time.UTC)
	slot := time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC)

	existing := []*TOCard{cardAt("central", slot, StatusPending)}

	reason := CheckSlot(station, slot, existing, now)
	assert.Equal(t, ReasonSlotTaken, reason)
}

func TestCheckSlot_ExactSlotExclusiveEvenWithSpareCapacity(t *testing.T) {
	// slots_per_hour = 4, но на одно точное время допустима ровно одна карточка
	station := testStation(4)
	now := time.Date(2025, 10, 15, 8, 0, 0, 0, time.UTC)
	slot := time.Date(2025, 10, 15, 9, 30, 0, 0, time.UTC)

	existing := []*TOCard{cardAt("central", slot, StatusApproved)}

	reason := CheckSlot(station, slot, existing, now)
	assert.Equal(t, ReasonSlotTaken, reason)
}

func TestCheckSlot_HourCapacity(t *testing.T) {
	station := testStation(2)
	now := time.Date(2025, 10, 15, 8, 0, 0, 0, time.UTC)

	// два активных слота в окне [09:00, 10:00)
	existing := []*TOCard{
		cardAt("central", time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC), StatusPending),
		cardAt("central", time.Date(2025, 10, 15, 9, 30, 0, 0, time.UTC), StatusApproved),
	}

	// третья запись в тот же час не проходит даже на свободное точное время
	slot := time.Date(2025, 10, 15, 9, 15, 0, 0, time.UTC)
	reason := CheckSlot(station, slot, existing, now)
	assert.Equal(t, ReasonHourCapacity, reason)

	// следующий час свободен
	nextHour := time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)
	assert.True(t, IsSlotAvailable(station, nextHour, existing, now))
}

func TestCheckSlot_CancelledCardsDoNotOccupy(t *testing.T) {
	station := testStation(2)
	now := time.Date(2025, 10, 15, 8, 0, 0, 0, time.UTC)
	slot := time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC)

	existing := []*TOCard{
		cardAt("central", slot, StatusCancelled),
		cardAt("central", time.Date(2025, 10, 15, 9, 30, 0, 0, time.UTC), StatusCancelled),
	}

	assert.True(t, IsSlotAvailable(station, slot, existing, now))
}

func TestCheckSlot_RejectedCardsStillOccupy(t *testing.T) {
	// отклонённая карточка остаётся в слоте: клиент записан, но ТО не согласовано
	station := testStation(2)
	now := time.Date(2025, 10, 15, 8, 0, 0, 0, time.UTC)
	slot := time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC)

	existing := []*TOCard{cardAt("central", slot, StatusRejected)}

	assert.Equal(t, ReasonSlotTaken, CheckSlot(station, slot, existing, now))
}

func TestCheckSlot_OtherStationIgnored(t *testing.T) {
	station := testStation(2)
	now := time.Date(2025, 10, 15, 8, 0, 0, 0, time.UTC)
	slot := time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC)

	existing := []*TOCard{cardAt("north", slot, StatusPending)}

	assert.True(t, IsSlotAvailable(station, slot, existing, now))
}
