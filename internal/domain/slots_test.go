package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avtoagent/STO-BookingService/pkg/types"
)

func TestGenerateTimeSlots(t *testing.T) {
	station := &Station{
		WorkingHoursStart:   "09:00",
		WorkingHoursEnd:     "18:00",
		SlotDurationMinutes: 30,
	}

	slots, err := GenerateTimeSlots(station)
	require.NoError(t, err)

	// 9 часов по два слота в час
	require.Len(t, slots, 18)
	assert.Equal(t, types.TimeString("09:00"), slots[0])
	assert.Equal(t, types.TimeString("17:30"), slots[len(slots)-1])

	for i := 1; i < len(slots); i++ {
		prev, err := slots[i-1].Minutes()
		require.NoError(t, err)
		cur, err := slots[i].Minutes()
		require.NoError(t, err)
		assert.Equal(t, prev+30, cur)
	}
}

func TestGenerateTimeSlots_LastSlotFitsWorkingDay(t *testing.T) {
	// слот длиной 60 минут не помещается после 17:30
	station := &Station{
		WorkingHoursStart:   "17:00",
		WorkingHoursEnd:     "18:30",
		SlotDurationMinutes: 60,
	}

	slots, err := GenerateTimeSlots(station)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"17:00"}, slots)
}

func TestGenerateTimeSlots_InvalidHours(t *testing.T) {
	station := &Station{
		WorkingHoursStart:   "9:00",
		WorkingHoursEnd:     "18:00",
		SlotDurationMinutes: 30,
	}

	_, err := GenerateTimeSlots(station)
	assert.Error(t, err)
}

func TestCandidateDates(t *testing.T) {
	start := time.Date(2025, 10, 15, 14, 45, 0, 0, time.UTC)

	dates := CandidateDates(start, 3)
	require.Len(t, dates, 3)

	assert.Equal(t, time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC), dates[0])
	assert.Equal(t, time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC), dates[1])
	assert.Equal(t, time.Date(2025, 10, 17, 0, 0, 0, 0, time.UTC), dates[2])
}
