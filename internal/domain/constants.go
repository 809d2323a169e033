package domain

// Default configuration values
const (
	DefaultWorkingHoursStart   = "09:00"
	DefaultWorkingHoursEnd     = "18:00"
	DefaultSlotDurationMinutes = 30
	DefaultSlotsPerHour        = 2
	DefaultDaysAhead           = 7
)

// Business validation constants
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 240
	MinSlotsPerHour        = 1
	MaxSlotsPerHour        = 12
	MinDaysAhead           = 1
	MaxDaysAhead           = 60
	MaxCommentLength       = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD

	// CardNumberDateFormat формат даты в номере карточки ТО (ДДММГГГГ)
	CardNumberDateFormat = "02012006"
)
