package stations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avtoagent/STO-BookingService/internal/config"
	"github.com/avtoagent/STO-BookingService/internal/domain"
	"github.com/avtoagent/STO-BookingService/pkg/types"
)

func validConfigs() map[string]config.StationConfig {
	return map[string]config.StationConfig{
		"central": {
			Name:                "СТО Центральная",
			Address:             "ул. Ленина, 1",
			WorkingHoursStart:   "09:00",
			WorkingHoursEnd:     "18:00",
			SlotDurationMinutes: 30,
			SlotsPerHour:        2,
			Prices:              map[string]string{"B": "1200.00", "C": "1800.50"},
			DefectPrices:        map[string]string{"minor": "300", "major": "900"},
		},
		"north": {
			Name:              "СТО Северная",
			WorkingHoursStart: "10:00",
			WorkingHoursEnd:   "20:00",
			SlotsPerHour:      3,
			Prices:            map[string]string{"B": "1000"},
		},
	}
}

func TestNewProvider(t *testing.T) {
	provider, err := NewProvider(validConfigs())
	require.NoError(t, err)

	station, err := provider.GetStation("central")
	require.NoError(t, err)
	assert.Equal(t, "СТО Центральная", station.Name)
	assert.Equal(t, types.TimeString("09:00"), station.WorkingHoursStart)
	assert.Equal(t, 2, station.SlotsPerHour)
	assert.True(t, station.ServesCategory(domain.CategoryB))
	assert.True(t, station.ServesCategory(domain.CategoryC))
	assert.False(t, station.ServesCategory(domain.CategoryD))

	// станция без явных значений получает дефолты
	north, err := provider.GetStation("north")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSlotDurationMinutes, north.SlotDurationMinutes)
}

func TestNewProvider_UnknownStation(t *testing.T) {
	provider, err := NewProvider(validConfigs())
	require.NoError(t, err)

	_, err = provider.GetStation("south")
	assert.ErrorIs(t, err, ErrStationNotFound)
}

func TestNewProvider_StableListOrder(t *testing.T) {
	provider, err := NewProvider(validConfigs())
	require.NoError(t, err)

	stations := provider.ListStations()
	require.Len(t, stations, 2)
	assert.Equal(t, "central", stations[0].ID)
	assert.Equal(t, "north", stations[1].ID)
}

func TestNewProvider_ListByCategory(t *testing.T) {
	provider, err := NewProvider(validConfigs())
	require.NoError(t, err)

	assert.Len(t, provider.ListByCategory(domain.CategoryB), 2)

	onlyC := provider.ListByCategory(domain.CategoryC)
	require.Len(t, onlyC, 1)
	assert.Equal(t, "central", onlyC[0].ID)

	assert.Empty(t, provider.ListByCategory(domain.CategoryD))
}

func TestNewProvider_InvalidConfig(t *testing.T) {
	cases := map[string]func(cfg *config.StationConfig){
		"invalid working hours":   func(cfg *config.StationConfig) { cfg.WorkingHoursStart = "9:00" },
		"hours without zero padding": func(cfg *config.StationConfig) {
			cfg.WorkingHoursStart = "9:00"
			cfg.WorkingHoursEnd = "9:30"
		},
		"start after end":         func(cfg *config.StationConfig) { cfg.WorkingHoursStart = "18:00"; cfg.WorkingHoursEnd = "09:00" },
		"slot duration too large": func(cfg *config.StationConfig) { cfg.SlotDurationMinutes = 600 },
		"slots per hour too big":  func(cfg *config.StationConfig) { cfg.SlotsPerHour = 100 },
		"unknown category":        func(cfg *config.StationConfig) { cfg.Prices = map[string]string{"X": "100"} },
		"bad price":               func(cfg *config.StationConfig) { cfg.Prices = map[string]string{"B": "дорого"} },
		"negative price":          func(cfg *config.StationConfig) { cfg.Prices = map[string]string{"B": "-1"} },
		"bad defect key":          func(cfg *config.StationConfig) { cfg.DefectPrices = map[string]string{"none": "0"} },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := validConfigs()["central"]
			mutate(&cfg)

			_, err := NewProvider(map[string]config.StationConfig{"central": cfg})
			assert.ErrorIs(t, err, ErrInvalidStationConfig)
		})
	}
}
