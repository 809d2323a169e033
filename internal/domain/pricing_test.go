package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pricedStation() *Station {
	return &Station{
		ID: "central",
		Prices: map[VehicleCategory]decimal.Decimal{
			CategoryB: decimal.NewFromInt(1200),
			CategoryC: decimal.NewFromInt(1800),
		},
		DefectPrices: map[DefectType]decimal.Decimal{
			DefectMinor: decimal.NewFromInt(300),
			DefectMajor: decimal.NewFromInt(900),
		},
	}
}

func TestCalculatePrice_Base(t *testing.T) {
	price, err := CalculatePrice(pricedStation(), CategoryB, DefectNone)
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(1200)), "получено %s", price)
}

func TestCalculatePrice_EmptyDefectMeansNone(t *testing.T) {
	price, err := CalculatePrice(pricedStation(), CategoryC, "")
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(1800)), "получено %s", price)
}

func TestCalculatePrice_DefectSurcharge(t *testing.T) {
	station := pricedStation()

	minor, err := CalculatePrice(station, CategoryB, DefectMinor)
	require.NoError(t, err)
	assert.True(t, minor.Equal(decimal.NewFromInt(1500)), "получено %s", minor)

	major, err := CalculatePrice(station, CategoryC, DefectMajor)
	require.NoError(t, err)
	assert.True(t, major.Equal(decimal.NewFromInt(2700)), "получено %s", major)
}

func TestCalculatePrice_UnknownCategory(t *testing.T) {
	_, err := CalculatePrice(pricedStation(), CategoryE, DefectNone)
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestCalculatePrice_UnknownDefectType(t *testing.T) {
	station := pricedStation()
	station.DefectPrices = nil

	_, err := CalculatePrice(station, CategoryB, DefectMajor)
	assert.ErrorIs(t, err, ErrUnknownDefectType)
}
