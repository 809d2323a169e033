package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransitionTo(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusApproved))
	assert.True(t, StatusPending.CanTransitionTo(StatusRejected))
	assert.True(t, StatusPending.CanTransitionTo(StatusCancelled))
	assert.False(t, StatusPending.CanTransitionTo(StatusPending))

	// конечные статусы переходов не имеют
	for _, terminal := range []TOCardStatus{StatusApproved, StatusRejected, StatusCancelled} {
		for _, to := range []TOCardStatus{StatusPending, StatusApproved, StatusRejected, StatusCancelled} {
			assert.False(t, terminal.CanTransitionTo(to), "%s -> %s", terminal, to)
		}
	}
}

func TestCanBeCancelled(t *testing.T) {
	assert.True(t, (&TOCard{Status: StatusPending}).CanBeCancelled())
	assert.False(t, (&TOCard{Status: StatusApproved}).CanBeCancelled())
	assert.False(t, (&TOCard{Status: StatusRejected}).CanBeCancelled())
	assert.False(t, (&TOCard{Status: StatusCancelled}).CanBeCancelled())
}

func TestIsActive(t *testing.T) {
	assert.True(t, (&TOCard{Status: StatusPending}).IsActive())
	assert.True(t, (&TOCard{Status: StatusApproved}).IsActive())
	assert.True(t, (&TOCard{Status: StatusRejected}).IsActive())
	assert.False(t, (&TOCard{Status: StatusCancelled}).IsActive())
}

func TestFormatCardNumber(t *testing.T) {
	createdAt := time.Date(2025, 10, 15, 11, 30, 0, 0, time.UTC)

	// порядковый номер за день начинается с 1
	assert.Equal(t, "151020254201", FormatCardNumber(createdAt, 42, 1))
	assert.Equal(t, "151020254203", FormatCardNumber(createdAt, 42, 3))
	assert.Equal(t, "15102025700012", FormatCardNumber(createdAt, 700, 12))
}

func TestParseStatus(t *testing.T) {
	status, err := ParseStatus("approved")
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, status)

	_, err = ParseStatus("done")
	assert.Error(t, err)
}

func TestParseDefectType(t *testing.T) {
	defect, err := ParseDefectType("minor")
	require.NoError(t, err)
	assert.Equal(t, DefectMinor, defect)

	_, err = ParseDefectType("critical")
	assert.Error(t, err)
}
