package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOnly(t *testing.T) {
	ts := time.Date(2025, 7, 1, 23, 59, 59, 999, time.UTC)
	assert.Equal(t, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), DateOnly(ts))
}

func TestDaysUntil(t *testing.T) {
	from := time.Date(2025, 6, 28, 9, 0, 0, 0, time.UTC)

	// Clock times do not affect the day count.
	assert.Equal(t, 3, DaysUntil(from, time.Date(2025, 7, 1, 1, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, DaysUntil(from, time.Date(2025, 6, 28, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, -2, DaysUntil(from, time.Date(2025, 6, 26, 12, 0, 0, 0, time.UTC)))
}

func TestDaysUntilAcrossDSTTransition(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	// Clocks spring forward on 2025-03-30, so the elapsed time is 23 hours
	// short of the calendar-day count.
	from := time.Date(2025, 3, 29, 12, 0, 0, 0, berlin)
	to := time.Date(2025, 4, 1, 0, 30, 0, 0, berlin)
	assert.Equal(t, 3, DaysUntil(from, to))
}
