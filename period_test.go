package ledgercore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateInterimPeriods_CalendarMonth(t *testing.T) {
	start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	period := NewAccountingPeriod(2026, start, InterimCalendarMonth)

	interims, err := GenerateInterimPeriods(period)
	require.NoError(t, err)
	require.Len(t, interims, 12)

	assert.Equal(t, time.January, interims[0].Start.Month())
	assert.Equal(t, 31, interims[0].End.Day())
	assert.Equal(t, time.February, interims[1].Start.Month())
	assert.Equal(t, 28, interims[1].End.Day(), "2026 is not a leap year")
	assert.Equal(t, time.December, interims[11].Start.Month())
}

func TestGenerateInterimPeriods_FourWeekNotImplemented(t *testing.T) {
	period := NewAccountingPeriod(2026, time.Now(), InterimFourWeek)
	_, err := GenerateInterimPeriods(period)
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindNotImplemented, kind)
}

func TestNewAccountingPeriod_EndIsOneYearMinusOneDay(t *testing.T) {
	start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	p := NewAccountingPeriod(2026, start, InterimCalendarMonth)
	assert.Equal(t, time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC), p.PeriodEnd)
}
