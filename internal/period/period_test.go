package period_test

import (
	"testing"
	"time"

	"github.com/muscleuplabs/muscleup/internal/period"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAdvanceMonthlyClampsToShortMonths(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		want  time.Time
	}{
		{"jan 31 into leap february", date(2024, time.January, 31), date(2024, time.February, 29)},
		{"jan 31 into plain february", date(2023, time.January, 31), date(2023, time.February, 28)},
		{"aug 31 into september", date(2024, time.August, 31), date(2024, time.September, 30)},
		{"mid month keeps day", date(2024, time.March, 16), date(2024, time.April, 16)},
		{"jan 30 into plain february", date(2023, time.January, 30), date(2023, time.February, 28)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := period.Advance(tc.start, period.CadenceMonthly, period.Overrides{})
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAdvanceMultiMonthRollsOverYear(t *testing.T) {
	got := period.Advance(date(2024, time.November, 20), period.CadenceQuarterly, period.Overrides{})
	assert.Equal(t, date(2025, time.February, 20), got)

	got = period.Advance(date(2024, time.August, 31), period.CadenceSemester, period.Overrides{})
	assert.Equal(t, date(2025, time.February, 28), got)

	got = period.Advance(date(2024, time.December, 31), period.CadenceBimonthly, period.Overrides{})
	assert.Equal(t, date(2025, time.February, 28), got)
}

func TestAdvanceAnnualLeapDayClampsToFeb28(t *testing.T) {
	got := period.Advance(date(2024, time.February, 29), period.CadenceAnnual, period.Overrides{})
	assert.Equal(t, date(2025, time.February, 28), got)

	// Leap day into another leap year stays on Feb 29.
	got = period.AddYears(date(2024, time.February, 29), 4)
	assert.Equal(t, date(2028, time.February, 29), got)

	// Ordinary dates keep month and day.
	got = period.Advance(date(2024, time.June, 11), period.CadenceAnnual, period.Overrides{})
	assert.Equal(t, date(2025, time.June, 11), got)
}

func TestAdvanceDayBasedCadences(t *testing.T) {
	start := date(2024, time.March, 16)

	assert.Equal(t, date(2024, time.March, 23), period.Advance(start, period.CadenceWeekly, period.Overrides{}))
	assert.Equal(t, date(2024, time.March, 30), period.Advance(start, period.CadenceBiweekly, period.Overrides{}))

	// Plan duration overrides replace the calendar defaults.
	ov := period.Overrides{WeeklyDays: 10, BiweeklyDays: 15}
	assert.Equal(t, date(2024, time.March, 26), period.Advance(start, period.CadenceWeekly, ov))
	assert.Equal(t, date(2024, time.March, 31), period.Advance(start, period.CadenceBiweekly, ov))
}

func TestAdvanceVisitIsIdentity(t *testing.T) {
	start := date(2024, time.March, 16)
	assert.Equal(t, start, period.Advance(start, period.CadenceVisit, period.Overrides{}))
	assert.False(t, period.CadenceVisit.HasEndDate())
}

func TestAdvanceUnknownCadenceFallsBackToOneMonth(t *testing.T) {
	got := period.Advance(date(2024, time.January, 31), "lifetime", period.Overrides{})
	assert.Equal(t, date(2024, time.February, 29), got)
	assert.False(t, period.Cadence("lifetime").Valid())
}

func TestRenewalAnchorAdvance(t *testing.T) {
	// A renewal anchored at the day after a March 15 expiry covers
	// one month through April 16.
	anchor := period.AddDays(date(2024, time.March, 15), 1)
	require.Equal(t, date(2024, time.March, 16), anchor)
	assert.Equal(t, date(2024, time.April, 16), period.Advance(anchor, period.CadenceMonthly, period.Overrides{}))
}

func TestDateIn(t *testing.T) {
	loc, err := time.LoadLocation("America/Mexico_City")
	require.NoError(t, err)

	// 05:30 UTC on June 2 is still June 1 in Mexico City.
	instant := time.Date(2024, time.June, 2, 5, 30, 0, 0, time.UTC)
	assert.Equal(t, date(2024, time.June, 1), period.DateIn(instant, loc))

	noon := time.Date(2024, time.June, 2, 19, 0, 0, 0, time.UTC)
	assert.Equal(t, date(2024, time.June, 2), period.DateIn(noon, loc))
}

func TestShortfallDays(t *testing.T) {
	start := date(2024, time.February, 1)

	assert.Zero(t, period.ShortfallDays(start, date(2024, time.March, 1), period.CadenceMonthly))
	assert.Equal(t, 3, period.ShortfallDays(start, date(2024, time.February, 26), period.CadenceMonthly))
	assert.Zero(t, period.ShortfallDays(start, start, period.CadenceVisit))
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 29, period.DaysBetween(date(2024, time.February, 1), date(2024, time.March, 1)))
	assert.Equal(t, 0, period.DaysBetween(date(2024, time.February, 1), date(2024, time.February, 1)))
	assert.Equal(t, -1, period.DaysBetween(date(2024, time.February, 2), date(2024, time.February, 1)))
}
