package period

import "time"

// Cadence identifies how often a membership bills and therefore how far
// a paid period extends from its start date.
type Cadence string

const (
	CadenceVisit     Cadence = "visit"
	CadenceWeekly    Cadence = "weekly"
	CadenceBiweekly  Cadence = "biweekly"
	CadenceMonthly   Cadence = "monthly"
	CadenceBimonthly Cadence = "bimonthly"
	CadenceQuarterly Cadence = "quarterly"
	CadenceSemester  Cadence = "semester"
	CadenceAnnual    Cadence = "annual"
)

// All lists every supported cadence in catalog order.
var All = []Cadence{
	CadenceVisit,
	CadenceWeekly,
	CadenceBiweekly,
	CadenceMonthly,
	CadenceBimonthly,
	CadenceQuarterly,
	CadenceSemester,
	CadenceAnnual,
}

func (c Cadence) Valid() bool {
	switch c {
	case CadenceVisit, CadenceWeekly, CadenceBiweekly, CadenceMonthly,
		CadenceBimonthly, CadenceQuarterly, CadenceSemester, CadenceAnnual:
		return true
	}
	return false
}

// HasEndDate reports whether the cadence produces a bounded period.
// Visit credit grants single-use access and never has an end date.
func (c Cadence) HasEndDate() bool {
	return c != CadenceVisit && c.Valid()
}

const (
	defaultWeeklyDays   = 7
	defaultBiweeklyDays = 14
)

// Overrides carries plan-specific day counts for the day-based cadences.
// Zero values fall back to the calendar defaults (7 and 14 days).
type Overrides struct {
	WeeklyDays   int
	BiweeklyDays int
}

// Advance returns the end date of a period starting at start. It is a
// total function: an unknown cadence advances one calendar month, and
// callers are expected to log that as a warning. The result for
// CadenceVisit is start itself and must not be used as an end date.
func Advance(start time.Time, cadence Cadence, ov Overrides) time.Time {
	switch cadence {
	case CadenceVisit:
		return start
	case CadenceWeekly:
		days := ov.WeeklyDays
		if days <= 0 {
			days = defaultWeeklyDays
		}
		return AddDays(start, days)
	case CadenceBiweekly:
		days := ov.BiweeklyDays
		if days <= 0 {
			days = defaultBiweeklyDays
		}
		return AddDays(start, days)
	case CadenceMonthly:
		return AddMonths(start, 1)
	case CadenceBimonthly:
		return AddMonths(start, 2)
	case CadenceQuarterly:
		return AddMonths(start, 3)
	case CadenceSemester:
		return AddMonths(start, 6)
	case CadenceAnnual:
		return AddYears(start, 1)
	default:
		return AddMonths(start, 1)
	}
}

// AddDays adds whole days to a civil date.
func AddDays(d time.Time, days int) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day+days, 0, 0, 0, 0, time.UTC)
}

// AddMonths adds calendar months, preserving the day of month when the
// target month has enough days and clamping to the last day of the
// target month otherwise (Jan 31 + 1 -> Feb 28/29, Aug 31 + 1 -> Sep 30).
// The target (year, month) pair is computed before any date mutation so
// the clamp can never overflow into a following month.
func AddMonths(d time.Time, months int) time.Time {
	y, m, day := d.Date()
	idx := int(m) - 1 + months
	y += idx / 12
	idx %= 12
	if idx < 0 {
		idx += 12
		y--
	}
	target := time.Month(idx + 1)
	if last := daysIn(y, target); day > last {
		day = last
	}
	return time.Date(y, target, day, 0, 0, 0, 0, time.UTC)
}

// AddYears adds calendar years. A Feb 29 start landing on a non-leap
// year clamps to Feb 28 of the target year. The leap check inspects the
// pre-advance month/day pair, never a date that already rolled over.
func AddYears(d time.Time, years int) time.Time {
	y, m, day := d.Date()
	targetYear := y + years
	if m == time.February && day == 29 && !isLeap(targetYear) {
		day = 28
	}
	return time.Date(targetYear, m, day, 0, 0, 0, 0, time.UTC)
}

// DateIn truncates an instant to the civil date observed in loc,
// returned at midnight UTC so date arithmetic and comparisons stay
// timezone-free from here on.
func DateIn(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole-day span from a to b.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua) / (24 * time.Hour))
}

// Expected minimum whole-day spans per cadence. A computed period
// shorter than this is suspicious but never fatal.
var minimumSpan = map[Cadence]int{
	CadenceWeekly:    6,
	CadenceBiweekly:  13,
	CadenceMonthly:   28,
	CadenceBimonthly: 55,
	CadenceQuarterly: 85,
	CadenceSemester:  170,
	CadenceAnnual:    350,
}

// ShortfallDays reports how many days a computed period falls short of
// the expected minimum for its cadence. Zero means the period is at
// least as long as expected or the cadence has no minimum.
func ShortfallDays(start, end time.Time, cadence Cadence) int {
	want, ok := minimumSpan[cadence]
	if !ok {
		return 0
	}
	got := DaysBetween(start, end)
	if got >= want {
		return 0
	}
	return want - got
}

func daysIn(year int, m time.Month) int {
	// Day zero of the next month is the last day of m.
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
