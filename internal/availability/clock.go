package availability

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used at every boundary.
const DateLayout = "2006-01-02"

const minutesPerDay = 24 * 60

// Clock is a wall-clock time of day stored as minutes since midnight.
// It is rendered as zero-padded 24-hour "HH:MM" only at the boundary.
type Clock int

// ParseClock parses a strict "HH:MM" value.
func ParseClock(raw string) (Clock, error) {
	if len(raw) != 5 || raw[2] != ':' {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", raw)
	}
	h, okH := twoDigits(raw[0], raw[1])
	m, okM := twoDigits(raw[3], raw[4])
	if !okH || !okM || h > 23 || m > 59 {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", raw)
	}
	return Clock(h*60 + m), nil
}

func twoDigits(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}

// ClockOf returns the time of day of t, truncated to the minute.
func ClockOf(t time.Time) Clock {
	return Clock(t.Hour()*60 + t.Minute())
}

// Add shifts the clock by the given number of minutes.
func (c Clock) Add(minutes int) Clock {
	return c + Clock(minutes)
}

// String renders the clock as "HH:MM". Values past midnight keep counting
// hours (24:30) so an end time never wraps below its start.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Valid reports whether the clock lies inside a single day.
func (c Clock) Valid() bool {
	return c >= 0 && c < minutesPerDay
}

// ParseDate parses a "YYYY-MM-DD" calendar date.
func ParseDate(raw string) (time.Time, error) {
	d, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", raw)
	}
	return d, nil
}

// compareDay orders the calendar days of a and b, ignoring time of day and location.
func compareDay(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	switch {
	case ay != by:
		return sign(ay - by)
	case am != bm:
		return sign(int(am) - int(bm))
	default:
		return sign(ad - bd)
	}
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}

// DaysAfter returns how many calendar days date lies after the day of now,
// negative for earlier dates. Only the wall-clock dates are compared.
func DaysAfter(date, now time.Time) int {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	y, m, d = date.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return int(day.Sub(today).Hours() / 24)
}
