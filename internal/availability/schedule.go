package availability

import (
	"errors"
	"fmt"
	"time"
)

// Break is a pause inside a working day. A positive ToleranceMinutes lets a
// service that starts before the break run up to that many minutes into it.
type Break struct {
	Start            Clock
	End              Clock
	ToleranceMinutes int
}

// Schedule is one weekday of a barber's working hours.
type Schedule struct {
	DayOfWeek time.Weekday
	Start     Clock
	End       Clock
	Active    bool
	Break     *Break
}

// Validate checks the ordering invariants of the working day and its break.
func (s Schedule) Validate() error {
	if s.DayOfWeek < time.Sunday || s.DayOfWeek > time.Saturday {
		return fmt.Errorf("day of week %d out of range", s.DayOfWeek)
	}
	if !s.Start.Valid() || !s.End.Valid() {
		return errors.New("working hours must fall within a single day")
	}
	if s.Start >= s.End {
		return fmt.Errorf("start %s must be before end %s", s.Start, s.End)
	}
	if s.Break == nil {
		return nil
	}
	b := s.Break
	if b.Start >= b.End {
		return fmt.Errorf("break start %s must be before break end %s", b.Start, b.End)
	}
	if b.Start < s.Start || b.End > s.End {
		return fmt.Errorf("break %s-%s must lie within working hours %s-%s", b.Start, b.End, s.Start, s.End)
	}
	if b.ToleranceMinutes < 0 {
		return errors.New("break tolerance cannot be negative")
	}
	return nil
}

// blocks reports whether a slot [start, end) is swallowed by the break.
// With tolerance, only a slot that starts strictly before the break and ends
// within Start+ToleranceMinutes may bleed into it.
func (b *Break) blocks(start, end Clock) bool {
	if b == nil {
		return false
	}
	if !(start < b.End && end > b.Start) {
		return false
	}
	if b.ToleranceMinutes > 0 {
		maxEnd := b.Start.Add(b.ToleranceMinutes)
		return start >= b.Start || end > maxEnd
	}
	return true
}
