// Package availability computes bookable appointment start times for a
// barber's working day. Everything here is pure: callers fetch schedules and
// appointments and pass the current time in.
package availability

import (
	"sort"
	"time"
)

const candidateStep = 60

// Policy decides what happens to slots that exist but cannot be booked.
type Policy int

const (
	// ShowGreyedOut keeps booked and past slots, marked unavailable.
	ShowGreyedOut Policy = iota
	// HideUnavailable drops booked and past slots.
	HideUnavailable
)

// Slot is a candidate start time. Booked and Past explain why Available is false.
type Slot struct {
	Start     Clock
	End       Clock
	Available bool
	Booked    bool
	Past      bool
}

// Request bundles the inputs of one slot computation.
type Request struct {
	Schedule        *Schedule
	Date            time.Time
	DurationMinutes int
	Busy            []Interval
	Now             time.Time
	Policy          Policy
}

// Candidates returns the sorted, de-duplicated start times considered for a
// day: every hour from the opening time plus the end of every busy interval,
// so a slot opens as soon as a prior appointment finishes.
func Candidates(s Schedule, busy []Interval) []Clock {
	seen := make(map[Clock]struct{})
	out := make([]Clock, 0, int(s.End-s.Start)/candidateStep+len(busy))
	add := func(c Clock) {
		if c < s.Start || c >= s.End {
			return
		}
		if _, ok := seen[c]; ok {
			return
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	for t := s.Start; t < s.End; t = t.Add(candidateStep) {
		add(t)
	}
	for _, b := range busy {
		add(b.End)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Generate returns the slots for req in ascending order. A missing or
// inactive schedule, a schedule for another weekday, or a non-positive
// duration yields an empty list.
func Generate(req Request) []Slot {
	s := req.Schedule
	if s == nil || !s.Active || s.DayOfWeek != req.Date.Weekday() || req.DurationMinutes <= 0 {
		return []Slot{}
	}

	day := compareDay(req.Date, req.Now)
	nowClock := ClockOf(req.Now)

	slots := make([]Slot, 0)
	for _, t := range Candidates(*s, req.Busy) {
		end := t.Add(req.DurationMinutes)
		if end > s.End {
			continue
		}
		if s.Break.blocks(t, end) {
			continue
		}

		slot := Slot{Start: t, End: end}
		slot.Booked = ConflictsAny(t, end, req.Busy)
		slot.Past = day < 0 || (day == 0 && t < nowClock)
		slot.Available = !slot.Booked && !slot.Past

		if !slot.Available && req.Policy == HideUnavailable {
			continue
		}
		slots = append(slots, slot)
	}
	return slots
}

// Lookup returns the slot starting at start as the barber view would list it.
// The second result is false when start is not a candidate at all: off the
// candidate grid, past closing, or swallowed by the break.
func Lookup(req Request, start Clock) (Slot, bool) {
	req.Policy = ShowGreyedOut
	for _, slot := range Generate(req) {
		if slot.Start == start {
			return slot, true
		}
	}
	return Slot{}, false
}
