package availability

// Interval is an occupied [Start, End) range of a working day.
type Interval struct {
	Start Clock
	End   Clock
}

// Conflicts reports whether a slot [start, end) collides with the interval.
// A slot conflicts when it starts inside the interval, ends inside it, or
// fully contains it.
func (i Interval) Conflicts(start, end Clock) bool {
	startsInside := start >= i.Start && start < i.End
	endsInside := end > i.Start && end <= i.End
	contains := start <= i.Start && end >= i.End
	return startsInside || endsInside || contains
}

// ConflictsAny reports whether [start, end) collides with any busy interval.
func ConflictsAny(start, end Clock, busy []Interval) bool {
	for _, b := range busy {
		if b.Conflicts(start, end) {
			return true
		}
	}
	return false
}
