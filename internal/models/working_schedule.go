package models

import (
	"fmt"
	"time"

	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/availability"
)

// WorkingSchedule is one weekday of a barber's working hours.
// DayOfWeek follows time.Weekday: 0 is Sunday.
type WorkingSchedule struct {
	ID                    string    `db:"id" json:"id"`
	BarberID              string    `db:"barber_id" json:"barber_id"`
	DayOfWeek             int       `db:"day_of_week" json:"day_of_week"`
	StartTime             string    `db:"start_time" json:"start_time"`
	EndTime               string    `db:"end_time" json:"end_time"`
	IsActive              bool      `db:"is_active" json:"is_active"`
	HasBreak              bool      `db:"has_break" json:"has_break"`
	BreakStart            *string   `db:"break_start" json:"break_start,omitempty"`
	BreakEnd              *string   `db:"break_end" json:"break_end,omitempty"`
	BreakToleranceEnabled bool      `db:"break_tolerance_enabled" json:"break_tolerance_enabled"`
	BreakToleranceMinutes int       `db:"break_tolerance_minutes" json:"break_tolerance_minutes"`
	CreatedAt             time.Time `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time `db:"updated_at" json:"updated_at"`
}

// Availability converts the stored row into the clock-based schedule used by
// slot generation. Tolerance only applies when enabled.
func (w WorkingSchedule) Availability() (availability.Schedule, error) {
	start, err := availability.ParseClock(w.StartTime)
	if err != nil {
		return availability.Schedule{}, fmt.Errorf("start_time: %w", err)
	}
	end, err := availability.ParseClock(w.EndTime)
	if err != nil {
		return availability.Schedule{}, fmt.Errorf("end_time: %w", err)
	}
	sched := availability.Schedule{
		DayOfWeek: time.Weekday(w.DayOfWeek),
		Start:     start,
		End:       end,
		Active:    w.IsActive,
	}
	if !w.HasBreak {
		return sched, nil
	}
	if w.BreakStart == nil || w.BreakEnd == nil {
		return availability.Schedule{}, fmt.Errorf("break enabled without break_start/break_end")
	}
	bs, err := availability.ParseClock(*w.BreakStart)
	if err != nil {
		return availability.Schedule{}, fmt.Errorf("break_start: %w", err)
	}
	be, err := availability.ParseClock(*w.BreakEnd)
	if err != nil {
		return availability.Schedule{}, fmt.Errorf("break_end: %w", err)
	}
	sched.Break = &availability.Break{Start: bs, End: be}
	if w.BreakToleranceEnabled {
		sched.Break.ToleranceMinutes = w.BreakToleranceMinutes
	}
	return sched, nil
}

// ScheduleDayRequest is one weekday in a schedule replacement payload.
type ScheduleDayRequest struct {
	DayOfWeek             int     `json:"day_of_week" validate:"min=0,max=6"`
	StartTime             string  `json:"start_time" validate:"required,datetime=15:04"`
	EndTime               string  `json:"end_time" validate:"required,datetime=15:04"`
	IsActive              bool    `json:"is_active"`
	HasBreak              bool    `json:"has_break"`
	BreakStart            *string `json:"break_start,omitempty" validate:"required_if=HasBreak true"`
	BreakEnd              *string `json:"break_end,omitempty" validate:"required_if=HasBreak true"`
	BreakToleranceEnabled bool    `json:"break_tolerance_enabled"`
	BreakToleranceMinutes int     `json:"break_tolerance_minutes" validate:"min=0,max=120"`
}

// ReplaceScheduleRequest replaces a barber's whole week.
type ReplaceScheduleRequest struct {
	Days []ScheduleDayRequest `json:"days" validate:"max=7,dive"`
}

// ToModel converts the request day into a storable row. Break fields are
// dropped when HasBreak is false.
func (r ScheduleDayRequest) ToModel(barberID string) WorkingSchedule {
	ws := WorkingSchedule{
		BarberID:              barberID,
		DayOfWeek:             r.DayOfWeek,
		StartTime:             r.StartTime,
		EndTime:               r.EndTime,
		IsActive:              r.IsActive,
		HasBreak:              r.HasBreak,
		BreakToleranceEnabled: r.HasBreak && r.BreakToleranceEnabled,
	}
	if r.HasBreak {
		ws.BreakStart = r.BreakStart
		ws.BreakEnd = r.BreakEnd
		if ws.BreakToleranceEnabled {
			ws.BreakToleranceMinutes = r.BreakToleranceMinutes
		}
	}
	return ws
}
