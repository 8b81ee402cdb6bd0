package models

import (
	"fmt"
	"time"

	"github.com/Diogo19832005/barber-bliss-55-sub000/internal/availability"
)

// AppointmentStatus is the lifecycle state of an appointment.
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentNoShow    AppointmentStatus = "no_show"
)

// Occupies reports whether an appointment in this status blocks its time.
func (s AppointmentStatus) Occupies() bool {
	return s != AppointmentCancelled
}

// CanTransitionTo allows scheduled appointments to be closed exactly once.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	if s != AppointmentScheduled {
		return false
	}
	switch next {
	case AppointmentCompleted, AppointmentCancelled, AppointmentNoShow:
		return true
	default:
		return false
	}
}

// Appointment is a booked service for a barber on a calendar date.
type Appointment struct {
	ID              string            `db:"id" json:"id"`
	BarberID        string            `db:"barber_id" json:"barber_id"`
	ServiceID       string            `db:"service_id" json:"service_id"`
	ServiceName     string            `db:"service_name" json:"service_name,omitempty"`
	ClientID        *string           `db:"client_id" json:"client_id,omitempty"`
	ClientName      string            `db:"client_name" json:"client_name"`
	ClientPhone     *string           `db:"client_phone" json:"client_phone,omitempty"`
	AppointmentDate string            `db:"appointment_date" json:"appointment_date"`
	StartTime       string            `db:"start_time" json:"start_time"`
	EndTime         string            `db:"end_time" json:"end_time"`
	Status          AppointmentStatus `db:"status" json:"status"`
	Notes           *string           `db:"notes" json:"notes,omitempty"`
	CreatedAt       time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time         `db:"updated_at" json:"updated_at"`
}

// Interval returns the occupied [start, end) range.
func (a Appointment) Interval() (availability.Interval, error) {
	start, err := availability.ParseClock(a.StartTime)
	if err != nil {
		return availability.Interval{}, fmt.Errorf("appointment %s start: %w", a.ID, err)
	}
	end, err := availability.ParseClock(a.EndTime)
	if err != nil {
		return availability.Interval{}, fmt.Errorf("appointment %s end: %w", a.ID, err)
	}
	return availability.Interval{Start: start, End: end}, nil
}

// BusyIntervals converts the occupying appointments into intervals, skipping
// cancelled rows.
func BusyIntervals(appointments []Appointment) ([]availability.Interval, error) {
	out := make([]availability.Interval, 0, len(appointments))
	for _, a := range appointments {
		if !a.Status.Occupies() {
			continue
		}
		iv, err := a.Interval()
		if err != nil {
			return nil, err
		}
		out = append(out, iv)
	}
	return out, nil
}

// AppointmentFilter captures filtering criteria for listing appointments.
type AppointmentFilter struct {
	BarberID string
	ClientID string
	Date     string
	Status   AppointmentStatus
	Page     int
	PageSize int
}

// BookAppointmentRequest is the payload of an authenticated booking. Barbers
// booking on behalf of a walk-in client must provide ClientName.
type BookAppointmentRequest struct {
	ServiceID   string  `json:"service_id" validate:"required"`
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime   string  `json:"start_time" validate:"required,datetime=15:04"`
	ClientName  string  `json:"client_name" validate:"omitempty,max=120"`
	ClientPhone *string `json:"client_phone,omitempty" validate:"omitempty,max=32"`
	Notes       *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// PublicBookingRequest is the payload of the unauthenticated booking page.
type PublicBookingRequest struct {
	ServiceID   string  `json:"service_id" validate:"required"`
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime   string  `json:"start_time" validate:"required,datetime=15:04"`
	ClientName  string  `json:"client_name" validate:"required,max=120"`
	ClientPhone string  `json:"client_phone" validate:"required,min=8,max=32"`
	Notes       *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// UpdateAppointmentStatusRequest closes a scheduled appointment.
type UpdateAppointmentStatusRequest struct {
	Status AppointmentStatus `json:"status" validate:"required,oneof=completed cancelled no_show"`
}
