package models

// Booking notification events.
const (
	EventBookingConfirmed = "booking.confirmed"
	EventBookingConflict  = "booking.conflict"
	EventBookingCancelled = "booking.cancelled"
)

// BookingNotification is the payload of a queued booking notification.
type BookingNotification struct {
	Event         string  `json:"event"`
	AppointmentID string  `json:"appointment_id,omitempty"`
	BarberID      string  `json:"barber_id"`
	Date          string  `json:"date"`
	StartTime     string  `json:"start_time"`
	ClientName    string  `json:"client_name,omitempty"`
	ClientPhone   *string `json:"client_phone,omitempty"`
}
