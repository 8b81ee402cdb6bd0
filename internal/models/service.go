package models

import "time"

// Service is a bookable offering of a barber. Its duration decides slot length.
type Service struct {
	ID              string    `db:"id" json:"id"`
	BarberID        string    `db:"barber_id" json:"barber_id"`
	Name            string    `db:"name" json:"name"`
	Description     *string   `db:"description" json:"description,omitempty"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	Price           float64   `db:"price" json:"price"`
	Active          bool      `db:"active" json:"active"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// ServiceRequest creates or updates a catalogue entry. Active defaults to true.
type ServiceRequest struct {
	Name            string  `json:"name" validate:"required,max=120"`
	Description     *string `json:"description,omitempty" validate:"omitempty,max=500"`
	DurationMinutes int     `json:"duration_minutes" validate:"required,min=5,max=480"`
	Price           float64 `json:"price" validate:"min=0"`
	Active          *bool   `json:"active,omitempty"`
}
