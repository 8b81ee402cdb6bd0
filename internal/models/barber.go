package models

import "time"

// Barber is a tenant of the platform. Its ID is the id of the owning BARBER user.
type Barber struct {
	ID          string    `db:"id" json:"id"`
	Slug        string    `db:"slug" json:"slug"`
	DisplayName string    `db:"display_name" json:"display_name"`
	ShopName    string    `db:"shop_name" json:"shop_name"`
	Phone       *string   `db:"phone" json:"phone,omitempty"`
	Active      bool      `db:"active" json:"active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// PublicBarberProfile is what the unauthenticated booking page renders.
type PublicBarberProfile struct {
	Barber   Barber    `json:"barber"`
	Services []Service `json:"services"`
}
