package models

// Slot is a start time as shown to barbers and signed-in clients.
type Slot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// PublicSlot is the public booking page variant. IsBooked separates
// "taken by someone" from "in the past".
type PublicSlot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
	IsBooked  bool   `json:"is_booked"`
}
