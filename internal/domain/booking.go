package domain

import "time"

// Booking is an accepted table reservation request. Nothing is stored; the
// reference is only echoed back to the guest.
type Booking struct {
	Reference  string    `json:"reference"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email"`
	Persons    int       `json:"persons"`
	Date       string    `json:"date"`
	ReceivedAt time.Time `json:"received_at"`
}
