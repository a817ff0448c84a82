package models

import "time"

// Message is an inbound contact-form submission. Messages live in their own
// collection, independent of the portfolio document: created only by the
// public contact form, mutated or destroyed only by the admin.
type Message struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Body      string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"timestamp"`
}
