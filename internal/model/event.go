package model

import "time"

// Event is a workshop announcement shown on the home feed. Events are
// read-mostly: admins create them, everyone else just sees the list.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
