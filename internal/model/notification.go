package model

import "time"

// Notification is an alert surfaced to a user about a task state change.
type Notification struct {
	// ID is the unique identifier for this notification.
	ID string `json:"id"`

	// TaskID links this notification to the originating task. It is a
	// lookup reference only; the task may since have been deleted.
	TaskID string `json:"task_id,omitempty"`

	// Recipient is the role this notification is addressed to: the
	// complement of whichever role caused the transition.
	Recipient Role `json:"recipient_role"`

	// Message is the human-readable notification text.
	Message string `json:"message"`

	// Read indicates whether the recipient has seen this notification.
	// It only ever moves from false to true.
	Read bool `json:"read"`

	// CreatedAt is when this notification was generated.
	CreatedAt time.Time `json:"created_at"`
}
