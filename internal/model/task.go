package model

import "time"

// Status is the canonical task status enumeration. All internal logic
// compares against these values; localized display labels exist only at
// the presentation boundary.
type Status string

const (
	StatusPending              Status = "pending"
	StatusInProgress           Status = "in_progress"
	StatusAwaitingConfirmation Status = "awaiting_confirmation"
	StatusCompleted            Status = "completed"
	StatusRejected             Status = "rejected"
)

// Statuses lists every canonical status in lifecycle order.
var Statuses = []Status{
	StatusPending,
	StatusInProgress,
	StatusAwaitingConfirmation,
	StatusCompleted,
	StatusRejected,
}

// Valid reports whether s is one of the canonical statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusAwaitingConfirmation,
		StatusCompleted, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transition is legal from s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusRejected
}

// Task is a work item assigned to a single employee.
type Task struct {
	// ID is the unique identifier for this task.
	ID string `json:"id"`

	// Title is the human-readable summary of the task.
	Title string `json:"title"`

	// Description is the full body text.
	Description string `json:"description"`

	// Status is the canonical lifecycle status (use Status* constants).
	Status Status `json:"status"`

	// EmployeeID is the identifier of the assigned employee. Exactly one
	// employee is assigned per task.
	EmployeeID string `json:"employee_id"`

	// Deadline is the optional due time. A nil deadline carries no
	// urgency signal.
	Deadline *time.Time `json:"deadline,omitempty"`

	// CompletedAt is set exactly when the status becomes completed and
	// is nil otherwise.
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// CreatedAt is when the task was created in the backend.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the task was last modified.
	UpdatedAt time.Time `json:"updated_at"`

	// Employee is the nested assignee record, populated on single-task
	// fetches.
	Employee *User `json:"employee,omitempty"`
}
