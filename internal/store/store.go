package store

import (
	"context"
	"errors"

	"github.com/minhvu/garage-tasks/internal/model"
)

// ErrNotFound indicates the requested record is not in the local cache.
var ErrNotFound = errors.New("record not found in cache")

// TaskFilter controls filtering, sorting, and pagination for task queries.
type TaskFilter struct {
	Status     *model.Status
	EmployeeID *string
	Query      *string // search title + description
	SortBy     string  // "created_at", "updated_at", "deadline", "title", "status"
	SortDesc   bool
	Limit      int
	Offset     int
}

// NotificationFilter controls filtering for notification queries.
type NotificationFilter struct {
	UnreadOnly bool
	Recipient  *model.Role
}

// Store defines the local cache for tasks and notifications fetched from
// the backend. The cache holds the last confirmed state of each record for
// the session; a full refetch simply overwrites it (last fetch wins).
type Store interface {
	// === Tasks ===

	UpsertTasks(ctx context.Context, tasks []model.Task) error
	ReplaceTask(ctx context.Context, task model.Task) error
	DeleteTask(ctx context.Context, id string) error
	GetTasks(ctx context.Context, filter TaskFilter) ([]model.Task, error)
	GetTaskByID(ctx context.Context, id string) (*model.Task, error)

	// === Notifications ===

	UpsertNotifications(ctx context.Context, notifications []model.Notification) error
	GetNotifications(ctx context.Context, filter NotificationFilter) ([]model.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) error
	MarkAllNotificationsRead(ctx context.Context, recipient *model.Role) error
	DeleteNotification(ctx context.Context, id string) error

	Close() error
}
