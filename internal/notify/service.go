package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/minhvu/garage-tasks/internal/client"
	"github.com/minhvu/garage-tasks/internal/model"
	"github.com/minhvu/garage-tasks/internal/store"
)

// backendAPI is the slice of the REST client the notification service uses.
type backendAPI interface {
	ListNotifications(ctx context.Context) ([]model.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) error
	MarkAllNotificationsRead(ctx context.Context) error
	DeleteNotification(ctx context.Context, id string) error
}

// Service exposes notification reads and the forgiving mutation semantics
// a client-facing workflow expects: marking an already-read notification
// or deleting one that is already gone is a no-op, never an error, since a
// double-tap on a stale list should not surface a failure to the user.
type Service struct {
	api    backendAPI
	store  store.Store
	logger *zap.Logger
}

// NewService creates a notification service over the backend API and the
// local cache.
func NewService(api backendAPI, s store.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{api: api, store: s, logger: logger}
}

// Refresh fetches the caller's notifications from the backend and merges
// them into the local cache (read flags never revert to unread).
func (s *Service) Refresh(ctx context.Context) error {
	notifications, err := s.api.ListNotifications(ctx)
	if err != nil {
		return err
	}
	return s.store.UpsertNotifications(ctx, notifications)
}

// List returns cached notifications, newest first.
func (s *Service) List(ctx context.Context, unreadOnly bool) ([]model.Notification, error) {
	return s.store.GetNotifications(ctx, store.NotificationFilter{UnreadOnly: unreadOnly})
}

// MarkRead flags one notification as read remotely and locally.
// A missing id is swallowed.
func (s *Service) MarkRead(ctx context.Context, id string) error {
	if err := s.api.MarkNotificationRead(ctx, id); err != nil {
		if !client.IsNotFound(err) {
			return err
		}
		s.logger.Debug("mark-read on missing notification ignored", zap.String("id", id))
	}
	return s.store.MarkNotificationRead(ctx, id)
}

// MarkAllRead flags every notification in the recipient scope as read.
// Idempotent: an empty scope or a second call changes nothing.
func (s *Service) MarkAllRead(ctx context.Context, recipient *model.Role) error {
	if err := s.api.MarkAllNotificationsRead(ctx); err != nil {
		return err
	}
	return s.store.MarkAllNotificationsRead(ctx, recipient)
}

// Delete removes a notification remotely and locally. Deleting a
// non-existent id is a no-op.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.api.DeleteNotification(ctx, id); err != nil {
		if !client.IsNotFound(err) {
			return err
		}
		s.logger.Debug("delete of missing notification ignored", zap.String("id", id))
	}
	return s.store.DeleteNotification(ctx, id)
}
