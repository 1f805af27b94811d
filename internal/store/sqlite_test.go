package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhvu/garage-tasks/internal/model"
	"github.com/minhvu/garage-tasks/internal/store"
	"github.com/minhvu/garage-tasks/tests/testutil"
)

func ctx() context.Context { return context.Background() }

func sampleTask(id string, status model.Status, created time.Time) model.Task {
	return model.Task{
		ID:          id,
		Title:       "Task " + id,
		Description: "desc",
		Status:      status,
		EmployeeID:  "u1",
		CreatedAt:   created,
		UpdatedAt:   created,
	}
}

func TestUpsertAndGetTasks(t *testing.T) {
	s := testutil.NewTestStore(t)
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.UpsertTasks(ctx(), []model.Task{
		sampleTask("t1", model.StatusPending, base),
		sampleTask("t2", model.StatusInProgress, base.Add(time.Hour)),
	}))

	tasks, err := s.GetTasks(ctx(), store.TaskFilter{SortBy: "created_at", SortDesc: true})
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "t2", tasks[0].ID)
	assert.Equal(t, "t1", tasks[1].ID)
}

func TestLastFetchWins(t *testing.T) {
	// A refetch simply overwrites the cached row.
	s := testutil.NewTestStore(t)
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.ReplaceTask(ctx(), sampleTask("t1", model.StatusPending, base)))
	require.NoError(t, s.ReplaceTask(ctx(), sampleTask("t1", model.StatusAwaitingConfirmation, base)))

	got, err := s.GetTaskByID(ctx(), "t1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusAwaitingConfirmation, got.Status)

	tasks, err := s.GetTasks(ctx(), store.TaskFilter{})
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestGetTaskByIDNotFound(t *testing.T) {
	s := testutil.NewTestStore(t)

	_, err := s.GetTaskByID(ctx(), "ghost")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteTaskIsIdempotent(t *testing.T) {
	s := testutil.NewTestStore(t)
	base := time.Now().UTC()

	require.NoError(t, s.ReplaceTask(ctx(), sampleTask("t1", model.StatusPending, base)))
	require.NoError(t, s.DeleteTask(ctx(), "t1"))
	require.NoError(t, s.DeleteTask(ctx(), "t1"))

	_, err := s.GetTaskByID(ctx(), "t1")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestGetTasksFilters(t *testing.T) {
	s := testutil.NewTestStore(t)
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t1 := sampleTask("t1", model.StatusPending, base)
	t2 := sampleTask("t2", model.StatusInProgress, base.Add(time.Hour))
	t2.EmployeeID = "u2"
	t2.Title = "Replace brake pads"
	require.NoError(t, s.UpsertTasks(ctx(), []model.Task{t1, t2}))

	status := model.StatusPending
	byStatus, err := s.GetTasks(ctx(), store.TaskFilter{Status: &status})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, "t1", byStatus[0].ID)

	emp := "u2"
	byEmployee, err := s.GetTasks(ctx(), store.TaskFilter{EmployeeID: &emp})
	require.NoError(t, err)
	require.Len(t, byEmployee, 1)
	assert.Equal(t, "t2", byEmployee[0].ID)

	q := "brake"
	byQuery, err := s.GetTasks(ctx(), store.TaskFilter{Query: &q})
	require.NoError(t, err)
	require.Len(t, byQuery, 1)
	assert.Equal(t, "t2", byQuery[0].ID)
}

func TestGetTasksStableOrderOnEqualKeys(t *testing.T) {
	// Rows with identical created_at come back in insertion order every
	// time, so repeated renders never flicker.
	s := testutil.NewTestStore(t)
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.UpsertTasks(ctx(), []model.Task{
		sampleTask("a", model.StatusPending, base),
		sampleTask("b", model.StatusPending, base),
		sampleTask("c", model.StatusPending, base),
	}))

	for i := 0; i < 3; i++ {
		tasks, err := s.GetTasks(ctx(), store.TaskFilter{SortBy: "created_at", SortDesc: true})
		require.NoError(t, err)
		require.Len(t, tasks, 3)
		assert.Equal(t, "a", tasks[0].ID)
		assert.Equal(t, "b", tasks[1].ID)
		assert.Equal(t, "c", tasks[2].ID)
	}
}

func TestTaskNullableColumnsRoundTrip(t *testing.T) {
	s := testutil.NewTestStore(t)
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	deadline := base.Add(48 * time.Hour)
	completed := base.Add(24 * time.Hour)

	withTimes := sampleTask("t1", model.StatusCompleted, base)
	withTimes.Deadline = &deadline
	withTimes.CompletedAt = &completed
	bare := sampleTask("t2", model.StatusPending, base)

	require.NoError(t, s.UpsertTasks(ctx(), []model.Task{withTimes, bare}))

	got1, err := s.GetTaskByID(ctx(), "t1")
	require.NoError(t, err)
	require.NotNil(t, got1.Deadline)
	require.NotNil(t, got1.CompletedAt)
	assert.True(t, got1.Deadline.Equal(deadline))
	assert.True(t, got1.CompletedAt.Equal(completed))

	got2, err := s.GetTaskByID(ctx(), "t2")
	require.NoError(t, err)
	assert.Nil(t, got2.Deadline)
	assert.Nil(t, got2.CompletedAt)
}

func sampleNotification(id string, recipient model.Role, read bool, created time.Time) model.Notification {
	return model.Notification{
		ID:        id,
		TaskID:    "t1",
		Recipient: recipient,
		Message:   "msg " + id,
		Read:      read,
		CreatedAt: created,
	}
}

func TestNotificationReadFlagNeverReverts(t *testing.T) {
	s := testutil.NewTestStore(t)
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.UpsertNotifications(ctx(), []model.Notification{
		sampleNotification("n1", model.RoleAdmin, false, now),
	}))
	require.NoError(t, s.MarkNotificationRead(ctx(), "n1"))

	// A refetch delivering the same row as unread must not flip it back.
	require.NoError(t, s.UpsertNotifications(ctx(), []model.Notification{
		sampleNotification("n1", model.RoleAdmin, false, now),
	}))

	items, err := s.GetNotifications(ctx(), store.NotificationFilter{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].Read)
}

func TestNotificationsNewestFirst(t *testing.T) {
	s := testutil.NewTestStore(t)
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.UpsertNotifications(ctx(), []model.Notification{
		sampleNotification("old", model.RoleAdmin, false, base),
		sampleNotification("new", model.RoleAdmin, false, base.Add(time.Hour)),
	}))

	items, err := s.GetNotifications(ctx(), store.NotificationFilter{})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "new", items[0].ID)
	assert.Equal(t, "old", items[1].ID)
}

func TestNotificationsGenerateIDWhenMissing(t *testing.T) {
	s := testutil.NewTestStore(t)

	require.NoError(t, s.UpsertNotifications(ctx(), []model.Notification{
		{TaskID: "t1", Recipient: model.RoleAdmin, Message: "no id", CreatedAt: time.Now().UTC()},
	}))

	items, err := s.GetNotifications(ctx(), store.NotificationFilter{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.NotEmpty(t, items[0].ID)
}

func TestMarkAllNotificationsRead(t *testing.T) {
	s := testutil.NewTestStore(t)
	now := time.Now().UTC()

	require.NoError(t, s.UpsertNotifications(ctx(), []model.Notification{
		sampleNotification("n1", model.RoleAdmin, false, now),
		sampleNotification("n2", model.RoleEmployee, false, now),
	}))

	// Scoped: only the admin-side row flips.
	admin := model.RoleAdmin
	require.NoError(t, s.MarkAllNotificationsRead(ctx(), &admin))

	unread, err := s.GetNotifications(ctx(), store.NotificationFilter{UnreadOnly: true})
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, "n2", unread[0].ID)

	// Unscoped clears the rest. Repeating is a no-op.
	require.NoError(t, s.MarkAllNotificationsRead(ctx(), nil))
	require.NoError(t, s.MarkAllNotificationsRead(ctx(), nil))

	unread, err = s.GetNotifications(ctx(), store.NotificationFilter{UnreadOnly: true})
	require.NoError(t, err)
	assert.Empty(t, unread)
}

func TestNotificationFilterByRecipient(t *testing.T) {
	s := testutil.NewTestStore(t)
	now := time.Now().UTC()

	require.NoError(t, s.UpsertNotifications(ctx(), []model.Notification{
		sampleNotification("n1", model.RoleAdmin, false, now),
		sampleNotification("n2", model.RoleEmployee, false, now),
	}))

	employee := model.RoleEmployee
	items, err := s.GetNotifications(ctx(), store.NotificationFilter{Recipient: &employee})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "n2", items[0].ID)
}

func TestDeleteNotificationIsIdempotent(t *testing.T) {
	s := testutil.NewTestStore(t)

	require.NoError(t, s.UpsertNotifications(ctx(), []model.Notification{
		sampleNotification("n1", model.RoleAdmin, false, time.Now().UTC()),
	}))
	require.NoError(t, s.DeleteNotification(ctx(), "n1"))
	require.NoError(t, s.DeleteNotification(ctx(), "n1"))

	items, err := s.GetNotifications(ctx(), store.NotificationFilter{})
	require.NoError(t, err)
	assert.Empty(t, items)
}
