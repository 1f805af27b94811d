package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhvu/garage-tasks/internal/model"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second)
}

func TestLoginInstallsToken(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/users/login", r.URL.Path)

		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "a@b.c", creds["email"])

		json.NewEncoder(w).Encode(LoginResult{
			Token: "tok-123",
			User:  model.User{ID: "u1", Email: "a@b.c", Role: model.RoleEmployee},
		})
	}))

	result, err := c.Login(context.Background(), "a@b.c", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", result.Token)
	assert.Equal(t, "u1", result.User.ID)
	assert.Equal(t, "tok-123", c.bearer())
}

func TestBearerHeaderSent(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]model.Task{})
	}))
	c.SetToken("tok-xyz")

	_, err := c.ListTasks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-xyz", gotAuth)
}

func TestListTasksNormalizesLegacyStatuses(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/tasks", r.URL.Path)
		json.NewEncoder(w).Encode([]map[string]string{
			{"id": "t1", "title": "a", "status": "Hoàn thành"},
			{"id": "t2", "title": "b", "status": "pending"},
			{"id": "t3", "title": "c", "status": "Đang chờ xác nhận"},
		})
	}))

	tasks, err := c.ListTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, model.StatusCompleted, tasks[0].Status)
	assert.Equal(t, model.StatusPending, tasks[1].Status)
	assert.Equal(t, model.StatusAwaitingConfirmation, tasks[2].Status)
}

func TestGetTaskUnwrapsEnvelope(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/tasks/t1", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"task": map[string]interface{}{
				"id":     "t1",
				"title":  "Change oil",
				"status": "in_progress",
				"employee": map[string]string{
					"id": "u1", "first_name": "Minh", "last_name": "Vu",
				},
			},
		})
	}))

	task, err := c.GetTask(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, "Change oil", task.Title)
	assert.Equal(t, model.StatusInProgress, task.Status)
	require.NotNil(t, task.Employee)
	assert.Equal(t, "Minh Vu", task.Employee.DisplayName())
}

func TestUpdateTaskStatusSendsStatusBody(t *testing.T) {
	var gotBody map[string]string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/tasks/t1", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"task": map[string]string{"id": "t1", "status": "in_progress"},
		})
	}))

	task, err := c.UpdateTaskStatus(context.Background(), "t1", model.StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, "in_progress", gotBody["status"])
	assert.Equal(t, model.StatusInProgress, task.Status)
}

func TestListNotificationsUnwrapsEnvelope(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/notifications", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"notifications": []map[string]interface{}{
				{"id": "n1", "task_id": "t1", "message": "hello", "read": false},
			},
		})
	}))

	notifications, err := c.ListNotifications(context.Background())
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, "n1", notifications[0].ID)
	assert.False(t, notifications[0].Read)
}

func TestRetryOn429(t *testing.T) {
	attempts := 0
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		json.NewEncoder(w).Encode([]model.Task{{ID: "t1", Status: model.StatusPending}})
	}))

	tasks, err := c.ListTasks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Len(t, tasks, 1)
}

func TestUnauthorizedReturnsAuthError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := c.ListTasks(context.Background())
	require.Error(t, err)
	assert.True(t, IsAuthError(err))
}

func TestNotFoundDetectable(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "task not found"})
	}))

	_, err := c.GetTask(context.Background(), "ghost")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "task not found")
}

func TestServerErrorMessageSurfaced(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"message": "database on fire"})
	}))

	_, err := c.ListTasks(context.Background())
	require.Error(t, err)
	assert.False(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "database on fire")
}

func TestRetryAfterDuration(t *testing.T) {
	resp := &http.Response{Header: http.Header{}}

	resp.Header.Set("Retry-After", "7")
	assert.Equal(t, 7*time.Second, retryAfterDuration(resp, 0))

	resp.Header.Del("Retry-After")
	assert.Equal(t, 1*time.Second, retryAfterDuration(resp, 0))
	assert.Equal(t, 4*time.Second, retryAfterDuration(resp, 2))
	assert.Equal(t, 30*time.Second, retryAfterDuration(resp, 10))
}
