package client

import (
	"context"
	"fmt"
	"time"

	"github.com/minhvu/garage-tasks/internal/model"
)

// LoginResult is the response to a successful login.
type LoginResult struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// CreateUserRequest holds the fields for registering a new employee
// or admin account.
type CreateUserRequest struct {
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Email     string     `json:"email"`
	Password  string     `json:"password"`
	Role      model.Role `json:"role"`
}

// UpdateUserRequest holds the mutable fields of the current account.
type UpdateUserRequest struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	Password  string `json:"password,omitempty"`
}

// CreateTaskRequest holds the fields for creating a task. New tasks
// always start in pending.
type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	EmployeeID  string     `json:"employee_id"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

// UpdateTaskRequest holds the editable task fields for a full update.
type UpdateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	EmployeeID  string     `json:"employee_id"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

// CreateEventRequest holds the fields for publishing a home-feed event.
type CreateEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// taskEnvelope wraps single-task responses ({"task": {...}}).
type taskEnvelope struct {
	Task model.Task `json:"task"`
}

// notificationsEnvelope wraps the notification list response.
type notificationsEnvelope struct {
	Notifications []model.Notification `json:"notifications"`
}

// Login exchanges credentials for a bearer token and the session user.
// The token is installed on the client for subsequent requests.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var result LoginResult
	if err := c.post(ctx, "/users/login", body, &result); err != nil {
		return nil, err
	}
	c.SetToken(result.Token)
	return &result, nil
}

// CreateUser registers a new account (admin only).
func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (model.User, error) {
	var u model.User
	if err := c.post(ctx, "/users", req, &u); err != nil {
		return model.User{}, err
	}
	return u, nil
}

// UpdateUser updates the current account's details.
func (c *Client) UpdateUser(ctx context.Context, req UpdateUserRequest) (model.User, error) {
	var u model.User
	if err := c.put(ctx, "/users/update", req, &u); err != nil {
		return model.User{}, err
	}
	return u, nil
}

// ListEmployees retrieves all user accounts (admin only). Callers filter
// by role as needed.
func (c *Client) ListEmployees(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := c.get(ctx, "/admin/user", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListTasks retrieves every task (admin view).
func (c *Client) ListTasks(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := c.get(ctx, "/tasks", &tasks); err != nil {
		return nil, err
	}
	return normalizeTasks(tasks), nil
}

// ListTasksForEmployee retrieves the tasks assigned to one employee.
func (c *Client) ListTasksForEmployee(ctx context.Context, employeeID string) ([]model.Task, error) {
	var tasks []model.Task
	path := fmt.Sprintf("/tasks/employee/%s", employeeID)
	if err := c.get(ctx, path, &tasks); err != nil {
		return nil, err
	}
	return normalizeTasks(tasks), nil
}

// GetTask retrieves a single task with its nested assignee.
func (c *Client) GetTask(ctx context.Context, id string) (model.Task, error) {
	var env taskEnvelope
	if err := c.get(ctx, "/tasks/"+id, &env); err != nil {
		return model.Task{}, err
	}
	return normalizeTask(env.Task), nil
}

// CreateTask creates a new task in pending status (admin only).
func (c *Client) CreateTask(ctx context.Context, req CreateTaskRequest) (model.Task, error) {
	var env taskEnvelope
	if err := c.post(ctx, "/tasks", req, &env); err != nil {
		return model.Task{}, err
	}
	return normalizeTask(env.Task), nil
}

// UpdateTask replaces the editable fields of a task (admin only).
func (c *Client) UpdateTask(ctx context.Context, id string, req UpdateTaskRequest) (model.Task, error) {
	var env taskEnvelope
	if err := c.put(ctx, "/tasks/"+id, req, &env); err != nil {
		return model.Task{}, err
	}
	return normalizeTask(env.Task), nil
}

// UpdateTaskStatus persists a status transition that has already been
// validated locally by the workflow engine.
func (c *Client) UpdateTaskStatus(ctx context.Context, id string, status model.Status) (model.Task, error) {
	body := map[string]model.Status{"status": status}
	var env taskEnvelope
	if err := c.put(ctx, "/tasks/"+id, body, &env); err != nil {
		return model.Task{}, err
	}
	return normalizeTask(env.Task), nil
}

// DeleteTask removes a task entirely (admin only). Deletion bypasses the
// status lifecycle.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.delete(ctx, "/tasks/"+id)
}

// ListNotifications retrieves the caller's notifications.
func (c *Client) ListNotifications(ctx context.Context) ([]model.Notification, error) {
	var env notificationsEnvelope
	if err := c.get(ctx, "/notifications", &env); err != nil {
		return nil, err
	}
	return env.Notifications, nil
}

// MarkNotificationRead flags a single notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	body := map[string]bool{"read": true}
	return c.put(ctx, "/notifications/"+id, body, nil)
}

// MarkAllNotificationsRead flags every notification for the caller as read.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.put(ctx, "/notifications/mark-all-read", struct{}{}, nil)
}

// DeleteNotification removes a notification.
func (c *Client) DeleteNotification(ctx context.Context, id string) error {
	return c.delete(ctx, "/notifications/"+id)
}

// ListEvents retrieves the home-feed events.
func (c *Client) ListEvents(ctx context.Context) ([]model.Event, error) {
	var events []model.Event
	if err := c.get(ctx, "/events", &events); err != nil {
		return nil, err
	}
	return events, nil
}

// CreateEvent publishes a home-feed event (admin only).
func (c *Client) CreateEvent(ctx context.Context, req CreateEventRequest) (model.Event, error) {
	var ev model.Event
	if err := c.post(ctx, "/events", req, &ev); err != nil {
		return model.Event{}, err
	}
	return ev, nil
}

// normalizeTask folds legacy status representations to the canonical
// enumeration at the fetch edge, so nothing downstream ever compares a
// display label. Unrecognized statuses pass through unchanged.
func normalizeTask(t model.Task) model.Task {
	if nt, err := model.NormalizeTask(t); err == nil {
		return nt
	}
	return t
}

func normalizeTasks(tasks []model.Task) []model.Task {
	for i := range tasks {
		tasks[i] = normalizeTask(tasks[i])
	}
	return tasks
}
