package sync

import (
	"context"
	"fmt"
	gosync "sync"
	"time"

	"go.uber.org/zap"

	"github.com/minhvu/garage-tasks/internal/client"
	"github.com/minhvu/garage-tasks/internal/model"
	"github.com/minhvu/garage-tasks/internal/session"
	"github.com/minhvu/garage-tasks/internal/store"
	"github.com/minhvu/garage-tasks/internal/workflow"
)

// State represents the current state of a refresh cycle.
type State int

const (
	Idle State = iota
	Running
	Errored
)

// Status holds the refresh state of the poller.
type Status struct {
	State    State
	LastSync time.Time
	Err      error
}

// Result is delivered on the result channel when a refresh completes.
type Result struct {
	Tasks        []model.Task
	NewTaskCount int
	Err          error

	// AuthExpired is set when the backend rejected the session token;
	// the user must log in again.
	AuthExpired bool
}

// Fetcher is the slice of the REST client the poller needs.
type Fetcher interface {
	ListTasks(ctx context.Context) ([]model.Task, error)
	ListTasksForEmployee(ctx context.Context, employeeID string) ([]model.Task, error)
	ListNotifications(ctx context.Context) ([]model.Notification, error)
}

// fetchTimeout is the maximum time allowed for a single refresh cycle.
const fetchTimeout = 30 * time.Second

// Poller periodically refetches tasks and notifications for the current
// session and rehydrates the local cache through the coordinator, so a
// refetch never interleaves with an in-flight transition on the same task.
type Poller struct {
	fetcher  Fetcher
	coord    *workflow.Coordinator
	store    store.Store
	sess     *session.Session
	interval time.Duration
	logger   *zap.Logger

	resultCh  chan Result
	triggerCh chan struct{}
	stopCh    chan struct{}

	mu      gosync.Mutex
	running bool
	status  Status
}

// New creates a poller for the given session.
func New(
	fetcher Fetcher,
	coord *workflow.Coordinator,
	s store.Store,
	sess *session.Session,
	interval time.Duration,
	logger *zap.Logger,
) *Poller {
	if interval <= 0 {
		interval = 120 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{
		fetcher:   fetcher,
		coord:     coord,
		store:     s,
		sess:      sess,
		interval:  interval,
		logger:    logger,
		resultCh:  make(chan Result, 16),
		triggerCh: make(chan struct{}, 16),
		stopCh:    make(chan struct{}),
	}
}

// Results returns the channel refresh outcomes are delivered on.
func (p *Poller) Results() <-chan Result {
	return p.resultCh
}

// Start launches the polling goroutine. Calling Start on a running poller
// is a no-op.
func (p *Poller) Start() {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.mu.Unlock()

	go p.loop()
}

// Stop halts the polling goroutine.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}

	close(p.stopCh)
	p.running = false
}

// Refresh triggers an immediate refetch without waiting for the ticker.
func (p *Poller) Refresh() {
	select {
	case p.triggerCh <- struct{}{}:
	default:
		// Channel full; a refresh is already queued.
	}
}

// GetStatus returns the poller's current refresh status.
func (p *Poller) GetStatus() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// loop runs the refresh cycle until stopped.
func (p *Poller) loop() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// Do an initial refresh immediately.
	p.refreshOnce()

	for {
		select {
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.refreshOnce()
		case <-p.triggerCh:
			p.refreshOnce()
		}
	}
}

// refreshOnce performs a single fetch of tasks and notifications, applies
// them to the cache, and reports the outcome on the result channel.
func (p *Poller) refreshOnce() {
	p.setStatus(Running, nil)

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	tasks, err := p.fetchTasks(ctx)
	if err != nil {
		p.setStatus(Errored, err)
		p.sendResult(Result{Err: err, AuthExpired: client.IsAuthError(err)})
		return
	}

	// Detect tasks that were not cached before this refresh.
	existing, _ := p.store.GetTasks(ctx, store.TaskFilter{})
	existingIDs := make(map[string]bool, len(existing))
	for _, t := range existing {
		existingIDs[t.ID] = true
	}

	if err := p.coord.ApplyFetched(ctx, tasks); err != nil {
		p.setStatus(Errored, err)
		p.sendResult(Result{Err: err})
		return
	}

	newTaskCount := 0
	for _, t := range tasks {
		if existingIDs[t.ID] {
			continue
		}
		newTaskCount++
		n := model.Notification{
			TaskID:    t.ID,
			Recipient: p.sess.Role(),
			Message:   fmt.Sprintf("New task: %s", t.Title),
			CreatedAt: time.Now(),
		}
		if err := p.store.UpsertNotifications(ctx, []model.Notification{n}); err != nil {
			p.logger.Warn("caching new-task notification failed",
				zap.String("task_id", t.ID), zap.Error(err))
		}
	}

	// Merge the backend's notification feed; local read flags win.
	remote, err := p.fetcher.ListNotifications(ctx)
	if err != nil {
		p.logger.Warn("refreshing notifications failed", zap.Error(err))
	} else if err := p.store.UpsertNotifications(ctx, remote); err != nil {
		p.logger.Warn("caching notifications failed", zap.Error(err))
	}

	p.setStatus(Idle, nil)
	p.sendResult(Result{Tasks: tasks, NewTaskCount: newTaskCount})
}

// fetchTasks selects the role-appropriate endpoint: admins see every task,
// employees only their own assignments.
func (p *Poller) fetchTasks(ctx context.Context) ([]model.Task, error) {
	if p.sess.Admin() {
		return p.fetcher.ListTasks(ctx)
	}
	return p.fetcher.ListTasksForEmployee(ctx, p.sess.User.ID)
}

// setStatus updates the poller status.
func (p *Poller) setStatus(state State, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.status.State = state
	p.status.Err = err
	if state == Idle && err == nil {
		p.status.LastSync = time.Now()
	}
}

// sendResult delivers a result without blocking the refresh loop.
func (p *Poller) sendResult(r Result) {
	select {
	case p.resultCh <- r:
	default:
		// Drop if nobody is listening to avoid blocking the poller.
	}
}
