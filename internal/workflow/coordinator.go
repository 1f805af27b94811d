package workflow

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/minhvu/garage-tasks/internal/model"
	"github.com/minhvu/garage-tasks/internal/notify"
	"github.com/minhvu/garage-tasks/internal/store"
)

// Persister relays a locally validated transition to the backend.
type Persister interface {
	UpdateTaskStatus(ctx context.Context, id string, status model.Status) (model.Task, error)
}

// Coordinator serializes transition-apply and refetch per task and
// enforces the side-effect contract: the local task row and the projected
// notification change only after the remote persist succeeds, and at most
// one notification becomes visible per confirmed transition.
type Coordinator struct {
	store   store.Store
	persist Persister
	logger  *zap.Logger
	now     func() time.Time

	mu        sync.Mutex
	taskLocks map[string]*sync.Mutex
}

// NewCoordinator creates a coordinator over the given cache and persister.
func NewCoordinator(s store.Store, p Persister, logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{
		store:     s,
		persist:   p,
		logger:    logger,
		now:       time.Now,
		taskLocks: make(map[string]*sync.Mutex),
	}
}

// lockFor returns the serialization lock for one task id.
func (c *Coordinator) lockFor(id string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()

	l, ok := c.taskLocks[id]
	if !ok {
		l = &sync.Mutex{}
		c.taskLocks[id] = l
	}
	return l
}

// Apply drives one status transition end to end. fromStatus is the status
// the caller observed when the action was taken; if the task has moved on
// since (a double-tap racing its predecessor, or a refetch landing in
// between), Apply fails with ErrStaleState and changes nothing.
//
// The flow is: re-validate fromStatus against the latest cached row, run
// the pure transition, persist remotely, then write the confirmed row and
// project exactly one notification. A remote failure leaves the cache at
// its pre-transition value; a cancelled context discards the result
// without touching local state.
func (c *Coordinator) Apply(
	ctx context.Context,
	actor model.User,
	taskID string,
	fromStatus model.Status,
	toStatus model.Status,
) (model.Task, error) {
	lock := c.lockFor(taskID)
	lock.Lock()
	defer lock.Unlock()

	latest, err := c.store.GetTaskByID(ctx, taskID)
	if err != nil {
		return model.Task{}, err
	}
	if latest.Status != fromStatus {
		c.logger.Debug("rejecting stale transition",
			zap.String("task_id", taskID),
			zap.String("expected", string(fromStatus)),
			zap.String("actual", string(latest.Status)),
		)
		return model.Task{}, ErrStaleState
	}

	now := c.now()
	updated, err := AttemptTransition(*latest, actor.Role, toStatus, now)
	if err != nil {
		return model.Task{}, err
	}

	persisted, err := c.persist.UpdateTaskStatus(ctx, taskID, toStatus)
	if ctx.Err() != nil {
		// The hosting view went away mid-flight; drop the result.
		return model.Task{}, ctx.Err()
	}
	if err != nil {
		c.logger.Warn("remote persist failed, keeping local state",
			zap.String("task_id", taskID),
			zap.Error(err),
		)
		return model.Task{}, &RemotePersistError{Err: err}
	}

	confirmed := reconcile(updated, persisted)
	if err := c.store.ReplaceTask(ctx, confirmed); err != nil {
		return model.Task{}, err
	}

	n := notify.Project(confirmed, fromStatus, toStatus, actor.Role, now)
	if err := c.store.UpsertNotifications(ctx, []model.Notification{n}); err != nil {
		// The transition is confirmed remotely; a cache write failure for
		// the notification must not report the transition as failed.
		c.logger.Warn("caching projected notification failed",
			zap.String("task_id", taskID),
			zap.Error(err),
		)
	}

	return confirmed, nil
}

// ApplyFetched overwrites cached rows with refetched tasks, holding each
// task's serialization lock so a refetch never interleaves with an
// in-flight transition on the same task. Last confirmed write wins.
func (c *Coordinator) ApplyFetched(ctx context.Context, tasks []model.Task) error {
	for _, t := range tasks {
		lock := c.lockFor(t.ID)
		lock.Lock()
		err := c.store.ReplaceTask(ctx, t)
		lock.Unlock()
		if err != nil {
			return err
		}
	}
	return nil
}

// reconcile merges the backend's confirmed record with the locally
// computed transition result. The backend row is authoritative where
// present, but the completed-iff-CompletedAt invariant is re-imposed
// since some backend versions omit completion timestamps.
func reconcile(local, remote model.Task) model.Task {
	confirmed := remote
	if confirmed.ID == "" {
		confirmed = local
	}
	if s, err := model.ParseStatus(string(confirmed.Status)); err == nil {
		confirmed.Status = s
	}

	if confirmed.Status == model.StatusCompleted {
		if confirmed.CompletedAt == nil {
			confirmed.CompletedAt = local.CompletedAt
		}
	} else {
		confirmed.CompletedAt = nil
	}
	if confirmed.UpdatedAt.IsZero() {
		confirmed.UpdatedAt = local.UpdatedAt
	}
	return confirmed
}
