package workflow

import (
	"errors"
	"fmt"

	"github.com/minhvu/garage-tasks/internal/model"
)

// ErrStaleState indicates a transition was requested against a task status
// that is no longer current. The caller should refetch and retry.
var ErrStaleState = errors.New("task state is stale")

// InvalidTransitionError reports a role/status combination that the
// transition table does not permit. No state was changed.
type InvalidTransitionError struct {
	From model.Status
	To   model.Status
	Role model.Role
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition %s -> %s for role %s", e.From, e.To, e.Role)
}

// IsInvalidTransition reports whether err is an InvalidTransitionError.
func IsInvalidTransition(err error) bool {
	var ite *InvalidTransitionError
	return errors.As(err, &ite)
}

// RemotePersistError wraps a backend failure that occurred after a locally
// valid transition. Local state has been rolled back; the caller may retry.
type RemotePersistError struct {
	Err error
}

func (e *RemotePersistError) Error() string {
	return fmt.Sprintf("persisting transition remotely: %v", e.Err)
}

func (e *RemotePersistError) Unwrap() error { return e.Err }

// IsRemotePersist reports whether err (or any error in its chain) is a
// RemotePersistError.
func IsRemotePersist(err error) bool {
	var rpe *RemotePersistError
	return errors.As(err, &rpe)
}
