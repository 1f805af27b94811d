package workflow

import (
	"time"

	"github.com/minhvu/garage-tasks/internal/model"
)

// transitions is the single authoritative table of legal status moves per
// role. Employees drive their assignment forward or decline it; admins
// confirm or send back finished work. Terminal statuses have no entries,
// so every transition out of them is rejected.
var transitions = map[model.Role]map[model.Status][]model.Status{
	model.RoleEmployee: {
		model.StatusPending: {
			model.StatusInProgress,
			model.StatusRejected,
		},
		model.StatusInProgress: {
			model.StatusAwaitingConfirmation,
			model.StatusRejected,
		},
	},
	model.RoleAdmin: {
		model.StatusAwaitingConfirmation: {
			model.StatusCompleted,
			model.StatusRejected,
		},
	},
	model.RoleSuperAdmin: {
		model.StatusAwaitingConfirmation: {
			model.StatusCompleted,
			model.StatusRejected,
		},
	},
}

// CanTransition reports whether the transition table permits role to move
// a task from one status to another.
func CanTransition(role model.Role, from, to model.Status) bool {
	for _, allowed := range transitions[role][from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// LegalTransitions returns the statuses role may move a task in status from
// into. The returned slice is a copy.
func LegalTransitions(role model.Role, from model.Status) []model.Status {
	allowed := transitions[role][from]
	out := make([]model.Status, len(allowed))
	copy(out, allowed)
	return out
}

// AttemptTransition applies a status change to a copy of t, gated by the
// transition table. It is pure: t itself is never mutated, and the caller
// is responsible for persisting the returned task remotely before making
// the change visible anywhere.
//
// On success CompletedAt is set to now when the new status is completed
// and cleared for every other status, keeping the invariant that
// CompletedAt is non-nil iff the status is completed.
func AttemptTransition(t model.Task, role model.Role, to model.Status, now time.Time) (model.Task, error) {
	if !CanTransition(role, t.Status, to) {
		return t, &InvalidTransitionError{From: t.Status, To: to, Role: role}
	}

	updated := t
	updated.Status = to
	updated.UpdatedAt = now
	if to == model.StatusCompleted {
		completed := now
		updated.CompletedAt = &completed
	} else {
		updated.CompletedAt = nil
	}
	return updated, nil
}
