package notify

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/minhvu/garage-tasks/internal/model"
)

// RecipientFor resolves who a transition notifies: whichever role did not
// cause it. Employee actions notify the admins; admin actions notify the
// task's assignee.
func RecipientFor(actor model.Role) model.Role {
	if actor.Admin() {
		return model.RoleEmployee
	}
	return model.RoleAdmin
}

// Project derives the single notification record describing a confirmed
// status transition. Callers must invoke this only after the transition
// has been persisted remotely, so at most one notification becomes
// visible per confirmed transition.
func Project(t model.Task, from, to model.Status, actor model.Role, now time.Time) model.Notification {
	return model.Notification{
		ID:        uuid.New().String(),
		TaskID:    t.ID,
		Recipient: RecipientFor(actor),
		Message:   transitionMessage(t.Title, from, to),
		CreatedAt: now,
	}
}

// transitionMessage builds the human-readable text for a status change.
// Messages are written against the canonical enumeration; localization of
// status labels happens at the presentation boundary, not here.
func transitionMessage(title string, from, to model.Status) string {
	switch to {
	case model.StatusInProgress:
		return fmt.Sprintf("Task %q was started", title)
	case model.StatusAwaitingConfirmation:
		return fmt.Sprintf("Task %q was submitted for confirmation", title)
	case model.StatusCompleted:
		return fmt.Sprintf("Task %q was confirmed as completed", title)
	case model.StatusRejected:
		if from == model.StatusAwaitingConfirmation {
			return fmt.Sprintf("Task %q was sent back", title)
		}
		return fmt.Sprintf("Task %q was declined", title)
	}
	return fmt.Sprintf("Task %q changed status from %s to %s", title, from, to)
}
