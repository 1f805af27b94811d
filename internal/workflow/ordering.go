package workflow

import (
	"sort"

	"github.com/minhvu/garage-tasks/internal/model"
)

// SortByRecency orders tasks newest-first by creation time, in place.
// The sort is stable: tasks created in the same instant keep their
// relative input order, so repeated renders of the same list never
// flicker.
func SortByRecency(tasks []model.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
}

// SortAwaitingFirst pins tasks awaiting confirmation to the top and
// otherwise preserves the input order, in place. Used where admin
// attention is prioritized.
func SortAwaitingFirst(tasks []model.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Status == model.StatusAwaitingConfirmation &&
			tasks[j].Status != model.StatusAwaitingConfirmation
	})
}
