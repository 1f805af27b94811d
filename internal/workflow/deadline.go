package workflow

import (
	"math"
	"time"

	"github.com/minhvu/garage-tasks/internal/model"
)

// urgentThresholdDays is the remaining-days value at or below which a task
// counts as urgent. One covers "due today"; zero and below mean overdue.
const urgentThresholdDays = 1

// RemainingDays returns the number of whole days until deadline, rounded
// up. A deadline in the past yields a non-positive value. ok is false when
// deadline is nil, which is distinct from zero days remaining.
func RemainingDays(deadline *time.Time, now time.Time) (days int, ok bool) {
	if deadline == nil {
		return 0, false
	}
	hours := deadline.Sub(now).Hours()
	return int(math.Ceil(hours / 24)), true
}

// IsUrgent reports whether a remaining-days value is at or past the
// one-day threshold.
func IsUrgent(days int) bool {
	return days <= urgentThresholdDays
}

// TaskUrgent reports whether t has a deadline and that deadline is at or
// past the urgency threshold relative to now.
func TaskUrgent(t model.Task, now time.Time) bool {
	days, ok := RemainingDays(t.Deadline, now)
	return ok && IsUrgent(days)
}
