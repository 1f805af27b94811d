package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhvu/garage-tasks/internal/model"
)

func TestRemainingDays(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		deadline time.Time
		want     int
	}{
		{"exactly one day", now.Add(24 * time.Hour), 1},
		{"just under one day rounds up", now.Add(23 * time.Hour), 1},
		{"just over one day rounds up to two", now.Add(25 * time.Hour), 2},
		{"one hour left counts as a day", now.Add(time.Hour), 1},
		{"same instant", now, 0},
		{"an hour overdue", now.Add(-time.Hour), 0},
		{"a day and a bit overdue", now.Add(-25 * time.Hour), -1},
		{"ten days out", now.Add(240 * time.Hour), 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, ok := RemainingDays(&tt.deadline, now)
			require.True(t, ok)
			assert.Equal(t, tt.want, days)
		})
	}
}

func TestRemainingDaysNilDeadline(t *testing.T) {
	days, ok := RemainingDays(nil, time.Now())
	assert.False(t, ok)
	assert.Zero(t, days)
}

func TestIsUrgent(t *testing.T) {
	assert.True(t, IsUrgent(1))
	assert.True(t, IsUrgent(0))
	assert.True(t, IsUrgent(-3))
	assert.False(t, IsUrgent(2))
}

func TestTaskUrgent(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	soon := now.Add(12 * time.Hour)
	far := now.Add(5 * 24 * time.Hour)

	assert.True(t, TaskUrgent(model.Task{Deadline: &soon}, now))
	assert.False(t, TaskUrgent(model.Task{Deadline: &far}, now))

	// No deadline carries no urgency signal, which is not the same as a
	// deadline of zero days.
	assert.False(t, TaskUrgent(model.Task{}, now))
}
