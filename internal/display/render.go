package display

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/minhvu/garage-tasks/internal/model"
	"github.com/minhvu/garage-tasks/internal/workflow"
)

var (
	urgentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	awaitingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Faint(true)
	unreadStyle   = lipgloss.NewStyle().Bold(true)
	titleStyle    = lipgloss.NewStyle().Bold(true)
)

// Renderer formats tasks, notifications and events as terminal lines.
type Renderer struct {
	labels *Labels
}

// NewRenderer creates a renderer for the given locale.
func NewRenderer(locale string) *Renderer {
	return &Renderer{labels: NewLabels(locale)}
}

// Labels exposes the underlying label mapper.
func (r *Renderer) Labels() *Labels {
	return r.labels
}

// TaskLine renders one task row: title, status label and deadline signal,
// styled by urgency and lifecycle position.
func (r *Renderer) TaskLine(t model.Task, now time.Time) string {
	days, hasDeadline := workflow.RemainingDays(t.Deadline, now)

	line := fmt.Sprintf("%s  [%s]", t.Title, r.labels.Status(t.Status))
	if deadline := r.labels.Deadline(days, hasDeadline); deadline != "" {
		line += "  (" + deadline + ")"
	}

	switch {
	case t.Status.Terminal():
		return doneStyle.Render(line)
	case t.Status == model.StatusAwaitingConfirmation:
		return awaitingStyle.Render(line)
	case hasDeadline && workflow.IsUrgent(days):
		return urgentStyle.Render(line)
	}
	return line
}

// NotificationLine renders one notification row, bolding unread entries.
func (r *Renderer) NotificationLine(n model.Notification) string {
	line := fmt.Sprintf("%s  [%s]", n.Message, r.labels.ReadState(n.Read))
	if !n.Read {
		return unreadStyle.Render(line)
	}
	return line
}

// EventLine renders one home-feed event.
func (r *Renderer) EventLine(e model.Event) string {
	return fmt.Sprintf("%s\n  %s", titleStyle.Render(e.Title), e.Description)
}
