// Package display is the presentation boundary: canonical statuses, roles
// and urgency signals are mapped to locale-specific labels here and only
// here. The engine never stores or compares these strings.
package display

import (
	"fmt"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/minhvu/garage-tasks/internal/model"
)

// newBundle builds the message bundle with the English defaults and the
// Vietnamese labels the workshop staff actually use. Messages are
// registered in code; a client app has no translation directory to ship.
func newBundle() *i18n.Bundle {
	bundle := i18n.NewBundle(language.English)

	mustAdd := func(tag language.Tag, messages ...*i18n.Message) {
		if err := bundle.AddMessages(tag, messages...); err != nil {
			panic(fmt.Sprintf("registering %s messages: %v", tag, err))
		}
	}

	mustAdd(language.English,
		&i18n.Message{ID: "status.pending", Other: "Pending"},
		&i18n.Message{ID: "status.in_progress", Other: "In progress"},
		&i18n.Message{ID: "status.awaiting_confirmation", Other: "Awaiting confirmation"},
		&i18n.Message{ID: "status.completed", Other: "Completed"},
		&i18n.Message{ID: "status.rejected", Other: "Rejected"},
		&i18n.Message{ID: "status.unknown", Other: "Unknown"},
		&i18n.Message{ID: "role.admin", Other: "Administrator"},
		&i18n.Message{ID: "role.super_admin", Other: "Super administrator"},
		&i18n.Message{ID: "role.employee", Other: "Employee"},
		&i18n.Message{ID: "deadline.overdue", Other: "Overdue"},
		&i18n.Message{
			ID:    "deadline.remaining",
			One:   "{{.Days}} day left",
			Other: "{{.Days}} days left",
		},
		&i18n.Message{ID: "notification.read", Other: "Read"},
		&i18n.Message{ID: "notification.unread", Other: "Unread"},
	)

	mustAdd(language.Vietnamese,
		&i18n.Message{ID: "status.pending", Other: "Chưa xử lý"},
		&i18n.Message{ID: "status.in_progress", Other: "Đang thực hiện"},
		&i18n.Message{ID: "status.awaiting_confirmation", Other: "Chờ xác nhận hoàn thành"},
		&i18n.Message{ID: "status.completed", Other: "Hoàn thành"},
		&i18n.Message{ID: "status.rejected", Other: "Từ chối"},
		&i18n.Message{ID: "status.unknown", Other: "Chưa xác định"},
		&i18n.Message{ID: "role.admin", Other: "Quản trị viên"},
		&i18n.Message{ID: "role.super_admin", Other: "Quản trị viên cấp cao"},
		&i18n.Message{ID: "role.employee", Other: "Nhân viên"},
		&i18n.Message{ID: "deadline.overdue", Other: "Quá hạn"},
		&i18n.Message{ID: "deadline.remaining", Other: "Còn {{.Days}} ngày"},
		&i18n.Message{ID: "notification.read", Other: "Đã đọc"},
		&i18n.Message{ID: "notification.unread", Other: "Chưa đọc"},
	)

	return bundle
}

// Labels localizes canonical workflow values for one configured locale.
type Labels struct {
	loc *i18n.Localizer
}

// NewLabels creates a label mapper for the given locale ("en", "vi", ...).
// Unsupported locales fall back to English.
func NewLabels(locale string) *Labels {
	return &Labels{loc: i18n.NewLocalizer(newBundle(), locale)}
}

func (l *Labels) localize(id string, data map[string]interface{}, plural interface{}) string {
	msg, err := l.loc.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
		PluralCount:  plural,
	})
	if err != nil {
		return id
	}
	return msg
}

// Status returns the display label for a canonical status.
func (l *Labels) Status(s model.Status) string {
	if !s.Valid() {
		return l.localize("status.unknown", nil, nil)
	}
	return l.localize("status."+string(s), nil, nil)
}

// Role returns the display label for a role.
func (l *Labels) Role(r model.Role) string {
	switch r {
	case model.RoleAdmin, model.RoleSuperAdmin, model.RoleEmployee:
		return l.localize("role."+string(r), nil, nil)
	}
	return string(r)
}

// Deadline renders the remaining-days signal: non-positive values are
// labeled overdue, positive values as a localized count. ok=false (no
// deadline) renders as an empty string, carrying no urgency signal at all.
func (l *Labels) Deadline(days int, ok bool) string {
	if !ok {
		return ""
	}
	if days <= 0 {
		return l.localize("deadline.overdue", nil, nil)
	}
	return l.localize("deadline.remaining", map[string]interface{}{"Days": days}, days)
}

// ReadState returns the display label for a notification's read flag.
func (l *Labels) ReadState(read bool) string {
	if read {
		return l.localize("notification.read", nil, nil)
	}
	return l.localize("notification.unread", nil, nil)
}
