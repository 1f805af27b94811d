package model

import (
	"fmt"
	"strings"
)

// statusAliases maps every representation the backend has been observed
// to store onto the canonical enumeration: canonical values plus the
// legacy Vietnamese display labels that older rows used directly as state.
var statusAliases = map[string]Status{
	string(StatusPending):              StatusPending,
	string(StatusInProgress):           StatusInProgress,
	string(StatusAwaitingConfirmation): StatusAwaitingConfirmation,
	string(StatusCompleted):            StatusCompleted,
	string(StatusRejected):             StatusRejected,

	// Legacy display labels persisted by earlier clients.
	"chưa xử lý":              StatusPending,
	"đang thực hiện":          StatusInProgress,
	"chờ xác nhận hoàn thành": StatusAwaitingConfirmation,
	"đang chờ xác nhận":       StatusAwaitingConfirmation,
	"hoàn thành":              StatusCompleted,
	"từ chối":                 StatusRejected,
}

// ParseStatus normalizes a raw status string to the canonical enumeration.
// It accepts canonical values in any case and the legacy display labels.
func ParseStatus(raw string) (Status, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if s, ok := statusAliases[key]; ok {
		return s, nil
	}
	return "", fmt.Errorf("unrecognized task status %q", raw)
}

// NormalizeTask returns a copy of t with its status folded to the
// canonical enumeration. Tasks with an unrecognized status are returned
// unchanged along with the parse error so callers can decide whether to
// surface them.
func NormalizeTask(t Task) (Task, error) {
	s, err := ParseStatus(string(t.Status))
	if err != nil {
		return t, err
	}
	t.Status = s
	return t, nil
}
