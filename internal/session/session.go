package session

import (
	"fmt"
	"strings"

	"github.com/minhvu/garage-tasks/internal/model"
)

// Session is the identity context for the current actor: who they are and
// what role gates their transitions. It is established at login and passed
// explicitly into the engine rather than read from storage inside business
// logic.
type Session struct {
	User  model.User
	Token string
}

// NormalizeRole folds the role spellings the backend has been observed to
// return ("admin", "ADMIN", "SUPER_ADMIN", "EMPLOYEE", ...) onto the
// canonical Role values. Roles are normalized once here, at the session
// boundary; everything downstream compares canonical values only.
func NormalizeRole(raw string) (model.Role, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "admin":
		return model.RoleAdmin, nil
	case "super_admin", "superadmin":
		return model.RoleSuperAdmin, nil
	case "employee":
		return model.RoleEmployee, nil
	}
	return "", fmt.Errorf("unrecognized role %q", raw)
}

// NewSession builds a session from a login response, normalizing the role.
func NewSession(user model.User, token string) (*Session, error) {
	role, err := NormalizeRole(string(user.Role))
	if err != nil {
		return nil, err
	}
	user.Role = role
	return &Session{User: user, Token: token}, nil
}

// Role returns the normalized role of the current actor.
func (s *Session) Role() model.Role {
	return s.User.Role
}

// Admin reports whether the current actor has administrative rights.
func (s *Session) Admin() bool {
	return s.User.Role.Admin()
}
