package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhvu/garage-tasks/internal/model"
)

func TestNormalizeRole(t *testing.T) {
	tests := []struct {
		raw  string
		want model.Role
	}{
		{"admin", model.RoleAdmin},
		{"ADMIN", model.RoleAdmin},
		{" Admin ", model.RoleAdmin},
		{"super_admin", model.RoleSuperAdmin},
		{"SUPER_ADMIN", model.RoleSuperAdmin},
		{"superadmin", model.RoleSuperAdmin},
		{"employee", model.RoleEmployee},
		{"EMPLOYEE", model.RoleEmployee},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := NormalizeRole(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeRoleUnknown(t *testing.T) {
	_, err := NormalizeRole("manager")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "manager")
}

func TestNewSessionNormalizes(t *testing.T) {
	sess, err := NewSession(model.User{ID: "u1", Role: "SUPER_ADMIN"}, "tok")
	require.NoError(t, err)
	assert.Equal(t, model.RoleSuperAdmin, sess.Role())
	assert.True(t, sess.Admin())
	assert.Equal(t, "tok", sess.Token)
}

func TestNewSessionRejectsUnknownRole(t *testing.T) {
	_, err := NewSession(model.User{ID: "u1", Role: "intern"}, "tok")
	require.Error(t, err)
}

func TestSessionAdmin(t *testing.T) {
	employee, err := NewSession(model.User{Role: "employee"}, "t")
	require.NoError(t, err)
	assert.False(t, employee.Admin())

	admin, err := NewSession(model.User{Role: "admin"}, "t")
	require.NoError(t, err)
	assert.True(t, admin.Admin())
}
