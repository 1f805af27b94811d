package model

// Role identifies what a user is allowed to do with a task.
// Roles are normalized to these values at the session boundary and are
// immutable for the lifetime of a session.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
	RoleEmployee   Role = "employee"
)

// Admin reports whether r carries administrative rights.
func (r Role) Admin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// User is an account known to the backend.
type User struct {
	// ID is the unique identifier for this user.
	ID string `json:"id"`

	// FirstName and LastName are the user's name parts as stored by
	// the backend.
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	// Email is the login identifier.
	Email string `json:"email"`

	// Role is the normalized role (use Role* constants).
	Role Role `json:"role"`
}

// DisplayName returns the user's full name for presentation.
func (u User) DisplayName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
