package domain

import "time"

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
	RoleManager  = "manager"
)

// PrincipalKind tells which credential collection a principal came from.
type PrincipalKind string

const (
	KindAdministrator PrincipalKind = "administrator"
	KindEmployee      PrincipalKind = "employee"
)

// Principal is the authenticated identity attached to a single request.
// It is derived from a verified token and never persisted.
type Principal struct {
	Kind     PrincipalKind `json:"kind"`
	ID       string        `json:"id"`
	Role     string        `json:"role"`
	Email    string        `json:"email,omitempty"`
	Username string        `json:"username,omitempty"`
}

// IsAdmin reports whether the principal may perform administrator-only actions.
func (p Principal) IsAdmin() bool {
	return p.Kind == KindAdministrator && p.Role == RoleAdmin
}

func (p Principal) IsEmployee() bool {
	return p.Kind == KindEmployee
}

// Session is the result of verifying a token. Legacy is set when the token
// used the old bare-id shape instead of a nested principal payload.
type Session struct {
	Principal Principal
	TokenID   string
	ExpiresAt time.Time
	Legacy    bool
}
