package domain

import "time"

// Admin owns a company and provisions employees.
type Admin struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CompanyName  string    `json:"companyName"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Principal returns the identity embedded into this admin's tokens.
func (a *Admin) Principal() Principal {
	return Principal{Kind: KindAdministrator, ID: a.ID, Role: a.Role, Email: a.Email, Username: a.Username}
}

// Employee is provisioned by an admin and belongs to the admin's company.
type Employee struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CompanyName  string    `json:"companyName"`
	AdminID      string    `json:"admin,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (e *Employee) Principal() Principal {
	return Principal{Kind: KindEmployee, ID: e.ID, Role: e.Role, Email: e.Email, Username: e.Username}
}

// ValidEmployeeRole reports whether role may be assigned to an employee.
func ValidEmployeeRole(role string) bool {
	return role == RoleEmployee || role == RoleManager
}
