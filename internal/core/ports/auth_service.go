package ports

import (
	"context"

	"github.com/hrdesk/feedback-api/internal/core/domain"
)

// RegisterAdminInput carries the fields needed to open an admin account.
type RegisterAdminInput struct {
	Username    string
	Email       string
	Password    string
	CompanyName string
}

// AuthService handles login, registration and logout for both principal kinds.
type AuthService interface {
	RegisterAdmin(ctx context.Context, input RegisterAdminInput) (string, *domain.Admin, error)
	LoginAdmin(ctx context.Context, email, password string) (string, *domain.Admin, error)
	LoginEmployee(ctx context.Context, email, password string) (string, *domain.Employee, error)
	CurrentAdmin(ctx context.Context, principal domain.Principal) (*domain.Admin, error)
	Logout(ctx context.Context, session *domain.Session) error
}
