package ports

import (
	"context"

	"github.com/hrdesk/feedback-api/internal/core/domain"
)

// AdminRepository persists administrator credential records.
type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Admin) (*domain.Admin, error)
	FindByID(ctx context.Context, id string) (*domain.Admin, error)
	FindByEmail(ctx context.Context, email string) (*domain.Admin, error)
	FindByCompanyName(ctx context.Context, companyName string) (*domain.Admin, error)
}

// EmployeeRepository persists employee credential records.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *domain.Employee) (*domain.Employee, error)
	FindByID(ctx context.Context, id string) (*domain.Employee, error)
	FindByEmail(ctx context.Context, email string) (*domain.Employee, error)
	// ListByAdmin returns the employees provisioned by adminID.
	ListByAdmin(ctx context.Context, adminID string) ([]*domain.Employee, error)
	UpdateProfile(ctx context.Context, id, username, email string) (*domain.Employee, error)
	// UpdatePassword replaces the stored hash. Concurrent calls are last-write-wins.
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) error
}
