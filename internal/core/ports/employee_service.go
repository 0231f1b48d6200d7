package ports

import (
	"context"

	"github.com/hrdesk/feedback-api/internal/core/domain"
)

type AddEmployeeInput struct {
	Username string
	Email    string
	Role     string // optional, defaults to employee
}

// AddEmployeeResult is returned once after provisioning. TemporaryPassword
// is never stored or retrievable again.
type AddEmployeeResult struct {
	Employee           *domain.Employee
	TemporaryPassword  string
	NotificationQueued bool
}

// EmployeeService covers admin-side provisioning and employee self-service.
type EmployeeService interface {
	Add(ctx context.Context, principal domain.Principal, input AddEmployeeInput) (*AddEmployeeResult, error)
	List(ctx context.Context, principal domain.Principal) ([]*domain.Employee, error)
	Get(ctx context.Context, principal domain.Principal, id string) (*domain.Employee, error)
	Delete(ctx context.Context, principal domain.Principal, id string) error

	Me(ctx context.Context, principal domain.Principal) (*domain.Employee, error)
	UpdateProfile(ctx context.Context, principal domain.Principal, username, email string) (*domain.Employee, error)
	ChangePassword(ctx context.Context, principal domain.Principal, currentPassword, newPassword string) error
	CompanyDetails(ctx context.Context, principal domain.Principal) (*domain.Company, error)
	CompanyByName(ctx context.Context, name string) (*domain.Company, error)
}
