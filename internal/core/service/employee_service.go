package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hrdesk/feedback-api/internal/core/domain"
	"github.com/hrdesk/feedback-api/internal/core/ports"
	"github.com/hrdesk/feedback-api/internal/pkg/password"
)

const generatedPasswordLength = 16

type EmployeeService struct {
	employees     ports.EmployeeRepository
	admins        ports.AdminRepository
	companies     ports.CompanyRepository
	hasher        ports.PasswordHasher
	notifications ports.NotificationQueue
	log           zerolog.Logger

	generatePassword func() (string, error)
}

func NewEmployeeService(
	employees ports.EmployeeRepository,
	admins ports.AdminRepository,
	companies ports.CompanyRepository,
	hasher ports.PasswordHasher,
	notifications ports.NotificationQueue,
	log zerolog.Logger,
) *EmployeeService {
	return &EmployeeService{
		employees:     employees,
		admins:        admins,
		companies:     companies,
		hasher:        hasher,
		notifications: notifications,
		log:           log,
		generatePassword: func() (string, error) {
			return password.Generate(generatedPasswordLength)
		},
	}
}

// Add provisions an employee under the calling admin with a generated
// password. The role check runs first so a rejected caller causes no reads,
// writes or notifications.
func (s *EmployeeService) Add(ctx context.Context, p domain.Principal, in ports.AddEmployeeInput) (*ports.AddEmployeeResult, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}

	username := strings.TrimSpace(in.Username)
	email := normalizeEmail(in.Email)
	if username == "" || email == "" {
		return nil, domain.Invalid("Please provide username and email")
	}
	role := in.Role
	if role == "" {
		role = domain.RoleEmployee
	}
	if !domain.ValidEmployeeRole(role) {
		return nil, domain.Invalid("Role must be one of: employee, manager")
	}

	if _, err := s.employees.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmployeeExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	admin, err := s.admins.FindByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	plain, err := s.generatePassword()
	if err != nil {
		return nil, err
	}
	hash, err := s.hasher.Hash(plain)
	if err != nil {
		return nil, err
	}

	employee, err := s.employees.Create(ctx, &domain.Employee{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CompanyName:  admin.CompanyName,
		AdminID:      admin.ID,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.ErrEmployeeExists
		}
		return nil, err
	}

	queued := queueNotification(s.notifications, ports.Notification{
		Type:        ports.NotificationEmployeeProvisioned,
		Recipient:   employee.Email,
		CompanyName: admin.CompanyName,
		Actor:       admin.Username,
		ReferenceID: employee.ID,
		OccurredAt:  employee.CreatedAt,
	})

	s.log.Info().Str("employee_id", employee.ID).Str("admin_id", admin.ID).Msg("employee provisioned")
	return &ports.AddEmployeeResult{Employee: employee, TemporaryPassword: plain, NotificationQueued: queued}, nil
}

func (s *EmployeeService) List(ctx context.Context, p domain.Principal) ([]*domain.Employee, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	return s.employees.ListByAdmin(ctx, p.ID)
}

// Get returns an employee to the admin who owns it or to the employee itself.
func (s *EmployeeService) Get(ctx context.Context, p domain.Principal, id string) (*domain.Employee, error) {
	employee, err := s.employees.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch p.Kind {
	case domain.KindAdministrator:
		if employee.AdminID != p.ID {
			return nil, domain.Forbidden("Not authorized to access this employee")
		}
	case domain.KindEmployee:
		if employee.ID != p.ID {
			return nil, domain.Forbidden("Not authorized to access this employee")
		}
	default:
		return nil, domain.ErrMalformedPrincipal
	}
	return employee, nil
}

func (s *EmployeeService) Delete(ctx context.Context, p domain.Principal, id string) error {
	if err := requireAdmin(p); err != nil {
		return err
	}

	employee, err := s.employees.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if employee.AdminID != p.ID {
		return domain.Forbidden("Not authorized to delete this employee")
	}

	if err := s.employees.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("employee_id", id).Str("admin_id", p.ID).Msg("employee removed")
	return nil
}

func (s *EmployeeService) Me(ctx context.Context, p domain.Principal) (*domain.Employee, error) {
	if err := requireEmployee(p); err != nil {
		return nil, err
	}
	return s.employees.FindByID(ctx, p.ID)
}

func (s *EmployeeService) UpdateProfile(ctx context.Context, p domain.Principal, username, email string) (*domain.Employee, error) {
	if err := requireEmployee(p); err != nil {
		return nil, err
	}

	username = strings.TrimSpace(username)
	email = normalizeEmail(email)
	if username == "" || email == "" {
		return nil, domain.Invalid("Please provide username and email")
	}

	existing, err := s.employees.FindByEmail(ctx, email)
	switch {
	case err == nil && existing.ID != p.ID:
		return nil, domain.ErrEmailTaken
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	updated, err := s.employees.UpdateProfile(ctx, p.ID, username, email)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}
	return updated, nil
}

// ChangePassword replaces the employee's hash after checking the current
// password. Two concurrent changes race; the last write wins.
func (s *EmployeeService) ChangePassword(ctx context.Context, p domain.Principal, currentPassword, newPassword string) error {
	if err := requireEmployee(p); err != nil {
		return err
	}
	if currentPassword == "" || newPassword == "" {
		return domain.Invalid("Please provide current and new passwords")
	}

	employee, err := s.employees.FindByID(ctx, p.ID)
	if err != nil {
		return err
	}
	if !s.hasher.Compare(employee.PasswordHash, currentPassword) {
		return domain.ErrIncorrectPassword
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.employees.UpdatePassword(ctx, p.ID, hash); err != nil {
		return err
	}

	s.log.Info().Str("employee_id", p.ID).Msg("password changed")
	return nil
}

// CompanyDetails returns the company of the admin who provisioned the employee.
func (s *EmployeeService) CompanyDetails(ctx context.Context, p domain.Principal) (*domain.Company, error) {
	if err := requireEmployee(p); err != nil {
		return nil, err
	}

	employee, err := s.employees.FindByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if employee.AdminID == "" {
		return nil, domain.ErrCompanyNotFound
	}
	return s.companies.FindByAdmin(ctx, employee.AdminID)
}

func (s *EmployeeService) CompanyByName(ctx context.Context, name string) (*domain.Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Invalid("Company name is required")
	}
	return s.companies.FindByName(ctx, name)
}
