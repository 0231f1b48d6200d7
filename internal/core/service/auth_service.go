package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hrdesk/feedback-api/internal/core/domain"
	"github.com/hrdesk/feedback-api/internal/core/ports"
)

// AuthService implements registration, login and logout.
type AuthService struct {
	admins      ports.AdminRepository
	employees   ports.EmployeeRepository
	hasher      ports.PasswordHasher
	tokens      ports.TokenIssuer
	revocations ports.RevocationStore
	log         zerolog.Logger
}

func NewAuthService(
	admins ports.AdminRepository,
	employees ports.EmployeeRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	revocations ports.RevocationStore,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		admins:      admins,
		employees:   employees,
		hasher:      hasher,
		tokens:      tokens,
		revocations: revocations,
		log:         log,
	}
}

func (s *AuthService) RegisterAdmin(ctx context.Context, in ports.RegisterAdminInput) (string, *domain.Admin, error) {
	email := normalizeEmail(in.Email)
	username := strings.TrimSpace(in.Username)
	company := strings.TrimSpace(in.CompanyName)
	if username == "" || email == "" || in.Password == "" || company == "" {
		return "", nil, domain.Invalid("Please provide username, email, password and company name")
	}

	if _, err := s.admins.FindByEmail(ctx, email); err == nil {
		return "", nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return "", nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return "", nil, err
	}

	admin, err := s.admins.Create(ctx, &domain.Admin{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CompanyName:  company,
		Role:         domain.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(admin.Principal())
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("admin_id", admin.ID).Str("company", admin.CompanyName).Msg("admin registered")
	return token, admin, nil
}

func (s *AuthService) LoginAdmin(ctx context.Context, email, password string) (string, *domain.Admin, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.Invalid("Please provide email and password")
	}

	admin, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, hideNotFound(err)
	}
	if !s.hasher.Compare(admin.PasswordHash, password) {
		return "", nil, domain.ErrBadCredentials
	}

	token, err := s.tokens.Issue(admin.Principal())
	if err != nil {
		return "", nil, err
	}
	return token, admin, nil
}

func (s *AuthService) LoginEmployee(ctx context.Context, email, password string) (string, *domain.Employee, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.Invalid("Please provide email and password")
	}

	employee, err := s.employees.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, hideNotFound(err)
	}
	if !s.hasher.Compare(employee.PasswordHash, password) {
		return "", nil, domain.ErrBadCredentials
	}

	token, err := s.tokens.Issue(employee.Principal())
	if err != nil {
		return "", nil, err
	}
	return token, employee, nil
}

func (s *AuthService) CurrentAdmin(ctx context.Context, p domain.Principal) (*domain.Admin, error) {
	if p.Kind != domain.KindAdministrator {
		return nil, domain.ErrAdminRoleRequired
	}
	return s.admins.FindByID(ctx, p.ID)
}

// Logout revokes the session's token until it would have expired anyway.
// Tokens without an id (legacy shape) cannot be revoked.
func (s *AuthService) Logout(ctx context.Context, session *domain.Session) error {
	if session == nil {
		return domain.ErrUnauthenticated
	}
	if session.TokenID == "" {
		return domain.Invalid("Token cannot be revoked")
	}
	if s.revocations == nil {
		return nil
	}
	if err := s.revocations.Revoke(ctx, session.TokenID, session.ExpiresAt); err != nil {
		return err
	}
	s.log.Info().Str("principal_id", session.Principal.ID).Str("kind", string(session.Principal.Kind)).Msg("session revoked")
	return nil
}

// hideNotFound maps a missing account to the same error as a wrong password.
func hideNotFound(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrBadCredentials
	}
	return err
}
