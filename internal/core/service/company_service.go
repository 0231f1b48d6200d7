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

type CompanyService struct {
	companies ports.CompanyRepository
	log       zerolog.Logger
}

func NewCompanyService(companies ports.CompanyRepository, log zerolog.Logger) *CompanyService {
	return &CompanyService{companies: companies, log: log}
}

func (s *CompanyService) Get(ctx context.Context, p domain.Principal) (*domain.Company, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	return s.companies.FindByAdmin(ctx, p.ID)
}

// Save merges non-empty input fields into the admin's company, creating it
// when none exists. A new company needs a name.
func (s *CompanyService) Save(ctx context.Context, p domain.Principal, in ports.CompanyInput) (*domain.Company, bool, error) {
	if err := requireAdmin(p); err != nil {
		return nil, false, err
	}

	now := time.Now().UTC()
	company, err := s.companies.FindByAdmin(ctx, p.ID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		if strings.TrimSpace(in.Name) == "" {
			return nil, false, domain.Invalid("Company name is required")
		}
		company = &domain.Company{AdminID: p.ID, CreatedAt: now}
	case err != nil:
		return nil, false, err
	}

	mergeCompany(company, in)
	company.UpdatedAt = now

	saved, created, err := s.companies.Upsert(ctx, company)
	if err != nil {
		return nil, false, err
	}
	s.log.Info().Str("admin_id", p.ID).Bool("created", created).Msg("company saved")
	return saved, created, nil
}

func (s *CompanyService) RemoveLogo(ctx context.Context, p domain.Principal) (*domain.Company, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	if _, err := s.companies.FindByAdmin(ctx, p.ID); err != nil {
		return nil, err
	}
	return s.companies.ClearLogo(ctx, p.ID)
}

func mergeCompany(c *domain.Company, in ports.CompanyInput) {
	set := func(dst *string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = v
		}
	}

	set(&c.Name, in.Name)
	set(&c.Logo, in.Logo)
	set(&c.Description, in.Description)
	set(&c.Industry, in.Industry)
	set(&c.Website, in.Website)
	set(&c.FoundedYear, in.FoundedYear)
	set(&c.EmployeeCount, in.EmployeeCount)

	set(&c.Contact.Email, in.Contact.Email)
	set(&c.Contact.Phone, in.Contact.Phone)

	set(&c.Address.Street, in.Address.Street)
	set(&c.Address.City, in.Address.City)
	set(&c.Address.State, in.Address.State)
	set(&c.Address.ZipCode, in.Address.ZipCode)
	set(&c.Address.Country, in.Address.Country)

	set(&c.SocialMedia.LinkedIn, in.SocialMedia.LinkedIn)
	set(&c.SocialMedia.Twitter, in.SocialMedia.Twitter)
	set(&c.SocialMedia.Facebook, in.SocialMedia.Facebook)
	set(&c.SocialMedia.Instagram, in.SocialMedia.Instagram)
}
