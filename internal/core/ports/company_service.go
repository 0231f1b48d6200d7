package ports

import (
	"context"

	"github.com/hrdesk/feedback-api/internal/core/domain"
)

// CompanyInput carries the editable company fields. Empty strings leave the
// stored value untouched on update.
type CompanyInput struct {
	Name          string
	Logo          string
	Description   string
	Industry      string
	Website       string
	Contact       domain.Contact
	Address       domain.Address
	SocialMedia   domain.SocialMedia
	FoundedYear   string
	EmployeeCount string
}

type CompanyService interface {
	Get(ctx context.Context, principal domain.Principal) (*domain.Company, error)
	// Save creates the company on first call and updates it afterwards.
	Save(ctx context.Context, principal domain.Principal, input CompanyInput) (*domain.Company, bool, error)
	RemoveLogo(ctx context.Context, principal domain.Principal) (*domain.Company, error)
}
