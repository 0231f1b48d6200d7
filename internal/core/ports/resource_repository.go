package ports

import (
	"context"

	"github.com/hrdesk/feedback-api/internal/core/domain"
)

// CompanyRepository persists one company profile per admin.
type CompanyRepository interface {
	FindByAdmin(ctx context.Context, adminID string) (*domain.Company, error)
	// FindByName matches the whole name case-insensitively.
	FindByName(ctx context.Context, name string) (*domain.Company, error)
	// Upsert creates or replaces the admin's company and reports whether it was created.
	Upsert(ctx context.Context, company *domain.Company) (*domain.Company, bool, error)
	ClearLogo(ctx context.Context, adminID string) (*domain.Company, error)
}

// FeedbackRepository persists feedback threads.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *domain.Feedback) (*domain.Feedback, error)
	FindByID(ctx context.Context, id string) (*domain.Feedback, error)
	// ListByAdmin returns the admin's feedback, newest first.
	ListByAdmin(ctx context.Context, adminID string) ([]*domain.Feedback, error)
	// ListByParticipant returns threads where email is sender or receiver,
	// newest first. A non-empty adminID restricts to that admin's threads.
	ListByParticipant(ctx context.Context, email, adminID string) ([]*domain.Feedback, error)
	// Update writes status, response and respondedAt.
	Update(ctx context.Context, feedback *domain.Feedback) error
}

// PropertyFilter carries the query parameters for listing properties.
// AdminID is always set by the service layer (tenancy).
type PropertyFilter struct {
	AdminID string
	Status  string // optional
	Type    string // optional
	Search  string // optional: partial match on title or city
	Page    int    // 1-based
	Limit   int
}

// PropertyRepository persists property listings.
type PropertyRepository interface {
	Create(ctx context.Context, property *domain.Property) (*domain.Property, error)
	FindByID(ctx context.Context, id string) (*domain.Property, error)
	List(ctx context.Context, filter PropertyFilter) ([]*domain.Property, int64, error)
	Update(ctx context.Context, property *domain.Property) error
	Delete(ctx context.Context, id string) error
}

// BookmarkRepository persists bookmarks; (owner, property) is unique.
type BookmarkRepository interface {
	Create(ctx context.Context, bookmark *domain.Bookmark) (*domain.Bookmark, error)
	FindByID(ctx context.Context, id string) (*domain.Bookmark, error)
	ListByOwner(ctx context.Context, kind domain.PrincipalKind, ownerID string) ([]*domain.Bookmark, error)
	Delete(ctx context.Context, id string) error
}
