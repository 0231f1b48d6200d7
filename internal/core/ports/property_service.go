package ports

import (
	"context"

	"github.com/hrdesk/feedback-api/internal/core/domain"
)

type PropertyInput struct {
	Title       string
	Description string
	Type        string
	Status      string
	Address     domain.Address
	Price       float64
	Bedrooms    int
	Bathrooms   int
	AreaSqm     float64
	Images      []string
}

type ListPropertiesInput struct {
	Status string
	Type   string
	Search string
	Page   int
	Limit  int
}

type ListPropertiesResult struct {
	Items      []*domain.Property
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

type PropertyService interface {
	Create(ctx context.Context, principal domain.Principal, input PropertyInput) (*domain.Property, error)
	Get(ctx context.Context, principal domain.Principal, id string) (*domain.Property, error)
	List(ctx context.Context, principal domain.Principal, input ListPropertiesInput) (*ListPropertiesResult, error)
	Update(ctx context.Context, principal domain.Principal, id string, input PropertyInput) (*domain.Property, error)
	Delete(ctx context.Context, principal domain.Principal, id string) error
}

type BookmarkService interface {
	Add(ctx context.Context, principal domain.Principal, propertyID, note string) (*domain.Bookmark, error)
	List(ctx context.Context, principal domain.Principal) ([]*domain.Bookmark, error)
	Remove(ctx context.Context, principal domain.Principal, id string) error
}
