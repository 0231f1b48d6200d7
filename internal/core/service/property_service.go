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

const (
	defaultPageSize = 20
	maxPageSize     = 100
	// maxPage keeps (page-1)*limit well inside int64 for the store's skip.
	maxPage = 1_000_000
)

type PropertyService struct {
	properties ports.PropertyRepository
	tenancy    tenancy
	log        zerolog.Logger
}

func NewPropertyService(properties ports.PropertyRepository, employees ports.EmployeeRepository, log zerolog.Logger) *PropertyService {
	return &PropertyService{
		properties: properties,
		tenancy:    tenancy{employees: employees},
		log:        log,
	}
}

func (s *PropertyService) Create(ctx context.Context, p domain.Principal, in ports.PropertyInput) (*domain.Property, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, domain.Invalid("Title is required")
	}

	prop := &domain.Property{
		AdminID: p.ID,
		Type:    domain.PropertyOther,
		Status:  domain.PropertyAvailable,
		Images:  []string{},
	}
	if err := applyProperty(prop, in); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	prop.CreatedAt, prop.UpdatedAt = now, now

	created, err := s.properties.Create(ctx, prop)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("property_id", created.ID).Str("admin_id", p.ID).Msg("property created")
	return created, nil
}

// Get returns a property visible to the principal: an admin's own listings
// or, for employees, the listings of the admin who provisioned them.
func (s *PropertyService) Get(ctx context.Context, p domain.Principal, id string) (*domain.Property, error) {
	prop, err := s.properties.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	adminID, err := s.tenancy.adminID(ctx, p)
	if err != nil {
		return nil, err
	}
	if prop.AdminID != adminID {
		return nil, domain.ErrNotResourceOwner
	}
	return prop, nil
}

func (s *PropertyService) List(ctx context.Context, p domain.Principal, in ports.ListPropertiesInput) (*ports.ListPropertiesResult, error) {
	adminID, err := s.tenancy.adminID(ctx, p)
	if err != nil {
		return nil, err
	}

	filter := ports.PropertyFilter{
		AdminID: adminID,
		Status:  strings.TrimSpace(in.Status),
		Type:    strings.TrimSpace(in.Type),
		Search:  strings.TrimSpace(in.Search),
		Page:    in.Page,
		Limit:   in.Limit,
	}
	if filter.Status != "" && !validPropertyStatus(domain.PropertyStatus(filter.Status)) {
		return nil, domain.Invalid("Invalid property status")
	}
	if filter.Type != "" && !validPropertyType(domain.PropertyType(filter.Type)) {
		return nil, domain.Invalid("Invalid property type")
	}
	switch {
	case filter.Page < 1:
		filter.Page = 1
	case filter.Page > maxPage:
		return nil, domain.Invalid("page is too large")
	}
	switch {
	case filter.Limit < 1:
		filter.Limit = defaultPageSize
	case filter.Limit > maxPageSize:
		filter.Limit = maxPageSize
	}

	items, total, err := s.properties.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*domain.Property{}
	}

	return &ports.ListPropertiesResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int((total + int64(filter.Limit) - 1) / int64(filter.Limit)),
	}, nil
}

func (s *PropertyService) Update(ctx context.Context, p domain.Principal, id string, in ports.PropertyInput) (*domain.Property, error) {
	prop, err := s.ownedProperty(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if err := applyProperty(prop, in); err != nil {
		return nil, err
	}
	prop.UpdatedAt = time.Now().UTC()

	if err := s.properties.Update(ctx, prop); err != nil {
		return nil, err
	}
	return prop, nil
}

func (s *PropertyService) Delete(ctx context.Context, p domain.Principal, id string) error {
	if _, err := s.ownedProperty(ctx, p, id); err != nil {
		return err
	}
	if err := s.properties.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("property_id", id).Str("admin_id", p.ID).Msg("property deleted")
	return nil
}

// ownedProperty applies the role gate, then existence, then ownership.
func (s *PropertyService) ownedProperty(ctx context.Context, p domain.Principal, id string) (*domain.Property, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	prop, err := s.properties.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if prop.AdminID != p.ID {
		return nil, domain.ErrNotResourceOwner
	}
	return prop, nil
}

// applyProperty copies non-zero input fields onto prop.
func applyProperty(prop *domain.Property, in ports.PropertyInput) error {
	if t := strings.TrimSpace(in.Type); t != "" {
		if !validPropertyType(domain.PropertyType(t)) {
			return domain.Invalid("Invalid property type")
		}
		prop.Type = domain.PropertyType(t)
	}
	if st := strings.TrimSpace(in.Status); st != "" {
		if !validPropertyStatus(domain.PropertyStatus(st)) {
			return domain.Invalid("Invalid property status")
		}
		prop.Status = domain.PropertyStatus(st)
	}
	if in.Price < 0 || in.Bedrooms < 0 || in.Bathrooms < 0 || in.AreaSqm < 0 {
		return domain.Invalid("Numeric fields must not be negative")
	}

	if v := strings.TrimSpace(in.Title); v != "" {
		prop.Title = v
	}
	if v := strings.TrimSpace(in.Description); v != "" {
		prop.Description = v
	}
	if in.Address != (domain.Address{}) {
		prop.Address = in.Address
	}
	if in.Price > 0 {
		prop.Price = in.Price
	}
	if in.Bedrooms > 0 {
		prop.Bedrooms = in.Bedrooms
	}
	if in.Bathrooms > 0 {
		prop.Bathrooms = in.Bathrooms
	}
	if in.AreaSqm > 0 {
		prop.AreaSqm = in.AreaSqm
	}
	if in.Images != nil {
		prop.Images = in.Images
	}
	return nil
}

func validPropertyType(t domain.PropertyType) bool {
	switch t {
	case domain.PropertyApartment, domain.PropertyHouse, domain.PropertyOffice, domain.PropertyLand, domain.PropertyOther:
		return true
	}
	return false
}

func validPropertyStatus(s domain.PropertyStatus) bool {
	switch s {
	case domain.PropertyAvailable, domain.PropertyRented, domain.PropertySold, domain.PropertyMaintenance:
		return true
	}
	return false
}

type BookmarkService struct {
	bookmarks  ports.BookmarkRepository
	properties *PropertyService
	log        zerolog.Logger
}

func NewBookmarkService(bookmarks ports.BookmarkRepository, properties *PropertyService, log zerolog.Logger) *BookmarkService {
	return &BookmarkService{bookmarks: bookmarks, properties: properties, log: log}
}

func (s *BookmarkService) Add(ctx context.Context, p domain.Principal, propertyID, note string) (*domain.Bookmark, error) {
	propertyID = strings.TrimSpace(propertyID)
	if propertyID == "" {
		return nil, domain.Invalid("Property ID is required")
	}
	if _, err := s.properties.Get(ctx, p, propertyID); err != nil {
		return nil, err
	}

	b, err := s.bookmarks.Create(ctx, &domain.Bookmark{
		OwnerKind:  p.Kind,
		OwnerID:    p.ID,
		PropertyID: propertyID,
		Note:       strings.TrimSpace(note),
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.ErrAlreadyBookmarked
		}
		return nil, err
	}
	return b, nil
}

func (s *BookmarkService) List(ctx context.Context, p domain.Principal) ([]*domain.Bookmark, error) {
	return s.bookmarks.ListByOwner(ctx, p.Kind, p.ID)
}

func (s *BookmarkService) Remove(ctx context.Context, p domain.Principal, id string) error {
	b, err := s.bookmarks.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !b.OwnedBy(p) {
		return domain.ErrNotResourceOwner
	}
	return s.bookmarks.Delete(ctx, id)
}
