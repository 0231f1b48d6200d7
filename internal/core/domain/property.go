package domain

import "time"

type PropertyType string

const (
	PropertyApartment PropertyType = "apartment"
	PropertyHouse     PropertyType = "house"
	PropertyOffice    PropertyType = "office"
	PropertyLand      PropertyType = "land"
	PropertyOther     PropertyType = "other"
)

type PropertyStatus string

const (
	PropertyAvailable   PropertyStatus = "available"
	PropertyRented      PropertyStatus = "rented"
	PropertySold        PropertyStatus = "sold"
	PropertyMaintenance PropertyStatus = "maintenance"
)

// Property is a listing managed by an admin. Employees of the same admin
// can browse and bookmark it.
type Property struct {
	ID          string         `json:"_id"`
	AdminID     string         `json:"admin"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Type        PropertyType   `json:"type"`
	Status      PropertyStatus `json:"status"`
	Address     Address        `json:"address"`
	Price       float64        `json:"price"`
	Bedrooms    int            `json:"bedrooms,omitempty"`
	Bathrooms   int            `json:"bathrooms,omitempty"`
	AreaSqm     float64        `json:"areaSqm,omitempty"`
	Images      []string       `json:"images"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// Bookmark marks a property as saved by a principal.
type Bookmark struct {
	ID         string        `json:"_id"`
	OwnerKind  PrincipalKind `json:"ownerKind"`
	OwnerID    string        `json:"ownerId"`
	PropertyID string        `json:"propertyId"`
	Note       string        `json:"note,omitempty"`
	CreatedAt  time.Time     `json:"createdAt"`
}

// OwnedBy reports whether p created the bookmark.
func (b *Bookmark) OwnedBy(p Principal) bool {
	return b.OwnerKind == p.Kind && b.OwnerID == p.ID
}
