package domain

import "time"

type Contact struct {
	Email string `json:"email,omitempty" bson:"email,omitempty"`
	Phone string `json:"phone,omitempty" bson:"phone,omitempty"`
}

// Address is shared by companies and properties.
type Address struct {
	Street  string `json:"street,omitempty" bson:"street,omitempty"`
	City    string `json:"city,omitempty" bson:"city,omitempty"`
	State   string `json:"state,omitempty" bson:"state,omitempty"`
	ZipCode string `json:"zipCode,omitempty" bson:"zip,omitempty"`
	Country string `json:"country,omitempty" bson:"country,omitempty"`
}

type SocialMedia struct {
	LinkedIn  string `json:"linkedin,omitempty" bson:"linkedin,omitempty"`
	Twitter   string `json:"twitter,omitempty" bson:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty" bson:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty" bson:"instagram,omitempty"`
}

// Company holds the public profile of an admin's organisation. There is at
// most one company per admin.
type Company struct {
	ID            string      `json:"_id"`
	AdminID       string      `json:"admin"`
	Name          string      `json:"name"`
	Logo          string      `json:"logo,omitempty"`
	Description   string      `json:"description,omitempty"`
	Industry      string      `json:"industry,omitempty"`
	Website       string      `json:"website,omitempty"`
	Contact       Contact     `json:"contact"`
	Address       Address     `json:"address"`
	SocialMedia   SocialMedia `json:"socialMedia"`
	FoundedYear   string      `json:"foundedYear,omitempty"`
	EmployeeCount string      `json:"employeeCount,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}
