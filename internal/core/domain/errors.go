package domain

import "errors"

// Error kinds. Every error surfaced to a client wraps exactly one of these;
// the HTTP layer maps the kind to a status code.
var (
	ErrUnauthenticated    = errors.New("no token, authorization denied")
	ErrInvalidToken       = errors.New("token is not valid")
	ErrMalformedPrincipal = errors.New("invalid token structure")
	ErrForbidden          = errors.New("access forbidden")
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidTransition  = errors.New("invalid status transition")
)

// KindError pairs an error kind with a message that is safe to show clients.
type KindError struct {
	Kind    error
	Message string
}

func (e *KindError) Error() string { return e.Message }

func (e *KindError) Unwrap() error { return e.Kind }

func newKindError(kind error, msg string) *KindError {
	return &KindError{Kind: kind, Message: msg}
}

// Forbidden returns an ErrForbidden-kind error with a specific message.
func Forbidden(msg string) error { return newKindError(ErrForbidden, msg) }

// Invalid returns an ErrValidation-kind error with a specific message.
func Invalid(msg string) error { return newKindError(ErrValidation, msg) }

var (
	ErrAdminNotFound    = newKindError(ErrNotFound, "Admin not found")
	ErrEmployeeNotFound = newKindError(ErrNotFound, "Employee not found")
	ErrCompanyNotFound  = newKindError(ErrNotFound, "Company information not found")
	ErrFeedbackNotFound = newKindError(ErrNotFound, "Feedback not found")
	ErrPropertyNotFound = newKindError(ErrNotFound, "Property not found")
	ErrBookmarkNotFound = newKindError(ErrNotFound, "Bookmark not found")

	ErrEmailTaken        = newKindError(ErrConflict, "Email is already registered")
	ErrEmployeeExists    = newKindError(ErrConflict, "Employee with this email already exists")
	ErrAlreadyBookmarked = newKindError(ErrConflict, "Property is already bookmarked")
	ErrBadCredentials    = newKindError(ErrInvalidCredentials, "Invalid credentials")
	ErrIncorrectPassword = newKindError(ErrValidation, "Current password is incorrect")
	ErrInvalidID         = newKindError(ErrValidation, "Invalid ID format")
	ErrTokenRevoked      = newKindError(ErrInvalidToken, "Token has been revoked")
	ErrAdminRoleRequired = newKindError(ErrForbidden, "Administrator role required")
	ErrEmployeeRequired  = newKindError(ErrForbidden, "Employee account required")
	ErrNotResourceOwner  = newKindError(ErrForbidden, "Not authorized to access this resource")
)
