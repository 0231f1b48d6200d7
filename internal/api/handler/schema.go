package handler

import (
	"time"

	"github.com/hrdesk/feedback-api/internal/core/domain"
)

// errorResponse documents the error envelope rendered by the HTTP error handler.
type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type registerAdminRequest struct {
	Username    string `json:"username"    validate:"required"`
	Email       string `json:"email"       validate:"required,email"`
	Password    string `json:"password"    validate:"required,min=6,max=72"`
	CompanyName string `json:"companyName" validate:"required"`
}

// loginRequest carries no validate tags; missing fields are reported by the
// service with the message clients already expect.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type adminAuthResponse struct {
	Token string        `json:"token"`
	Admin *domain.Admin `json:"admin"`
}

type employeeAuthResponse struct {
	Token    string           `json:"token"`
	Employee *domain.Employee `json:"employee"`
}

// --- Employees ---

type addEmployeeRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Role     string `json:"role"     validate:"omitempty,oneof=employee manager"`
}

type addEmployeeResponse struct {
	Message            string           `json:"message"`
	Employee           *domain.Employee `json:"employee"`
	TemporaryPassword  string           `json:"temporaryPassword"`
	NotificationQueued bool             `json:"notificationQueued"`
}

type updateProfileRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword" validate:"omitempty,min=6,max=72"`
}

// --- Company ---

type contactRequest struct {
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone"`
}

type addressRequest struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

type socialMediaRequest struct {
	LinkedIn  string `json:"linkedin"  validate:"omitempty,url"`
	Twitter   string `json:"twitter"   validate:"omitempty,url"`
	Facebook  string `json:"facebook"  validate:"omitempty,url"`
	Instagram string `json:"instagram" validate:"omitempty,url"`
}

type companyRequest struct {
	Name          string             `json:"name"`
	Logo          string             `json:"logo"        validate:"omitempty,url"`
	Description   string             `json:"description"`
	Industry      string             `json:"industry"`
	Website       string             `json:"website"     validate:"omitempty,url"`
	Contact       contactRequest     `json:"contact"`
	Address       addressRequest     `json:"address"`
	SocialMedia   socialMediaRequest `json:"socialMedia"`
	FoundedYear   string             `json:"foundedYear"`
	EmployeeCount string             `json:"employeeCount"`
}

type companyResponse struct {
	Message string          `json:"message"`
	Company *domain.Company `json:"company"`
}

// --- Feedback ---

type submitFeedbackRequest struct {
	ReceiverEmail string `json:"receiverEmail" validate:"omitempty,email"`
	Subject       string `json:"subject"`
	Description   string `json:"description"`
}

type respondFeedbackRequest struct {
	Response string `json:"response"`
}

type feedbackSummary struct {
	ID      string    `json:"id"`
	Subject string    `json:"subject"`
	SentAt  time.Time `json:"sentAt"`
}

type submitFeedbackResponse struct {
	Message  string          `json:"message"`
	Feedback feedbackSummary `json:"feedback"`
}

type feedbackResponse struct {
	Message  string           `json:"message"`
	Feedback *domain.Feedback `json:"feedback"`
}

// feedbackDraft is the empty template served by GET /api/feedback/new.
type feedbackDraft struct {
	ID            string    `json:"_id"`
	Subject       string    `json:"subject"`
	Description   string    `json:"description"`
	SenderEmail   string    `json:"senderEmail"`
	ReceiverEmail string    `json:"receiverEmail"`
	Status        string    `json:"status"`
	Attachments   []string  `json:"attachments"`
	SentAt        time.Time `json:"sentAt"`
	IsNew         bool      `json:"isNew"`
}

// --- Properties ---

type propertyRequest struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Type        string         `json:"type"      validate:"omitempty,oneof=apartment house office land other"`
	Status      string         `json:"status"    validate:"omitempty,oneof=available rented sold maintenance"`
	Address     addressRequest `json:"address"`
	Price       float64        `json:"price"     validate:"gte=0"`
	Bedrooms    int            `json:"bedrooms"  validate:"gte=0"`
	Bathrooms   int            `json:"bathrooms" validate:"gte=0"`
	AreaSqm     float64        `json:"areaSqm"   validate:"gte=0"`
	Images      []string       `json:"images"    validate:"omitempty,max=20,dive,url"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

type listPropertiesResponse struct {
	Properties []*domain.Property `json:"properties"`
	Pagination paginationResponse `json:"pagination"`
}

// --- Bookmarks ---

type bookmarkRequest struct {
	PropertyID string `json:"propertyId" validate:"required"`
	Note       string `json:"note"       validate:"max=500"`
}
