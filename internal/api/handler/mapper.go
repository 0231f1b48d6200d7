package handler

import (
	"github.com/hrdesk/feedback-api/internal/core/domain"
	"github.com/hrdesk/feedback-api/internal/core/ports"
)

// --- Request → Service input ---

func toAddress(a addressRequest) domain.Address {
	return domain.Address{
		Street:  a.Street,
		City:    a.City,
		State:   a.State,
		ZipCode: a.ZipCode,
		Country: a.Country,
	}
}

func toCompanyInput(req companyRequest) ports.CompanyInput {
	return ports.CompanyInput{
		Name:        req.Name,
		Logo:        req.Logo,
		Description: req.Description,
		Industry:    req.Industry,
		Website:     req.Website,
		Contact: domain.Contact{
			Email: req.Contact.Email,
			Phone: req.Contact.Phone,
		},
		Address: toAddress(req.Address),
		SocialMedia: domain.SocialMedia{
			LinkedIn:  req.SocialMedia.LinkedIn,
			Twitter:   req.SocialMedia.Twitter,
			Facebook:  req.SocialMedia.Facebook,
			Instagram: req.SocialMedia.Instagram,
		},
		FoundedYear:   req.FoundedYear,
		EmployeeCount: req.EmployeeCount,
	}
}

func toPropertyInput(req propertyRequest) ports.PropertyInput {
	return ports.PropertyInput{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Status:      req.Status,
		Address:     toAddress(req.Address),
		Price:       req.Price,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		AreaSqm:     req.AreaSqm,
		Images:      req.Images,
	}
}

func toFeedbackInput(req submitFeedbackRequest) ports.SubmitFeedbackInput {
	return ports.SubmitFeedbackInput{
		ReceiverEmail: req.ReceiverEmail,
		Subject:       req.Subject,
		Description:   req.Description,
	}
}

// --- Service result → HTTP response ---

func toListPropertiesResponse(r *ports.ListPropertiesResult) listPropertiesResponse {
	return listPropertiesResponse{
		Properties: r.Items,
		Pagination: paginationResponse{
			Total:      r.Total,
			Page:       r.Page,
			Limit:      r.Limit,
			TotalPages: r.TotalPages,
		},
	}
}

func toSubmitFeedbackResponse(f *domain.Feedback) submitFeedbackResponse {
	return submitFeedbackResponse{
		Message: "Feedback submitted successfully",
		Feedback: feedbackSummary{
			ID:      f.ID,
			Subject: f.Subject,
			SentAt:  f.SentAt.UTC(),
		},
	}
}
