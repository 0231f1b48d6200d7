package ports

import (
	"context"

	"github.com/hrdesk/feedback-api/internal/core/domain"
)

type SubmitFeedbackInput struct {
	ReceiverEmail string
	Subject       string
	Description   string
}

// FeedbackService manages feedback threads. The sender is always derived
// from the principal, never from client input.
type FeedbackService interface {
	SubmitAsAdmin(ctx context.Context, principal domain.Principal, input SubmitFeedbackInput) (*domain.Feedback, error)
	SubmitAsEmployee(ctx context.Context, principal domain.Principal, input SubmitFeedbackInput) (*domain.Feedback, error)
	ListForAdmin(ctx context.Context, principal domain.Principal) ([]*domain.Feedback, error)
	ListForParticipant(ctx context.Context, principal domain.Principal, email string) ([]*domain.Feedback, error)
	Get(ctx context.Context, principal domain.Principal, id string) (*domain.Feedback, error)
	RespondAsAdmin(ctx context.Context, principal domain.Principal, id, response string) (*domain.Feedback, error)
	RespondAsEmployee(ctx context.Context, principal domain.Principal, id, response string) (*domain.Feedback, error)
	MarkReviewed(ctx context.Context, principal domain.Principal, id string) (*domain.Feedback, error)
}
