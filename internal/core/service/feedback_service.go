package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hrdesk/feedback-api/internal/core/domain"
	"github.com/hrdesk/feedback-api/internal/core/ports"
)

type FeedbackService struct {
	feedback      ports.FeedbackRepository
	admins        ports.AdminRepository
	employees     ports.EmployeeRepository
	notifications ports.NotificationQueue
	tenancy       tenancy
	log           zerolog.Logger
	now           func() time.Time
}

func NewFeedbackService(
	feedback ports.FeedbackRepository,
	admins ports.AdminRepository,
	employees ports.EmployeeRepository,
	notifications ports.NotificationQueue,
	log zerolog.Logger,
) *FeedbackService {
	return &FeedbackService{
		feedback:      feedback,
		admins:        admins,
		employees:     employees,
		notifications: notifications,
		tenancy:       tenancy{employees: employees},
		log:           log,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func validateSubmission(in ports.SubmitFeedbackInput) (ports.SubmitFeedbackInput, error) {
	in.ReceiverEmail = normalizeEmail(in.ReceiverEmail)
	in.Subject = strings.TrimSpace(in.Subject)
	in.Description = strings.TrimSpace(in.Description)
	if in.ReceiverEmail == "" || in.Subject == "" || in.Description == "" {
		return in, domain.Invalid("All fields are required")
	}
	return in, nil
}

func (s *FeedbackService) SubmitAsAdmin(ctx context.Context, p domain.Principal, in ports.SubmitFeedbackInput) (*domain.Feedback, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	in, err := validateSubmission(in)
	if err != nil {
		return nil, err
	}

	admin, err := s.admins.FindByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	return s.create(ctx, &domain.Feedback{
		SenderEmail:   admin.Email,
		ReceiverEmail: in.ReceiverEmail,
		Subject:       in.Subject,
		Description:   in.Description,
		CompanyName:   admin.CompanyName,
		AdminID:       admin.ID,
	}, admin.Username)
}

// SubmitAsEmployee files feedback from the calling employee. Sender and
// company come from the stored employee record.
func (s *FeedbackService) SubmitAsEmployee(ctx context.Context, p domain.Principal, in ports.SubmitFeedbackInput) (*domain.Feedback, error) {
	if err := requireEmployee(p); err != nil {
		return nil, err
	}
	in, err := validateSubmission(in)
	if err != nil {
		return nil, err
	}

	employee, err := s.employees.FindByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	var admin *domain.Admin
	if employee.AdminID != "" {
		admin, err = s.admins.FindByID(ctx, employee.AdminID)
	} else {
		admin, err = s.admins.FindByCompanyName(ctx, employee.CompanyName)
	}
	if err != nil {
		return nil, err
	}

	return s.create(ctx, &domain.Feedback{
		SenderEmail:   employee.Email,
		ReceiverEmail: in.ReceiverEmail,
		Subject:       in.Subject,
		Description:   in.Description,
		CompanyName:   employee.CompanyName,
		AdminID:       admin.ID,
	}, employee.Username)
}

func (s *FeedbackService) create(ctx context.Context, f *domain.Feedback, actor string) (*domain.Feedback, error) {
	f.Status = domain.FeedbackPending
	f.SentAt = s.now()

	created, err := s.feedback.Create(ctx, f)
	if err != nil {
		return nil, err
	}

	if !queueNotification(s.notifications, ports.Notification{
		Type:        ports.NotificationFeedbackSubmitted,
		Recipient:   created.ReceiverEmail,
		Subject:     created.Subject,
		CompanyName: created.CompanyName,
		Actor:       actor,
		ReferenceID: created.ID,
		OccurredAt:  created.SentAt,
	}) {
		s.log.Warn().Str("feedback_id", created.ID).Msg("feedback notification not queued")
	}

	s.log.Info().Str("feedback_id", created.ID).Str("admin_id", created.AdminID).Msg("feedback submitted")
	return created, nil
}

func (s *FeedbackService) ListForAdmin(ctx context.Context, p domain.Principal) ([]*domain.Feedback, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	return s.feedback.ListByAdmin(ctx, p.ID)
}

// ListForParticipant lists threads involving email. Employees may only list
// their own threads; admins may query any address within their own feedback.
func (s *FeedbackService) ListForParticipant(ctx context.Context, p domain.Principal, email string) ([]*domain.Feedback, error) {
	email = normalizeEmail(email)

	switch p.Kind {
	case domain.KindEmployee:
		own, err := s.tenancy.employeeEmail(ctx, p)
		if err != nil {
			return nil, err
		}
		if email == "" {
			email = own
		}
		if email != own {
			return nil, domain.Forbidden("Not authorized to view this feedback")
		}
		return s.feedback.ListByParticipant(ctx, email, "")
	case domain.KindAdministrator:
		if email == "" {
			return nil, domain.Invalid("Email is required")
		}
		return s.feedback.ListByParticipant(ctx, email, p.ID)
	default:
		return nil, domain.ErrMalformedPrincipal
	}
}

// Get returns a thread to its owning admin or to its sender or receiver.
func (s *FeedbackService) Get(ctx context.Context, p domain.Principal, id string) (*domain.Feedback, error) {
	f, err := s.feedback.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch p.Kind {
	case domain.KindAdministrator:
		if f.AdminID == p.ID {
			return f, nil
		}
	case domain.KindEmployee:
		email, err := s.tenancy.employeeEmail(ctx, p)
		if err != nil {
			return nil, err
		}
		if f.Involves(email) {
			return f, nil
		}
	}
	return nil, domain.Forbidden("Not authorized to view this feedback")
}

func (s *FeedbackService) RespondAsAdmin(ctx context.Context, p domain.Principal, id, response string) (*domain.Feedback, error) {
	response = strings.TrimSpace(response)
	if response == "" {
		return nil, domain.Invalid("Response is required")
	}

	f, err := s.feedback.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Kind != domain.KindAdministrator || f.AdminID != p.ID {
		return nil, domain.Forbidden("Not authorized to respond to this feedback")
	}

	actor := p.Username
	if actor == "" {
		actor = "Admin"
	}
	return s.respond(ctx, f, response, actor)
}

func (s *FeedbackService) RespondAsEmployee(ctx context.Context, p domain.Principal, id, response string) (*domain.Feedback, error) {
	if err := requireEmployee(p); err != nil {
		return nil, err
	}
	response = strings.TrimSpace(response)
	if response == "" {
		return nil, domain.Invalid("Response is required")
	}

	f, err := s.feedback.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	email, err := s.tenancy.employeeEmail(ctx, p)
	if err != nil {
		return nil, err
	}
	if f.ReceiverEmail != email {
		return nil, domain.Forbidden("Not authorized to respond to this feedback")
	}

	actor := p.Username
	if actor == "" {
		actor = "Employee"
	}
	return s.respond(ctx, f, response, actor)
}

func (s *FeedbackService) respond(ctx context.Context, f *domain.Feedback, response, actor string) (*domain.Feedback, error) {
	if err := transition(f, domain.FeedbackResponded); err != nil {
		return nil, err
	}

	at := s.now()
	f.Response = response
	f.RespondedAt = &at
	if err := s.feedback.Update(ctx, f); err != nil {
		return nil, err
	}

	if !queueNotification(s.notifications, ports.Notification{
		Type:        ports.NotificationFeedbackResponded,
		Recipient:   f.SenderEmail,
		Subject:     f.Subject,
		CompanyName: f.CompanyName,
		Actor:       actor,
		ReferenceID: f.ID,
		OccurredAt:  at,
	}) {
		s.log.Warn().Str("feedback_id", f.ID).Msg("response notification not queued")
	}
	return f, nil
}

func (s *FeedbackService) MarkReviewed(ctx context.Context, p domain.Principal, id string) (*domain.Feedback, error) {
	f, err := s.feedback.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Kind != domain.KindAdministrator || f.AdminID != p.ID {
		return nil, domain.Forbidden("Not authorized to update this feedback")
	}

	if err := transition(f, domain.FeedbackReviewed); err != nil {
		return nil, err
	}
	if err := s.feedback.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func transition(f *domain.Feedback, next domain.FeedbackStatus) error {
	if !f.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, f.Status, next)
	}
	f.Status = next
	return nil
}
