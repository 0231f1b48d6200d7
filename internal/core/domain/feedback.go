package domain

import "time"

// FeedbackStatus represents the lifecycle state of a feedback thread.
type FeedbackStatus string

const (
	FeedbackPending   FeedbackStatus = "pending"
	FeedbackReviewed  FeedbackStatus = "reviewed"
	FeedbackResponded FeedbackStatus = "responded"
)

// validTransitions defines the allowed state machine transitions.
// A responded thread may be responded to again; the response is replaced.
var validTransitions = map[FeedbackStatus][]FeedbackStatus{
	FeedbackPending:   {FeedbackReviewed, FeedbackResponded},
	FeedbackReviewed:  {FeedbackResponded},
	FeedbackResponded: {FeedbackResponded},
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s FeedbackStatus) CanTransitionTo(next FeedbackStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Feedback is a message thread between an admin's company and an employee.
// AdminID is the owner reference used for authorization.
type Feedback struct {
	ID            string         `json:"_id"`
	SenderEmail   string         `json:"senderEmail"`
	ReceiverEmail string         `json:"receiverEmail"`
	Subject       string         `json:"subject"`
	Description   string         `json:"description"`
	CompanyName   string         `json:"companyName"`
	AdminID       string         `json:"admin"`
	Status        FeedbackStatus `json:"status"`
	Response      string         `json:"response,omitempty"`
	SentAt        time.Time      `json:"sentAt"`
	RespondedAt   *time.Time     `json:"respondedAt,omitempty"`
}

// Involves reports whether email is the sender or receiver of the thread.
func (f *Feedback) Involves(email string) bool {
	return email != "" && (f.SenderEmail == email || f.ReceiverEmail == email)
}
