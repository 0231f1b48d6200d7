package ports

import (
	"context"
	"time"
)

const (
	NotificationEmployeeProvisioned = "employee.provisioned"
	NotificationFeedbackSubmitted   = "feedback.submitted"
	NotificationFeedbackResponded   = "feedback.responded"
)

// Notification is an out-of-band message about a completed operation.
// Delivery is best effort and never affects the operation's outcome.
type Notification struct {
	Type        string    `json:"type"`
	Recipient   string    `json:"recipient"`
	Subject     string    `json:"subject,omitempty"`
	CompanyName string    `json:"companyName,omitempty"`
	Actor       string    `json:"actor,omitempty"`
	ReferenceID string    `json:"referenceId,omitempty"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// Notifier delivers a single notification.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// NotificationQueue accepts notifications for asynchronous delivery.
// Enqueue reports false when the notification was dropped.
type NotificationQueue interface {
	Enqueue(n Notification) bool
}
