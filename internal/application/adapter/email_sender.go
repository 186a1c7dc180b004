package adapter

import (
	"context"

	"github.com/google/uuid"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ProviderID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// DigestLine is one total of a plan digest, already formatted.
type DigestLine struct {
	Label  string
	Actual string
	Target string
	Delta  string
	Over   bool
}

// QueuePlanDigestInput represents the input for queueing a plan digest email.
type QueuePlanDigestInput struct {
	PlanID uuid.UUID
	Email  string
	Week   int
	Lines  []DigestLine
}

// EmailService defines the interface for queueing emails.
type EmailService interface {
	// QueuePlanDigestEmail queues the cost summary of a plan.
	QueuePlanDigestEmail(ctx context.Context, input QueuePlanDigestInput) error
}
