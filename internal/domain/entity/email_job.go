package entity

import (
	"time"

	"github.com/google/uuid"
)

// EmailStatus is the lifecycle state of a queued email.
type EmailStatus string

const (
	EmailStatusPending    EmailStatus = "pending"
	EmailStatusProcessing EmailStatus = "processing"
	EmailStatusSent       EmailStatus = "sent"
	EmailStatusFailed     EmailStatus = "failed"
)

// EmailTemplateType names an embedded email template.
type EmailTemplateType string

const (
	// TemplatePlanDigest is the weekly cost summary of a meal plan.
	TemplatePlanDigest EmailTemplateType = "plan_digest"
)

// DefaultEmailMaxAttempts is the number of sends tried before a job fails for good.
const DefaultEmailMaxAttempts = 3

// retryDelays indexed by attempts already made.
var retryDelays = []time.Duration{0, 1 * time.Minute, 5 * time.Minute}

// EmailJob is a queued email for one plan.
type EmailJob struct {
	ID             uuid.UUID
	PlanID         uuid.UUID
	TemplateType   EmailTemplateType
	RecipientEmail string
	Subject        string
	TemplateData   map[string]string
	Status         EmailStatus
	Attempts       int
	MaxAttempts    int
	LastError      string
	ProviderID     string
	CreatedAt      time.Time
	ScheduledAt    time.Time
	ProcessedAt    *time.Time
}

// NewEmailJob creates a pending job scheduled for immediate delivery.
func NewEmailJob(planID uuid.UUID, templateType EmailTemplateType, recipient, subject string, data map[string]string) *EmailJob {
	now := time.Now().UTC()
	return &EmailJob{
		ID:             uuid.New(),
		PlanID:         planID,
		TemplateType:   templateType,
		RecipientEmail: recipient,
		Subject:        subject,
		TemplateData:   data,
		Status:         EmailStatusPending,
		MaxAttempts:    DefaultEmailMaxAttempts,
		CreatedAt:      now,
		ScheduledAt:    now,
	}
}

// MarkProcessing flags the job as picked up by a worker.
func (e *EmailJob) MarkProcessing() {
	e.Status = EmailStatusProcessing
}

// MarkSent records a successful delivery.
func (e *EmailJob) MarkSent(providerID string) {
	now := time.Now().UTC()
	e.Status = EmailStatusSent
	e.ProviderID = providerID
	e.ProcessedAt = &now
}

// MarkFailed records a failed attempt. The job goes back to pending with a
// backoff unless the failure is permanent or attempts are exhausted.
func (e *EmailJob) MarkFailed(err error, permanent bool) {
	e.Attempts++
	e.LastError = err.Error()

	if permanent || !e.CanRetry() {
		now := time.Now().UTC()
		e.Status = EmailStatusFailed
		e.ProcessedAt = &now
		return
	}

	e.Status = EmailStatusPending
	e.ScheduledAt = time.Now().UTC().Add(e.nextDelay())
}

func (e *EmailJob) nextDelay() time.Duration {
	if e.Attempts < len(retryDelays) {
		return retryDelays[e.Attempts]
	}
	return retryDelays[len(retryDelays)-1]
}

// CanRetry reports whether attempts remain.
func (e *EmailJob) CanRetry() bool {
	return e.Attempts < e.MaxAttempts
}

// IsReadyToProcess reports whether the job is pending and due.
func (e *EmailJob) IsReadyToProcess(now time.Time) bool {
	return e.Status == EmailStatusPending && !now.Before(e.ScheduledAt)
}
