// Package email provides email sending functionality.
package email

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mealsync/backend/internal/application/adapter"
	"github.com/mealsync/backend/internal/domain/entity"
	domainerror "github.com/mealsync/backend/internal/domain/error"
)

// Service handles email queueing operations.
type Service struct {
	queue      adapter.EmailQueueRepository
	appBaseURL string
}

// NewService creates a new email service.
func NewService(queue adapter.EmailQueueRepository, appBaseURL string) *Service {
	return &Service{
		queue:      queue,
		appBaseURL: appBaseURL,
	}
}

// QueuePlanDigestEmail queues the cost summary of a plan.
func (s *Service) QueuePlanDigestEmail(ctx context.Context, input adapter.QueuePlanDigestInput) error {
	subject := fmt.Sprintf("Your MealSync plan - week %d summary", input.Week)

	job := entity.NewEmailJob(
		input.PlanID,
		entity.TemplatePlanDigest,
		input.Email,
		subject,
		encodeDigestData(input, s.appBaseURL),
	)

	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue plan digest email",
			err,
		)
	}

	return nil
}

// encodeDigestData flattens the digest into the string map stored with the job.
func encodeDigestData(input adapter.QueuePlanDigestInput, appBaseURL string) map[string]string {
	data := map[string]string{
		"plan_id":    input.PlanID.String(),
		"week":       strconv.Itoa(input.Week),
		"plan_url":   appBaseURL,
		"line_count": strconv.Itoa(len(input.Lines)),
	}
	for i, line := range input.Lines {
		prefix := fmt.Sprintf("line_%d_", i)
		data[prefix+"label"] = line.Label
		data[prefix+"actual"] = line.Actual
		data[prefix+"target"] = line.Target
		data[prefix+"delta"] = line.Delta
		data[prefix+"over"] = strconv.FormatBool(line.Over)
	}
	return data
}

var _ adapter.EmailService = (*Service)(nil)
