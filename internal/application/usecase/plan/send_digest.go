package plan

import (
	"context"

	"github.com/google/uuid"

	"github.com/mealsync/backend/internal/application/adapter"
	domainerror "github.com/mealsync/backend/internal/domain/error"
	"github.com/mealsync/backend/internal/domain/mealplan"
)

// SendDigestInput represents the input for queueing a digest now.
type SendDigestInput struct {
	PlanID uuid.UUID
}

// SendDigestOutput represents the queued digest.
type SendDigestOutput struct {
	Email string
	Week  int
}

// SendDigestUseCase queues the digest email of one plan.
type SendDigestUseCase struct {
	planRepo     adapter.PlanRepository
	aggregator   *mealplan.Aggregator
	emailService adapter.EmailService
}

// NewSendDigestUseCase creates a new SendDigestUseCase instance.
func NewSendDigestUseCase(
	planRepo adapter.PlanRepository,
	aggregator *mealplan.Aggregator,
	emailService adapter.EmailService,
) *SendDigestUseCase {
	return &SendDigestUseCase{
		planRepo:     planRepo,
		aggregator:   aggregator,
		emailService: emailService,
	}
}

// Execute queues the digest. The plan must have a digest address.
func (uc *SendDigestUseCase) Execute(ctx context.Context, input SendDigestInput) (*SendDigestOutput, error) {
	plan, err := loadPlan(ctx, uc.planRepo, input.PlanID)
	if err != nil {
		return nil, err
	}

	digest := buildDigestInput(uc.aggregator, plan)
	if digest.Email == "" {
		return nil, domainerror.NewPlanError(
			domainerror.ErrCodeDigestNotConfigured,
			"plan has no digest email",
			domainerror.ErrDigestNotConfigured,
		)
	}

	if err := uc.emailService.QueuePlanDigestEmail(ctx, digest); err != nil {
		return nil, err
	}

	return &SendDigestOutput{
		Email: digest.Email,
		Week:  digest.Week,
	}, nil
}
