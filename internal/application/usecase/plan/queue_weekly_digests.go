package plan

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mealsync/backend/internal/application/adapter"
	"github.com/mealsync/backend/internal/domain/mealplan"
)

// QueueWeeklyDigestsOutput counts the digests queued in one run.
type QueueWeeklyDigestsOutput struct {
	Queued int
	Failed int
}

// QueueWeeklyDigestsUseCase queues a digest for every subscribed plan.
type QueueWeeklyDigestsUseCase struct {
	planRepo     adapter.PlanRepository
	aggregator   *mealplan.Aggregator
	emailService adapter.EmailService
}

// NewQueueWeeklyDigestsUseCase creates a new QueueWeeklyDigestsUseCase instance.
func NewQueueWeeklyDigestsUseCase(
	planRepo adapter.PlanRepository,
	aggregator *mealplan.Aggregator,
	emailService adapter.EmailService,
) *QueueWeeklyDigestsUseCase {
	return &QueueWeeklyDigestsUseCase{
		planRepo:     planRepo,
		aggregator:   aggregator,
		emailService: emailService,
	}
}

// Execute queues the digests. A failing plan is logged and skipped.
func (uc *QueueWeeklyDigestsUseCase) Execute(ctx context.Context) (*QueueWeeklyDigestsOutput, error) {
	plans, err := uc.planRepo.FindDigestSubscribers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list digest subscribers: %w", err)
	}

	output := &QueueWeeklyDigestsOutput{}
	for _, plan := range plans {
		if ctx.Err() != nil {
			return output, ctx.Err()
		}

		digest := buildDigestInput(uc.aggregator, plan)
		if digest.Email == "" {
			continue
		}

		if err := uc.emailService.QueuePlanDigestEmail(ctx, digest); err != nil {
			slog.Error("Failed to queue plan digest",
				"plan_id", plan.ID,
				"error", err,
			)
			output.Failed++
			continue
		}
		output.Queued++
	}

	return output, nil
}
