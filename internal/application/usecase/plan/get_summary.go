package plan

import (
	"context"

	"github.com/google/uuid"

	"github.com/mealsync/backend/internal/application/adapter"
	"github.com/mealsync/backend/internal/domain/mealplan"
)

// GetSummaryInput represents the input for computing plan totals.
// Week defaults to the plan's selected week when nil.
type GetSummaryInput struct {
	PlanID uuid.UUID
	Week   *int
}

// GetSummaryOutput represents the plan totals with budget deltas.
type GetSummaryOutput struct {
	Summary mealplan.Summary
}

// GetSummaryUseCase computes the four totals of a plan.
type GetSummaryUseCase struct {
	planRepo   adapter.PlanRepository
	aggregator *mealplan.Aggregator
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(planRepo adapter.PlanRepository, aggregator *mealplan.Aggregator) *GetSummaryUseCase {
	return &GetSummaryUseCase{
		planRepo:   planRepo,
		aggregator: aggregator,
	}
}

// Execute computes the summary.
func (uc *GetSummaryUseCase) Execute(ctx context.Context, input GetSummaryInput) (*GetSummaryOutput, error) {
	if input.Week != nil {
		if err := validateWeek(*input.Week); err != nil {
			return nil, err
		}
	}

	plan, err := loadPlan(ctx, uc.planRepo, input.PlanID)
	if err != nil {
		return nil, err
	}

	week := plan.SelectedWeek
	if input.Week != nil {
		week = *input.Week
	}

	return &GetSummaryOutput{
		Summary: uc.aggregator.Summary(plan, week),
	}, nil
}
