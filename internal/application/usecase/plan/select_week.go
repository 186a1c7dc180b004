package plan

import (
	"context"

	"github.com/google/uuid"

	"github.com/mealsync/backend/internal/application/adapter"
	"github.com/mealsync/backend/internal/domain/entity"
	"github.com/mealsync/backend/internal/domain/mealplan"
)

// SelectWeekInput represents the input for focusing a week.
type SelectWeekInput struct {
	PlanID uuid.UUID
	Week   int
}

// SelectWeekOutput represents the output of focusing a week.
type SelectWeekOutput struct {
	Plan *entity.Plan
}

// SelectWeekUseCase changes the selected week of a plan.
type SelectWeekUseCase struct {
	planRepo   adapter.PlanRepository
	aggregator *mealplan.Aggregator
}

// NewSelectWeekUseCase creates a new SelectWeekUseCase instance.
func NewSelectWeekUseCase(planRepo adapter.PlanRepository, aggregator *mealplan.Aggregator) *SelectWeekUseCase {
	return &SelectWeekUseCase{
		planRepo:   planRepo,
		aggregator: aggregator,
	}
}

// Execute stores the new selected week.
func (uc *SelectWeekUseCase) Execute(ctx context.Context, input SelectWeekInput) (*SelectWeekOutput, error) {
	if err := validateWeek(input.Week); err != nil {
		return nil, err
	}

	plan, err := loadPlan(ctx, uc.planRepo, input.PlanID)
	if err != nil {
		return nil, err
	}

	uc.aggregator.SelectWeek(plan, input.Week)

	if err := savePlan(ctx, uc.planRepo, plan); err != nil {
		return nil, err
	}

	return &SelectWeekOutput{Plan: plan}, nil
}
