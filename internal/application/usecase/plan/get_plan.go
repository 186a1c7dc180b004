package plan

import (
	"context"

	"github.com/google/uuid"

	"github.com/mealsync/backend/internal/application/adapter"
	"github.com/mealsync/backend/internal/domain/entity"
)

// GetPlanInput represents the input for fetching a plan.
type GetPlanInput struct {
	PlanID uuid.UUID
}

// GetPlanOutput represents the output of fetching a plan.
type GetPlanOutput struct {
	Plan *entity.Plan
}

// GetPlanUseCase returns the full state of a plan.
type GetPlanUseCase struct {
	planRepo adapter.PlanRepository
}

// NewGetPlanUseCase creates a new GetPlanUseCase instance.
func NewGetPlanUseCase(planRepo adapter.PlanRepository) *GetPlanUseCase {
	return &GetPlanUseCase{
		planRepo: planRepo,
	}
}

// Execute loads the plan.
func (uc *GetPlanUseCase) Execute(ctx context.Context, input GetPlanInput) (*GetPlanOutput, error) {
	plan, err := loadPlan(ctx, uc.planRepo, input.PlanID)
	if err != nil {
		return nil, err
	}
	return &GetPlanOutput{Plan: plan}, nil
}
