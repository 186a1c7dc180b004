package plan

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/mealsync/backend/internal/application/adapter"
	"github.com/mealsync/backend/internal/domain/entity"
)

// UpdateDigestInput represents the input for the weekly digest subscription.
// An empty Email unsubscribes.
type UpdateDigestInput struct {
	PlanID uuid.UUID
	Email  string
}

// UpdateDigestOutput represents the plan after the change.
type UpdateDigestOutput struct {
	Plan *entity.Plan
}

// UpdateDigestUseCase sets or clears the digest address of a plan.
type UpdateDigestUseCase struct {
	planRepo adapter.PlanRepository
}

// NewUpdateDigestUseCase creates a new UpdateDigestUseCase instance.
func NewUpdateDigestUseCase(planRepo adapter.PlanRepository) *UpdateDigestUseCase {
	return &UpdateDigestUseCase{
		planRepo: planRepo,
	}
}

// Execute stores the address. The address format is validated at binding.
func (uc *UpdateDigestUseCase) Execute(ctx context.Context, input UpdateDigestInput) (*UpdateDigestOutput, error) {
	email := strings.TrimSpace(input.Email)

	plan, err := loadPlan(ctx, uc.planRepo, input.PlanID)
	if err != nil {
		return nil, err
	}

	plan.DigestEmail = email
	plan.Touch()

	if err := savePlan(ctx, uc.planRepo, plan); err != nil {
		return nil, err
	}

	return &UpdateDigestOutput{Plan: plan}, nil
}
