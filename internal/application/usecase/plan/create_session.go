package plan

import (
	"context"
	"fmt"

	"github.com/mealsync/backend/internal/application/adapter"
	"github.com/mealsync/backend/internal/domain/entity"
	domainerror "github.com/mealsync/backend/internal/domain/error"
	"github.com/mealsync/backend/internal/domain/mealplan"
)

// CreateSessionInput represents the input for starting a plan session.
type CreateSessionInput struct{}

// CreateSessionOutput represents the output of starting a plan session.
type CreateSessionOutput struct {
	Plan  *entity.Plan
	Token *adapter.SessionToken
}

// CreateSessionUseCase creates an empty plan and a session token for it.
type CreateSessionUseCase struct {
	planRepo     adapter.PlanRepository
	tokenService adapter.SessionTokenService
	aggregator   *mealplan.Aggregator
}

// NewCreateSessionUseCase creates a new CreateSessionUseCase instance.
func NewCreateSessionUseCase(
	planRepo adapter.PlanRepository,
	tokenService adapter.SessionTokenService,
	aggregator *mealplan.Aggregator,
) *CreateSessionUseCase {
	return &CreateSessionUseCase{
		planRepo:     planRepo,
		tokenService: tokenService,
		aggregator:   aggregator,
	}
}

// Execute creates the plan with the catalog's default budgets.
func (uc *CreateSessionUseCase) Execute(ctx context.Context, _ CreateSessionInput) (*CreateSessionOutput, error) {
	plan := entity.NewPlan(uc.aggregator.Catalog().DefaultBudgets)

	if err := uc.planRepo.Create(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}

	token, err := uc.tokenService.GenerateSessionToken(ctx, plan.ID)
	if err != nil {
		return nil, domainerror.NewSessionError(
			domainerror.ErrCodeSessionTokenGeneration,
			"failed to generate session token",
			err,
		)
	}

	return &CreateSessionOutput{
		Plan:  plan,
		Token: token,
	}, nil
}
