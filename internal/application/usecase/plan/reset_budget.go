package plan

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mealsync/backend/internal/application/adapter"
	"github.com/mealsync/backend/internal/domain/entity"
	"github.com/mealsync/backend/internal/domain/mealplan"
)

// ResetBudgetInput represents the input for restoring a budget default.
type ResetBudgetInput struct {
	PlanID uuid.UUID
	Key    string
}

// ResetBudgetOutput represents the restored budget target.
type ResetBudgetOutput struct {
	Key    entity.BudgetKey
	Amount decimal.Decimal
}

// ResetBudgetUseCase restores a budget target to the catalog default.
type ResetBudgetUseCase struct {
	planRepo   adapter.PlanRepository
	aggregator *mealplan.Aggregator
}

// NewResetBudgetUseCase creates a new ResetBudgetUseCase instance.
func NewResetBudgetUseCase(planRepo adapter.PlanRepository, aggregator *mealplan.Aggregator) *ResetBudgetUseCase {
	return &ResetBudgetUseCase{
		planRepo:   planRepo,
		aggregator: aggregator,
	}
}

// Execute restores the default.
func (uc *ResetBudgetUseCase) Execute(ctx context.Context, input ResetBudgetInput) (*ResetBudgetOutput, error) {
	key, err := parseBudgetKey(input.Key)
	if err != nil {
		return nil, err
	}

	plan, err := loadPlan(ctx, uc.planRepo, input.PlanID)
	if err != nil {
		return nil, err
	}

	uc.aggregator.ResetBudget(plan, key)

	if err := savePlan(ctx, uc.planRepo, plan); err != nil {
		return nil, err
	}

	return &ResetBudgetOutput{
		Key:    key,
		Amount: plan.Budgets.Get(key),
	}, nil
}
