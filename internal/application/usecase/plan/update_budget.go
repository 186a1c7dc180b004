package plan

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mealsync/backend/internal/application/adapter"
	"github.com/mealsync/backend/internal/domain/entity"
	domainerror "github.com/mealsync/backend/internal/domain/error"
	"github.com/mealsync/backend/internal/domain/mealplan"
	"github.com/mealsync/backend/internal/domain/valueobject"
)

// UpdateBudgetInput represents the input for setting a budget target.
// Amount is user text; text that is not a number selects the default.
type UpdateBudgetInput struct {
	PlanID uuid.UUID
	Key    string
	Amount string
}

// UpdateBudgetOutput represents the stored budget target.
type UpdateBudgetOutput struct {
	Key         entity.BudgetKey
	Amount      decimal.Decimal
	UsedDefault bool
}

// UpdateBudgetUseCase overwrites one budget target.
type UpdateBudgetUseCase struct {
	planRepo   adapter.PlanRepository
	aggregator *mealplan.Aggregator
}

// NewUpdateBudgetUseCase creates a new UpdateBudgetUseCase instance.
func NewUpdateBudgetUseCase(planRepo adapter.PlanRepository, aggregator *mealplan.Aggregator) *UpdateBudgetUseCase {
	return &UpdateBudgetUseCase{
		planRepo:   planRepo,
		aggregator: aggregator,
	}
}

// Execute parses and stores the budget.
func (uc *UpdateBudgetUseCase) Execute(ctx context.Context, input UpdateBudgetInput) (*UpdateBudgetOutput, error) {
	key, err := parseBudgetKey(input.Key)
	if err != nil {
		return nil, err
	}

	fallback := uc.aggregator.Catalog().DefaultBudgets.Get(key)
	amount, parsed, err := valueobject.ParseBudgetOrDefault(input.Amount, fallback)
	if err != nil {
		return nil, domainerror.NewPlanError(
			domainerror.ErrCodeInvalidBudgetAmount,
			"budget must be between 0 and "+valueobject.MaxAmount.StringFixed(2),
			domainerror.ErrInvalidBudgetAmount,
		)
	}

	plan, err := loadPlan(ctx, uc.planRepo, input.PlanID)
	if err != nil {
		return nil, err
	}

	uc.aggregator.SetBudget(plan, key, amount)

	if err := savePlan(ctx, uc.planRepo, plan); err != nil {
		return nil, err
	}

	return &UpdateBudgetOutput{
		Key:         key,
		Amount:      amount,
		UsedDefault: !parsed,
	}, nil
}
