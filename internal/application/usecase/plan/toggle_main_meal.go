package plan

import (
	"context"

	"github.com/google/uuid"

	"github.com/mealsync/backend/internal/application/adapter"
	"github.com/mealsync/backend/internal/domain/entity"
	domainerror "github.com/mealsync/backend/internal/domain/error"
	"github.com/mealsync/backend/internal/domain/mealplan"
)

// ToggleMainMealInput represents the input for flipping a day's main meal.
type ToggleMainMealInput struct {
	PlanID uuid.UUID
	Week   int
	Day    int
}

// ToggleMainMealOutput represents the day after the flip.
type ToggleMainMealOutput struct {
	Day mealplan.DayView
}

// ToggleMainMealUseCase switches a weekday between breakfast and lunch.
type ToggleMainMealUseCase struct {
	planRepo   adapter.PlanRepository
	aggregator *mealplan.Aggregator
}

// NewToggleMainMealUseCase creates a new ToggleMainMealUseCase instance.
func NewToggleMainMealUseCase(planRepo adapter.PlanRepository, aggregator *mealplan.Aggregator) *ToggleMainMealUseCase {
	return &ToggleMainMealUseCase{
		planRepo:   planRepo,
		aggregator: aggregator,
	}
}

// Execute flips the main meal. Sunday is rejected.
func (uc *ToggleMainMealUseCase) Execute(ctx context.Context, input ToggleMainMealInput) (*ToggleMainMealOutput, error) {
	if err := validateWeek(input.Week); err != nil {
		return nil, err
	}
	if err := validateDay(input.Day); err != nil {
		return nil, err
	}
	if input.Day == entity.Sunday {
		return nil, domainerror.NewPlanError(
			domainerror.ErrCodeMainMealFixed,
			"sunday main meal is always lunch",
			domainerror.ErrMainMealFixed,
		)
	}

	plan, err := loadPlan(ctx, uc.planRepo, input.PlanID)
	if err != nil {
		return nil, err
	}

	uc.aggregator.ToggleMainMeal(plan, input.Week, input.Day)

	if err := savePlan(ctx, uc.planRepo, plan); err != nil {
		return nil, err
	}

	board := uc.aggregator.Board(plan, input.Week)
	return &ToggleMainMealOutput{Day: board.Days[input.Day]}, nil
}
