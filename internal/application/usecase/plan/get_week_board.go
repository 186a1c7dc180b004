package plan

import (
	"context"

	"github.com/google/uuid"

	"github.com/mealsync/backend/internal/application/adapter"
	"github.com/mealsync/backend/internal/domain/mealplan"
)

// GetWeekBoardInput represents the input for rendering one week.
type GetWeekBoardInput struct {
	PlanID uuid.UUID
	Week   int
}

// GetWeekBoardOutput represents the rendered week.
type GetWeekBoardOutput struct {
	Board mealplan.WeekBoard
}

// GetWeekBoardUseCase renders the slots of a week with their costs.
type GetWeekBoardUseCase struct {
	planRepo   adapter.PlanRepository
	aggregator *mealplan.Aggregator
}

// NewGetWeekBoardUseCase creates a new GetWeekBoardUseCase instance.
func NewGetWeekBoardUseCase(planRepo adapter.PlanRepository, aggregator *mealplan.Aggregator) *GetWeekBoardUseCase {
	return &GetWeekBoardUseCase{
		planRepo:   planRepo,
		aggregator: aggregator,
	}
}

// Execute renders the requested week.
func (uc *GetWeekBoardUseCase) Execute(ctx context.Context, input GetWeekBoardInput) (*GetWeekBoardOutput, error) {
	if err := validateWeek(input.Week); err != nil {
		return nil, err
	}

	plan, err := loadPlan(ctx, uc.planRepo, input.PlanID)
	if err != nil {
		return nil, err
	}

	return &GetWeekBoardOutput{
		Board: uc.aggregator.Board(plan, input.Week),
	}, nil
}
