package catalog

import (
	"context"
	"fmt"

	"github.com/mealsync/backend/internal/application/usecase/plan"
	"github.com/mealsync/backend/internal/domain/entity"
	domainerror "github.com/mealsync/backend/internal/domain/error"
	"github.com/mealsync/backend/internal/domain/mealplan"
)

// ListOptionsInput represents the slot whose options are listed.
type ListOptionsInput struct {
	Week     int
	Day      int
	MealType string
}

// ListOptionsOutput represents the meal options of a slot, cheapest first.
type ListOptionsOutput struct {
	MealType entity.MealType
	Options  []entity.Meal
}

// ListOptionsUseCase lists the meals selectable in a slot.
type ListOptionsUseCase struct {
	aggregator *mealplan.Aggregator
}

// NewListOptionsUseCase creates a new ListOptionsUseCase instance.
func NewListOptionsUseCase(aggregator *mealplan.Aggregator) *ListOptionsUseCase {
	return &ListOptionsUseCase{
		aggregator: aggregator,
	}
}

// Execute lists the options. Sunday breakfast has none.
func (uc *ListOptionsUseCase) Execute(_ context.Context, input ListOptionsInput) (*ListOptionsOutput, error) {
	if !entity.ValidWeek(input.Week) {
		return nil, domainerror.NewPlanError(
			domainerror.ErrCodeInvalidWeek,
			fmt.Sprintf("week must be between 1 and %d", entity.WeeksPerPlan),
			domainerror.ErrInvalidWeek,
		)
	}
	if !entity.ValidDay(input.Day) {
		return nil, domainerror.NewPlanError(
			domainerror.ErrCodeInvalidDay,
			fmt.Sprintf("day must be between 0 and %d", entity.DaysPerWeek-1),
			domainerror.ErrInvalidDay,
		)
	}
	mealType, err := plan.ParseMealType(input.MealType)
	if err != nil {
		return nil, err
	}

	return &ListOptionsOutput{
		MealType: mealType,
		Options:  uc.aggregator.SortedOptions(mealType, input.Week, input.Day),
	}, nil
}
