package plan

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/mealsync/backend/internal/application/adapter"
	"github.com/mealsync/backend/internal/domain/entity"
	domainerror "github.com/mealsync/backend/internal/domain/error"
	"github.com/mealsync/backend/internal/domain/mealplan"
)

// SetSelectionInput represents the input for changing one slot.
// Choice is "skip", "meal" or "custom". MealID is required for "meal".
// An empty Price with "custom" keeps the slot's remembered price.
type SetSelectionInput struct {
	PlanID   uuid.UUID
	Week     int
	Day      int
	MealType string
	Choice   string
	MealID   string
	Price    string
}

// SetSelectionOutput represents the changed slot and the new week total.
type SetSelectionOutput struct {
	Slot        mealplan.SlotView
	WeeklyTotal mealplan.SummaryLine
}

// SetSelectionUseCase overwrites the selection of a slot.
type SetSelectionUseCase struct {
	planRepo   adapter.PlanRepository
	aggregator *mealplan.Aggregator
}

// NewSetSelectionUseCase creates a new SetSelectionUseCase instance.
func NewSetSelectionUseCase(planRepo adapter.PlanRepository, aggregator *mealplan.Aggregator) *SetSelectionUseCase {
	return &SetSelectionUseCase{
		planRepo:   planRepo,
		aggregator: aggregator,
	}
}

// Execute validates the slot, applies the choice and saves the plan.
// Meal ids are not checked against the catalog; unknown ids cost nothing.
func (uc *SetSelectionUseCase) Execute(ctx context.Context, input SetSelectionInput) (*SetSelectionOutput, error) {
	if err := validateWeek(input.Week); err != nil {
		return nil, err
	}
	if err := validateDay(input.Day); err != nil {
		return nil, err
	}
	mealType, err := ParseMealType(input.MealType)
	if err != nil {
		return nil, err
	}
	if !mealplan.SlotAvailable(input.Week, input.Day, mealType) {
		return nil, domainerror.NewPlanError(
			domainerror.ErrCodeSlotUnavailable,
			"sunday has no breakfast slot",
			domainerror.ErrSlotUnavailable,
		)
	}

	choice, err := parseChoice(input)
	if err != nil {
		return nil, err
	}

	plan, err := loadPlan(ctx, uc.planRepo, input.PlanID)
	if err != nil {
		return nil, err
	}

	uc.aggregator.SetSelection(plan, input.Week, input.Day, mealType, choice)

	if err := savePlan(ctx, uc.planRepo, plan); err != nil {
		return nil, err
	}

	summary := uc.aggregator.Summary(plan, input.Week)
	weekly, _ := summary.Line(entity.BudgetWeekly)

	return &SetSelectionOutput{
		Slot:        uc.aggregator.Slot(plan, input.Week, input.Day, mealType),
		WeeklyTotal: weekly,
	}, nil
}

func parseChoice(input SetSelectionInput) (entity.Selection, error) {
	switch entity.SelectionKind(strings.ToLower(strings.TrimSpace(input.Choice))) {
	case entity.SelectionSkip:
		return entity.Skip(), nil
	case entity.SelectionCustom:
		return entity.Custom(strings.TrimSpace(input.Price)), nil
	case entity.SelectionMealRef:
		id := strings.TrimSpace(input.MealID)
		if id == "" {
			return entity.Selection{}, domainerror.NewPlanError(
				domainerror.ErrCodeMissingPlanFields,
				"meal_id is required when choice is 'meal'",
				domainerror.ErrInvalidChoice,
			)
		}
		return entity.MealRef(id), nil
	default:
		return entity.Selection{}, domainerror.NewPlanError(
			domainerror.ErrCodeInvalidChoice,
			"choice must be 'skip', 'meal' or 'custom'",
			domainerror.ErrInvalidChoice,
		)
	}
}
