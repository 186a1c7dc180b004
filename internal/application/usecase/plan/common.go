// Package plan contains meal plan use cases.
package plan

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mealsync/backend/internal/application/adapter"
	"github.com/mealsync/backend/internal/domain/entity"
	domainerror "github.com/mealsync/backend/internal/domain/error"
	"github.com/mealsync/backend/internal/domain/mealplan"
	"github.com/mealsync/backend/internal/domain/valueobject"
)

// loadPlan fetches a plan, mapping a missing row to a PlanError.
func loadPlan(ctx context.Context, repo adapter.PlanRepository, id uuid.UUID) (*entity.Plan, error) {
	plan, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrPlanNotFound) {
			return nil, domainerror.NewPlanError(
				domainerror.ErrCodePlanNotFound,
				"plan not found",
				domainerror.ErrPlanNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find plan: %w", err)
	}
	return plan, nil
}

func savePlan(ctx context.Context, repo adapter.PlanRepository, plan *entity.Plan) error {
	if err := repo.Save(ctx, plan); err != nil {
		return fmt.Errorf("failed to save plan: %w", err)
	}
	return nil
}

func validateWeek(week int) error {
	if !entity.ValidWeek(week) {
		return domainerror.NewPlanError(
			domainerror.ErrCodeInvalidWeek,
			fmt.Sprintf("week must be between 1 and %d", entity.WeeksPerPlan),
			domainerror.ErrInvalidWeek,
		)
	}
	return nil
}

func validateDay(day int) error {
	if !entity.ValidDay(day) {
		return domainerror.NewPlanError(
			domainerror.ErrCodeInvalidDay,
			fmt.Sprintf("day must be between 0 and %d", entity.DaysPerWeek-1),
			domainerror.ErrInvalidDay,
		)
	}
	return nil
}

// ParseMealType converts raw input into a meal type or a PlanError.
func ParseMealType(raw string) (entity.MealType, error) {
	mt, ok := entity.ParseMealType(raw)
	if !ok {
		return "", domainerror.NewPlanError(
			domainerror.ErrCodeInvalidMealType,
			"meal type must be 'breakfast', 'lunch' or 'dinner'",
			domainerror.ErrInvalidMealType,
		)
	}
	return mt, nil
}

func parseBudgetKey(raw string) (entity.BudgetKey, error) {
	key, ok := entity.ParseBudgetKey(raw)
	if !ok {
		return "", domainerror.NewPlanError(
			domainerror.ErrCodeInvalidBudgetKey,
			"budget key must be 'weekly', 'sunday', 'weekdays' or 'grandTotal'",
			domainerror.ErrInvalidBudgetKey,
		)
	}
	return key, nil
}

// buildDigestInput formats the summary of the plan's selected week for email.
func buildDigestInput(agg *mealplan.Aggregator, plan *entity.Plan) adapter.QueuePlanDigestInput {
	summary := agg.Summary(plan, plan.SelectedWeek)

	lines := make([]adapter.DigestLine, 0, len(summary.Lines))
	for _, l := range summary.Lines {
		lines = append(lines, adapter.DigestLine{
			Label:  l.Label,
			Actual: valueobject.FormatAmount(l.Actual),
			Target: valueobject.FormatAmount(l.Target),
			Delta:  l.Delta.String(),
			Over:   l.Delta.OverBudget(),
		})
	}

	return adapter.QueuePlanDigestInput{
		PlanID: plan.ID,
		Email:  strings.TrimSpace(plan.DigestEmail),
		Week:   summary.Week,
		Lines:  lines,
	}
}
