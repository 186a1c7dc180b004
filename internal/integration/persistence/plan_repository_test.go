package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mealsync/backend/internal/domain/entity"
	domainerror "github.com/mealsync/backend/internal/domain/error"
	"github.com/mealsync/backend/internal/integration/persistence/model"
)

func budgets() entity.BudgetTargets {
	return entity.BudgetTargets{
		entity.BudgetWeekly:     decimal.NewFromInt(840),
		entity.BudgetSunday:     decimal.NewFromInt(2140),
		entity.BudgetWeekdays:   decimal.NewFromInt(3360),
		entity.BudgetGrandTotal: decimal.NewFromInt(5500),
	}
}

func TestPlanRepository_CreateFindSave(t *testing.T) {
	ctx := context.Background()
	repo := NewPlanRepository(newTestDB(t))

	plan := entity.NewPlan(budgets())
	if err := repo.Create(ctx, plan); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err := repo.FindByID(ctx, plan.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.SelectedWeek != 1 || len(found.Selections) != 0 {
		t.Errorf("unexpected plan %+v", found)
	}
	if got := found.Budgets.Get(entity.BudgetGrandTotal); !got.Equal(decimal.NewFromInt(5500)) {
		t.Errorf("expected grand total budget 5500, got %s", got)
	}

	found.SelectedWeek = 2
	found.Selections[entity.SlotKey{Week: 2, Day: 6, MealType: entity.MealTypeLunch}] = entity.Custom("150.5")
	found.MainChoices[entity.DayKey{Week: 2, Day: 1}] = entity.MealTypeLunch
	found.Budgets[entity.BudgetWeekly] = decimal.RequireFromString("799.99")
	found.DigestEmail = "cook@example.com"
	if err := repo.Save(ctx, found); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reloaded, err := repo.FindByID(ctx, plan.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reloaded.SelectedWeek != 2 {
		t.Errorf("expected week 2, got %d", reloaded.SelectedWeek)
	}
	if got := reloaded.Selection(entity.SlotKey{Week: 2, Day: 6, MealType: entity.MealTypeLunch}); got != entity.Custom("150.5") {
		t.Errorf("expected custom 150.5, got %+v", got)
	}
	if got := reloaded.MainChoices[entity.DayKey{Week: 2, Day: 1}]; got != entity.MealTypeLunch {
		t.Errorf("expected lunch main meal, got %s", got)
	}
	if got := reloaded.Budgets.Get(entity.BudgetWeekly); !got.Equal(decimal.RequireFromString("799.99")) {
		t.Errorf("expected weekly 799.99, got %s", got)
	}
	if reloaded.DigestEmail != "cook@example.com" {
		t.Errorf("expected digest email, got %q", reloaded.DigestEmail)
	}
}

func TestPlanRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewPlanRepository(newTestDB(t))

	if _, err := repo.FindByID(ctx, uuid.New()); !errors.Is(err, domainerror.ErrPlanNotFound) {
		t.Errorf("expected ErrPlanNotFound, got %v", err)
	}
	if err := repo.Save(ctx, entity.NewPlan(budgets())); !errors.Is(err, domainerror.ErrPlanNotFound) {
		t.Errorf("expected ErrPlanNotFound on save, got %v", err)
	}
}

func TestPlanRepository_UnreadableState(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewPlanRepository(db)

	plan := entity.NewPlan(budgets())
	if err := repo.Create(ctx, plan); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := db.Model(&model.PlanModel{}).Where("id = ?", plan.ID).Update("state", "{broken").Error; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := repo.FindByID(ctx, plan.ID)
	if !errors.Is(err, domainerror.ErrInvalidSnapshot) {
		t.Errorf("expected ErrInvalidSnapshot, got %v", err)
	}
}

func TestPlanRepository_FindDigestSubscribers(t *testing.T) {
	ctx := context.Background()
	repo := NewPlanRepository(newTestDB(t))

	for _, email := range []string{"a@example.com", "", "b@example.com"} {
		plan := entity.NewPlan(budgets())
		plan.DigestEmail = email
		if err := repo.Create(ctx, plan); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	plans, err := repo.FindDigestSubscribers(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plans) != 2 {
		t.Fatalf("expected 2 subscribers, got %d", len(plans))
	}
	for _, p := range plans {
		if p.DigestEmail == "" {
			t.Error("expected only plans with a digest email")
		}
	}
}
