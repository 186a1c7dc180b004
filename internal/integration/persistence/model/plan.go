// Package model defines database models for persistence layer.
package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mealsync/backend/internal/domain/entity"
	domainerror "github.com/mealsync/backend/internal/domain/error"
)

// PlanModel represents the plans table in the database.
// State holds the snapshot JSON; the budget columns mirror it for queries.
type PlanModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SelectedWeek     int             `gorm:"not null;default:1"`
	State            string          `gorm:"type:text;not null"`
	WeeklyBudget     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SundayBudget     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	WeekdaysBudget   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	GrandTotalBudget decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DigestEmail      string          `gorm:"type:varchar(255);not null;default:'';index"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for the PlanModel.
func (PlanModel) TableName() string {
	return "plans"
}

// ToEntity converts a PlanModel to a domain Plan entity.
func (m *PlanModel) ToEntity() (*entity.Plan, error) {
	plan := &entity.Plan{
		ID:           m.ID,
		SelectedWeek: m.SelectedWeek,
		Budgets: entity.BudgetTargets{
			entity.BudgetWeekly:     m.WeeklyBudget,
			entity.BudgetSunday:     m.SundayBudget,
			entity.BudgetWeekdays:   m.WeekdaysBudget,
			entity.BudgetGrandTotal: m.GrandTotalBudget,
		},
		DigestEmail: m.DigestEmail,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	plan.EnsureMaps()

	if m.State != "" {
		if err := entity.UnmarshalPlanState([]byte(m.State), plan); err != nil {
			return nil, domainerror.NewPlanError(
				domainerror.ErrCodeInvalidSnapshot,
				fmt.Sprintf("plan %s has an unreadable state", m.ID),
				fmt.Errorf("%w: %v", domainerror.ErrInvalidSnapshot, err),
			)
		}
	}

	return plan, nil
}

// PlanFromEntity creates a PlanModel from a domain Plan entity.
func PlanFromEntity(plan *entity.Plan) (*PlanModel, error) {
	state, err := entity.MarshalPlanState(plan)
	if err != nil {
		return nil, fmt.Errorf("encode plan state: %w", err)
	}

	return &PlanModel{
		ID:               plan.ID,
		SelectedWeek:     plan.SelectedWeek,
		State:            string(state),
		WeeklyBudget:     plan.Budgets.Get(entity.BudgetWeekly),
		SundayBudget:     plan.Budgets.Get(entity.BudgetSunday),
		WeekdaysBudget:   plan.Budgets.Get(entity.BudgetWeekdays),
		GrandTotalBudget: plan.Budgets.Get(entity.BudgetGrandTotal),
		DigestEmail:      plan.DigestEmail,
		CreatedAt:        plan.CreatedAt,
		UpdatedAt:        plan.UpdatedAt,
	}, nil
}
