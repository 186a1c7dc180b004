// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mealsync/backend/internal/application/adapter"
	"github.com/mealsync/backend/internal/domain/entity"
	domainerror "github.com/mealsync/backend/internal/domain/error"
	"github.com/mealsync/backend/internal/integration/persistence/model"
)

// planRepository implements the adapter.PlanRepository interface.
type planRepository struct {
	db *gorm.DB
}

// NewPlanRepository creates a new plan repository instance.
func NewPlanRepository(db *gorm.DB) adapter.PlanRepository {
	return &planRepository{
		db: db,
	}
}

// Create stores a new plan.
func (r *planRepository) Create(ctx context.Context, plan *entity.Plan) error {
	planModel, err := model.PlanFromEntity(plan)
	if err != nil {
		return err
	}

	if result := r.db.WithContext(ctx).Create(planModel); result.Error != nil {
		return fmt.Errorf("create plan: %w", result.Error)
	}
	return nil
}

// FindByID retrieves a plan by its ID.
func (r *planRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Plan, error) {
	var planModel model.PlanModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&planModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrPlanNotFound
		}
		return nil, result.Error
	}
	return planModel.ToEntity()
}

// Save overwrites the whole snapshot of a plan.
func (r *planRepository) Save(ctx context.Context, plan *entity.Plan) error {
	planModel, err := model.PlanFromEntity(plan)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&model.PlanModel{}).
		Where("id = ?", plan.ID).
		Updates(map[string]interface{}{
			"selected_week":      planModel.SelectedWeek,
			"state":              planModel.State,
			"weekly_budget":      planModel.WeeklyBudget,
			"sunday_budget":      planModel.SundayBudget,
			"weekdays_budget":    planModel.WeekdaysBudget,
			"grand_total_budget": planModel.GrandTotalBudget,
			"digest_email":       planModel.DigestEmail,
			"updated_at":         planModel.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("save plan: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrPlanNotFound
	}
	return nil
}

// FindDigestSubscribers retrieves every plan with a digest address.
func (r *planRepository) FindDigestSubscribers(ctx context.Context) ([]*entity.Plan, error) {
	var models []model.PlanModel
	result := r.db.WithContext(ctx).
		Where("digest_email <> ?", "").
		Order("created_at ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	plans := make([]*entity.Plan, 0, len(models))
	for i := range models {
		plan, err := models[i].ToEntity()
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, nil
}
