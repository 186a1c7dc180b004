// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/mealsync/backend/internal/domain/entity"
)

// PlanRepository defines the interface for plan persistence operations.
// A plan is always written as a whole snapshot.
type PlanRepository interface {
	// Create stores a new plan.
	Create(ctx context.Context, plan *entity.Plan) error

	// FindByID retrieves a plan by its ID. Returns ErrPlanNotFound when missing.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Plan, error)

	// Save overwrites the stored snapshot of an existing plan.
	Save(ctx context.Context, plan *entity.Plan) error

	// FindDigestSubscribers retrieves every plan with a digest address.
	FindDigestSubscribers(ctx context.Context) ([]*entity.Plan, error)
}
