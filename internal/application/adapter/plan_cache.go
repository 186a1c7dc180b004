package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/mealsync/backend/internal/domain/entity"
)

// PlanCache defines the interface for the plan snapshot cache.
type PlanCache interface {
	// Get returns the cached plan. The boolean is false on a cache miss.
	Get(ctx context.Context, id uuid.UUID) (*entity.Plan, bool, error)

	// Set stores the plan snapshot.
	Set(ctx context.Context, plan *entity.Plan) error

	// Delete evicts a plan.
	Delete(ctx context.Context, id uuid.UUID) error
}
