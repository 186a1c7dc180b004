package cache

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mealsync/backend/internal/application/adapter"
	"github.com/mealsync/backend/internal/domain/entity"
)

// cachedPlanRepository is a read-through cache in front of a PlanRepository.
// The database stays authoritative: cache failures are logged and ignored.
type cachedPlanRepository struct {
	next  adapter.PlanRepository
	cache adapter.PlanCache
}

// NewCachedPlanRepository wraps repo with cache.
func NewCachedPlanRepository(repo adapter.PlanRepository, cache adapter.PlanCache) adapter.PlanRepository {
	return &cachedPlanRepository{
		next:  repo,
		cache: cache,
	}
}

func (r *cachedPlanRepository) Create(ctx context.Context, plan *entity.Plan) error {
	if err := r.next.Create(ctx, plan); err != nil {
		return err
	}
	r.store(ctx, plan)
	return nil
}

func (r *cachedPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Plan, error) {
	plan, hit, err := r.cache.Get(ctx, id)
	if err != nil {
		slog.Warn("Plan cache read failed", "plan_id", id, "error", err)
	}
	if hit {
		return plan, nil
	}

	plan, err = r.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, plan)
	return plan, nil
}

func (r *cachedPlanRepository) Save(ctx context.Context, plan *entity.Plan) error {
	if err := r.next.Save(ctx, plan); err != nil {
		// The cached copy may no longer match the database.
		if delErr := r.cache.Delete(ctx, plan.ID); delErr != nil {
			slog.Warn("Plan cache eviction failed", "plan_id", plan.ID, "error", delErr)
		}
		return err
	}
	r.store(ctx, plan)
	return nil
}

// FindDigestSubscribers always reads the database.
func (r *cachedPlanRepository) FindDigestSubscribers(ctx context.Context) ([]*entity.Plan, error) {
	return r.next.FindDigestSubscribers(ctx)
}

func (r *cachedPlanRepository) store(ctx context.Context, plan *entity.Plan) {
	if err := r.cache.Set(ctx, plan); err != nil {
		slog.Warn("Plan cache write failed", "plan_id", plan.ID, "error", err)
	}
}
