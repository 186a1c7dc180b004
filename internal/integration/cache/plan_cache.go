// Package cache implements the Redis-backed plan snapshot cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mealsync/backend/internal/application/adapter"
	"github.com/mealsync/backend/internal/domain/entity"
)

const planKeyPrefix = "mealsync:plan:"

// cachedPlan is the Redis value of a plan.
type cachedPlan struct {
	ID          uuid.UUID       `json:"id"`
	State       json.RawMessage `json:"state"`
	DigestEmail string          `json:"digest_email,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// planCache implements the adapter.PlanCache interface.
type planCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPlanCache creates a new Redis plan cache. A zero ttl keeps entries forever.
func NewPlanCache(client *redis.Client, ttl time.Duration) adapter.PlanCache {
	return &planCache{
		client: client,
		ttl:    ttl,
	}
}

// PlanKey returns the Redis key of a plan.
func PlanKey(id uuid.UUID) string {
	return planKeyPrefix + id.String()
}

// Get returns the cached plan, false on a miss.
func (c *planCache) Get(ctx context.Context, id uuid.UUID) (*entity.Plan, bool, error) {
	data, err := c.client.Get(ctx, PlanKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var cached cachedPlan
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, false, fmt.Errorf("decode cached plan: %w", err)
	}

	plan := &entity.Plan{
		ID:          cached.ID,
		DigestEmail: cached.DigestEmail,
		CreatedAt:   cached.CreatedAt,
		UpdatedAt:   cached.UpdatedAt,
	}
	plan.EnsureMaps()
	if err := entity.UnmarshalPlanState(cached.State, plan); err != nil {
		return nil, false, err
	}

	return plan, true, nil
}

// Set stores the plan snapshot.
func (c *planCache) Set(ctx context.Context, plan *entity.Plan) error {
	state, err := entity.MarshalPlanState(plan)
	if err != nil {
		return err
	}

	data, err := json.Marshal(cachedPlan{
		ID:          plan.ID,
		State:       state,
		DigestEmail: plan.DigestEmail,
		CreatedAt:   plan.CreatedAt,
		UpdatedAt:   plan.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("encode cached plan: %w", err)
	}

	if err := c.client.Set(ctx, PlanKey(plan.ID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete evicts a plan.
func (c *planCache) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.client.Del(ctx, PlanKey(id)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
