package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"internship-marketplace/internal/domain/model"
	"internship-marketplace/internal/domain/ports/repository"
	"internship-marketplace/internal/infra/metrics"
	red "internship-marketplace/internal/infra/redis"

	"github.com/go-redis/redis/v8"
)

var _ repository.PlanRepository = (*planRepoCacheDecorator)(nil)

// planRepoCacheDecorator is a read-through redis cache over the plan catalog.
// The catalog is small and read on every payment initiation, so it is the one
// hot read path worth caching.
type planRepoCacheDecorator struct {
	inner repository.PlanRepository
	cache red.RedisClient
	ttl   time.Duration
}

func NewPlanRepoCacheDecorator(inner repository.PlanRepository, cache red.RedisClient, ttl time.Duration) repository.PlanRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &planRepoCacheDecorator{inner: inner, cache: cache, ttl: ttl}
}

func (d *planRepoCacheDecorator) FindByID(ctx context.Context, id string) (*model.Plan, error) {
	key := fmt.Sprintf("plan:%s", id)
	val, err := d.cache.Get(ctx, key)
	if err == nil {
		metrics.IncCacheRequest("plan", "hit")
		var plan model.Plan
		if json.Unmarshal([]byte(val), &plan) == nil {
			return &plan, nil
		}
	} else if err != redis.Nil {
		// A real redis error; fall through to the inner repo.
	}

	metrics.IncCacheRequest("plan", "miss")
	plan, err := d.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan != nil {
		bytes, _ := json.Marshal(plan)
		_ = d.cache.Set(ctx, key, bytes, d.ttl)
	}
	return plan, nil
}

func (d *planRepoCacheDecorator) ListAll(ctx context.Context) ([]*model.Plan, error) {
	const key = "plans:all"
	val, err := d.cache.Get(ctx, key)
	if err == nil {
		metrics.IncCacheRequest("plan_list", "hit")
		var plans []*model.Plan
		if json.Unmarshal([]byte(val), &plans) == nil {
			return plans, nil
		}
	}

	metrics.IncCacheRequest("plan_list", "miss")
	plans, err := d.inner.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(plans) > 0 {
		bytes, _ := json.Marshal(plans)
		_ = d.cache.Set(ctx, key, bytes, d.ttl)
	}
	return plans, nil
}

// Write operations invalidate the cache.
func (d *planRepoCacheDecorator) Save(ctx context.Context, plan *model.Plan) error {
	_ = d.cache.Del(ctx, fmt.Sprintf("plan:%s", plan.ID), "plans:all")
	return d.inner.Save(ctx, plan)
}

func (d *planRepoCacheDecorator) Delete(ctx context.Context, id string) error {
	_ = d.cache.Del(ctx, fmt.Sprintf("plan:%s", id), "plans:all")
	return d.inner.Delete(ctx, id)
}
