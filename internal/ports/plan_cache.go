package ports

import (
	"context"
	"time"

	"visit-planner-service/internal/domain"
)

// Port: a short-lived cache for computed daily plans. Any patient, provider
// or settings write must invalidate it.
type PlanCache interface {
	// GetPlan returns (nil, false, nil) on a cache miss.
	GetPlan(ctx context.Context, key string) (*domain.DailyPlan, bool, error)
	PutPlan(ctx context.Context, key string, plan *domain.DailyPlan, ttl time.Duration) error
	// Invalidate drops every cached plan.
	Invalidate(ctx context.Context) error
}
