package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"visit-planner-service/internal/domain"
)

func newTestPlanCache(t *testing.T) (*RedisPlanCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisPlanCache(client), mr
}

func samplePlan() *domain.DailyPlan {
	return &domain.DailyPlan{
		PlanDate: time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC),
		Home:     domain.Coordinates{Lat: 49.79245, Lon: 9.93296},
		Routes:   []domain.ProviderRoute{},
		Aggregate: domain.RouteStats{
			PatientCount: 3,
			TotalMinutes: 120,
		},
	}
}

func TestPlanCacheMissThenHit(t *testing.T) {
	c, _ := newTestPlanCache(t)
	ctx := context.Background()

	if _, ok, err := c.GetPlan(ctx, "2024-01-08"); err != nil || ok {
		t.Fatalf("GetPlan on empty cache: ok=%v err=%v, want miss", ok, err)
	}

	if err := c.PutPlan(ctx, "2024-01-08", samplePlan(), time.Minute); err != nil {
		t.Fatalf("PutPlan: %v", err)
	}

	got, ok, err := c.GetPlan(ctx, "2024-01-08")
	if err != nil || !ok {
		t.Fatalf("GetPlan after put: ok=%v err=%v, want hit", ok, err)
	}
	if !got.PlanDate.Equal(samplePlan().PlanDate) {
		t.Errorf("cached PlanDate = %v, want %v", got.PlanDate, samplePlan().PlanDate)
	}
	if got.Aggregate.PatientCount != 3 {
		t.Errorf("cached aggregate patient count = %d, want 3", got.Aggregate.PatientCount)
	}
}

func TestPlanCacheEntryExpires(t *testing.T) {
	c, mr := newTestPlanCache(t)
	ctx := context.Background()

	if err := c.PutPlan(ctx, "2024-01-08", samplePlan(), time.Minute); err != nil {
		t.Fatalf("PutPlan: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, ok, err := c.GetPlan(ctx, "2024-01-08"); err != nil || ok {
		t.Errorf("GetPlan after TTL: ok=%v err=%v, want miss", ok, err)
	}
}

func TestPlanCacheInvalidateClearsAllPlans(t *testing.T) {
	c, mr := newTestPlanCache(t)
	ctx := context.Background()

	for _, key := range []string{"2024-01-08", "2024-01-09"} {
		if err := c.PutPlan(ctx, key, samplePlan(), time.Hour); err != nil {
			t.Fatalf("PutPlan(%s): %v", key, err)
		}
	}
	// An unrelated key must survive the invalidation.
	mr.Set("geocode:test", "keep")

	if err := c.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}

	for _, key := range []string{"2024-01-08", "2024-01-09"} {
		if _, ok, _ := c.GetPlan(ctx, key); ok {
			t.Errorf("plan %s survived invalidation", key)
		}
	}
	if !mr.Exists("geocode:test") {
		t.Error("invalidation deleted a key outside the plan prefix")
	}
}

func TestPlanCacheCorruptEntryIsAMiss(t *testing.T) {
	c, mr := newTestPlanCache(t)
	ctx := context.Background()

	mr.Set("plan:2024-01-08", "{not json")

	if _, ok, err := c.GetPlan(ctx, "2024-01-08"); err != nil || ok {
		t.Errorf("GetPlan on corrupt entry: ok=%v err=%v, want silent miss", ok, err)
	}
}
