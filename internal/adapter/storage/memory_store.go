package storage

import (
	"context"
	"sort"
	"sync"

	"cadence/internal/domain/content"
)

// MemoryStore keeps plans in process memory. It is used when no database is configured.
type MemoryStore struct {
	mu    sync.RWMutex
	plans map[string]content.Plan
}

// NewMemoryStore creates an empty in-memory plan store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{plans: make(map[string]content.Plan)}
}

func (s *MemoryStore) SavePlan(_ context.Context, plan content.Plan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans[plan.ID] = plan
	return nil
}

func (s *MemoryStore) GetPlan(_ context.Context, id string) (*content.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	plan, ok := s.plans[id]
	if !ok {
		return nil, content.ErrNotFound
	}
	return &plan, nil
}

// ListPlans returns up to limit plans, newest first
func (s *MemoryStore) ListPlans(_ context.Context, limit int) ([]content.Plan, error) {
	s.mu.RLock()
	plans := make([]content.Plan, 0, len(s.plans))
	for _, p := range s.plans {
		plans = append(plans, p)
	}
	s.mu.RUnlock()

	sort.Slice(plans, func(i, j int) bool {
		if plans[i].WeekOf.Equal(plans[j].WeekOf) {
			return plans[i].ID < plans[j].ID
		}
		return plans[i].WeekOf.After(plans[j].WeekOf)
	})
	if limit > 0 && len(plans) > limit {
		plans = plans[:limit]
	}
	return plans, nil
}
