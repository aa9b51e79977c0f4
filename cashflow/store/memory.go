// Package store provides Store implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/cashflow-engine/cashflow"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu    sync.RWMutex
	plans map[string]cashflow.Plan
}

func NewMemory() *Memory {
	return &Memory{plans: make(map[string]cashflow.Plan)}
}

// GetPlan returns a copy of the stored plan, or nil when absent.
func (m *Memory) GetPlan(_ context.Context, id string) (*cashflow.Plan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.plans[id]
	if !ok {
		return nil, nil
	}
	out := p.Clone()
	return &out, nil
}

// SavePlan stores a copy, so later caller mutations don't leak in.
func (m *Memory) SavePlan(_ context.Context, id string, p cashflow.Plan) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.plans[id] = p.Clone()
	return nil
}

func (m *Memory) DeletePlan(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.plans, id)
	return nil
}

func (m *Memory) ListPlans(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.plans))
	for id := range m.plans {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
