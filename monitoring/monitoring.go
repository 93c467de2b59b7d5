// Package monitoring keeps worker snapshots in memory.
package monitoring

import (
	"sync"

	"github.com/osmike/pausable/internal/domain"
)

// Monitoring is an in-memory domain.Monitoring.
//
// For every worker ID it keeps the latest snapshot and the statuses the worker went
// through during its current run, consecutive duplicates collapsed. A snapshot with a
// new StartAt begins a new run, so a worker re-added under the same ID starts a fresh
// history. Use monitoring/prom to export metrics instead.
type Monitoring struct {
	mu      sync.RWMutex
	workers map[string]*record
}

type record struct {
	last        domain.StateDTO
	transitions []domain.Status
}

// New creates an empty store.
func New() *Monitoring {
	return &Monitoring{workers: make(map[string]*record)}
}

// SaveMetrics records dto as the latest snapshot of its worker.
func (m *Monitoring) SaveMetrics(dto domain.StateDTO) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.workers[dto.WorkerID]
	if !ok || !r.last.StartAt.Equal(dto.StartAt) {
		r = &record{}
		m.workers[dto.WorkerID] = r
	}
	if n := len(r.transitions); n == 0 || r.transitions[n-1] != dto.Status {
		r.transitions = append(r.transitions, dto.Status)
	}
	r.last = dto
}

// GetMetrics returns the latest snapshot of every worker, keyed by worker ID.
// Values are domain.StateDTO.
func (m *Monitoring) GetMetrics() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	res := make(map[string]interface{}, len(m.workers))
	for id, r := range m.workers {
		res[id] = r.last
	}
	return res
}

// GetState returns the latest snapshot of worker id.
func (m *Monitoring) GetState(id string) (domain.StateDTO, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.workers[id]
	if !ok {
		return domain.StateDTO{}, false
	}
	return r.last, true
}

// Transitions returns the statuses worker id went through in its current run, oldest first.
func (m *Monitoring) Transitions(id string) []domain.Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.workers[id]
	if !ok {
		return nil
	}
	return append([]domain.Status(nil), r.transitions...)
}
