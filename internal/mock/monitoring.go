package mock

import (
	"sync"

	"github.com/osmike/pausable/internal/domain"
)

// Monitoring records every snapshot it receives.
type Monitoring struct {
	mu      sync.Mutex
	Metrics map[string]domain.StateDTO
	History []domain.StateDTO
}

func NewMonitoring() *Monitoring {
	return &Monitoring{
		Metrics: make(map[string]domain.StateDTO),
	}
}

func (m *Monitoring) SaveMetrics(state domain.StateDTO) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Metrics[state.WorkerID] = state
	m.History = append(m.History, state)
}

func (m *Monitoring) GetMetrics() map[string]domain.StateDTO {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make(map[string]domain.StateDTO, len(m.Metrics))
	for k, v := range m.Metrics {
		res[k] = v
	}
	return res
}

// Statuses returns the statuses seen for id, in order, without consecutive duplicates.
func (m *Monitoring) Statuses(id string) []domain.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	var res []domain.Status
	for _, st := range m.History {
		if st.WorkerID != id {
			continue
		}
		if len(res) > 0 && res[len(res)-1] == st.Status {
			continue
		}
		res = append(res, st.Status)
	}
	return res
}
