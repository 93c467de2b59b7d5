// Package prom exports worker state snapshots as Prometheus metrics.
package prom

import (
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/osmike/pausable/internal/domain"
	errs "github.com/osmike/pausable/internal/error"
)

// Termination reasons used as the "reason" label of the terminations counter.
const (
	ReasonStopped     = "stopped"
	ReasonCompleted   = "completed"
	ReasonInterrupted = "interrupted"
	ReasonAborted     = "aborted"
)

var statuses = []domain.Status{domain.Running, domain.Suspended, domain.Stopped, domain.Completed}

// Monitoring implements domain.Monitoring on top of Prometheus collectors.
type Monitoring struct {
	iterations   *prometheus.GaugeVec
	status       *prometheus.GaugeVec
	suspensions  *prometheus.CounterVec
	terminations *prometheus.CounterVec

	mu   sync.Mutex
	runs map[string]*run
}

// run tracks one lifetime of a worker ID. A new StartAt begins a new run,
// so a worker re-added under the same ID is counted again.
type run struct {
	startAt time.Time
	last    domain.Status
	ended   bool
}

// New creates the collectors and registers them with reg.
// Pass prometheus.DefaultRegisterer to expose them on the default registry.
func New(reg prometheus.Registerer) (*Monitoring, error) {
	m := &Monitoring{
		iterations: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "pausable_worker_iterations",
				Help: "Number of work units finished by the worker",
			},
			[]string{"worker_id"},
		),
		status: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "pausable_worker_status",
				Help: "Current worker status, 1 for the active status and 0 otherwise",
			},
			[]string{"worker_id", "status"},
		),
		suspensions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pausable_worker_suspensions_total",
				Help: "Number of times the worker was observed entering the suspended status",
			},
			[]string{"worker_id"},
		),
		terminations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pausable_worker_terminations_total",
				Help: "Number of workers that left their loop, by reason",
			},
			[]string{"reason"},
		),
		runs: make(map[string]*run),
	}

	for _, c := range []prometheus.Collector{m.iterations, m.status, m.suspensions, m.terminations} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// SaveMetrics updates the collectors from a worker snapshot.
func (m *Monitoring) SaveMetrics(state domain.StateDTO) {
	id := state.WorkerID
	m.iterations.WithLabelValues(id).Set(float64(state.Iterations))
	for _, st := range statuses {
		v := 0.0
		if st == state.Status {
			v = 1
		}
		m.status.WithLabelValues(id, string(st)).Set(v)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.runs[id]
	if !ok || !r.startAt.Equal(state.StartAt) {
		r = &run{startAt: state.StartAt}
		m.runs[id] = r
	}

	if state.Status == domain.Suspended && r.last != domain.Suspended {
		m.suspensions.WithLabelValues(id).Inc()
	}
	r.last = state.Status

	if !state.Status.Terminal() || state.EndAt.IsZero() || r.ended {
		return
	}
	r.ended = true
	m.terminations.WithLabelValues(reason(state)).Inc()
}

func reason(state domain.StateDTO) string {
	switch {
	case state.Status == domain.Completed:
		return ReasonCompleted
	case errors.Is(state.Error, errs.ErrExecutionInterrupted):
		return ReasonInterrupted
	case state.Error != nil:
		return ReasonAborted
	default:
		return ReasonStopped
	}
}
