package monitoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osmike/pausable/internal/domain"
)

func TestMonitoring_SaveAndGet(t *testing.T) {
	m := New()
	m.SaveMetrics(domain.StateDTO{WorkerID: "w-1", Status: domain.Running, Iterations: 1})
	m.SaveMetrics(domain.StateDTO{WorkerID: "w-1", Status: domain.Suspended, Iterations: 4})
	m.SaveMetrics(domain.StateDTO{WorkerID: "w-2", Status: domain.Completed, Iterations: 20})

	metrics := m.GetMetrics()
	assert.Len(t, metrics, 2)

	w1 := metrics["w-1"].(domain.StateDTO)
	assert.Equal(t, domain.Suspended, w1.Status)
	assert.Equal(t, int64(4), w1.Iterations)
	assert.Equal(t, domain.Completed, metrics["w-2"].(domain.StateDTO).Status)
}

func TestMonitoring_Empty(t *testing.T) {
	assert.Empty(t, New().GetMetrics())
}

func TestMonitoring_Transitions(t *testing.T) {
	m := New()
	start := time.Now()
	for _, st := range []domain.Status{domain.Running, domain.Running, domain.Suspended, domain.Running, domain.Stopped} {
		m.SaveMetrics(domain.StateDTO{WorkerID: "w", Status: st, StartAt: start})
	}

	assert.Equal(t,
		[]domain.Status{domain.Running, domain.Suspended, domain.Running, domain.Stopped},
		m.Transitions("w"))
	assert.Nil(t, m.Transitions("unknown"))

	state, ok := m.GetState("w")
	require.True(t, ok)
	assert.Equal(t, domain.Stopped, state.Status)
	_, ok = m.GetState("unknown")
	assert.False(t, ok)
}

func TestMonitoring_NewRunResetsHistory(t *testing.T) {
	m := New()
	first := time.Now()
	m.SaveMetrics(domain.StateDTO{WorkerID: "w", Status: domain.Running, StartAt: first})
	m.SaveMetrics(domain.StateDTO{WorkerID: "w", Status: domain.Stopped, StartAt: first})

	second := first.Add(time.Minute)
	m.SaveMetrics(domain.StateDTO{WorkerID: "w", Status: domain.Running, StartAt: second})

	assert.Equal(t, []domain.Status{domain.Running}, m.Transitions("w"))
	state, _ := m.GetState("w")
	assert.True(t, state.StartAt.Equal(second))
}
