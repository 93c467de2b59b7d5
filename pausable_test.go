package pausable

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	errs "github.com/osmike/pausable/internal/error"
)

// waitForCondition polls the condition function until it returns true or timeout is reached.
// It fails the test with a fatal error if the timeout is reached.
func waitForCondition(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("timeout waiting for condition")
}

func newTestWorkerConfig(id string, counter *atomic.Int64) Worker {
	return Worker{
		ID: id,
		Fn: func(ctrl FnControl) error {
			counter.Add(1)
			time.Sleep(time.Millisecond)
			return nil
		},
	}
}

func TestPausableAPI(t *testing.T) {
	p := New(context.Background(), WithLogger(zaptest.NewLogger(t)))
	pool := p.CreatePool(PoolConfig{ID: "api"}, nil)

	var counter atomic.Int64
	w, err := p.AddWorker(pool, newTestWorkerConfig("worker-1", &counter))
	require.NoError(t, err)
	waitForCondition(t, time.Second, func() bool { return counter.Load() > 0 })

	// Suspend
	require.NoError(t, pool.SuspendWorker("worker-1"))
	assert.Equal(t, Suspended, w.Status())

	// Resume
	require.NoError(t, pool.ResumeWorker("worker-1"))
	before := counter.Load()
	waitForCondition(t, time.Second, func() bool { return counter.Load() > before })

	// Stop
	require.NoError(t, pool.StopWorker("worker-1"))
	require.NoError(t, w.Wait(context.Background()))
	assert.Equal(t, Stopped, w.Status())

	state, ok := pool.GetMetrics()["worker-1"].(State)
	require.True(t, ok)
	assert.Equal(t, Stopped, state.Status)
	assert.Equal(t, w.Iterations(), state.Iterations)

	// Duplicate IDs are rejected
	_, err = p.AddWorker(pool, newTestWorkerConfig("worker-1", &counter))
	assert.ErrorIs(t, err, errs.ErrAddingWorker)
	assert.ErrorIs(t, err, errs.ErrIDExists)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, pool.Shutdown(ctx))
}

func TestPausable_AddWorker_InvalidConfig(t *testing.T) {
	p := New(context.Background())
	pool := p.CreatePool(PoolConfig{}, nil)
	defer pool.Kill()

	_, err := p.AddWorker(pool, Worker{ID: "no-fn"})
	assert.ErrorIs(t, err, errs.ErrAddingWorker)
	assert.ErrorIs(t, err, errs.ErrEmptyFunction)
}

type recordingMon struct {
	mu     sync.Mutex
	states []State
}

func (m *recordingMon) SaveMetrics(dto State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states = append(m.states, dto)
}

func (m *recordingMon) last() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.states[len(m.states)-1]
}

func TestPausable_Spawn_Bounded(t *testing.T) {
	mon := &recordingMon{}
	var finally atomic.Bool
	w, err := New(context.Background()).Spawn(Worker{
		Name:       "bounded",
		Iterations: 20,
		Fn:         func(ctrl FnControl) error { return nil },
		Hooks: Hooks{
			Finally: func(State) { finally.Store(true) },
		},
	}, mon)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, w.Wait(ctx))

	assert.Equal(t, Completed, w.Status())
	assert.Equal(t, int64(20), w.Iterations())
	assert.True(t, finally.Load())
	assert.Equal(t, Completed, mon.last().Status)
	assert.Equal(t, "bounded", mon.last().Name)
}

func TestPausable_ContextCancelInterrupts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := New(ctx)

	var counter atomic.Int64
	w, err := p.Spawn(newTestWorkerConfig("", &counter), nil)
	require.NoError(t, err)

	w.Suspend()
	cancel()

	select {
	case <-w.Done():
	case <-time.After(time.Second):
		t.Fatal("worker did not observe cancellation")
	}
	assert.ErrorIs(t, w.Err(), ErrExecutionInterrupted)
	assert.Equal(t, Stopped, w.Status())
}
