package pool

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osmike/pausable/internal/domain"
	errs "github.com/osmike/pausable/internal/error"
	"github.com/osmike/pausable/internal/mock"
)

func TestPoolCommands_AddWorker_Success(t *testing.T) {
	p := newTestPool(t)
	var counter atomic.Int64
	w := newTestWorker(t, p, "worker-1", &counter)

	assert.NoError(t, p.AddWorker(w))
	assert.Eventually(t, func() bool { return counter.Load() > 0 }, time.Second, time.Millisecond)
}

func TestPoolCommands_AddWorker_Duplicate(t *testing.T) {
	p := newTestPool(t)
	var c1, c2 atomic.Int64

	assert.NoError(t, p.AddWorker(newTestWorker(t, p, "worker-dup", &c1)))
	err := p.AddWorker(newTestWorker(t, p, "worker-dup", &c2))
	assert.ErrorIs(t, err, errs.ErrIDExists)
}

func TestPoolCommands_AddWorker_StartFails(t *testing.T) {
	p := newTestPool(t)
	w := mock.NewWorker("broken")
	w.StartErr = errors.New("cannot start")

	err := p.AddWorker(w)
	assert.ErrorIs(t, err, w.StartErr)

	_, err = p.GetWorker("broken")
	assert.ErrorIs(t, err, errs.ErrWorkerNotFound)
}

func TestPoolCommands_ControlCalls(t *testing.T) {
	p := newTestPool(t)
	w := mock.NewWorker("mocked")
	require.NoError(t, p.AddWorker(w))

	assert.NoError(t, p.SuspendWorker("mocked"))
	assert.Equal(t, domain.Suspended, w.Status())
	assert.NoError(t, p.ResumeWorker("mocked"))
	assert.Equal(t, domain.Running, w.Status())
	assert.NoError(t, p.StopWorker("mocked"))
	assert.Equal(t, domain.Stopped, w.Status())

	assert.Equal(t, []string{"start", "suspend", "resume", "stop"}, w.CallLog())
}

func TestPoolCommands_NotFound(t *testing.T) {
	p := newTestPool(t)

	assert.ErrorIs(t, p.SuspendWorker("missing"), errs.ErrWorkerNotFound)
	assert.ErrorIs(t, p.ResumeWorker("missing"), errs.ErrWorkerNotFound)
	assert.ErrorIs(t, p.StopWorker("missing"), errs.ErrWorkerNotFound)
	assert.ErrorIs(t, p.RemoveWorker("missing"), errs.ErrWorkerNotFound)
}

func TestPoolCommands_SuspendResume(t *testing.T) {
	p := newTestPool(t)
	var counter atomic.Int64
	w := newTestWorker(t, p, "cycle", &counter)
	require.NoError(t, p.AddWorker(w))
	require.Eventually(t, func() bool { return counter.Load() > 0 }, time.Second, time.Millisecond)

	require.NoError(t, p.SuspendWorker("cycle"))
	assert.Equal(t, domain.Suspended, w.Status())

	require.NoError(t, p.ResumeWorker("cycle"))
	before := counter.Load()
	assert.Eventually(t, func() bool { return counter.Load() > before }, time.Second, time.Millisecond)
}

func TestPoolCommands_RemoveWorker(t *testing.T) {
	p := newTestPool(t)
	w := mock.NewWorker("worker-remove")
	require.NoError(t, p.AddWorker(w))

	assert.NoError(t, p.RemoveWorker("worker-remove"))
	assert.Equal(t, domain.Stopped, w.Status())

	_, err := p.GetWorker("worker-remove")
	assert.ErrorIs(t, err, errs.ErrWorkerNotFound)
}
