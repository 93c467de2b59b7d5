package pool

import (
	"go.uber.org/zap"

	"github.com/osmike/pausable/internal/domain"
	errs "github.com/osmike/pausable/internal/error"
)

// AddWorker registers a worker in the pool and starts it.
//
// The method performs the following validations:
//   - The pool must not be shut down.
//   - The worker ID must be unique within the pool.
//
// Parameters:
//   - w: The worker to register. It must not have been started.
//
// Returns:
//   - An error (ErrPoolShutdown, ErrIDExists, ErrAlreadyStarted) if validation or start fails.
//   - nil if the worker is registered and running.
func (p *Pool) AddWorker(w domain.Worker) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed.Load() {
		return errs.New(errs.ErrPoolShutdown, p.ID)
	}

	meta := w.GetMetadata()
	if _, loaded := p.workers.LoadOrStore(meta.ID, w); loaded {
		return errs.New(errs.ErrIDExists, meta.ID)
	}
	if err := w.Start(); err != nil {
		p.workers.Delete(meta.ID)
		return err
	}
	p.Log.Debug("worker added", zap.String("worker_id", meta.ID))
	return nil
}

// RemoveWorker stops a worker and deletes it from the pool.
//
// It does not wait for the worker loop to exit; use the worker's Wait for that.
//
// Returns:
//   - ErrWorkerNotFound if the worker does not exist.
func (p *Pool) RemoveWorker(id string) error {
	w, err := p.getWorkerByID(id)
	if err != nil {
		return err
	}
	w.Stop()
	p.workers.Delete(id)
	return nil
}

// SuspendWorker asks the specified worker to block at its next checkpoint.
//
// Returns:
//   - ErrWorkerNotFound if the worker does not exist.
func (p *Pool) SuspendWorker(id string) error {
	w, err := p.getWorkerByID(id)
	if err != nil {
		return err
	}
	w.Suspend()
	return nil
}

// ResumeWorker wakes the specified worker if it is suspended.
//
// Returns:
//   - ErrWorkerNotFound if the worker does not exist.
func (p *Pool) ResumeWorker(id string) error {
	w, err := p.getWorkerByID(id)
	if err != nil {
		return err
	}
	w.Resume()
	return nil
}

// StopWorker terminates the specified worker at its next checkpoint.
// The worker stays registered so its final state can still be inspected.
//
// Returns:
//   - ErrWorkerNotFound if the worker does not exist.
func (p *Pool) StopWorker(id string) error {
	w, err := p.getWorkerByID(id)
	if err != nil {
		return err
	}
	w.Stop()
	return nil
}

// Kill immediately cancels the pool context.
//
// Workers observe the cancellation at their next checkpoint, or while suspended,
// and exit with ErrExecutionInterrupted. The pool refuses new workers afterwards.
func (p *Pool) Kill() {
	p.close()
	p.cancel()
	p.Log.Warn("pool killed")
}

// close refuses new workers. Every worker registered before it returns is visible to a following Range.
func (p *Pool) close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed.Store(true)
}
