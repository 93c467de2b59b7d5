package worker

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/osmike/pausable/internal/domain"
	errs "github.com/osmike/pausable/internal/error"
)

// run is the body of the worker goroutine.
func (w *Worker) run() {
	// A cancelled parent must wake a parked loop; the flags alone would never change.
	stopWake := context.AfterFunc(w.parent, w.state.wake)
	defer stopWake()

	status, err := w.loop()
	w.finalize(status, err)
}

// loop executes work units until the worker is stopped, interrupted, aborted or out of budget.
//
// Each iteration starts with a checkpoint on the control flags. A suspended worker
// parks on the condition variable and re-evaluates everything after waking up, so a
// stop issued while suspended always wins.
func (w *Worker) loop() (domain.Status, error) {
	for {
		done := w.state.iterationCount()
		if budget := w.WorkerDTO.Iterations; budget > 0 && done >= budget {
			return domain.Completed, nil
		}

		status, err := w.state.checkpoint(w.parent)
		switch status {
		case domain.Stopped:
			return status, err
		case domain.Suspended:
			w.log.Info("worker suspended", zap.Int64("iteration", done))
			w.publish()
			w.runHook("OnSuspend", w.Hooks.OnSuspend)

			status, err = w.state.park(w.parent)
			if status == domain.Stopped {
				return status, err
			}
			w.log.Info("worker resumed", zap.Int64("iteration", done))
			w.publish()
			w.runHook("OnResume", w.Hooks.OnResume)
			// The flags may have changed again while the hooks ran.
			continue
		}

		w.ctrl.iteration.Store(done + 1)
		if execErr := w.execute(); execErr != nil {
			return domain.Stopped, w.state.halt(execErr)
		}
		w.state.addIteration()
		w.publish()
	}
}

// execute runs one work unit outside the control lock.
func (w *Worker) execute() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errs.New(errs.ErrWorkPanicked, fmt.Sprintf("worker id: %s, panic: %v", w.ID, r))
		}
	}()

	if execErr := w.Fn(w.ctrl); execErr != nil {
		if parentErr := w.parent.Err(); parentErr != nil && errors.Is(execErr, parentErr) {
			return errs.New(errs.ErrExecutionInterrupted, w.ID)
		}
		return fmt.Errorf("%w: worker id: %s: %w", errs.ErrWorkAborted, w.ID, execErr)
	}
	return nil
}

// finalize records the terminal state, reports it and releases waiters.
func (w *Worker) finalize(status domain.Status, err error) {
	w.state.finish(status)
	w.cancel()

	iterations := zap.Int64("iterations", w.state.iterationCount())
	switch {
	case status == domain.Completed:
		w.log.Info("worker completed", iterations)
	case errors.Is(err, errs.ErrExecutionInterrupted):
		w.log.Warn("worker execution interrupted", iterations, zap.Error(err))
	case err != nil:
		w.log.Error("worker aborted", iterations, zap.Error(err))
	default:
		w.log.Info("worker stopped", iterations)
	}
	w.publish()

	if status == domain.Stopped {
		w.runHook("OnStop", w.Hooks.OnStop)
	}
	w.runHook("Finally", w.Hooks.Finally)

	w.doneOnce.Do(func() { close(w.done) })
}

// runHook executes hook with a fresh snapshot. A panicking hook is logged and ignored.
func (w *Worker) runHook(name string, hook domain.Hook) {
	if hook == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			w.log.Error("hook panicked", zap.String("hook", name), zap.Any("panic", r))
		}
	}()
	hook(w.GetState())
}
