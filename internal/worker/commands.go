package worker

// Suspend asks the worker to block at its next checkpoint.
//
// A work unit already in flight finishes first: the worker never blocks mid-unit.
// Suspending a stopped or already suspended worker is a no-op.
func (w *Worker) Suspend() {
	if w.state.suspend() {
		w.log.Debug("suspend requested")
	}
}

// Resume clears the suspend flag and wakes a blocked worker.
//
// Resuming a running or stopped worker is a no-op.
func (w *Worker) Resume() {
	if w.state.resume() {
		w.log.Debug("resume requested")
	}
}

// Stop terminates the worker at its next checkpoint, overriding a pending suspension.
//
// The work context handed to work units is cancelled as well, so long units may return early.
// Stop is idempotent: calling it again, or on a worker that already exited, does nothing.
func (w *Worker) Stop() {
	if w.state.stop() {
		w.log.Debug("stop requested")
	}
	w.cancel()
}
