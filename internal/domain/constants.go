package domain

import "time"

// Status represents the current lifecycle state of a worker.
//
// Possible values:
// - Running:   the worker is executing its loop body.
// - Suspended: the worker is blocked at its checkpoint until resumed or stopped.
// - Stopped:   the worker left its loop because of Stop, an interrupted wait or an aborted work unit.
// - Completed: the worker exhausted its iteration budget.
type Status string

const (
	// Running indicates the worker is executing work units.
	// This is the initial status, entered as soon as the worker is started.
	Running Status = "running"

	// Suspended indicates the worker has been asked to suspend.
	// The loop body does not execute until Resume or Stop is called.
	Suspended Status = "suspended"

	// Stopped is terminal. Once a worker is stopped it never runs again.
	Stopped Status = "stopped"

	// Completed is terminal and reached only when a finite iteration budget is used up.
	Completed Status = "completed"
)

// Terminal reports whether no further transitions are possible from s.
func (s Status) Terminal() bool {
	return s == Stopped || s == Completed
}

const (
	// DEFAULT_POOL_ID is assigned to pools created without an explicit ID.
	DEFAULT_POOL_ID = "default"
	// DEFAULT_SHUTDOWN_TIMEOUT bounds how long a pool waits for its workers to leave their loops
	// when no deadline is carried by the shutdown context.
	DEFAULT_SHUTDOWN_TIMEOUT = 30 * time.Second
)
