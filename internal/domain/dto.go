package domain

import (
	"time"
)

// StateDTO is a snapshot of a worker's runtime state.
// It is safe to pass around: it is a copy and never aliases the worker's internal fields.
type StateDTO struct {
	// WorkerID is the unique identifier of the worker.
	WorkerID string

	// Name is the human-readable worker name.
	Name string

	// Status is the status observed when the snapshot was taken.
	Status Status

	// Iterations is the number of work units that have finished.
	Iterations int64

	// StartAt is the moment the worker loop was started.
	// It is zero if the worker hasn't been started yet.
	StartAt time.Time

	// EndAt is the moment the worker loop exited.
	// It remains zero while the worker is alive.
	EndAt time.Time

	// Error holds the termination cause for abnormal exits
	// (interrupted wait, aborted or panicked work unit). It is nil otherwise.
	Error error

	// Data stores arbitrary key-value pairs saved by the work unit through FnControl.
	Data map[string]interface{}
}

// WorkerDTO is the configuration of a controllable worker.
type WorkerDTO struct {
	// ID is a unique identifier for the worker.
	// If empty, a random UUID is assigned.
	ID string

	// Name is a human-readable name for the worker.
	// If not provided, it defaults to the worker's ID.
	Name string

	// Fn is the work unit executed once per Running iteration.
	Fn Fn

	// Iterations is the iteration budget. When it is reached the worker completes on its own.
	// Zero means the worker runs until it is stopped.
	Iterations int64

	// Hooks contains callbacks triggered when the worker observes lifecycle transitions.
	Hooks Hooks
}
