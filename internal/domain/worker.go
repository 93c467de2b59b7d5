package domain

import "context"

// Worker is a controllable background loop as seen by a controller.
//
// Implementations must make every method safe for concurrent use.
type Worker interface {
	// GetMetadata returns the worker configuration.
	GetMetadata() WorkerDTO

	// Start launches the worker loop.
	Start() error

	// Suspend asks the worker to block at its next checkpoint.
	Suspend()

	// Resume clears a pending or active suspension and wakes the worker.
	Resume()

	// Stop terminates the worker at its next checkpoint. It is idempotent.
	Stop()

	// Status returns the current lifecycle status.
	Status() Status

	// GetState returns a snapshot of the worker state.
	GetState() StateDTO

	// Done is closed once the worker loop has exited.
	Done() <-chan struct{}

	// Wait blocks until the worker loop exits or ctx is done.
	Wait(ctx context.Context) error
}
