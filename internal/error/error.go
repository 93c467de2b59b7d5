package error

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyFunction  = errors.New("function is empty")
	ErrIDExists       = errors.New("worker ID not unique")
	ErrWorkerNotFound = errors.New("worker not found")
	ErrAddingWorker   = errors.New("error adding worker")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

var (
	ErrAlreadyStarted = errors.New("worker already started")
	ErrNotStarted     = errors.New("worker not started")
)

var (
	// ErrExecutionInterrupted is the cause recorded when the parent context is cancelled
	// while the worker is alive. The worker treats it as a stop.
	ErrExecutionInterrupted = errors.New("execution interrupted")
	ErrWorkAborted          = errors.New("work unit aborted")
	ErrWorkPanicked         = errors.New("work unit panicked")
)

var (
	ErrPoolShutdown = errors.New("pool is shut down")
)

func New(err error, str string) error {
	return fmt.Errorf("%w: %s", err, str)
}
