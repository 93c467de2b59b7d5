// Package pausable provides background workers that a controller can suspend, resume and stop.
//
// A worker runs a user-supplied work unit over and over in a cooperative loop.
// Between two units it checks its control flags under a lock; when suspended it
// blocks on a condition variable instead of polling, and a stop always wins over
// a pending suspension. Cancelling the parent context interrupts the worker,
// which then exits as if stopped.
//
// Features:
//   - Suspend, Resume and Stop from any goroutine, all idempotent and non-blocking.
//   - Optional iteration budget for workers that should complete on their own.
//   - Lifecycle hooks (OnSuspend, OnResume, OnStop, Finally).
//   - Pools for addressing workers by ID and shutting them down together.
//   - Pluggable monitoring: in-memory (monitoring) or Prometheus (monitoring/prom).
//   - Structured logging with zap.
//
// Example usage:
//
//	p := pausable.New(context.Background(), pausable.WithLogger(logger))
//
//	w, _ := p.Spawn(pausable.Worker{
//		Name: "indexer",
//		Fn: func(ctrl pausable.FnControl) error {
//			// one unit of work
//			return nil
//		},
//	}, nil)
//
//	w.Suspend()
//	w.Resume()
//	w.Stop()
//	_ = w.Wait(context.Background())
package pausable

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/osmike/pausable/internal/domain"
	errs "github.com/osmike/pausable/internal/error"
	"github.com/osmike/pausable/internal/pool"
	"github.com/osmike/pausable/internal/worker"
	"github.com/osmike/pausable/monitoring"
)

// PoolConfig encapsulates the configuration settings required to initialize a new pool.
//
// Parameters:
//   - ID: pool identifier used in logs. Default is "default".
type PoolConfig = domain.Pool

// Pool represents a set of workers addressable by ID.
//
// Provides methods for suspending, resuming and stopping workers,
// shutting the whole pool down and reading collected metrics.
type Pool = pool.Pool

// Worker defines a worker's configuration.
//
// Parameters:
//   - ID: Unique identifier for the worker. A random UUID when empty.
//   - Name: Human-readable name. Defaults to ID.
//   - Fn: The work unit executed once per iteration.
//   - Iterations: Iteration budget, 0 to run until stopped.
//   - Hooks: Lifecycle hooks.
type Worker = domain.WorkerDTO

// Controllable is a started worker handle.
type Controllable = worker.Worker

// Status represents the lifecycle status of a worker.
//
// Possible statuses:
//   - Running
//   - Suspended
//   - Stopped
//   - Completed
type Status = domain.Status

const (
	Running   = domain.Running
	Suspended = domain.Suspended
	Stopped   = domain.Stopped
	Completed = domain.Completed
)

// Hooks provides lifecycle hooks executed on the worker goroutine.
//
// Available hooks:
//   - OnSuspend: the worker is about to block at its checkpoint.
//   - OnResume: the worker woke up and goes on executing units.
//   - OnStop: the worker left its loop with the Stopped status.
//   - Finally: always executed once after the loop exits.
type Hooks = domain.Hooks

// Hook is a lifecycle callback receiving a state snapshot.
type Hook = domain.Hook

// Fn is one unit of work. A non-nil error aborts the worker.
type Fn = domain.Fn

// FnControl gives work units access to the work context, the iteration number and data storage.
type FnControl = domain.FnControl

// State is a snapshot of a worker's runtime state.
type State = domain.StateDTO

// Monitoring collects worker state snapshots.
//
// Implementations of this interface can keep metrics in various ways, such as:
// - In-memory storage for simple debugging and development purposes.
// - Exporters like monitoring/prom.
type Monitoring interface {
	// SaveMetrics records a worker state snapshot.
	//
	// Parameters:
	//   - dto: State of the worker at a transition or after a work unit.
	SaveMetrics(dto State)
}

var (
	// ErrExecutionInterrupted is the termination cause of a worker whose parent context was cancelled.
	ErrExecutionInterrupted = errs.ErrExecutionInterrupted
	// ErrWorkAborted is the termination cause of a worker whose work unit returned an error.
	ErrWorkAborted = errs.ErrWorkAborted
	// ErrWorkPanicked is the termination cause of a worker whose work unit panicked.
	ErrWorkPanicked = errs.ErrWorkPanicked
	// ErrWorkerNotFound is returned by pool commands for unknown IDs.
	ErrWorkerNotFound = errs.ErrWorkerNotFound
)

// Pausable creates pools and standalone workers sharing a parent context and logger.
//
// Usage:
//
//	p := pausable.New(ctx)
//	pool := p.CreatePool(cfg, nil)
//	w, err := p.AddWorker(pool, workerCfg)
type Pausable struct {
	ctx context.Context // Parent context; cancelling it interrupts every worker.
	log *zap.Logger
}

// Option configures a Pausable.
type Option func(p *Pausable)

// WithLogger sets the logger handed to pools and workers.
func WithLogger(log *zap.Logger) Option {
	return func(p *Pausable) {
		if log != nil {
			p.log = log
		}
	}
}

// New initializes a new Pausable instance.
//
// Parameters:
//   - ctx: Parent context used for global cancellation.
//   - opts: optional settings.
func New(ctx context.Context, opts ...Option) *Pausable {
	p := &Pausable{ctx: ctx, log: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// CreatePool creates a new worker pool.
//
// Parameters:
//   - cfg: PoolConfig.
//   - mon: Monitoring implementation. Defaults to in-memory monitoring if nil.
func (p *Pausable) CreatePool(cfg PoolConfig, mon Monitoring) *Pool {
	if mon == nil {
		mon = monitoring.New()
	}
	return pool.New(p.ctx, cfg, mon, p.log)
}

// AddWorker creates a worker, registers it in pool and starts it.
//
// Returns:
//   - The running worker.
//   - Error describing the failure reason otherwise.
func (p *Pausable) AddWorker(pl *Pool, cfg Worker) (*Controllable, error) {
	w, err := worker.New(cfg, pl.Ctx, pl.Mon, worker.WithLogger(pl.Log))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrAddingWorker, err)
	}
	if err := pl.AddWorker(w); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrAddingWorker, err)
	}
	return w, nil
}

// Spawn creates and starts a standalone worker bound to the Pausable context.
//
// Parameters:
//   - cfg: worker configuration.
//   - mon: monitoring sink, may be nil.
func (p *Pausable) Spawn(cfg Worker, mon Monitoring) (*Controllable, error) {
	w, err := worker.New(cfg, p.ctx, mon, worker.WithLogger(p.log))
	if err != nil {
		return nil, err
	}
	if err := w.Start(); err != nil {
		return nil, err
	}
	return w, nil
}
