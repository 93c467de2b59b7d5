package worker

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/osmike/pausable/internal/domain"
	errs "github.com/osmike/pausable/internal/error"
)

// Worker runs a work unit repeatedly in a cooperative loop that a controller can
// suspend, resume and stop.
//
// Control flags live in state and are guarded by a single mutex/condition pair.
// The loop blocks on that condition while suspended, so a suspended worker costs no CPU.
type Worker struct {
	domain.WorkerDTO // Embedded configuration.

	// parent is the context the worker was created with. Its cancellation interrupts the worker.
	parent context.Context

	// ctx is handed to work units. It is cancelled by Stop and by parent cancellation.
	ctx context.Context

	// cancel cancels ctx.
	cancel context.CancelFunc

	// state holds the control flags and the runtime snapshot data.
	state *state

	// ctrl is the FnControl passed to every work unit.
	ctrl *FnControl

	mon domain.Monitoring
	log *zap.Logger

	started atomic.Bool
	done    chan struct{}

	// doneOnce guards close(done).
	doneOnce sync.Once
}

// Option configures optional Worker collaborators.
type Option func(w *Worker)

// WithLogger sets the logger used to report transitions and failures.
func WithLogger(log *zap.Logger) Option {
	return func(w *Worker) {
		if log != nil {
			w.log = log
		}
	}
}

// New initializes a new Worker with the provided configuration and parent context.
//
// It performs the following validations:
// - Ensures the work function (Fn) is not nil.
// - Assigns a random ID if none is given and defaults the name to the ID.
// - Rejects a negative iteration budget.
//
// The worker is not running until Start is called.
//
// Parameters:
//   - cfg: worker configuration.
//   - ctx: parent context; cancelling it interrupts the worker.
//   - mon: monitoring sink, may be nil.
//   - opts: optional collaborators.
//
// Returns:
//   - The initialized worker, or an error if the configuration is invalid.
func New(cfg domain.WorkerDTO, ctx context.Context, mon domain.Monitoring, opts ...Option) (*Worker, error) {
	w := &Worker{
		WorkerDTO: cfg,
		parent:    ctx,
		mon:       mon,
		log:       zap.NewNop(),
		done:      make(chan struct{}),
	}

	if w.ID == "" {
		w.ID = uuid.NewString()
	}

	if w.Fn == nil {
		return nil, errs.New(errs.ErrEmptyFunction, w.ID)
	}

	if w.Name == "" {
		w.Name = w.ID
	}

	if w.WorkerDTO.Iterations < 0 {
		return nil, errs.New(errs.ErrInvalidConfig, "iterations must not be negative, id: "+w.ID)
	}

	if w.parent == nil {
		w.parent = context.Background()
	}

	for _, opt := range opts {
		opt(w)
	}
	w.log = w.log.With(zap.String("worker_id", w.ID), zap.String("worker", w.Name))

	w.state = newState(w.ID, w.Name)
	w.ctx, w.cancel = context.WithCancel(w.parent)
	w.ctrl = &FnControl{
		ctx:  w.ctx,
		data: &sync.Map{},
	}

	return w, nil
}

// GetMetadata returns the worker configuration.
func (w *Worker) GetMetadata() domain.WorkerDTO {
	return w.WorkerDTO
}

// Start launches the worker loop on a new goroutine. The worker enters the Running status immediately.
//
// Returns:
//   - ErrAlreadyStarted if Start was called before.
func (w *Worker) Start() error {
	if !w.started.CompareAndSwap(false, true) {
		return errs.New(errs.ErrAlreadyStarted, w.ID)
	}
	w.state.markStarted()
	w.log.Info("worker started", zap.Int64("iterations_budget", w.WorkerDTO.Iterations))
	w.publish()

	go w.run()
	return nil
}

// Status returns the current lifecycle status of the worker.
func (w *Worker) Status() domain.Status {
	return w.state.status()
}

// Iterations returns the number of finished work units.
func (w *Worker) Iterations() int64 {
	return w.state.iterationCount()
}

// GetState returns a snapshot of the worker state, including data saved by work units.
func (w *Worker) GetState() domain.StateDTO {
	dto := w.state.snapshot()
	dto.Data = w.ctrl.GetData()
	return dto
}

// Err returns the termination cause for abnormal exits, or nil.
func (w *Worker) Err() error {
	return w.state.cause()
}

// Done returns a channel closed once the worker loop has exited.
func (w *Worker) Done() <-chan struct{} {
	return w.done
}

// Wait blocks until the worker loop exits or ctx is done.
//
// Returns:
//   - ErrNotStarted if the worker was never started.
//   - ctx.Err() if ctx finished first.
//   - nil otherwise. The termination cause is available through Err.
func (w *Worker) Wait(ctx context.Context) error {
	if !w.started.Load() {
		return errs.New(errs.ErrNotStarted, w.ID)
	}
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Worker) publish() {
	if w.mon != nil {
		w.mon.SaveMetrics(w.GetState())
	}
}
