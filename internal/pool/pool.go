package pool

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/osmike/pausable/internal/domain"
	errs "github.com/osmike/pausable/internal/error"
)

// Pool is a registry of controllable workers sharing one parent context.
//
// It lets a controller address workers by ID and shut all of them down together.
// Cancelling the pool context (Kill) interrupts every worker it created.
type Pool struct {
	domain.Pool

	// Ctx is the parent context for workers created for this pool.
	Ctx context.Context

	// Mon receives state snapshots from the pool's workers.
	Mon domain.Monitoring

	// Log is the pool logger; worker loggers derive from it.
	Log *zap.Logger

	cancel  context.CancelFunc
	workers sync.Map

	// mu orders AddWorker against Shutdown and Kill: once closed is set under mu,
	// no further worker can be registered.
	mu     sync.Mutex
	closed atomic.Bool
}

// New creates a pool bound to ctx.
//
// Parameters:
//   - ctx: parent context of the pool.
//   - cfg: pool configuration.
//   - mon: monitoring sink shared by the pool's workers, may be nil.
//   - log: pool logger, zap.NewNop() when nil.
func New(ctx context.Context, cfg domain.Pool, mon domain.Monitoring, log *zap.Logger) *Pool {
	if cfg.ID == "" {
		cfg.ID = domain.DEFAULT_POOL_ID
	}
	if log == nil {
		log = zap.NewNop()
	}
	p := &Pool{
		Pool: cfg,
		Mon:  mon,
		Log:  log.With(zap.String("pool", cfg.ID)),
	}
	p.Ctx, p.cancel = context.WithCancel(ctx)
	return p
}

func (p *Pool) getWorkerByID(id string) (domain.Worker, error) {
	w, ok := p.workers.Load(id)
	if !ok {
		return nil, errs.New(errs.ErrWorkerNotFound, id)
	}
	return w.(domain.Worker), nil
}

// GetWorker returns the worker registered under id.
func (p *Pool) GetWorker(id string) (domain.Worker, error) {
	return p.getWorkerByID(id)
}

// Workers returns the IDs of all registered workers.
func (p *Pool) Workers() []string {
	var ids []string
	p.workers.Range(func(key, _ any) bool {
		ids = append(ids, key.(string))
		return true
	})
	return ids
}

// GetMetrics returns the metrics collected by the pool's monitoring, when it can report them.
func (p *Pool) GetMetrics() map[string]interface{} {
	if r, ok := p.Mon.(interface {
		GetMetrics() map[string]interface{}
	}); ok {
		return r.GetMetrics()
	}
	return map[string]interface{}{}
}
