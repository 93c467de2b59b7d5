package pool

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/osmike/pausable/internal/domain"
)

// Shutdown stops every worker and waits until all of them have left their loops.
//
// No new workers are accepted once Shutdown has been called. If ctx carries no
// deadline, DEFAULT_SHUTDOWN_TIMEOUT applies. When the wait times out the pool
// context is cancelled so that no worker outlives the pool.
//
// Returns:
//   - nil when all workers exited.
//   - ctx.Err() if the wait did not finish in time.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.close()

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, domain.DEFAULT_SHUTDOWN_TIMEOUT)
		defer cancel()
	}

	g, gctx := errgroup.WithContext(ctx)
	p.workers.Range(func(_, value any) bool {
		w := value.(domain.Worker)
		w.Stop()
		g.Go(func() error {
			return w.Wait(gctx)
		})
		return true
	})

	err := g.Wait()
	if err != nil {
		p.Log.Error("pool shutdown timed out", zap.Error(err))
	} else {
		p.Log.Info("pool shut down")
	}
	p.cancel()
	return err
}
