package worker

import (
	"context"
	"sync"
	"sync/atomic"
)

// FnControl is the domain.FnControl handed to work units.
//
// It enables work units to:
//   - Watch the work context, cancelled on Stop and on parent cancellation.
//   - Learn which iteration they are executing.
//   - Store and retrieve worker-specific data.
type FnControl struct {
	// ctx is the worker's work context.
	ctx context.Context

	// iteration is the 1-based number of the unit being executed.
	iteration atomic.Int64

	// data stores custom key-value metadata produced by work units.
	data *sync.Map
}

// Context returns the work context.
func (ctrl *FnControl) Context() context.Context {
	return ctrl.ctx
}

// Iteration returns the number of the unit being executed.
func (ctrl *FnControl) Iteration() int64 {
	return ctrl.iteration.Load()
}

// SaveData stores custom runtime metadata for the worker.
//
// Parameters:
//   - data: Key-value pairs to merge into the worker data.
func (ctrl *FnControl) SaveData(data map[string]interface{}) {
	for k, v := range data {
		ctrl.data.Store(k, v)
	}
}

// GetData returns a copy of all saved metadata.
func (ctrl *FnControl) GetData() map[string]interface{} {
	res := make(map[string]interface{})
	ctrl.data.Range(func(key, value interface{}) bool {
		res[key.(string)] = value
		return true
	})
	return res
}
