// Example: a pool of two workers, one of them paused for a while.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/osmike/pausable"
)

func main() {
	p := pausable.New(context.Background())
	pool := p.CreatePool(pausable.PoolConfig{ID: "quick"}, nil)

	tick := func(ctrl pausable.FnControl) error {
		time.Sleep(200 * time.Millisecond)
		ctrl.SaveData(map[string]interface{}{"tick": ctrl.Iteration()})
		return nil
	}
	for _, id := range []string{"fast", "paused"} {
		if _, err := p.AddWorker(pool, pausable.Worker{ID: id, Fn: tick}); err != nil {
			panic(err)
		}
	}

	if err := pool.SuspendWorker("paused"); err != nil {
		panic(err)
	}
	for i := 0; i < 3; i++ {
		time.Sleep(time.Second)
		fmt.Printf("metrics: %v\n", pool.GetMetrics())
	}
	if err := pool.ResumeWorker("paused"); err != nil {
		panic(err)
	}
	time.Sleep(time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Shutdown(ctx); err != nil {
		panic(err)
	}
	fmt.Printf("final: %v\n", pool.GetMetrics())
}
