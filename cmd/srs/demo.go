package main

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/osmike/pausable"
	"github.com/osmike/pausable/internal/config"
	"github.com/osmike/pausable/monitoring/prom"
)

// runDemo drives one worker through the suspend/resume/stop sequence.
// Cancelling ctx interrupts the worker; the demo then reports the interruption.
func runDemo(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	reg := prometheus.NewRegistry()
	mon, err := prom.New(reg)
	if err != nil {
		return err
	}

	p := pausable.New(ctx, pausable.WithLogger(log))
	w, err := p.Spawn(pausable.Worker{
		Name:       cfg.Name,
		Iterations: cfg.Iterations,
		Fn:         simulatedUnit(cfg.Unit),
	}, mon)
	if err != nil {
		return err
	}
	log.Info("worker created and started", zap.String("worker", w.Name))

	steps := []struct {
		msg string
		fn  func()
	}{
		{"worker suspend requested", w.Suspend},
		{"worker resume requested", w.Resume},
		{"worker stop requested", w.Stop},
	}
	for _, step := range steps {
		if !sleep(ctx, w, cfg.Phase) {
			break
		}
		step.fn()
		log.Info(step.msg, zap.String("status", string(w.Status())))
	}

	// A cancelled ctx already wakes the worker; stopping it here would hide the interruption.
	if ctx.Err() == nil {
		w.Stop()
	}
	<-w.Done()

	state := w.GetState()
	log.Info("worker finished",
		zap.String("status", string(state.Status)),
		zap.Int64("iterations", state.Iterations),
		zap.Duration("lifetime", state.EndAt.Sub(state.StartAt)),
		zap.Error(state.Error),
	)
	logMetrics(reg, log)
	return nil
}

// simulatedUnit returns a work unit that takes d to complete, or less when the worker is stopped.
func simulatedUnit(d time.Duration) pausable.Fn {
	return func(ctrl pausable.FnControl) error {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctrl.Context().Done():
		}
		ctrl.SaveData(map[string]interface{}{"last_iteration": ctrl.Iteration()})
		return nil
	}
}

// sleep waits for d. It returns false early if ctx is cancelled or the worker already exited.
func sleep(ctx context.Context, w *pausable.Controllable, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	case <-w.Done():
		return false
	}
}

func logMetrics(g prometheus.Gatherer, log *zap.Logger) {
	families, err := g.Gather()
	if err != nil {
		log.Warn("gathering metrics failed", zap.Error(err))
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var value float64
			switch {
			case m.GetGauge() != nil:
				value = m.GetGauge().GetValue()
			case m.GetCounter() != nil:
				value = m.GetCounter().GetValue()
			}
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%s", lp.GetName(), lp.GetValue()))
			}
			log.Debug("metric", zap.String("name", mf.GetName()), zap.Strings("labels", labels), zap.Float64("value", value))
		}
	}
}
