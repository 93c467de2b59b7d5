package mock

import (
	"context"
	"sync"

	"github.com/osmike/pausable/internal/domain"
)

// Worker is a domain.Worker that only records the control calls it receives.
type Worker struct {
	ID       string
	StartErr error

	mu     sync.Mutex
	status domain.Status
	Calls  []string
	done   chan struct{}
	once   sync.Once
}

func NewWorker(id string) *Worker {
	return &Worker{ID: id, status: domain.Running, done: make(chan struct{})}
}

func (w *Worker) record(call string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Calls = append(w.Calls, call)
}

func (w *Worker) GetMetadata() domain.WorkerDTO { return domain.WorkerDTO{ID: w.ID} }

func (w *Worker) Start() error {
	w.record("start")
	return w.StartErr
}

func (w *Worker) Suspend() {
	w.record("suspend")
	w.setStatus(domain.Suspended)
}

func (w *Worker) Resume() {
	w.record("resume")
	w.setStatus(domain.Running)
}

func (w *Worker) Stop() {
	w.record("stop")
	w.setStatus(domain.Stopped)
	w.once.Do(func() { close(w.done) })
}

func (w *Worker) Status() domain.Status {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

func (w *Worker) GetState() domain.StateDTO {
	return domain.StateDTO{WorkerID: w.ID, Status: w.Status()}
}

func (w *Worker) Done() <-chan struct{} { return w.done }

func (w *Worker) Wait(ctx context.Context) error {
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Worker) CallLog() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.Calls...)
}

func (w *Worker) setStatus(status domain.Status) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.status == domain.Stopped {
		return
	}
	w.status = status
}
