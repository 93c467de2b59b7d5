package worker

import (
	"context"
	"sync"
	"time"

	"github.com/osmike/pausable/internal/domain"
	errs "github.com/osmike/pausable/internal/error"
)

// state holds the control flags of a worker together with its progress data.
//
// suspended and stopped are only read or written with mu held. Every change the
// loop has to observe is followed by a signal on cond under the same lock, so a
// wakeup cannot be lost between the loop's check and its wait.
type state struct {
	mu   sync.Mutex
	cond *sync.Cond

	id   string
	name string

	suspended bool
	// stopped is monotonic: once true it is never reset.
	stopped bool

	// exit is the terminal status recorded when the loop returns; empty while the loop is alive.
	exit domain.Status
	err  error

	iterations int64
	startAt    time.Time
	endAt      time.Time
}

func newState(id, name string) *state {
	s := &state{id: id, name: name}
	s.cond = sync.NewCond(&s.mu)
	return s
}

func (s *state) markStarted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.startAt = time.Now()
}

// suspend sets the suspend flag. It is a no-op on a stopped worker.
func (s *state) suspend() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped || s.suspended {
		return false
	}
	s.suspended = true
	return true
}

// resume clears the suspend flag and wakes the loop. It is a no-op unless the worker is suspended.
func (s *state) resume() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped || !s.suspended {
		return false
	}
	s.suspended = false
	s.cond.Signal()
	return true
}

// stop clears the suspend flag, sets the stop flag and wakes the loop.
// It reports whether this call performed the transition.
func (s *state) stop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return false
	}
	s.suspended = false
	s.stopped = true
	s.cond.Signal()
	return true
}

// wake rechecks the waiting loop. Used when the parent context is cancelled.
func (s *state) wake() {
	s.mu.Lock()
	s.cond.Broadcast()
	s.mu.Unlock()
}

// checkpoint reports what the loop must do next without blocking:
// Running to execute a unit, Suspended to park, Stopped to exit.
func (s *state) checkpoint(ctx context.Context) (domain.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st, err := s.terminalLocked(ctx); st != "" {
		return st, err
	}
	if s.suspended {
		return domain.Suspended, nil
	}
	return domain.Running, nil
}

// park blocks while the worker is suspended. It returns Running once resumed, or
// Stopped when stop was called or ctx was cancelled during the wait.
// A stop always takes priority over a still-set suspend flag.
func (s *state) park(ctx context.Context) (domain.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for s.suspended && !s.stopped && ctx.Err() == nil {
		s.cond.Wait()
	}
	if st, err := s.terminalLocked(ctx); st != "" {
		return st, err
	}
	return domain.Running, nil
}

// terminalLocked checks the stop flag first, then the parent context.
// It returns an empty status while the loop may go on.
// An interrupted context latches the stop flag so later control calls become no-ops.
func (s *state) terminalLocked(ctx context.Context) (domain.Status, error) {
	if s.stopped {
		return domain.Stopped, s.err
	}
	if ctx.Err() != nil {
		s.stopped = true
		s.suspended = false
		s.err = errs.New(errs.ErrExecutionInterrupted, s.id)
		return domain.Stopped, s.err
	}
	return "", nil
}

// halt latches the stop flag with cause unless the worker was already stopped.
// It returns the cause that finally applies: a controller stop that happened first wins.
func (s *state) halt(cause error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return s.err
	}
	s.stopped = true
	s.suspended = false
	s.err = cause
	return cause
}

// finish records the terminal status once the loop has returned.
func (s *state) finish(status domain.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if status == domain.Completed {
		s.stopped = true
		s.suspended = false
	}
	s.exit = status
	s.endAt = time.Now()
}

func (s *state) addIteration() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.iterations++
	return s.iterations
}

func (s *state) iterationCount() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.iterations
}

func (s *state) cause() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *state) status() domain.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked()
}

func (s *state) statusLocked() domain.Status {
	switch {
	case s.exit != "":
		return s.exit
	case s.stopped:
		return domain.Stopped
	case s.suspended:
		return domain.Suspended
	default:
		return domain.Running
	}
}

// snapshot returns a copy of the state. Data is filled in by the caller.
func (s *state) snapshot() domain.StateDTO {
	s.mu.Lock()
	defer s.mu.Unlock()

	return domain.StateDTO{
		WorkerID:   s.id,
		Name:       s.name,
		Status:     s.statusLocked(),
		Iterations: s.iterations,
		StartAt:    s.startAt,
		EndAt:      s.endAt,
		Error:      s.err,
	}
}
