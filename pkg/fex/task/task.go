// Package task supervises the single background worker that performs
// filesystem operations on behalf of the UI. Exactly one operation is
// in flight at a time: submitting a new operation supersedes the active
// one instead of queueing behind it. Results and progress travel back
// to the dispatch loop as Actions; the worker never touches UI state.
package task

import (
	"context"
	"sync"
	"time"

	"github.com/rmlane/fex/pkg/fex/action"
	"github.com/rmlane/fex/pkg/fex/logging"
)

// State is the supervisor's lifecycle state.
type State int

const (
	// StateIdle means no operation is in flight.
	StateIdle State = iota
	// StateRunning means one operation is executing.
	StateRunning
	// StateCancelling means Stop has signalled cancellation and is
	// waiting for the worker to finish.
	StateCancelling
	// StateForcedShutdown means the worker did not finish within the
	// hard ceiling and the supervisor gave up waiting.
	StateForcedShutdown
)

// Op is one filesystem operation the worker can execute. Run must
// check ctx cooperatively between traversal steps and report progress
// and its terminal result through emit.
type Op interface {
	Name() string
	Run(ctx context.Context, emit func(action.Action))
}

// Supervisor owns the one cancellable background worker.
//
// Cancellation is cooperative: ops observe ctx between traversal
// steps. Go offers no way to kill a goroutine outright, so the
// "forced abort" stage degrades to bounded waiting; past the hard
// ceiling the supervisor abandons the worker and flags a forced
// shutdown so the process can still exit.
type Supervisor struct {
	// PollInterval, GracePeriod, and HardCeiling bound the two-stage
	// Stop wait. Tests shorten them; zero values select the defaults.
	PollInterval time.Duration
	GracePeriod  time.Duration
	HardCeiling  time.Duration

	queue *action.Queue

	mu         sync.Mutex
	state      State
	cancel     context.CancelFunc
	done       chan struct{}
	generation uint64
	forced     bool
}

const (
	defaultPollInterval = time.Millisecond
	defaultGracePeriod  = 50 * time.Millisecond
	defaultHardCeiling  = 500 * time.Millisecond
)

// NewSupervisor creates a supervisor that emits into q.
func NewSupervisor(q *action.Queue) *Supervisor {
	return &Supervisor{
		PollInterval: defaultPollInterval,
		GracePeriod:  defaultGracePeriod,
		HardCeiling:  defaultHardCeiling,
		queue:        q,
	}
}

// Submit starts op, superseding any in-flight operation: the active
// run's context is cancelled first, then a fresh context and worker
// are created. Requests are never queued or merged.
func (s *Supervisor) Submit(op Op) {
	logger := logging.Get("task")

	s.mu.Lock()
	if s.cancel != nil {
		logger.Debug("superseding active operation", "next", op.Name())
		s.cancel()
	}
	s.generation++
	gen := s.generation

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done
	s.state = StateRunning
	s.mu.Unlock()

	go func() {
		defer close(done)
		defer s.finish(gen)
		op.Run(ctx, func(a action.Action) { s.emit(gen, a) })
	}()
}

// emit forwards an action from run gen into the queue. Emissions from a
// superseded run are dropped under the lock, so a stale terminal action
// can never be enqueued once a newer run is current. A closed queue is
// logged, not escalated: it races legitimately with shutdown.
func (s *Supervisor) emit(gen uint64, a action.Action) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		logging.Get("task").Debug("dropping action from superseded run")
		return
	}
	if !s.queue.Push(a) {
		logging.Get("task").Debug("action queue closed, dropping action")
	}
}

// finish returns the supervisor to Idle when run gen is still current.
func (s *Supervisor) finish(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen == s.generation && s.state == StateRunning {
		s.state = StateIdle
		s.cancel = nil
	}
}

// Stop cancels the active operation and waits for the worker in two
// bounded stages: polling until the grace period, then logging the
// forced abort and continuing to poll until the hard ceiling. If the
// worker still has not finished, the supervisor flags itself as
// force-shut-down and returns so the process can exit.
func (s *Supervisor) Stop() {
	logger := logging.Get("task")

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	done := s.done
	if done != nil {
		s.state = StateCancelling
	}
	s.mu.Unlock()

	if done == nil {
		s.setState(StateIdle)
		return
	}

	start := time.Now()
	aborted := false
	for {
		select {
		case <-done:
			s.setState(StateIdle)
			return
		default:
		}

		elapsed := time.Since(start)
		if !aborted && elapsed > s.GracePeriod {
			// Cooperative cancellation is all Go offers; past the
			// grace period the run is considered abandoned.
			logger.Warn("worker ignored cancellation past grace period, abandoning")
			aborted = true
		}
		if elapsed >= s.HardCeiling {
			logger.Error("worker did not stop within hard ceiling, forcing shutdown",
				"ceiling", s.HardCeiling)
			s.mu.Lock()
			s.forced = true
			s.state = StateForcedShutdown
			s.mu.Unlock()
			return
		}

		time.Sleep(s.PollInterval)
	}
}

func (s *Supervisor) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// State returns the current lifecycle state.
func (s *Supervisor) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// ForcedShutdown reports whether Stop had to abandon a worker.
func (s *Supervisor) ForcedShutdown() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.forced
}
