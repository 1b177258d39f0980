package task

import (
	"context"
	"testing"
	"time"

	"github.com/rmlane/fex/pkg/fex/action"
)

// fakeOp is a controllable operation for supervisor tests.
type fakeOp struct {
	name     string
	started  chan struct{}
	release  chan struct{}
	terminal action.Action
	// stubborn ops ignore ctx and only finish when released.
	stubborn bool
}

func newFakeOp(name string, terminal action.Action) *fakeOp {
	return &fakeOp{
		name:     name,
		started:  make(chan struct{}),
		release:  make(chan struct{}),
		terminal: terminal,
	}
}

func (o *fakeOp) Name() string { return o.name }

func (o *fakeOp) Run(ctx context.Context, emit func(action.Action)) {
	close(o.started)
	if o.stubborn {
		<-o.release
		return
	}
	select {
	case <-ctx.Done():
		return
	case <-o.release:
		emit(o.terminal)
	}
}

func drainStatuses(t *testing.T, q *action.Queue) []action.Action {
	t.Helper()
	var out []action.Action
	for {
		a, ok := q.TryPop()
		if !ok {
			return out
		}
		out = append(out, a)
	}
}

func waitIdle(t *testing.T, s *Supervisor) {
	t.Helper()
	deadline := time.After(time.Second)
	for s.State() != StateIdle {
		select {
		case <-deadline:
			t.Fatalf("supervisor never returned to idle, state=%d", s.State())
		default:
			time.Sleep(time.Millisecond)
		}
	}
}

// TestSubmitRunsToTerminal verifies a single run emits its terminal
// action and the supervisor returns to idle.
func TestSubmitRunsToTerminal(t *testing.T) {
	q := action.NewQueue()
	s := NewSupervisor(q)

	op := newFakeOp("load", action.LoadDirDone{})
	s.Submit(op)
	<-op.started
	if s.State() != StateRunning {
		t.Fatalf("expected running state, got %d", s.State())
	}

	close(op.release)
	waitIdle(t, s)

	actions := drainStatuses(t, q)
	if len(actions) != 1 {
		t.Fatalf("expected 1 emitted action, got %d", len(actions))
	}
	if _, ok := actions[0].(action.LoadDirDone); !ok {
		t.Errorf("expected LoadDirDone, got %T", actions[0])
	}
}

// TestSubmitSupersedes verifies a superseded run's terminal action is
// dropped: after A is superseded by B and both finish, only B's
// terminal action is in the queue.
func TestSubmitSupersedes(t *testing.T) {
	q := action.NewQueue()
	s := NewSupervisor(q)

	opA := newFakeOp("a", action.SearchDone{})
	opB := newFakeOp("b", action.LoadDirDone{})

	s.Submit(opA)
	<-opA.started
	s.Submit(opB)
	<-opB.started

	// Release A after B is already current; its emission must be
	// dropped even though its goroutine is still alive.
	close(opA.release)
	close(opB.release)
	waitIdle(t, s)

	actions := drainStatuses(t, q)
	if len(actions) != 1 {
		t.Fatalf("expected only the superseding run's action, got %d", len(actions))
	}
	if _, ok := actions[0].(action.LoadDirDone); !ok {
		t.Errorf("expected LoadDirDone from run B, got %T", actions[0])
	}
}

// TestSupersededRunSeesCancel verifies Submit cancels the active run's
// context.
func TestSupersededRunSeesCancel(t *testing.T) {
	q := action.NewQueue()
	s := NewSupervisor(q)

	opA := newFakeOp("a", action.SearchDone{})
	s.Submit(opA)
	<-opA.started

	opB := newFakeOp("b", action.LoadDirDone{})
	s.Submit(opB)

	// A is cooperative: cancellation alone lets it finish without
	// emitting.
	close(opB.release)
	waitIdle(t, s)

	actions := drainStatuses(t, q)
	if len(actions) != 1 {
		t.Fatalf("expected 1 action, got %d", len(actions))
	}
}

// TestStopCooperative verifies Stop returns promptly when the worker
// honors cancellation.
func TestStopCooperative(t *testing.T) {
	q := action.NewQueue()
	s := NewSupervisor(q)

	op := newFakeOp("load", action.LoadDirDone{})
	s.Submit(op)
	<-op.started

	s.Stop()
	if s.ForcedShutdown() {
		t.Error("cooperative worker should not trigger a forced shutdown")
	}
	if s.State() != StateIdle {
		t.Errorf("expected idle after Stop, got %d", s.State())
	}
}

// TestStopForcedShutdown verifies a worker that ignores cancellation is
// abandoned once the hard ceiling passes.
func TestStopForcedShutdown(t *testing.T) {
	q := action.NewQueue()
	s := NewSupervisor(q)
	s.PollInterval = time.Millisecond
	s.GracePeriod = 5 * time.Millisecond
	s.HardCeiling = 20 * time.Millisecond

	op := newFakeOp("stubborn", action.SearchDone{})
	op.stubborn = true
	s.Submit(op)
	<-op.started

	s.Stop()
	if !s.ForcedShutdown() {
		t.Fatal("expected a forced shutdown")
	}
	if s.State() != StateForcedShutdown {
		t.Errorf("expected forced-shutdown state, got %d", s.State())
	}

	// Unblock the abandoned goroutine so the test leaves nothing behind.
	close(op.release)
}

// TestStopIdle verifies Stop on an idle supervisor is a no-op.
func TestStopIdle(t *testing.T) {
	s := NewSupervisor(action.NewQueue())
	s.Stop()
	if s.State() != StateIdle || s.ForcedShutdown() {
		t.Error("expected idle supervisor to stay idle")
	}
}

// TestEmitAfterQueueClose verifies a late emission into a closed queue
// is dropped without panicking.
func TestEmitAfterQueueClose(t *testing.T) {
	q := action.NewQueue()
	s := NewSupervisor(q)

	op := newFakeOp("late", action.SearchDone{})
	s.Submit(op)
	<-op.started

	q.Close()
	close(op.release)
	waitIdle(t, s)

	if q.Len() != 0 {
		t.Errorf("expected nothing enqueued after close, got %d", q.Len())
	}
}
