package action

import (
	"sync"
	"testing"
)

// TestQueueFIFO verifies actions come out in push order.
func TestQueueFIFO(t *testing.T) {
	q := NewQueue()

	q.Push(UpdateStatus{Status: Working("one")})
	q.Push(Render{})
	q.Push(Quit{})

	if q.Len() != 3 {
		t.Fatalf("expected 3 queued actions, got %d", q.Len())
	}

	a, ok := q.TryPop()
	if !ok {
		t.Fatal("expected an action")
	}
	if s, ok := a.(UpdateStatus); !ok || s.Status.Message != "one" {
		t.Errorf("expected the status action first, got %T", a)
	}
	a, _ = q.TryPop()
	if _, ok := a.(Render); !ok {
		t.Error("expected Render second")
	}
	a, _ = q.TryPop()
	if _, ok := a.(Quit); !ok {
		t.Error("expected Quit third")
	}
	if _, ok := q.TryPop(); ok {
		t.Error("expected empty queue")
	}
}

// TestQueueReadySignal verifies a push wakes a parked consumer and that
// one signal can cover multiple pushes.
func TestQueueReadySignal(t *testing.T) {
	q := NewQueue()

	select {
	case <-q.Ready():
		t.Fatal("unexpected wake on empty queue")
	default:
	}

	q.Push(Render{})
	q.Push(Tick{})

	select {
	case <-q.Ready():
	default:
		t.Fatal("expected a wake after push")
	}

	// Drain fully; the single signal covered both pushes.
	n := 0
	for {
		if _, ok := q.TryPop(); !ok {
			break
		}
		n++
	}
	if n != 2 {
		t.Errorf("expected to drain 2 actions, got %d", n)
	}
}

// TestQueueClose verifies pushes after Close report failure instead of
// panicking.
func TestQueueClose(t *testing.T) {
	q := NewQueue()

	if !q.Push(Render{}) {
		t.Fatal("expected push to succeed before Close")
	}
	q.Close()
	if q.Push(Render{}) {
		t.Fatal("expected push to fail after Close")
	}
}

// TestQueueConcurrentProducers verifies nothing is lost under
// concurrent pushes.
func TestQueueConcurrentProducers(t *testing.T) {
	q := NewQueue()

	const producers = 8
	const perProducer = 100

	var wg sync.WaitGroup
	for range producers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perProducer {
				q.Push(Tick{})
			}
		}()
	}
	wg.Wait()

	if q.Len() != producers*perProducer {
		t.Errorf("expected %d actions, got %d", producers*perProducer, q.Len())
	}
}
