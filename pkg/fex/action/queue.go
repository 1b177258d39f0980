package action

import "sync"

// Queue is the unbounded multi-producer single-consumer FIFO feeding
// the dispatch loop. Push never blocks, so background producers can
// always make progress; the consumer drains with TryPop and parks on
// Ready between external events. State is transferred by value, never
// shared, so no consumer-side locking is needed.
type Queue struct {
	mu     sync.Mutex
	items  []Action
	ready  chan struct{}
	closed bool
}

// NewQueue returns an empty open queue.
func NewQueue() *Queue {
	return &Queue{ready: make(chan struct{}, 1)}
}

// Push appends an action. It reports false after Close so producers can
// log the dropped send instead of panicking; this legitimately races
// with shutdown.
func (q *Queue) Push(a Action) bool {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return false
	}
	q.items = append(q.items, a)
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
	return true
}

// TryPop removes and returns the oldest queued action without blocking.
func (q *Queue) TryPop() (Action, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return nil, false
	}
	a := q.items[0]
	q.items = q.items[1:]
	return a, true
}

// Ready returns a channel that receives a wake-up whenever actions may
// be available. One signal can cover multiple pushes; consumers must
// drain with TryPop until it reports false.
func (q *Queue) Ready() <-chan struct{} {
	return q.ready
}

// Len returns the number of queued actions.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Close marks the queue closed; subsequent pushes report failure.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
}
