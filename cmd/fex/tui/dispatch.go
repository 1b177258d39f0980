package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rmlane/fex/pkg/fex/action"
	"github.com/rmlane/fex/pkg/fex/logging"
)

// Component is one UI unit participating in dispatch. Components never
// call each other; they communicate exclusively through Actions.
type Component interface {
	// HandleKey offers a key press to the component. A component only
	// reacts when it owns the keyboard in the given context; nil means
	// the key was not consumed and is offered to the next component.
	HandleKey(ctx action.Context, msg tea.KeyMsg) action.Action

	// Update offers a dispatched action. Returned actions are enqueued
	// as follow-ups behind everything already queued.
	Update(a action.Action) []action.Action
}

// dispatcher owns the action queue consumer side: it drains the queue
// FIFO, applies loop-owned effects, and offers every action to every
// component until the queue reaches a fixed point. It runs only on the
// Bubble Tea update goroutine, so component state needs no locking.
type dispatcher struct {
	queue      *action.Queue
	components []Component
	context    action.Context

	// effect performs loop-owned side effects for an action, such as
	// supervisor submission or the export write. Nil in tests that only
	// exercise routing.
	effect func(action.Action)

	quitting bool
	fatal    error
	forced   bool
}

func newDispatcher(q *action.Queue, effect func(action.Action), components ...Component) *dispatcher {
	return &dispatcher{
		queue:      q,
		components: components,
		effect:     effect,
	}
}

// OfferKey routes a key press through the component chain; the first
// component to consume it wins, and its action (if any) is enqueued.
func (d *dispatcher) OfferKey(msg tea.KeyMsg) {
	for _, c := range d.components {
		if a := c.HandleKey(d.context, msg); a != nil {
			d.queue.Push(a)
			return
		}
	}
}

// Drain processes queued actions in FIFO order until the queue is
// empty. Follow-ups enqueued while draining are processed in the same
// call, so every external event settles to a fixed point before the
// loop parks again.
func (d *dispatcher) Drain() {
	for {
		a, ok := d.queue.TryPop()
		if !ok {
			return
		}
		d.apply(a)
	}
}

func (d *dispatcher) apply(a action.Action) {
	switch v := a.(type) {
	case action.Quit:
		d.quitting = true
	case action.Error:
		logging.Get("tui").Error("fatal action", "err", v.Err)
		d.fatal = v.Err
	case action.ForcedShutdown:
		d.forced = true
	case action.SwitchContext:
		d.context = v.Context
	}

	if d.effect != nil {
		d.effect(a)
	}

	for _, c := range d.components {
		for _, follow := range c.Update(a) {
			d.queue.Push(follow)
		}
	}
}
