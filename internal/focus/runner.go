package focus

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// FrameFunc receives every frame the runner produces, on the runner goroutine.
type FrameFunc func(Frame)

type focusEvent struct {
	index int
	leave bool
	reply chan error
}

// Runner drives a Controller on its own goroutine for callers that have no
// event loop of their own. All state changes happen on that goroutine.
type Runner struct {
	ctrl    *Controller
	clock   clockwork.Clock
	onFrame FrameFunc

	events   chan focusEvent
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
	started  sync.Once
}

// NewRunner wires ctrl to clock. A nil clock means the real clock.
func NewRunner(ctrl *Controller, clock clockwork.Clock, onFrame FrameFunc) *Runner {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if onFrame == nil {
		onFrame = func(Frame) {}
	}
	return &Runner{
		ctrl:    ctrl,
		clock:   clock,
		onFrame: onFrame,
		events:  make(chan focusEvent),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Run emits the initial frame and keeps ticking until the controller is Done,
// Stop is called, or ctx ends. In manual mode it only serves Focus/Unfocus.
// Run returns ctx.Err() when the context ended it and nil otherwise.
func (r *Runner) Run(ctx context.Context) error {
	first := false
	r.started.Do(func() { first = true })
	if !first {
		<-r.done
		return nil
	}
	defer close(r.done)

	var timer clockwork.Timer
	defer func() { stopTimer(timer) }()

	r.onFrame(r.ctrl.Frame())
	for {
		if timer == nil {
			if delay, ok := r.ctrl.NextDelay(); ok {
				timer = r.clock.NewTimer(delay)
			} else if !r.ctrl.Manual() || r.ctrl.Done() {
				return nil
			}
		}
		var fire <-chan time.Time
		if timer != nil {
			fire = timer.Chan()
		}

		select {
		case <-ctx.Done():
			r.halt("context")
			return ctx.Err()
		case <-r.stop:
			r.halt("stop")
			return nil
		case ev := <-r.events:
			ev.reply <- r.apply(ev)
		case now := <-fire:
			timer = nil
			before := r.ctrl.Phase()
			if r.ctrl.Step(now) {
				if after := r.ctrl.Phase(); after != before {
					log.Printf("[runner] phase %s -> %s (index=%d)", before, after, r.ctrl.ActiveIndex())
				}
				r.onFrame(r.ctrl.Frame())
			}
		}
	}
}

func (r *Runner) apply(ev focusEvent) error {
	var changed bool
	if ev.leave {
		changed = r.ctrl.Unfocus()
	} else {
		var err error
		changed, err = r.ctrl.Focus(ev.index)
		if err != nil {
			return err
		}
	}
	if changed {
		r.onFrame(r.ctrl.Frame())
	}
	return nil
}

func (r *Runner) halt(reason string) {
	if r.ctrl.Stop() {
		log.Printf("[runner] stopped by %s at index %d", reason, r.ctrl.ActiveIndex())
		r.onFrame(r.ctrl.Frame())
	}
}

// Focus forwards a pointer-enter event into the running loop.
func (r *Runner) Focus(ctx context.Context, index int) error {
	return r.send(ctx, focusEvent{index: index})
}

// Unfocus forwards a pointer-leave event into the running loop.
func (r *Runner) Unfocus(ctx context.Context) error {
	return r.send(ctx, focusEvent{leave: true})
}

func (r *Runner) send(ctx context.Context, ev focusEvent) error {
	ev.reply = make(chan error, 1)
	select {
	case r.events <- ev:
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-ev.reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop cancels the pending tick and moves the controller to Done before it
// returns. It is safe to call more than once and from any goroutine except a
// FrameFunc. When Run was never started, a later Run returns immediately.
func (r *Runner) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
	claimed := false
	r.started.Do(func() { claimed = true })
	if claimed {
		r.halt("stop")
		close(r.done)
		return
	}
	<-r.done
}

// Done is closed once Run has returned.
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

func stopTimer(t clockwork.Timer) {
	if t != nil {
		t.Stop()
	}
}
