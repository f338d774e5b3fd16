package focus

import (
	"errors"
	"fmt"
	"time"
)

// ErrIndexOutOfRange is returned by Focus for an index outside the sentence.
var ErrIndexOutOfRange = errors.New("word index out of range")

// Controller owns the state of one mounted effect: phase, active index,
// effect opacity and the focus rect. It does not schedule anything itself;
// a scheduler asks NextDelay, waits, then calls Step.
type Controller struct {
	cfg   Config
	words []string

	phase   Phase
	index   int
	opacity float64

	lastFocus   int
	fadeStart   time.Time
	fadeElapsed time.Duration
	tracker     *Tracker
}

// New validates cfg and mounts a controller in the Forward phase. measure may
// be nil when no layout surface exists.
func New(cfg Config, measure Measurer) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Controller{
		cfg:     cfg,
		words:   Words(cfg.Sentence),
		tracker: NewTracker(measure),
	}
	c.Reset()
	return c, nil
}

// Reset returns the controller to its freshly mounted state.
func (c *Controller) Reset() {
	c.phase = PhaseForward
	c.index = 0
	c.opacity = 1
	c.lastFocus = -1
	c.fadeStart = time.Time{}
	c.fadeElapsed = 0
	c.tracker.reset()
	c.tracker.Observe(c.index, c.phase)
}

// Config returns the validated configuration the controller was built with.
func (c *Controller) Config() Config { return c.cfg }

// Phase returns the current lifecycle phase.
func (c *Controller) Phase() Phase { return c.phase }

// ActiveIndex returns the index of the focused word. It is kept at Done.
func (c *Controller) ActiveIndex() int { return c.index }

// Manual reports whether the pointer drives the focus instead of ticks.
func (c *Controller) Manual() bool { return c.cfg.Manual }

// Len returns the number of words.
func (c *Controller) Len() int { return len(c.words) }

// Tracker returns the geometry tracker that keeps the frame on the active word.
func (c *Controller) Tracker() *Tracker { return c.tracker }

// Words returns a copy of the sentence's word units.
func (c *Controller) Words() []string {
	return append([]string(nil), c.words...)
}

// EffectOpacity is the visibility of the highlight frame, always in [0,1].
func (c *Controller) EffectOpacity() float64 {
	return c.opacity
}

// Done reports whether the terminal phase was reached.
func (c *Controller) Done() bool {
	return c.phase == PhaseDone
}

// NextDelay reports how long the scheduler should wait before the next Step.
// The second value is false when nothing should be scheduled.
func (c *Controller) NextDelay() (time.Duration, bool) {
	if c.cfg.Manual {
		return 0, false
	}
	switch c.phase {
	case PhaseForward:
		return c.cfg.StepInterval, true
	case PhaseHold:
		return c.cfg.HoldInterval, true
	case PhaseBackward:
		return c.backwardDelay(), true
	default:
		return 0, false
	}
}

// backwardDelay never overshoots the end of the fade under the timer rule.
func (c *Controller) backwardDelay() time.Duration {
	interval := c.cfg.backwardInterval()
	if c.cfg.StopRule != StopTimer {
		return interval
	}
	remaining := c.cfg.FadeDuration - c.fadeElapsed
	if remaining < 0 {
		remaining = 0
	}
	if remaining < interval {
		return remaining
	}
	return interval
}

// Step runs one tick at time now. It reports whether phase, index or
// opacity changed. Ticks in Done or in manual mode do nothing.
func (c *Controller) Step(now time.Time) bool {
	if c.cfg.Manual {
		return false
	}
	switch c.phase {
	case PhaseForward:
		c.stepForward()
		return true
	case PhaseHold:
		c.phase = PhaseBackward
		c.opacity = 1
		c.fadeStart = now
		c.fadeElapsed = 0
		return true
	case PhaseBackward:
		if c.cfg.StopRule == StopTimer {
			return c.stepBackwardTimer(now)
		}
		return c.stepBackwardFloor()
	default:
		return false
	}
}

func (c *Controller) stepForward() {
	last := len(c.words) - 1
	if c.index >= last {
		c.phase = PhaseHold
		return
	}
	c.index++
	if c.index == last {
		c.phase = PhaseHold
	}
	c.tracker.Observe(c.index, c.phase)
}

func (c *Controller) stepBackwardFloor() bool {
	if c.index == 0 {
		c.finish()
		return true
	}
	c.index--
	regress := Regress(c.index, len(c.words))
	if regress <= 1-c.cfg.StopThreshold {
		c.finish()
		return true
	}
	c.opacity = FadeFloorOpacity(regress, c.cfg.StopThreshold)
	c.tracker.Observe(c.index, c.phase)
	return true
}

func (c *Controller) stepBackwardTimer(now time.Time) bool {
	elapsed := now.Sub(c.fadeStart)
	if elapsed < 0 {
		elapsed = 0
	}
	c.fadeElapsed = elapsed
	if elapsed >= c.cfg.FadeDuration {
		c.finish()
		return true
	}
	if c.index > 0 {
		c.index--
	}
	c.opacity = TimerOpacity(elapsed, c.cfg.FadeDuration)
	c.tracker.Observe(c.index, c.phase)
	return true
}

func (c *Controller) finish() {
	c.phase = PhaseDone
	c.opacity = 0
}

// Stop cancels the effect: the controller moves to Done and keeps its index
// and rect. A second call is a no-op and returns false.
func (c *Controller) Stop() bool {
	if c.phase == PhaseDone {
		return false
	}
	c.finish()
	return true
}

// Focus is the manual-mode pointer-enter handler. It makes index active and
// remembers it. It returns false without error when the controller is not in
// manual mode or already stopped.
func (c *Controller) Focus(index int) (bool, error) {
	if !c.cfg.Manual || c.phase == PhaseDone {
		return false, nil
	}
	if index < 0 || index >= len(c.words) {
		return false, fmt.Errorf("%w: %d not in [0,%d]", ErrIndexOutOfRange, index, len(c.words)-1)
	}
	c.lastFocus = index
	changed := c.index != index
	c.index = index
	c.tracker.Observe(c.index, c.phase)
	return changed, nil
}

// Unfocus is the manual-mode pointer-leave handler. The active index falls
// back to the last focused word, or the first word when none was focused.
func (c *Controller) Unfocus() bool {
	if !c.cfg.Manual || c.phase == PhaseDone {
		return false
	}
	target := c.lastFocus
	if target < 0 {
		target = 0
	}
	changed := c.index != target
	c.index = target
	c.tracker.Observe(c.index, c.phase)
	return changed
}

// Remeasure retries a skipped or invalidated geometry measurement.
func (c *Controller) Remeasure() bool {
	return c.tracker.Observe(c.index, c.phase)
}
