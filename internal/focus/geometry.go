package focus

// Rect is an axis-aligned box. FocusRect values are relative to the container.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Empty reports whether the box has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Measurer is the layout surface supplied by the presentation layer. The
// second return value is false until the container or word has been rendered.
type Measurer interface {
	Container() (Rect, bool)
	Word(index int) (Rect, bool)
}

// Tracker keeps the highlight frame aligned with the active word.
type Tracker struct {
	measure Measurer

	rect     Rect
	hasRect  bool
	observed int
	pending  bool
}

// NewTracker returns a tracker reading from measure. A nil measurer yields a
// tracker that never produces a rect.
func NewTracker(measure Measurer) *Tracker {
	return &Tracker{measure: measure, observed: -1}
}

// Observe recomputes the rect when the index moved or the last attempt could
// not measure. Once the phase is Done the rect is frozen. It reports whether
// the rect changed.
func (t *Tracker) Observe(index int, phase Phase) bool {
	if t == nil || t.measure == nil || phase == PhaseDone {
		return false
	}
	if index == t.observed && !t.pending {
		return false
	}
	t.observed = index
	t.pending = true

	container, ok := t.measure.Container()
	if !ok {
		return false
	}
	word, ok := t.measure.Word(index)
	if !ok || word.Empty() {
		return false
	}
	t.pending = false

	next := Rect{
		X:      word.X - container.X,
		Y:      word.Y - container.Y,
		Width:  word.Width,
		Height: word.Height,
	}
	changed := !t.hasRect || next != t.rect
	t.rect = next
	t.hasRect = true
	return changed
}

// Pending reports whether the last observation is still waiting on a measurement.
func (t *Tracker) Pending() bool {
	return t != nil && t.measure != nil && t.pending
}

// Invalidate forces the next observation to measure again, e.g. after a resize.
func (t *Tracker) Invalidate() {
	if t == nil {
		return
	}
	t.pending = true
}

// Rect returns the last computed focus rect.
func (t *Tracker) Rect() (Rect, bool) {
	if t == nil {
		return Rect{}, false
	}
	return t.rect, t.hasRect
}

func (t *Tracker) reset() {
	if t == nil {
		return
	}
	t.rect = Rect{}
	t.hasRect = false
	t.observed = -1
	t.pending = false
}
