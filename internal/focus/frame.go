package focus

// WordState is the paint instruction for one word.
type WordState struct {
	Text   string
	Active bool
	Blur   float64
}

// Frame is everything the presentation layer needs to paint one moment.
type Frame struct {
	Phase        Phase
	Index        int
	Opacity      float64
	Words        []WordState
	Rect         Rect
	FrameOpacity float64
	FrameVisible bool
}

// Frame derives the current paint instructions from controller state.
func (c *Controller) Frame() Frame {
	words := make([]WordState, len(c.words))
	for i, text := range c.words {
		active := i == c.index && c.phase != PhaseDone
		words[i] = WordState{
			Text:   text,
			Active: active,
			Blur:   WordBlur(c.phase, active, c.cfg.BlurAmount, c.opacity),
		}
	}
	rect, hasRect := c.tracker.Rect()
	return Frame{
		Phase:        c.phase,
		Index:        c.index,
		Opacity:      c.opacity,
		Words:        words,
		Rect:         rect,
		FrameOpacity: c.opacity,
		FrameVisible: hasRect && c.phase != PhaseDone && c.opacity > 0,
	}
}
