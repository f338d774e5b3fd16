package tui

import "time"

type stage int

const (
	stagePlay stage = iota
	stageEdit
)

const heroTagline = "Hover, watch, or stop the sweep."

const (
	defaultCanvasWidth = 78
	minCanvasWidth     = 12
	canvasMargin       = 1
	wordGap            = 2

	measureInterval    = 30 * time.Millisecond
	maxMeasureAttempts = 40
)

// tickMsg advances the controller. Ticks whose generation no longer matches
// the model's were superseded by a stop, restart or edit and are dropped.
type tickMsg struct {
	generation int
	at         time.Time
}

// measureMsg retries a geometry measurement once the last view was scanned.
type measureMsg struct {
	generation int
}
