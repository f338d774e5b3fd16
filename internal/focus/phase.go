package focus

import "strings"

// Phase is a stage of the animation lifecycle.
type Phase int

const (
	PhaseForward Phase = iota
	PhaseHold
	PhaseBackward
	PhaseDone
)

// String returns the lower-case phase name used in logs and traces.
func (p Phase) String() string {
	switch p {
	case PhaseForward:
		return "forward"
	case PhaseHold:
		return "hold"
	case PhaseBackward:
		return "backward"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// Words splits a sentence into word units on any run of whitespace.
func Words(sentence string) []string {
	return strings.Fields(sentence)
}
