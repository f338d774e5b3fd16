package focus

import "time"

// Regress is 1.0 at the last word and 0.0 at the first. A single-word
// sentence has nowhere to regress to, so it stays at 1.0.
func Regress(index, count int) float64 {
	last := count - 1
	if last <= 0 {
		return 1
	}
	return clamp01(float64(index) / float64(last))
}

// FadeFloorOpacity maps regress linearly from 1.0 (opacity 1) down to
// 1-threshold (opacity 0).
func FadeFloorOpacity(regress, threshold float64) float64 {
	if threshold <= 0 {
		return 0
	}
	floor := 1 - threshold
	if regress <= floor {
		return 0
	}
	return clamp01((regress - floor) / threshold)
}

// TimerOpacity decays linearly from 1 to 0 over fade.
func TimerOpacity(elapsed, fade time.Duration) float64 {
	if fade <= 0 || elapsed >= fade {
		return 0
	}
	if elapsed <= 0 {
		return 1
	}
	return clamp01(1 - float64(elapsed)/float64(fade))
}

// WordBlur is the blur a word should be painted with.
func WordBlur(phase Phase, active bool, base, opacity float64) float64 {
	if active || phase == PhaseDone || base <= 0 {
		return 0
	}
	if phase == PhaseBackward {
		return base * clamp01(opacity)
	}
	return base
}

func clamp01(v float64) float64 {
	switch {
	case v != v:
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
