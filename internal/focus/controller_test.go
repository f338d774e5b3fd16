package focus

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type snapshot struct {
	Phase   Phase
	Index   int
	Opacity float64
}

// drive runs ctrl to completion the way a scheduler would and records the
// state after every tick.
func drive(t *testing.T, ctrl *Controller) []snapshot {
	t.Helper()
	now := epoch
	trail := []snapshot{{ctrl.Phase(), ctrl.ActiveIndex(), ctrl.EffectOpacity()}}
	for i := 0; i < 1000; i++ {
		delay, ok := ctrl.NextDelay()
		if !ok {
			return trail
		}
		now = now.Add(delay)
		ctrl.Step(now)
		trail = append(trail, snapshot{ctrl.Phase(), ctrl.ActiveIndex(), ctrl.EffectOpacity()})
	}
	t.Fatalf("controller did not terminate: %+v", trail[len(trail)-1])
	return nil
}

func testConfig(sentence string) Config {
	cfg := DefaultConfig()
	cfg.Sentence = sentence
	return cfg
}

func mustController(t *testing.T, cfg Config, measure Measurer) *Controller {
	t.Helper()
	ctrl, err := New(cfg, measure)
	require.NoError(t, err)
	return ctrl
}

func TestTwoWordSentenceFadeFloor(t *testing.T) {
	ctrl := mustController(t, testConfig("Andreassen Technology"), nil)
	require.Equal(t, PhaseForward, ctrl.Phase())
	require.Equal(t, 0, ctrl.ActiveIndex())

	delay, ok := ctrl.NextDelay()
	require.True(t, ok)
	require.Equal(t, 600*time.Millisecond, delay)
	ctrl.Step(epoch.Add(delay))
	assert.Equal(t, 1, ctrl.ActiveIndex())
	assert.Equal(t, PhaseHold, ctrl.Phase())

	delay, _ = ctrl.NextDelay()
	require.Equal(t, 800*time.Millisecond, delay)
	ctrl.Step(epoch.Add(1400 * time.Millisecond))
	assert.Equal(t, PhaseBackward, ctrl.Phase())
	assert.Equal(t, 1.0, ctrl.EffectOpacity())
	assert.Equal(t, 1, ctrl.ActiveIndex())

	delay, _ = ctrl.NextDelay()
	require.Equal(t, 300*time.Millisecond, delay)
	ctrl.Step(epoch.Add(1700 * time.Millisecond))
	assert.Equal(t, PhaseDone, ctrl.Phase())
	assert.Equal(t, 0, ctrl.ActiveIndex())
	assert.Equal(t, 0.0, ctrl.EffectOpacity())

	_, ok = ctrl.NextDelay()
	assert.False(t, ok)
}

func TestFiveWordsStopsAfterOneBackwardStep(t *testing.T) {
	ctrl := mustController(t, testConfig("one two three four five"), nil)
	trail := drive(t, ctrl)

	forward := 0
	backward := 0
	for i := 1; i < len(trail); i++ {
		prev, cur := trail[i-1], trail[i]
		if cur.Index > prev.Index {
			forward++
		}
		if cur.Index < prev.Index {
			backward++
		}
	}
	assert.Equal(t, 4, forward)
	assert.Equal(t, 1, backward)
	assert.Equal(t, PhaseDone, ctrl.Phase())
	assert.Equal(t, 3, ctrl.ActiveIndex())
}

func TestRegressValues(t *testing.T) {
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	for idx, w := range want {
		assert.InDelta(t, w, Regress(idx, 5), 1e-9, "index %d", idx)
	}
	assert.Equal(t, 1.0, Regress(0, 1))
}

func TestLongSentenceFadesBeforeStopping(t *testing.T) {
	words := make([]string, 21)
	for i := range words {
		words[i] = fmt.Sprintf("w%d", i)
	}
	cfg := testConfig(strings.Join(words, " "))
	cfg.StopThreshold = 0.25
	ctrl := mustController(t, cfg, nil)
	trail := drive(t, ctrl)

	var fading []float64
	for _, s := range trail {
		if s.Phase == PhaseBackward && s.Opacity < 1 {
			fading = append(fading, s.Opacity)
		}
	}
	require.NotEmpty(t, fading)
	for i := 1; i < len(fading); i++ {
		assert.Less(t, fading[i], fading[i-1])
	}
	assert.Equal(t, PhaseDone, ctrl.Phase())
	// regress 15/20 = 0.75 is the first value on the floor.
	assert.Len(t, fading, 4)
	assert.Equal(t, 15, ctrl.ActiveIndex())
}

func TestSingleWordReachesDoneWithoutMoving(t *testing.T) {
	for _, rule := range []StopRule{StopFadeFloor, StopTimer} {
		t.Run(rule.String(), func(t *testing.T) {
			cfg := testConfig("Solo")
			cfg.StopRule = rule
			ctrl := mustController(t, cfg, nil)
			trail := drive(t, ctrl)
			for _, s := range trail {
				require.Equal(t, 0, s.Index)
			}
			assert.Equal(t, PhaseDone, ctrl.Phase())
			assert.Equal(t, PhaseHold, trail[1].Phase)
		})
	}
}

func TestTimerRuleStopsWhenFadeElapses(t *testing.T) {
	cfg := testConfig("a b c d e f g h i j")
	cfg.StopRule = StopTimer
	cfg.FadeDuration = 1000 * time.Millisecond
	ctrl := mustController(t, cfg, nil)

	now := epoch
	for ctrl.Phase() != PhaseBackward {
		d, _ := ctrl.NextDelay()
		now = now.Add(d)
		ctrl.Step(now)
	}
	backwardStart := now
	require.Equal(t, 9, ctrl.ActiveIndex())

	var delays []time.Duration
	for !ctrl.Done() {
		d, ok := ctrl.NextDelay()
		require.True(t, ok)
		delays = append(delays, d)
		now = now.Add(d)
		ctrl.Step(now)
	}
	// 300ms cadence capped by the 1s fade: 300, 300, 300, 100.
	assert.Equal(t, []time.Duration{300 * time.Millisecond, 300 * time.Millisecond, 300 * time.Millisecond, 100 * time.Millisecond}, delays)
	assert.Equal(t, cfg.FadeDuration, now.Sub(backwardStart))
	assert.Equal(t, 6, ctrl.ActiveIndex())
}

func TestTimerRuleOpacityFollowsClock(t *testing.T) {
	cfg := testConfig("a b c d e f g h i j")
	cfg.StopRule = StopTimer
	cfg.FadeDuration = 1200 * time.Millisecond
	ctrl := mustController(t, cfg, nil)
	now := epoch
	for ctrl.Phase() != PhaseBackward {
		d, _ := ctrl.NextDelay()
		now = now.Add(d)
		ctrl.Step(now)
	}
	ctrl.Step(now.Add(300 * time.Millisecond))
	assert.InDelta(t, 0.75, ctrl.EffectOpacity(), 1e-9)
	ctrl.Step(now.Add(600 * time.Millisecond))
	assert.InDelta(t, 0.5, ctrl.EffectOpacity(), 1e-9)
}

func TestZeroFadeTimerRuleEndsOnFirstBackwardTick(t *testing.T) {
	cfg := testConfig("a b c")
	cfg.StopRule = StopTimer
	cfg.FadeDuration = 0
	ctrl := mustController(t, cfg, nil)
	trail := drive(t, ctrl)
	last := trail[len(trail)-1]
	assert.Equal(t, PhaseDone, last.Phase)
	assert.Equal(t, 2, last.Index)
}

func TestInvariantsHoldForEveryTick(t *testing.T) {
	sentences := []string{"a", "a b", "a b c", "a b c d e", "a b c d e f g h i j k l"}
	thresholds := []float64{0.01, 0.15, 0.5, 0.99}
	for _, sentence := range sentences {
		for _, threshold := range thresholds {
			for _, rule := range []StopRule{StopFadeFloor, StopTimer} {
				name := fmt.Sprintf("%d-words/%v/%s", len(Words(sentence)), threshold, rule)
				t.Run(name, func(t *testing.T) {
					cfg := testConfig(sentence)
					cfg.StopThreshold = threshold
					cfg.StopRule = rule
					ctrl := mustController(t, cfg, nil)
					trail := drive(t, ctrl)

					require.Equal(t, PhaseForward, trail[0].Phase)
					for _, s := range trail {
						require.GreaterOrEqual(t, s.Index, 0)
						require.Less(t, s.Index, ctrl.Len())
						require.GreaterOrEqual(t, s.Opacity, 0.0)
						require.LessOrEqual(t, s.Opacity, 1.0)
						if s.Phase == PhaseForward || s.Phase == PhaseHold {
							require.Equal(t, 1.0, s.Opacity)
						}
					}
					require.Equal(t, PhaseDone, trail[len(trail)-1].Phase)
					require.Equal(t, 0.0, trail[len(trail)-1].Opacity)

					index := ctrl.ActiveIndex()
					require.False(t, ctrl.Step(epoch.Add(time.Hour)))
					require.Equal(t, index, ctrl.ActiveIndex())
					require.Equal(t, PhaseDone, ctrl.Phase())
				})
			}
		}
	}
}

func TestDeterministicAcrossRuns(t *testing.T) {
	cfg := testConfig("the quick brown fox jumps over the lazy dog")
	cfg.StopThreshold = 0.4
	first := drive(t, mustController(t, cfg, nil))
	second := drive(t, mustController(t, cfg, &fakeMeasurer{container: Rect{X: 3, Y: 7, Width: 80, Height: 1}}))
	assert.Equal(t, first, second)
}

func TestStopIsIdempotent(t *testing.T) {
	ctrl := mustController(t, testConfig("a b c"), nil)
	ctrl.Step(epoch.Add(600 * time.Millisecond))
	require.Equal(t, 1, ctrl.ActiveIndex())

	assert.True(t, ctrl.Stop())
	after := ctrl.Frame()
	assert.False(t, ctrl.Stop())
	assert.Equal(t, after, ctrl.Frame())
	assert.Equal(t, 1, ctrl.ActiveIndex())
	_, ok := ctrl.NextDelay()
	assert.False(t, ok)
}

func TestManualFocusAndUnfocus(t *testing.T) {
	cfg := testConfig("alpha beta gamma delta")
	cfg.Manual = true
	ctrl := mustController(t, cfg, nil)

	_, ok := ctrl.NextDelay()
	assert.False(t, ok, "manual mode schedules nothing")
	assert.False(t, ctrl.Step(epoch.Add(time.Hour)))

	assert.False(t, ctrl.Unfocus(), "no prior focus reverts to the first word")
	assert.Equal(t, 0, ctrl.ActiveIndex())

	changed, err := ctrl.Focus(2)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 2, ctrl.ActiveIndex())

	ctrl.Unfocus()
	assert.Equal(t, 2, ctrl.ActiveIndex())

	_, err = ctrl.Focus(1)
	require.NoError(t, err)
	ctrl.Unfocus()
	assert.Equal(t, 1, ctrl.ActiveIndex())

	_, err = ctrl.Focus(4)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
	assert.Equal(t, 1, ctrl.ActiveIndex())
	_, err = ctrl.Focus(-1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	assert.Equal(t, PhaseForward, ctrl.Phase())
	assert.Equal(t, 1.0, ctrl.EffectOpacity())
}

func TestFocusIgnoredOutsideManualMode(t *testing.T) {
	ctrl := mustController(t, testConfig("a b c"), nil)
	changed, err := ctrl.Focus(2)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.False(t, ctrl.Unfocus())
	assert.Equal(t, 0, ctrl.ActiveIndex())
}

func TestResetRestoresMountState(t *testing.T) {
	ctrl := mustController(t, testConfig("a b c"), nil)
	drive(t, ctrl)
	require.True(t, ctrl.Done())

	ctrl.Reset()
	assert.Equal(t, PhaseForward, ctrl.Phase())
	assert.Equal(t, 0, ctrl.ActiveIndex())
	assert.Equal(t, 1.0, ctrl.EffectOpacity())
}

func TestFrameBlurAndVisibility(t *testing.T) {
	measure := &fakeMeasurer{
		container: Rect{X: 10, Y: 5, Width: 40, Height: 3},
		words: map[int]Rect{
			0: {X: 11, Y: 6, Width: 5, Height: 1},
			1: {X: 17, Y: 6, Width: 4, Height: 1},
			2: {X: 22, Y: 6, Width: 6, Height: 1},
			3: {X: 29, Y: 6, Width: 3, Height: 1},
			4: {X: 33, Y: 6, Width: 5, Height: 1},
		},
	}
	cfg := testConfig("alpha beta gamma tau omega")
	cfg.StopThreshold = 0.5
	ctrl := mustController(t, cfg, measure)

	frame := ctrl.Frame()
	require.True(t, frame.FrameVisible)
	assert.Equal(t, Rect{X: 1, Y: 1, Width: 5, Height: 1}, frame.Rect)
	assert.True(t, frame.Words[0].Active)
	assert.Equal(t, 0.0, frame.Words[0].Blur)
	assert.Equal(t, 5.0, frame.Words[1].Blur)

	now := epoch
	for ctrl.Phase() != PhaseBackward {
		d, _ := ctrl.NextDelay()
		now = now.Add(d)
		ctrl.Step(now)
	}
	now = now.Add(300 * time.Millisecond)
	ctrl.Step(now)
	frame = ctrl.Frame()
	require.Equal(t, PhaseBackward, frame.Phase)
	require.Equal(t, 3, frame.Index)
	assert.InDelta(t, 0.5, frame.Opacity, 1e-9)
	assert.InDelta(t, 2.5, frame.Words[0].Blur, 1e-9)
	assert.Equal(t, 0.0, frame.Words[3].Blur)
	assert.Equal(t, Rect{X: 19, Y: 1, Width: 3, Height: 1}, frame.Rect)

	ctrl.Step(now.Add(300 * time.Millisecond))
	frame = ctrl.Frame()
	require.Equal(t, PhaseDone, frame.Phase)
	assert.False(t, frame.FrameVisible)
	assert.Equal(t, Rect{X: 19, Y: 1, Width: 3, Height: 1}, frame.Rect, "rect frozen once done")
	for _, w := range frame.Words {
		assert.Equal(t, 0.0, w.Blur)
		assert.False(t, w.Active)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig("   ")
	ctrl, err := New(cfg, nil)
	assert.Nil(t, ctrl)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
