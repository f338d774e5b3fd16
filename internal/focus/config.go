package focus

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// ErrInvalidConfig is wrapped by every configuration problem reported by Validate.
var ErrInvalidConfig = errors.New("invalid focus config")

// StopRule selects how the backward sweep ends.
type StopRule int

const (
	// StopFadeFloor ends the sweep once the regress crosses 1-StopThreshold.
	StopFadeFloor StopRule = iota
	// StopTimer ends the sweep when FadeDuration has elapsed since Backward began.
	StopTimer
)

// String returns the rule name used in flags, presets and the environment.
func (r StopRule) String() string {
	switch r {
	case StopFadeFloor:
		return "fade-floor"
	case StopTimer:
		return "timer"
	default:
		return fmt.Sprintf("StopRule(%d)", int(r))
	}
}

// ParseStopRule converts a rule name ("fade-floor" or "timer") into a StopRule.
func ParseStopRule(value string) (StopRule, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "fade-floor", "floor":
		return StopFadeFloor, nil
	case "timer":
		return StopTimer, nil
	default:
		return 0, fmt.Errorf("%w: unknown stop rule %q", ErrInvalidConfig, value)
	}
}

// MarshalText encodes the rule by name for YAML and env sources.
func (r StopRule) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText accepts the names understood by ParseStopRule.
func (r *StopRule) UnmarshalText(text []byte) error {
	rule, err := ParseStopRule(string(text))
	if err != nil {
		return err
	}
	*r = rule
	return nil
}

// Config describes one TrueFocus effect instance.
type Config struct {
	Sentence   string
	Manual     bool
	BlurAmount float64

	StepInterval time.Duration
	HoldInterval time.Duration
	FadeDuration time.Duration
	// BackwardInterval is the backward cadence. Zero means half of StepInterval.
	BackwardInterval time.Duration

	StopThreshold float64
	StopRule      StopRule
}

// DefaultConfig returns the configuration used by the landing page hero.
func DefaultConfig() Config {
	return Config{
		Sentence:      "Andreassen Technology",
		BlurAmount:    5,
		StepInterval:  600 * time.Millisecond,
		HoldInterval:  800 * time.Millisecond,
		FadeDuration:  600 * time.Millisecond,
		StopThreshold: 0.15,
		StopRule:      StopFadeFloor,
	}
}

// Validate reports every problem with the configuration at once.
func (c Config) Validate() error {
	var problems []error
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if len(Words(c.Sentence)) == 0 {
		add("sentence must contain at least one word")
	}
	if math.IsNaN(c.BlurAmount) || c.BlurAmount < 0 {
		add("blur amount must be >= 0, got %v", c.BlurAmount)
	}
	if c.StepInterval <= 0 {
		add("step interval must be positive, got %s", c.StepInterval)
	}
	if c.HoldInterval < 0 {
		add("hold interval must be >= 0, got %s", c.HoldInterval)
	}
	if c.FadeDuration < 0 {
		add("fade duration must be >= 0, got %s", c.FadeDuration)
	}
	if c.BackwardInterval < 0 {
		add("backward interval must be >= 0, got %s", c.BackwardInterval)
	}
	if math.IsNaN(c.StopThreshold) || c.StopThreshold <= 0 || c.StopThreshold >= 1 {
		add("stop threshold must be in (0,1), got %v", c.StopThreshold)
	}
	if c.StopRule != StopFadeFloor && c.StopRule != StopTimer {
		add("unknown stop rule %d", int(c.StopRule))
	}
	return errors.Join(problems...)
}

func (c Config) backwardInterval() time.Duration {
	if c.BackwardInterval > 0 {
		return c.BackwardInterval
	}
	if half := c.StepInterval / 2; half > 0 {
		return half
	}
	return c.StepInterval
}
