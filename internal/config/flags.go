package config

import (
	"flag"
	"time"

	"github.com/csheth/truefocus/internal/focus"
)

// Flags holds the effect flags registered on a FlagSet. Only flags the user
// actually set override the lower layers.
type Flags struct {
	fs *flag.FlagSet

	sentence  string
	manual    bool
	blur      float64
	step      time.Duration
	hold      time.Duration
	fade      time.Duration
	backward  time.Duration
	threshold float64
	rule      string
}

// BindFlags registers the effect flags on fs. Defaults shown in usage are
// the built-in defaults.
func BindFlags(fs *flag.FlagSet) *Flags {
	def := focus.DefaultConfig()
	f := &Flags{fs: fs}
	fs.StringVar(&f.sentence, "sentence", def.Sentence, "sentence to animate")
	fs.BoolVar(&f.manual, "manual", false, "hover-driven mode, no automatic sweep")
	fs.Float64Var(&f.blur, "blur", def.BlurAmount, "blur applied to inactive words")
	fs.DurationVar(&f.step, "step", def.StepInterval, "forward step interval")
	fs.DurationVar(&f.hold, "hold", def.HoldInterval, "pause on the last word")
	fs.DurationVar(&f.fade, "fade", def.FadeDuration, "fade duration for the timer stop rule")
	fs.DurationVar(&f.backward, "backward", 0, "backward step interval (0 = half of -step)")
	fs.Float64Var(&f.threshold, "threshold", def.StopThreshold, "stop threshold in (0,1)")
	fs.StringVar(&f.rule, "rule", def.StopRule.String(), "stop rule: fade-floor or timer")
	return f
}

// Apply overlays every flag that was set on the command line.
func (f *Flags) Apply(cfg *focus.Config) error {
	var err error
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "sentence":
			cfg.Sentence = f.sentence
		case "manual":
			cfg.Manual = f.manual
		case "blur":
			cfg.BlurAmount = f.blur
		case "step":
			cfg.StepInterval = f.step
		case "hold":
			cfg.HoldInterval = f.hold
		case "fade":
			cfg.FadeDuration = f.fade
		case "backward":
			cfg.BackwardInterval = f.backward
		case "threshold":
			cfg.StopThreshold = f.threshold
		case "rule":
			var rule focus.StopRule
			if rule, err = focus.ParseStopRule(f.rule); err == nil {
				cfg.StopRule = rule
			}
		}
	})
	return err
}
