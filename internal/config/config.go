// Package config assembles a focus.Config from defaults, preset files, the
// environment and command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
	"gopkg.in/yaml.v3"

	"github.com/csheth/truefocus/internal/focus"
)

// EnvPrefix is shared by every environment variable the loader reads.
const EnvPrefix = "TRUEFOCUS_"

// ErrUnknownPreset is returned when the requested preset exists neither in the
// preset file nor among the built-ins.
var ErrUnknownPreset = errors.New("unknown preset")

// Preset is a partial configuration. Nil fields keep the value from the layer
// below.
type Preset struct {
	Sentence  *string         `yaml:"sentence"`
	Manual    *bool           `yaml:"manual"`
	Blur      *float64        `yaml:"blur"`
	Step      *time.Duration  `yaml:"step"`
	Hold      *time.Duration  `yaml:"hold"`
	Fade      *time.Duration  `yaml:"fade"`
	Backward  *time.Duration  `yaml:"backward"`
	Threshold *float64        `yaml:"threshold"`
	Rule      *focus.StopRule `yaml:"rule"`
}

// File is the on-disk preset document.
type File struct {
	Default string            `yaml:"default"`
	Presets map[string]Preset `yaml:"presets"`
}

// Options selects the sources Load reads from.
type Options struct {
	// File is an optional YAML preset document.
	File string
	// Preset names the preset to apply. Empty means the file's default, or
	// none when there is no file.
	Preset string
	// DotEnv is the .env file to read. A missing file is not an error.
	DotEnv string
	// Environ overrides the process environment, mainly for tests.
	Environ []string
}

// Apply overlays the non-nil fields of p onto cfg.
func (p Preset) Apply(cfg *focus.Config) {
	if p.Sentence != nil {
		cfg.Sentence = *p.Sentence
	}
	if p.Manual != nil {
		cfg.Manual = *p.Manual
	}
	if p.Blur != nil {
		cfg.BlurAmount = *p.Blur
	}
	if p.Step != nil {
		cfg.StepInterval = *p.Step
	}
	if p.Hold != nil {
		cfg.HoldInterval = *p.Hold
	}
	if p.Fade != nil {
		cfg.FadeDuration = *p.Fade
	}
	if p.Backward != nil {
		cfg.BackwardInterval = *p.Backward
	}
	if p.Threshold != nil {
		cfg.StopThreshold = *p.Threshold
	}
	if p.Rule != nil {
		cfg.StopRule = *p.Rule
	}
}

// Load builds the configuration from every layer except flags. The result is
// not validated; callers validate after applying flags.
func Load(opts Options) (focus.Config, error) {
	cfg := focus.DefaultConfig()

	presets := Builtins()
	name := opts.Preset
	if opts.File != "" {
		file, err := ReadFile(opts.File)
		if err != nil {
			return cfg, err
		}
		for k, v := range file.Presets {
			presets[k] = v
		}
		if name == "" {
			name = file.Default
		}
	}
	if name != "" {
		preset, ok := presets[name]
		if !ok {
			return cfg, fmt.Errorf("%w %q (have %s)", ErrUnknownPreset, name, strings.Join(presetNames(presets), ", "))
		}
		preset.Apply(&cfg)
		log.Printf("[config] applied preset %q", name)
	}

	source, err := environment(opts)
	if err != nil {
		return cfg, err
	}
	if err := applyEnv(&cfg, source); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ReadFile decodes a YAML preset document.
func ReadFile(path string) (File, error) {
	var file File
	data, err := os.ReadFile(path)
	if err != nil {
		return file, fmt.Errorf("read preset file: %w", err)
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return file, fmt.Errorf("parse preset file %s: %w", path, err)
	}
	return file, nil
}

// Builtins returns the presets available without a preset file.
func Builtins() map[string]Preset {
	return map[string]Preset{
		"hero": {},
		"manual": {
			Sentence: ptr("Hover over any word"),
			Manual:   ptr(true),
		},
		"timer": {
			Sentence: ptr("Focus follows the words then fades away"),
			Rule:     ptr(focus.StopTimer),
			Fade:     ptr(1200 * time.Millisecond),
		},
	}
}

func presetNames(presets map[string]Preset) []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// environment merges the .env file under the process environment: a variable
// set in both places keeps the process value.
func environment(opts Options) (env.Map, error) {
	merged := env.Map{}
	if opts.DotEnv != "" {
		values, err := godotenv.Read(opts.DotEnv)
		switch {
		case err == nil:
			for k, v := range values {
				merged[k] = v
			}
		case errors.Is(err, fs.ErrNotExist):
			log.Printf("[config] no %s file, using environment only", opts.DotEnv)
		default:
			return nil, fmt.Errorf("read %s: %w", opts.DotEnv, err)
		}
	}

	environ := opts.Environ
	if environ == nil {
		environ = os.Environ()
	}
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if ok && strings.HasPrefix(k, EnvPrefix) {
			merged[k] = v
		}
	}
	return merged, nil
}

type envLayer struct {
	Sentence  string        `env:"TRUEFOCUS_SENTENCE"`
	Manual    bool          `env:"TRUEFOCUS_MANUAL"`
	Blur      float64       `env:"TRUEFOCUS_BLUR"`
	Step      time.Duration `env:"TRUEFOCUS_STEP"`
	Hold      time.Duration `env:"TRUEFOCUS_HOLD"`
	Fade      time.Duration `env:"TRUEFOCUS_FADE"`
	Backward  time.Duration `env:"TRUEFOCUS_BACKWARD"`
	Threshold float64       `env:"TRUEFOCUS_THRESHOLD"`
	Rule      string        `env:"TRUEFOCUS_RULE"`
}

// applyEnv seeds the layer with cfg so unset variables keep their value.
func applyEnv(cfg *focus.Config, source env.Map) error {
	layer := envLayer{
		Sentence:  cfg.Sentence,
		Manual:    cfg.Manual,
		Blur:      cfg.BlurAmount,
		Step:      cfg.StepInterval,
		Hold:      cfg.HoldInterval,
		Fade:      cfg.FadeDuration,
		Backward:  cfg.BackwardInterval,
		Threshold: cfg.StopThreshold,
		Rule:      cfg.StopRule.String(),
	}
	if err := env.Load(&layer, &env.Options{Source: source}); err != nil {
		return fmt.Errorf("%w: environment: %w", focus.ErrInvalidConfig, err)
	}
	rule, err := focus.ParseStopRule(layer.Rule)
	if err != nil {
		return err
	}

	cfg.Sentence = layer.Sentence
	cfg.Manual = layer.Manual
	cfg.BlurAmount = layer.Blur
	cfg.StepInterval = layer.Step
	cfg.HoldInterval = layer.Hold
	cfg.FadeDuration = layer.Fade
	cfg.BackwardInterval = layer.Backward
	cfg.StopThreshold = layer.Threshold
	cfg.StopRule = rule
	return nil
}

func ptr[T any](v T) *T { return &v }
