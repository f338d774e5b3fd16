package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(heroAccentColor)
	taglineStyle = lipgloss.NewStyle().Foreground(heroSecondaryTextColor).Italic(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helperStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	statusBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6")).Padding(0, 1)
	editorBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#56526e")).Padding(0, 1)
	helpBoxStyle   = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("#7f5af0")).Padding(0, 1)

	heroAccentColor        = lipgloss.Color("#cfa2a0")
	heroSecondaryTextColor = lipgloss.Color("#e0c3c1")
)

const (
	// blurSaturation is the blur at which a word reaches its faintest colour.
	blurSaturation = 8.0
	maxBlurFade    = 0.85
	glowStrength   = 0.35
)

// Colors selects the hex colours the effect is painted with.
type Colors struct {
	Text       string
	Background string
	Border     string
	Glow       string
}

// DefaultColors matches the landing page hero.
func DefaultColors() Colors {
	return Colors{
		Text:       "#f5f1ee",
		Background: "#101014",
		Border:     "#cfa2a0",
		Glow:       "#cfa2a0",
	}
}

// palette approximates blur and opacity in a terminal by blending colours
// toward the background.
type palette struct {
	text       colorful.Color
	background colorful.Color
	border     colorful.Color
	glow       colorful.Color
}

func newPalette(c Colors) (palette, error) {
	var p palette
	for _, field := range []struct {
		name  string
		value string
		out   *colorful.Color
	}{
		{"text", c.Text, &p.text},
		{"background", c.Background, &p.background},
		{"border", c.Border, &p.border},
		{"glow", c.Glow, &p.glow},
	} {
		parsed, err := colorful.Hex(field.value)
		if err != nil {
			return p, fmt.Errorf("invalid %s colour %q: %w", field.name, field.value, err)
		}
		*field.out = parsed
	}
	return p, nil
}

// word returns the foreground for a word painted with the given blur.
func (p palette) word(blur float64) lipgloss.Color {
	if blur <= 0 {
		return lipgloss.Color(p.text.Hex())
	}
	t := blur / blurSaturation
	if t > 1 {
		t = 1
	}
	return lipgloss.Color(p.text.BlendLab(p.background, t*maxBlurFade).Clamped().Hex())
}

// frame returns the corner colour at the given effect opacity.
func (p palette) frame(opacity float64) lipgloss.Color {
	return lipgloss.Color(p.background.BlendLab(p.border, clampUnit(opacity)).Clamped().Hex())
}

// glowBackground tints the active word's cell background.
func (p palette) glowBackground(opacity float64) lipgloss.Color {
	return lipgloss.Color(p.background.BlendLab(p.glow, clampUnit(opacity)*glowStrength).Clamped().Hex())
}

func clampUnit(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
