package tui

import (
	"strconv"

	zone "github.com/lrstanley/bubblezone"

	"github.com/csheth/truefocus/internal/focus"
)

// zoneMeasurer reads word and container boxes from the zones recorded by the
// last scanned view. Boxes are in terminal cells.
type zoneMeasurer struct {
	zones  *zone.Manager
	prefix string
}

func newZoneMeasurer(zones *zone.Manager) *zoneMeasurer {
	return &zoneMeasurer{zones: zones, prefix: zones.NewPrefix()}
}

func (z *zoneMeasurer) containerID() string { return z.prefix + "canvas" }

func (z *zoneMeasurer) wordID(index int) string { return z.prefix + "word-" + strconv.Itoa(index) }

func (z *zoneMeasurer) Container() (focus.Rect, bool) {
	return rectOf(z.zones.Get(z.containerID()))
}

func (z *zoneMeasurer) Word(index int) (focus.Rect, bool) {
	return rectOf(z.zones.Get(z.wordID(index)))
}

func rectOf(info *zone.ZoneInfo) (focus.Rect, bool) {
	if info.IsZero() {
		return focus.Rect{}, false
	}
	return focus.Rect{
		X:      float64(info.StartX),
		Y:      float64(info.StartY),
		Width:  float64(info.EndX - info.StartX + 1),
		Height: float64(info.EndY - info.StartY + 1),
	}, true
}
