package tui

import (
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"

	"github.com/csheth/truefocus/internal/focus"
)

// placedWord is one word's cell position on the canvas.
type placedWord struct {
	text  string
	row   int
	col   int
	width int
}

// canvasLayout places words on a grid where every text line has an empty
// gutter row above and below it. The gutters carry the frame corners.
type canvasLayout struct {
	words  []placedWord
	width  int
	height int
}

func newCanvasLayout(words []string, maxWidth int) canvasLayout {
	if maxWidth < minCanvasWidth {
		maxWidth = minCanvasWidth
	}
	// one cell each side for the corner glyphs
	usable := maxWidth - 2*canvasMargin

	layout := canvasLayout{words: make([]placedWord, len(words))}
	line := 0
	col := canvasMargin
	for i, word := range words {
		width := ansi.PrintableRuneWidth(word)
		if width > usable {
			word = truncate.StringWithTail(word, uint(usable), "…")
			width = ansi.PrintableRuneWidth(word)
		}
		if col > canvasMargin && col+width > maxWidth-canvasMargin {
			line++
			col = canvasMargin
		}
		layout.words[i] = placedWord{text: word, row: 2*line + 1, col: col, width: width}
		if end := col + width + canvasMargin; end > layout.width {
			layout.width = end
		}
		col += width + wordGap
	}
	layout.height = 2*(line+1) + 1
	return layout
}

// wordsOnRow returns the indexes of the words placed on row, left to right.
func (l canvasLayout) wordsOnRow(row int) []int {
	var idx []int
	for i, w := range l.words {
		if w.row == row {
			idx = append(idx, i)
		}
	}
	return idx
}

// corners are the four glyph positions around a focus rect.
type corners struct {
	top, bottom, left, right int
}

func cornersFor(rect focus.Rect) corners {
	return corners{
		top:    int(rect.Y) - 1,
		bottom: int(rect.Y + rect.Height),
		left:   int(rect.X) - 1,
		right:  int(rect.X + rect.Width),
	}
}

// gutterRow renders an empty row with any corner glyphs that fall on it.
func gutterRow(width, row int, c *corners, paint func(string) string) string {
	if c == nil || (row != c.top && row != c.bottom) {
		return strings.Repeat(" ", width)
	}
	left, right := "┌", "┐"
	if row == c.bottom {
		left, right = "└", "┘"
	}
	var b strings.Builder
	for x := 0; x < width; x++ {
		switch x {
		case c.left:
			b.WriteString(paint(left))
		case c.right:
			b.WriteString(paint(right))
		default:
			b.WriteByte(' ')
		}
	}
	return b.String()
}
