package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/truefocus/internal/focus"
)

func (m *model) View() string {
	frame := m.ctrl.Frame()
	marks := !m.quitting

	parts := []string{
		m.headerView(),
		m.canvasView(frame, marks),
		m.statusView(frame),
	}
	if m.stage == stageEdit {
		parts = append(parts, editorBoxStyle.Render(m.editor.View()))
	}
	if m.errorMessage != "" {
		parts = append(parts, errorStyle.Render(wordwrap.String(m.errorMessage, m.textWidth())))
	}
	if m.infoMessage != "" {
		parts = append(parts, helperStyle.Render(m.infoMessage))
	}
	parts = append(parts, m.helpView())

	out := joinNonEmpty(parts)
	if !marks {
		return out
	}
	return m.zones.Scan(out)
}

func (m *model) headerView() string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		titleStyle.Render("TrueFocus"),
		"  ",
		taglineStyle.Render(heroTagline),
	)
}

// canvasView paints the words and the corner frame. With marks set every
// word and the canvas itself are wrapped in zones for measurement.
func (m *model) canvasView(frame focus.Frame, marks bool) string {
	var c *corners
	if frame.FrameVisible {
		found := cornersFor(frame.Rect)
		c = &found
	}
	frameStyle := lipgloss.NewStyle().Foreground(m.palette.frame(frame.FrameOpacity))
	paint := func(s string) string { return frameStyle.Render(s) }

	width := m.layout.width
	if c != nil && c.right >= width {
		width = c.right + 1
	}
	rows := make([]string, m.layout.height)
	for row := range rows {
		if row%2 == 0 {
			rows[row] = gutterRow(width, row, c, paint)
			continue
		}
		rows[row] = m.wordRow(row, width, frame, marks)
	}
	canvas := strings.Join(rows, "\n")
	if marks {
		canvas = m.zones.Mark(m.measure.containerID(), canvas)
	}
	return canvas
}

func (m *model) wordRow(row, width int, frame focus.Frame, marks bool) string {
	var b strings.Builder
	col := 0
	for _, i := range m.layout.wordsOnRow(row) {
		placed := m.layout.words[i]
		b.WriteString(strings.Repeat(" ", placed.col-col))

		style := lipgloss.NewStyle()
		if i < len(frame.Words) {
			state := frame.Words[i]
			style = style.Foreground(m.palette.word(state.Blur))
			if state.Active {
				style = style.Bold(true)
				if frame.FrameVisible {
					style = style.Background(m.palette.glowBackground(frame.FrameOpacity))
				}
			}
		}
		text := style.Render(placed.text)
		if marks {
			text = m.zones.Mark(m.measure.wordID(i), text)
		}
		b.WriteString(text)
		col = placed.col + placed.width
	}
	if col < width {
		b.WriteString(strings.Repeat(" ", width-col))
	}
	return b.String()
}

func (m *model) statusView(frame focus.Frame) string {
	mode := "AUTO"
	if m.ctrl.Manual() {
		mode = "MANUAL"
	}
	stats := []string{
		mode,
		strings.ToUpper(frame.Phase.String()),
		fmt.Sprintf("word %d/%d", frame.Index+1, len(frame.Words)),
		fmt.Sprintf("opacity %.2f", frame.Opacity),
	}
	if m.stage == stageEdit {
		stats = append(stats, "EDIT")
	}
	return statusBarStyle.Render(wordwrap.String(strings.Join(stats, "  •  "), m.textWidth()))
}

func (m *model) helpView() string {
	view := m.help.View(m.keys)
	if m.helpVisible {
		return helpBoxStyle.Render(view)
	}
	return view
}

func (m *model) textWidth() int {
	if w := m.width - 4; w > 20 {
		return w
	}
	return 20
}

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n\n")
}
