package tui

import (
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/csheth/truefocus/internal/focus"
)

// Config wires runtime options into the TUI program.
type Config struct {
	Focus  focus.Config
	Colors Colors
	// Width is the canvas width used until the terminal reports its size.
	Width int
}

// New returns a tea.Model ready to be mounted into a Program. It fails when
// the focus configuration or a colour is invalid.
func New(config Config) (tea.Model, error) {
	return newModel(config)
}

func newModel(config Config) (*model, error) {
	pal, err := newPalette(config.Colors)
	if err != nil {
		return nil, err
	}
	zones := zone.New()
	measure := newZoneMeasurer(zones)
	ctrl, err := focus.New(config.Focus, measure)
	if err != nil {
		zones.Close()
		return nil, err
	}

	editor := textinput.New()
	editor.Placeholder = "Type a new sentence…"
	editor.CharLimit = 160
	editor.Width = 60

	width := config.Width
	if width <= 0 {
		width = defaultCanvasWidth
	}
	m := &model{
		config:      config,
		stage:       stagePlay,
		keys:        newKeyMap(),
		help:        help.New(),
		editor:      editor,
		zones:       zones,
		measure:     measure,
		palette:     pal,
		ctrl:        ctrl,
		width:       width,
		hovered:     -1,
		infoMessage: introMessage(ctrl),
	}
	m.keys.setManual(ctrl.Manual())
	m.relayout()
	return m, nil
}

type model struct {
	config Config
	stage  stage

	keys    keyMap
	help    help.Model
	editor  textinput.Model
	zones   *zone.Manager
	measure *zoneMeasurer
	palette palette

	ctrl   *focus.Controller
	layout canvasLayout

	width             int
	generation        int
	measureGeneration int
	measureAttempts   int
	hovered           int
	helpVisible       bool
	quitting          bool
	infoMessage       string
	errorMessage      string
}

func introMessage(ctrl *focus.Controller) string {
	if ctrl.Manual() {
		return "Hover a word or use ←/→ to move the focus."
	}
	return fmt.Sprintf("Sweeping %d word(s). Press s to stop.", ctrl.Len())
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(m.scheduleTick(), m.scheduleMeasure())
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.stage == stageEdit {
			return m.handleEditKey(msg)
		}
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	case tickMsg:
		if msg.generation != m.generation {
			return m, nil
		}
		before := m.ctrl.Phase()
		if !m.ctrl.Step(msg.at) {
			return m, nil
		}
		if after := m.ctrl.Phase(); after != before {
			log.Printf("[tui] phase %s -> %s (index=%d)", before, after, m.ctrl.ActiveIndex())
			if after == focus.PhaseDone {
				m.infoMessage = "Done. Press r to replay."
			}
		}
		return m, tea.Batch(m.scheduleTick(), m.measureIfPending())
	case measureMsg:
		if msg.generation != m.measureGeneration || !m.ctrl.Tracker().Pending() {
			return m, nil
		}
		m.ctrl.Remeasure()
		if !m.ctrl.Tracker().Pending() || m.measureAttempts >= maxMeasureAttempts {
			return m, nil
		}
		m.measureAttempts++
		return m, measureAfter(msg.generation)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.relayout()
		m.ctrl.Tracker().Invalidate()
		return m, m.scheduleMeasure()
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit()
	case key.Matches(msg, m.keys.Stop):
		m.stop("key")
	case key.Matches(msg, m.keys.Restart):
		return m, m.restart()
	case key.Matches(msg, m.keys.Edit):
		m.stage = stageEdit
		m.editor.SetValue(m.ctrl.Config().Sentence)
		m.editor.CursorEnd()
		m.errorMessage = ""
		m.infoMessage = "Enter to apply, Esc to cancel."
		return m, m.editor.Focus()
	case key.Matches(msg, m.keys.Help):
		m.helpVisible = !m.helpVisible
		m.help.ShowAll = m.helpVisible
	case key.Matches(msg, m.keys.Prev):
		return m, m.focusWord(m.ctrl.ActiveIndex() - 1)
	case key.Matches(msg, m.keys.Next):
		return m, m.focusWord(m.ctrl.ActiveIndex() + 1)
	}
	return m, nil
}

func (m *model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, m.quit()
	case tea.KeyEsc:
		m.stage = stagePlay
		m.editor.Blur()
		m.infoMessage = "Edit canceled."
		return m, nil
	case tea.KeyEnter:
		return m, m.applySentence(m.editor.Value())
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

// applySentence swaps in a controller for value. An invalid sentence leaves
// the running effect untouched.
func (m *model) applySentence(value string) tea.Cmd {
	m.stage = stagePlay
	m.editor.Blur()

	cfg := m.ctrl.Config()
	cfg.Sentence = value
	if err := cfg.Validate(); err != nil {
		m.errorMessage = err.Error()
		m.infoMessage = "Kept the previous sentence."
		return nil
	}
	m.clearZones()
	ctrl, err := focus.New(cfg, m.measure)
	if err != nil {
		m.errorMessage = err.Error()
		return nil
	}
	ctrl.Tracker().Invalidate()
	m.ctrl = ctrl
	m.hovered = -1
	m.errorMessage = ""
	m.infoMessage = introMessage(ctrl)
	m.relayout()
	log.Printf("[tui] sentence replaced (%d words)", ctrl.Len())
	return tea.Batch(m.scheduleTick(), m.scheduleMeasure())
}

func (m *model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if !m.ctrl.Manual() || m.ctrl.Done() || m.quitting {
		return nil
	}
	if msg.Action != tea.MouseActionMotion && msg.Action != tea.MouseActionPress {
		return nil
	}
	idx := m.wordAt(msg)
	switch {
	case idx >= 0 && idx != m.hovered:
		m.hovered = idx
		return m.focusWord(idx)
	case idx < 0 && m.hovered >= 0:
		m.hovered = -1
		m.ctrl.Unfocus()
		return m.measureIfPending()
	}
	return nil
}

func (m *model) wordAt(msg tea.MouseMsg) int {
	for i := range m.layout.words {
		if m.zones.Get(m.measure.wordID(i)).InBounds(msg) {
			return i
		}
	}
	return -1
}

// focusWord moves the manual focus; indexes past either end are ignored.
func (m *model) focusWord(index int) tea.Cmd {
	if index < 0 || index >= m.ctrl.Len() {
		return nil
	}
	if _, err := m.ctrl.Focus(index); err != nil {
		m.errorMessage = err.Error()
		return nil
	}
	return m.measureIfPending()
}

func (m *model) stop(reason string) {
	m.generation++
	if m.ctrl.Stop() {
		log.Printf("[tui] stopped by %s at index %d", reason, m.ctrl.ActiveIndex())
		m.infoMessage = "Stopped. Press r to replay."
	}
}

func (m *model) restart() tea.Cmd {
	m.ctrl.Reset()
	m.hovered = -1
	m.errorMessage = ""
	m.infoMessage = introMessage(m.ctrl)
	log.Printf("[tui] restarted")
	return tea.Batch(m.scheduleTick(), m.measureIfPending())
}

func (m *model) quit() tea.Cmd {
	m.stop("quit")
	m.quitting = true
	m.zones.Close()
	return tea.Quit
}

// scheduleTick supersedes any pending tick and schedules the next one.
func (m *model) scheduleTick() tea.Cmd {
	m.generation++
	delay, ok := m.ctrl.NextDelay()
	if !ok {
		return nil
	}
	generation := m.generation
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return tickMsg{generation: generation, at: t}
	})
}

func (m *model) scheduleMeasure() tea.Cmd {
	m.measureGeneration++
	m.measureAttempts = 0
	return measureAfter(m.measureGeneration)
}

func (m *model) measureIfPending() tea.Cmd {
	if !m.ctrl.Tracker().Pending() {
		return nil
	}
	return m.scheduleMeasure()
}

func measureAfter(generation int) tea.Cmd {
	return tea.Tick(measureInterval, func(time.Time) tea.Msg {
		return measureMsg{generation: generation}
	})
}

func (m *model) relayout() {
	m.layout = newCanvasLayout(m.ctrl.Words(), m.width)
}

// clearZones forgets the word boxes of the current layout so a new sentence
// is never measured against them.
func (m *model) clearZones() {
	for i := range m.layout.words {
		m.zones.Clear(m.measure.wordID(i))
	}
}
