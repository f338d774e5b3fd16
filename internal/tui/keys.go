package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Stop    key.Binding
	Restart key.Binding
	Edit    key.Binding
	Prev    key.Binding
	Next    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Stop:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop")),
		Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit sentence")),
		Prev:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous word")),
		Next:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next word")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Stop, k.Restart, k.Edit, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Stop, k.Restart, k.Edit},
		{k.Prev, k.Next},
		{k.Help, k.Quit},
	}
}

// setManual toggles the bindings that only make sense without the sweep.
func (k *keyMap) setManual(manual bool) {
	k.Prev.SetEnabled(manual)
	k.Next.SetEnabled(manual)
}
