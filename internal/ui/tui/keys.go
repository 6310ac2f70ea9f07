package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Focus      key.Binding
	ShortBreak key.Binding
	LongBreak  key.Binding
	Toggle     key.Binding
	Reset      key.Binding
	Stop       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Focus:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "focus")),
		ShortBreak: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "short break")),
		LongBreak:  key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "long break")),
		Toggle:     key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space", "pause/resume")),
		Reset:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Stop:       key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (keys keyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.Focus, keys.ShortBreak, keys.LongBreak, keys.Toggle, keys.Reset, keys.Stop, keys.Quit}
}

func (keys keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{keys.ShortHelp()}
}
