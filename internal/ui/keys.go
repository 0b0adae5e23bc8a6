package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Pause     key.Binding
	Theme     key.Binding
	PrevTheme key.Binding
	Mode      key.Binding
	Scale     key.Binding
	Layout    key.Binding
	Radial    key.Binding
	Mirror    key.Binding
	Leds      key.Binding
	Peaks     key.Binding
	Color     key.Binding
	Weighting key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Pause:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause")),
		Theme:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t/T", "theme")),
		PrevTheme: key.NewBinding(key.WithKeys("T")),
		Mode:      key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "bands")),
		Scale:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "scale")),
		Layout:    key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "channels")),
		Radial:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "radial")),
		Mirror:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mirror")),
		Leds:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "leds")),
		Peaks:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "peaks")),
		Color:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "color mode")),
		Weighting: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "weighting")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Theme, k.Mode, k.Radial, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.Theme, k.Color},
		{k.Mode, k.Scale, k.Weighting},
		{k.Layout, k.Radial, k.Mirror},
		{k.Leds, k.Peaks, k.Help, k.Quit},
	}
}

func isQuit(k keyMap, msg tea.KeyMsg) bool {
	return key.Matches(msg, k.Quit)
}
