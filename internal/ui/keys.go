package ui

import (
	"github.com/Cyclone1070/portfolio/internal/interaction"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
)

// KeyMap extends the interaction chords with page navigation.
type KeyMap struct {
	interaction.KeyMap

	Activate key.Binding
	Back     key.Binding
	Help     key.Binding
	Quit     key.Binding
	Scroll   viewport.KeyMap
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		KeyMap: interaction.DefaultKeyMap(),
		Activate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("backspace", "b"),
			key.WithHelp("b", "back"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Scroll: viewport.DefaultKeyMap(),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Activate, k.CopyEmail, k.FocusLinks, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Activate, k.Back},
		{k.Scroll.Up, k.Scroll.Down, k.Scroll.PageUp, k.Scroll.PageDown},
		{k.CopyEmail, k.FocusLinks, k.Close},
		{k.Help, k.Quit},
	}
}
