package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	Quit      key.Binding
	ForceQuit key.Binding
	Ask       key.Binding
	TopUp     key.Binding
	TopDown   key.Binding
	Results   key.Binding
	Edit      key.Binding
	Next      key.Binding
	Toggle    key.Binding
	ScrollUp  key.Binding
	ScrollDn  key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Ask: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "ask"),
		),
		TopUp: key.NewBinding(
			key.WithKeys("ctrl+right", "+"),
			key.WithHelp("ctrl+→/+", "more docs"),
		),
		TopDown: key.NewBinding(
			key.WithKeys("ctrl+left", "-"),
			key.WithHelp("ctrl+←/-", "fewer docs"),
		),
		Results: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "results"),
		),
		Edit: key.NewBinding(
			key.WithKeys("/", "i"),
			key.WithHelp("/", "edit question"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next document"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "expand"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("up", "k", "pgup"),
			key.WithHelp("↑/k", "scroll up"),
		),
		ScrollDn: key.NewBinding(
			key.WithKeys("down", "j", "pgdown"),
			key.WithHelp("↓/j", "scroll down"),
		),
	}
}
