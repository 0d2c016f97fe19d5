package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Home       key.Binding
	Schedule   key.Binding
	Medicines  key.Binding
	Register   key.Binding
	Chat       key.Binding
	Report     key.Binding
	Conditions key.Binding

	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Back    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Toggle  key.Binding

	Refresh key.Binding
	Theme   key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Home: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "home"),
		),
		Schedule: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "schedule"),
		),
		Medicines: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "medicines"),
		),
		Register: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "register"),
		),
		Chat: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "chat"),
		),
		Report: key.NewBinding(
			key.WithKeys("6"),
			key.WithHelp("6", "analyze"),
		),
		Conditions: key.NewBinding(
			key.WithKeys("7"),
			key.WithHelp("7", "conditions"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "l"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev tab"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "mark taken"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
