package tui

import "charm.land/bubbles/v2/key"

// KeyMap defines the global key bindings.
type KeyMap struct {
	Toggle key.Binding
	Reset  key.Binding
	Skip   key.Binding
	Mute   key.Binding
	Theme  key.Binding
	Sound  key.Binding
	Reload key.Binding
	Help   key.Binding
	Quit   key.Binding

	// Window controls are forwarded to the host.
	Hide     key.Binding
	Minimize key.Binding
	Close    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys("space", "p"),
			key.WithHelp("space", "play/pause"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Skip: key.NewBinding(
			key.WithKeys("s", "n"),
			key.WithHelp("s", "skip"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
		),
		Sound: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "choose sound"),
		),
		Reload: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reload"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Hide: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "hide"),
		),
		Minimize: key.NewBinding(
			key.WithKeys("_"),
			key.WithHelp("_", "minimize"),
		),
		Close: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "close"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Skip, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Reset, k.Skip},
		{k.Mute, k.Theme, k.Sound},
		{k.Hide, k.Minimize, k.Close},
		{k.Reload, k.Help, k.Quit},
	}
}
