package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the whole front-end. Screens ignore
// bindings that do not apply to them.
type KeyMap struct {
	Next     key.Binding
	Favorite key.Binding
	Upvote   key.Binding
	Downvote key.Binding
	Open     key.Binding

	Profile key.Binding
	Create  key.Binding
	Login   key.Binding
	Logout  key.Binding

	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding

	Help key.Binding
	Quit key.Binding
}

func defaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("n", " "),
			key.WithHelp("n", "next activity"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "favorite"),
		),
		Upvote: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "thumbs up"),
		),
		Downvote: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "thumbs down"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "details"),
		),
		Profile: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "profile"),
		),
		Create: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "create"),
		),
		Login: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "log in"),
		),
		Logout: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "log out"),
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

// ShortHelp implements help.KeyMap for the footer line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Favorite, k.Upvote, k.Downvote, k.Profile, k.Create, k.Quit}
}

// FullHelp implements help.KeyMap for the expanded overlay.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Favorite, k.Upvote, k.Downvote, k.Open},
		{k.Profile, k.Create, k.Login, k.Logout},
		{k.Up, k.Down, k.Select, k.Back, k.Help, k.Quit},
	}
}
