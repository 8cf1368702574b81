package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists the bindings of the list view.
type KeyMap struct {
	Search     key.Binding
	Command    key.Binding
	Play       key.Binding
	Toggle     key.Binding
	Next       key.Binding
	Previous   key.Binding
	SeekBack   key.Binding
	SeekFwd    key.Binding
	Queue      key.Binding
	Remove     key.Binding
	Artist     key.Binding
	Album      key.Binding
	LoadMore   key.Binding
	Theme      key.Binding
	Quality    key.Binding
	Help       key.Binding
	Quit       key.Binding
	Cancel     key.Binding
	Confirm    key.Binding
	FocusQueue key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Command:    key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
		Play:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play")),
		Toggle:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		Next:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next")),
		Previous:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "previous")),
		SeekBack:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "-10s")),
		SeekFwd:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "+10s")),
		Queue:      key.NewBinding(key.WithKeys("Q"), key.WithHelp("Q", "queue")),
		Remove:     key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "remove from queue")),
		Artist:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "artist")),
		Album:      key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "album")),
		LoadMore:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "more")),
		Theme:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Quality:    key.NewBinding(key.WithKeys("0", "1", "2", "3", "4"), key.WithHelp("0-4", "quality")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Cancel:     key.NewBinding(key.WithKeys("esc")),
		Confirm:    key.NewBinding(key.WithKeys("enter")),
		FocusQueue: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch panel")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Play, k.Toggle, k.Next, k.Previous, k.Command, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.Command, k.Play, k.Toggle, k.Next, k.Previous},
		{k.SeekBack, k.SeekFwd, k.Queue, k.FocusQueue, k.Remove},
		{k.Artist, k.Album, k.LoadMore, k.Theme, k.Quality, k.Quit},
	}
}
