package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up, Down, Left, Right key.Binding
	Toggle, Delete, Edit  key.Binding
	Activate, SwitchArea  key.Binding
	Quit                  key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SwitchArea, k.Up, k.Down, k.Toggle, k.Edit, k.Delete, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Toggle, k.Edit, k.Delete, k.Activate},
		{k.SwitchArea, k.Quit},
	}
}

var listKeys = keyMap{
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev control")),
	Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next control")),
	Toggle:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
	Delete:     key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "delete")),
	Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Activate:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "activate")),
	SwitchArea: key.NewBinding(key.WithKeys("tab", "a", "i"), key.WithHelp("a/tab", "add")),
	Quit:       key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
}

// Entry and editor bindings never shadow printable keys.
var (
	entrySubmit = key.NewBinding(key.WithKeys("enter"))
	entryLeave  = key.NewBinding(key.WithKeys("tab", "down", "esc"))
	editCommit  = key.NewBinding(key.WithKeys("enter", "esc", "tab"))
	editUp      = key.NewBinding(key.WithKeys("up"))
	editDown    = key.NewBinding(key.WithKeys("down"))
)
