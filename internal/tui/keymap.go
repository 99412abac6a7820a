package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings of the browse screen.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	View      key.Binding
	Clear     key.Binding
	Upload    key.Binding
	Ask       key.Binding
	Delete    key.Binding
	DeleteAll key.Binding
	Refresh   key.Binding
	Quit      key.Binding

	// Confirm and Cancel answer prompts and close input fields.
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		View:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "view")),
		Clear:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
		Upload:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "upload")),
		Ask:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "ask")),
		Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		DeleteAll: key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete all")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Confirm:   key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
		Cancel:    key.NewBinding(key.WithKeys("esc", "n", "N"), key.WithHelp("n/esc", "no")),
	}
}

// ShortHelp lists the browse bindings in display order.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.View, k.Clear, k.Upload, k.Ask, k.Delete, k.DeleteAll, k.Refresh, k.Quit}
}
