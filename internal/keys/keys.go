// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// AppKeys are active regardless of which pane has focus.
type AppKeys struct {
	SwitchFocus key.Binding
	Help        key.Binding
	Logs        key.Binding
	Quit        key.Binding
}

// FormKeys drive the registration form.
type FormKeys struct {
	Next       key.Binding
	Prev       key.Binding
	Submit     key.Binding
	Activate   key.Binding
	OptionPrev key.Binding
	OptionNext key.Binding
	Clear      key.Binding
}

// TableKeys drive the registered-users table.
type TableKeys struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Delete key.Binding
	Quit   key.Binding
}

// ModalKeys drive the delete confirmation.
type ModalKeys struct {
	Confirm key.Binding
	Cancel  key.Binding
	Toggle  key.Binding
	Select  key.Binding
}

// App holds global keybindings.
var App = AppKeys{
	SwitchFocus: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("ctrl+t", "switch form/table"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
	Logs: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("ctrl+x", "debug logs"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

// Form holds form keybindings.
var Form = FormKeys{
	Next: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("tab/↓", "next field"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("shift+tab/↑", "previous field"),
	),
	Submit: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "submit"),
	),
	Activate: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "next/submit"),
	),
	OptionPrev: key.NewBinding(
		key.WithKeys("left", "k"),
		key.WithHelp("←/k", "previous option"),
	),
	OptionNext: key.NewBinding(
		key.WithKeys("right", "j"),
		key.WithHelp("→/j", "next option"),
	),
	Clear: key.NewBinding(
		key.WithKeys("ctrl+u"),
		key.WithHelp("ctrl+u", "clear field"),
	),
}

// Table holds table keybindings.
var Table = TableKeys{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "move down"),
	),
	Top: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "first row"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "last row"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d", "delete"),
		key.WithHelp("d", "delete user"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
}

// Modal holds confirmation modal keybindings.
var Modal = ModalKeys{
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc", "n"),
		key.WithHelp("esc/n", "cancel"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("tab", "shift+tab", "left", "right", "h", "l"),
		key.WithHelp("tab", "switch button"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "choose"),
	),
}

// FormHelp implements help.KeyMap for the form pane.
type FormHelp struct{}

// ShortHelp returns keybindings for the short help view.
func (FormHelp) ShortHelp() []key.Binding {
	return []key.Binding{Form.Next, Form.Submit, App.SwitchFocus, App.Help, App.Quit}
}

// FullHelp returns keybindings for the full help view.
func (FormHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{Form.Next, Form.Prev, Form.Activate, Form.Submit},
		{Form.OptionPrev, Form.OptionNext, Form.Clear},
		{App.SwitchFocus, App.Logs, App.Help, App.Quit},
	}
}

// TableHelp implements help.KeyMap for the table pane.
type TableHelp struct{}

// ShortHelp returns keybindings for the short help view.
func (TableHelp) ShortHelp() []key.Binding {
	return []key.Binding{Table.Down, Table.Delete, App.SwitchFocus, App.Help, Table.Quit}
}

// FullHelp returns keybindings for the full help view.
func (TableHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{Table.Up, Table.Down, Table.Top, Table.Bottom},
		{Table.Delete},
		{App.SwitchFocus, App.Logs, App.Help, Table.Quit, App.Quit},
	}
}
