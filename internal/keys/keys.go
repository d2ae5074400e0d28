// Package keys contains keybinding definitions.
//
// Editing keys are interpreted by the editor engine itself; the bindings
// here are the few the terminal front end handles before a key reaches it.
package keys

import "github.com/charmbracelet/bubbles/key"

// AppKeyMap defines the keybindings owned by the front end.
type AppKeyMap struct {
	ForceQuit key.Binding
	Redraw    key.Binding
}

// DefaultAppKeyMap returns the default front end keybindings.
func DefaultAppKeyMap() AppKeyMap {
	return AppKeyMap{
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit without saving"),
		),
		Redraw: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "redraw screen"),
		),
	}
}

// App is the active front end keymap.
var App = DefaultAppKeyMap()
