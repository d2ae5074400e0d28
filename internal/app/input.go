package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/kilovim/internal/editor"
)

// translateKey converts a Bubble Tea key event into editor keys. Rune
// messages may carry several characters (typed fast or pasted); each ASCII
// byte becomes one key and anything outside ASCII is dropped.
func translateKey(msg tea.KeyMsg) []editor.Key {
	switch msg.Type {
	case tea.KeyRunes:
		keys := make([]editor.Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			if r < 0x80 {
				keys = append(keys, editor.Key(r))
			}
		}
		return keys
	case tea.KeySpace:
		return []editor.Key{' '}
	case tea.KeyUp:
		return []editor.Key{editor.KeyUp}
	case tea.KeyDown:
		return []editor.Key{editor.KeyDown}
	case tea.KeyLeft:
		return []editor.Key{editor.KeyLeft}
	case tea.KeyRight:
		return []editor.Key{editor.KeyRight}
	case tea.KeyHome:
		return []editor.Key{editor.KeyHome}
	case tea.KeyEnd:
		return []editor.Key{editor.KeyEnd}
	case tea.KeyPgUp:
		return []editor.Key{editor.KeyPageUp}
	case tea.KeyPgDown:
		return []editor.Key{editor.KeyPageDown}
	case tea.KeyDelete:
		return []editor.Key{editor.KeyDelete}
	}

	// Control characters, Enter, Tab, Escape and Backspace carry their
	// ASCII code as the key type.
	if t := int(msg.Type); (t >= 0 && t < 0x20) || t == 0x7f {
		return []editor.Key{editor.Key(t)}
	}
	return nil
}
