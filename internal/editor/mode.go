// Package editor is kilovim's modal command interpreter. An Engine owns one
// editing session: the buffer, the cursor, the undo snapshot, the registers
// and the current mode. HandleKey consumes one abstract key at a time and
// returns a RenderState describing what the front end should draw.
package editor

// Mode represents the current editing mode.
type Mode int

const (
	// ModeNormal is the default mode for navigation and commands.
	ModeNormal Mode = iota
	// ModeInsert is the mode for inserting text.
	ModeInsert
	// ModeCommandLine collects an ex command after ':'.
	ModeCommandLine
	// ModeVisualLine selects whole lines.
	ModeVisualLine
	// ModeVisualChar selects a column range on one line.
	ModeVisualChar
	// ModeReplaceChar waits for the byte that replaces the cursor byte ('r').
	ModeReplaceChar
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	case ModeCommandLine:
		return "COMMAND"
	case ModeVisualLine:
		return "VISUAL LINE"
	case ModeVisualChar:
		return "VISUAL"
	case ModeReplaceChar:
		return "REPLACE"
	default:
		return "UNKNOWN"
	}
}

// IsVisual reports whether m shows a highlight.
func (m Mode) IsVisual() bool {
	return m == ModeVisualLine || m == ModeVisualChar
}
