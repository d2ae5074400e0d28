package editor

import (
	"bytes"

	"github.com/zjrosen/kilovim/internal/editor/motion"
)

// ============================================================================
// In-place Edits
// ============================================================================

// ToggleCaseCommand flips the case of count ASCII letters, advancing past
// each byte (~). Non-letters are stepped over unchanged.
type ToggleCaseCommand struct{ EditBase }

func (c *ToggleCaseCommand) Execute(e *Engine) ExecuteResult {
	n := e.buf.LineLen(e.line)
	if e.col >= n {
		return Skipped
	}
	line := bytes.Clone(e.currentLine())
	for range e.count() {
		if e.col >= n {
			break
		}
		switch b := line[e.col]; {
		case b >= 'a' && b <= 'z':
			line[e.col] = b - 32
		case b >= 'A' && b <= 'Z':
			line[e.col] = b + 32
		}
		e.col++
	}
	if e.recovered("edit.toggle_case", e.buf.ReplaceLine(e.line, line)) {
		return Skipped
	}
	return Executed
}

func (c *ToggleCaseCommand) Keys() []string { return []string{"~"} }
func (c *ToggleCaseCommand) Mode() Mode     { return ModeNormal }
func (c *ToggleCaseCommand) ID() string     { return "edit.toggle_case" }

// EnterReplaceCharCommand waits for the replacement byte (r). The repeat
// count carries over to that key.
type EnterReplaceCharCommand struct{ ModeEntryBase }

func (c *EnterReplaceCharCommand) Execute(e *Engine) ExecuteResult {
	e.pending.Clear()
	return Executed
}

func (c *EnterReplaceCharCommand) Keys() []string   { return []string{"r"} }
func (c *EnterReplaceCharCommand) Mode() Mode       { return ModeNormal }
func (c *EnterReplaceCharCommand) ID() string       { return "mode.replace_char" }
func (c *EnterReplaceCharCommand) NextMode() Mode   { return ModeReplaceChar }
func (c *EnterReplaceCharCommand) keepsCount() bool { return true }

// ReplaceCharCommand overwrites count bytes from the cursor with ch, leaving
// the cursor on the last byte replaced.
type ReplaceCharCommand struct {
	EditBase
	ch byte
}

func (c *ReplaceCharCommand) Execute(e *Engine) ExecuteResult {
	n := min(e.count(), e.buf.LineLen(e.line)-e.col)
	if n <= 0 {
		return Skipped
	}
	line := bytes.Clone(e.currentLine())
	for i := range n {
		line[e.col+i] = c.ch
	}
	if e.recovered("edit.replace_char", e.buf.ReplaceLine(e.line, line)) {
		return Skipped
	}
	e.col += n - 1
	return Executed
}

func (c *ReplaceCharCommand) Keys() []string { return []string{string(c.ch)} }
func (c *ReplaceCharCommand) Mode() Mode     { return ModeReplaceChar }
func (c *ReplaceCharCommand) ID() string     { return "edit.replace_char" }
func (c *ReplaceCharCommand) NextMode() Mode { return ModeNormal }

// CancelReplaceCharCommand abandons a pending r (<escape>).
type CancelReplaceCharCommand struct{ ModeEntryBase }

func (c *CancelReplaceCharCommand) Execute(e *Engine) ExecuteResult { return Executed }
func (c *CancelReplaceCharCommand) Keys() []string                  { return []string{"<escape>"} }
func (c *CancelReplaceCharCommand) Mode() Mode                      { return ModeReplaceChar }
func (c *CancelReplaceCharCommand) ID() string                      { return "mode.normal" }
func (c *CancelReplaceCharCommand) NextMode() Mode                  { return ModeNormal }

// ============================================================================
// Indentation
// ============================================================================

// IndentLinesCommand shifts count lines right by the indent width (>>).
type IndentLinesCommand struct{ EditBase }

func (c *IndentLinesCommand) Execute(e *Engine) ExecuteResult {
	if e.buf.IsEmpty() {
		return Skipped
	}
	shiftLines(e, e.line, min(e.line+e.count()-1, e.buf.Len()-1), true)
	return Executed
}

func (c *IndentLinesCommand) Keys() []string { return []string{">>"} }
func (c *IndentLinesCommand) Mode() Mode     { return ModeNormal }
func (c *IndentLinesCommand) ID() string     { return "edit.indent" }

// UnindentLinesCommand shifts count lines left by up to the indent width (<<).
type UnindentLinesCommand struct{ EditBase }

func (c *UnindentLinesCommand) Execute(e *Engine) ExecuteResult {
	if e.buf.IsEmpty() {
		return Skipped
	}
	shiftLines(e, e.line, min(e.line+e.count()-1, e.buf.Len()-1), false)
	return Executed
}

func (c *UnindentLinesCommand) Keys() []string { return []string{"<<"} }
func (c *UnindentLinesCommand) Mode() Mode     { return ModeNormal }
func (c *UnindentLinesCommand) ID() string     { return "edit.unindent" }

// shiftLines indents or unindents lines first..last, skipping empty ones, and
// leaves the cursor on the first non-blank of the cursor line.
func shiftLines(e *Engine, first, last int, right bool) {
	spaces := bytes.Repeat([]byte{' '}, e.indentWidth)
	for l := first; l <= last; l++ {
		line := e.buf.Line(l)
		if len(line) == 0 {
			continue
		}
		var err error
		if right {
			err = e.buf.InsertBytes(l, 0, spaces)
		} else {
			_, err = e.buf.DeleteRange(l, 0, min(e.indentWidth, motion.IndentAmount(line)))
		}
		if e.recovered("edit.shift", err) {
			return
		}
	}
	e.col = motion.IndentAmount(e.currentLine())
}
