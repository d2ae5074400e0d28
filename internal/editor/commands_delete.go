package editor

import (
	"github.com/zjrosen/kilovim/internal/editor/motion"
	"github.com/zjrosen/kilovim/internal/log"
)

// recovered logs a buffer error and reports whether one occurred. Buffer
// errors are recoverable no-ops at the command level.
func (e *Engine) recovered(op string, err error) bool {
	if err == nil {
		return false
	}
	log.Debug(log.CatEdit, "recovered", "op", op, "error", err)
	return true
}

// ============================================================================
// Delete Commands
// ============================================================================

// DeleteCharCommand deletes count bytes starting under the cursor (x).
type DeleteCharCommand struct{ EditBase }

func (c *DeleteCharCommand) Execute(e *Engine) ExecuteResult {
	if !deleteChars(e) {
		return Skipped
	}
	return Executed
}

func (c *DeleteCharCommand) Keys() []string { return []string{"x"} }
func (c *DeleteCharCommand) Mode() Mode     { return ModeNormal }
func (c *DeleteCharCommand) ID() string     { return "delete.char" }

// deleteChars removes up to count bytes from the cursor to the end of the line.
func deleteChars(e *Engine) bool {
	n := min(e.count(), e.buf.LineLen(e.line)-e.col)
	if n <= 0 {
		return false
	}
	_, err := e.buf.DeleteRange(e.line, e.col, e.col+n)
	return !e.recovered("delete.char", err)
}

// SubstituteCharCommand deletes count bytes and enters Insert mode (s).
type SubstituteCharCommand struct{ EditBase }

func (c *SubstituteCharCommand) Execute(e *Engine) ExecuteResult {
	deleteChars(e)
	e.status = insertStatus
	return Executed
}

func (c *SubstituteCharCommand) Keys() []string { return []string{"s"} }
func (c *SubstituteCharCommand) Mode() Mode     { return ModeNormal }
func (c *SubstituteCharCommand) ID() string     { return "change.char" }
func (c *SubstituteCharCommand) NextMode() Mode { return ModeInsert }

// DeleteLineCommand deletes count lines starting at the cursor line into the
// line register (dd). The count is clamped to the lines remaining.
type DeleteLineCommand struct{ EditBase }

func (c *DeleteLineCommand) Execute(e *Engine) ExecuteResult {
	if e.buf.IsEmpty() {
		return Skipped
	}
	n := min(e.count(), e.buf.Len()-e.line)
	e.regs.YankLines(e.buf, e.line, n)
	deleteLines(e, e.line, n)
	e.col = 0
	return Executed
}

func (c *DeleteLineCommand) Keys() []string { return []string{"dd"} }
func (c *DeleteLineCommand) Mode() Mode     { return ModeNormal }
func (c *DeleteLineCommand) ID() string     { return "delete.line" }

func deleteLines(e *Engine, start, n int) {
	for range n {
		if _, err := e.buf.DeleteLine(start); e.recovered("delete.line", err) {
			return
		}
	}
}

// DeleteWordCommand deletes to the end of the word plus one following byte (dw).
type DeleteWordCommand struct{ EditBase }

func (c *DeleteWordCommand) Execute(e *Engine) ExecuteResult {
	deleted := false
	for range e.count() {
		if e.buf.LineLen(e.line) == 0 {
			break
		}
		end := motion.WordEndInclusive(e.buf, e.pos()).Col
		removed, err := e.buf.DeleteRange(e.line, e.col, end+2)
		if e.recovered("delete.word", err) || len(removed) == 0 {
			break
		}
		deleted = true
	}
	if !deleted {
		return Skipped
	}
	return Executed
}

func (c *DeleteWordCommand) Keys() []string { return []string{"dw"} }
func (c *DeleteWordCommand) Mode() Mode     { return ModeNormal }
func (c *DeleteWordCommand) ID() string     { return "delete.word" }

// DeleteToWordEndCommand deletes through the end of the next word end (de).
type DeleteToWordEndCommand struct{ EditBase }

func (c *DeleteToWordEndCommand) Execute(e *Engine) ExecuteResult {
	if !deleteToWordEnd(e) {
		return Skipped
	}
	return Executed
}

func (c *DeleteToWordEndCommand) Keys() []string { return []string{"de"} }
func (c *DeleteToWordEndCommand) Mode() Mode     { return ModeNormal }
func (c *DeleteToWordEndCommand) ID() string     { return "delete.word_end" }

// deleteToWordEnd removes [cursor, e-motion target] count times without
// crossing onto the next line.
func deleteToWordEnd(e *Engine) bool {
	deleted := false
	for range e.count() {
		n := e.buf.LineLen(e.line)
		if e.col >= n {
			break
		}
		p := motion.WordEnd(e.buf, e.pos())
		end := p.Col
		if p.Line != e.line {
			end = n - 1
		}
		removed, err := e.buf.DeleteRange(e.line, e.col, end+1)
		if e.recovered("delete.word_end", err) || len(removed) == 0 {
			break
		}
		deleted = true
	}
	return deleted
}

// DeleteToEOLCommand truncates the line at the cursor and removes count-1
// following lines (d$).
type DeleteToEOLCommand struct{ EditBase }

func (c *DeleteToEOLCommand) Execute(e *Engine) ExecuteResult {
	if e.buf.IsEmpty() {
		return Skipped
	}
	if _, err := e.buf.Truncate(e.line, e.col); e.recovered("delete.eol", err) {
		return Skipped
	}
	extra := min(e.count()-1, e.buf.Len()-e.line-1)
	deleteLines(e, e.line+1, extra)
	return Executed
}

func (c *DeleteToEOLCommand) Keys() []string { return []string{"d$"} }
func (c *DeleteToEOLCommand) Mode() Mode     { return ModeNormal }
func (c *DeleteToEOLCommand) ID() string     { return "delete.eol" }

// DeleteAroundWordCommand deletes the word under the cursor and the byte
// after it (daw).
type DeleteAroundWordCommand struct{ EditBase }

func (c *DeleteAroundWordCommand) Execute(e *Engine) ExecuteResult {
	if !deleteAroundWord(e) {
		return Skipped
	}
	return Executed
}

func (c *DeleteAroundWordCommand) Keys() []string { return []string{"daw"} }
func (c *DeleteAroundWordCommand) Mode() Mode     { return ModeNormal }
func (c *DeleteAroundWordCommand) ID() string     { return "delete.around_word" }

func deleteAroundWord(e *Engine) bool {
	deleted := false
	for range e.count() {
		start, end, ok := motion.WordBounds(e.currentLine(), e.col)
		if !ok {
			break
		}
		if _, err := e.buf.DeleteRange(e.line, start, end+1); e.recovered("delete.around_word", err) {
			break
		}
		e.col = start
		deleted = true
	}
	return deleted
}

// ============================================================================
// Change Commands
// ============================================================================

// ChangeWordCommand deletes to the word end and enters Insert mode (cw).
type ChangeWordCommand struct{ EditBase }

func (c *ChangeWordCommand) Execute(e *Engine) ExecuteResult {
	deleteToWordEnd(e)
	e.status = insertStatus
	return Executed
}

func (c *ChangeWordCommand) Keys() []string { return []string{"cw"} }
func (c *ChangeWordCommand) Mode() Mode     { return ModeNormal }
func (c *ChangeWordCommand) ID() string     { return "change.word" }
func (c *ChangeWordCommand) NextMode() Mode { return ModeInsert }

// ChangeAroundWordCommand deletes the word under the cursor with its
// trailing byte and enters Insert mode (caw).
type ChangeAroundWordCommand struct{ EditBase }

func (c *ChangeAroundWordCommand) Execute(e *Engine) ExecuteResult {
	deleteAroundWord(e)
	e.status = insertStatus
	return Executed
}

func (c *ChangeAroundWordCommand) Keys() []string { return []string{"caw"} }
func (c *ChangeAroundWordCommand) Mode() Mode     { return ModeNormal }
func (c *ChangeAroundWordCommand) ID() string     { return "change.around_word" }
func (c *ChangeAroundWordCommand) NextMode() Mode { return ModeInsert }

// ============================================================================
// Insert Mode Deletion
// ============================================================================

// BackspaceCommand deletes the byte before the cursor, joining with the
// previous line at column 0 (<backspace>).
type BackspaceCommand struct{ EditBase }

func (c *BackspaceCommand) Execute(e *Engine) ExecuteResult {
	if e.buf.IsEmpty() {
		return Skipped
	}
	if e.col > 0 {
		if _, err := e.buf.DeleteChar(e.line, e.col-1); e.recovered("insert.backspace", err) {
			return Skipped
		}
		e.col--
		return Executed
	}
	if e.line == 0 {
		return Skipped
	}
	prevLen := e.buf.LineLen(e.line - 1)
	if err := e.buf.AppendToLine(e.line-1, e.currentLine()); e.recovered("insert.backspace", err) {
		return Skipped
	}
	if _, err := e.buf.DeleteLine(e.line); e.recovered("insert.backspace", err) {
		return Skipped
	}
	e.line--
	e.col = prevLen
	e.markAutoIndent(0)
	return Executed
}

func (c *BackspaceCommand) Keys() []string { return []string{"<backspace>"} }
func (c *BackspaceCommand) Mode() Mode     { return ModeInsert }
func (c *BackspaceCommand) ID() string     { return "insert.backspace" }

// DeleteForwardCommand deletes the byte under the cursor (<delete>).
type DeleteForwardCommand struct{ EditBase }

func (c *DeleteForwardCommand) Execute(e *Engine) ExecuteResult {
	if e.col >= e.buf.LineLen(e.line) {
		return Skipped
	}
	if _, err := e.buf.DeleteChar(e.line, e.col); e.recovered("insert.delete", err) {
		return Skipped
	}
	return Executed
}

func (c *DeleteForwardCommand) Keys() []string { return []string{"<delete>"} }
func (c *DeleteForwardCommand) Mode() Mode     { return ModeInsert }
func (c *DeleteForwardCommand) ID() string     { return "insert.delete" }
