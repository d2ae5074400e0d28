package editor

import (
	"bytes"

	"github.com/zjrosen/kilovim/internal/editor/motion"
)

const (
	insertStatus     = "-- INSERT --"
	visualLineStatus = "-- VISUAL LINE --"
	visualCharStatus = "-- VISUAL --"
)

// ============================================================================
// Insert Mode Editing
// ============================================================================

// InsertCharCommand inserts one printable byte at the cursor. It is created
// per key by the Insert transition rather than registered.
type InsertCharCommand struct {
	EditBase
	ch byte
}

func (c *InsertCharCommand) Execute(e *Engine) ExecuteResult {
	if err := e.buf.InsertChar(e.line, e.col, c.ch); e.recovered("insert.char", err) {
		return Skipped
	}
	e.col++
	return Executed
}

func (c *InsertCharCommand) Keys() []string { return []string{string(c.ch)} }
func (c *InsertCharCommand) Mode() Mode     { return ModeInsert }
func (c *InsertCharCommand) ID() string     { return "insert.char" }

// InsertNewlineCommand splits the line at the cursor (<enter>). With smart
// indent the new line takes the leading spaces of the line being split.
type InsertNewlineCommand struct{ EditBase }

func (c *InsertNewlineCommand) Execute(e *Engine) ExecuteResult {
	if e.buf.IsEmpty() {
		if err := e.buf.InsertLine(0, nil); e.recovered("insert.newline", err) {
			return Skipped
		}
	}
	indent := e.autoIndent(e.line)
	if err := e.buf.SplitLine(e.line, e.col); e.recovered("insert.newline", err) {
		return Skipped
	}
	e.line++
	tail := bytes.TrimLeft(e.currentLine(), " ")
	if err := e.buf.ReplaceLine(e.line, append(indent, tail...)); e.recovered("insert.newline", err) {
		return Skipped
	}
	e.col = len(indent)
	e.markAutoIndent(len(indent))
	return Executed
}

func (c *InsertNewlineCommand) Keys() []string { return []string{"<enter>"} }
func (c *InsertNewlineCommand) Mode() Mode     { return ModeInsert }
func (c *InsertNewlineCommand) ID() string     { return "insert.newline" }

// markAutoIndent records that the cursor line starts with width bytes of
// indentation the user did not type.
func (e *Engine) markAutoIndent(width int) {
	e.autoIndentLine, e.autoIndentWidth = e.line, width
}

// onlyAutoIndent reports whether the cursor line holds nothing but the
// indentation recorded by markAutoIndent.
func (e *Engine) onlyAutoIndent() bool {
	n := e.buf.LineLen(e.line)
	return n > 0 && e.line == e.autoIndentLine && n == e.autoIndentWidth &&
		motion.IndentAmount(e.currentLine()) == n
}

// autoIndent returns the indentation a new line next to line receives.
func (e *Engine) autoIndent(line int) []byte {
	if !e.smartIndent {
		return nil
	}
	return bytes.Repeat([]byte{' '}, motion.IndentAmount(e.buf.Line(line)))
}

// ExitInsertModeCommand returns to Normal mode (<escape>). The cursor steps
// back one column and a line holding nothing but auto-indent is emptied.
// Spaces typed by hand are kept.
type ExitInsertModeCommand struct{ ModeEntryBase }

func (c *ExitInsertModeCommand) Execute(e *Engine) ExecuteResult {
	if e.col > 0 {
		e.col--
	}
	if e.onlyAutoIndent() {
		if _, err := e.buf.Truncate(e.line, 0); !e.recovered("insert.exit", err) {
			e.col = 0
		}
	}
	e.markAutoIndent(0)
	e.status = ""
	return Executed
}

func (c *ExitInsertModeCommand) Keys() []string { return []string{"<escape>"} }
func (c *ExitInsertModeCommand) Mode() Mode     { return ModeInsert }
func (c *ExitInsertModeCommand) ID() string     { return "mode.normal" }
func (c *ExitInsertModeCommand) NextMode() Mode { return ModeNormal }

// ============================================================================
// Insert Mode Entry
// ============================================================================

// EnterInsertModeCommand enters Insert mode at the cursor (i).
type EnterInsertModeCommand struct{ ModeEntryBase }

func (c *EnterInsertModeCommand) Execute(e *Engine) ExecuteResult {
	e.status = insertStatus
	return Executed
}

func (c *EnterInsertModeCommand) Keys() []string { return []string{"i"} }
func (c *EnterInsertModeCommand) Mode() Mode     { return ModeNormal }
func (c *EnterInsertModeCommand) ID() string     { return "mode.insert" }
func (c *EnterInsertModeCommand) NextMode() Mode { return ModeInsert }

// EnterInsertModeAfterCommand enters Insert mode after the cursor byte (a).
type EnterInsertModeAfterCommand struct{ ModeEntryBase }

func (c *EnterInsertModeAfterCommand) Execute(e *Engine) ExecuteResult {
	if e.buf.LineLen(e.line) > 0 {
		e.col++
	}
	e.status = insertStatus
	return Executed
}

func (c *EnterInsertModeAfterCommand) Keys() []string { return []string{"a"} }
func (c *EnterInsertModeAfterCommand) Mode() Mode     { return ModeNormal }
func (c *EnterInsertModeAfterCommand) ID() string     { return "mode.insert_after" }
func (c *EnterInsertModeAfterCommand) NextMode() Mode { return ModeInsert }

// EnterInsertModeAtEndCommand enters Insert mode at the end of the line (A).
type EnterInsertModeAtEndCommand struct{ ModeEntryBase }

func (c *EnterInsertModeAtEndCommand) Execute(e *Engine) ExecuteResult {
	e.col = e.buf.LineLen(e.line)
	e.status = insertStatus
	return Executed
}

func (c *EnterInsertModeAtEndCommand) Keys() []string { return []string{"A"} }
func (c *EnterInsertModeAtEndCommand) Mode() Mode     { return ModeNormal }
func (c *EnterInsertModeAtEndCommand) ID() string     { return "mode.insert_end" }
func (c *EnterInsertModeAtEndCommand) NextMode() Mode { return ModeInsert }

// EnterInsertModeAtStartCommand enters Insert mode at the first non-blank (I).
type EnterInsertModeAtStartCommand struct{ ModeEntryBase }

func (c *EnterInsertModeAtStartCommand) Execute(e *Engine) ExecuteResult {
	e.moveTo(motion.FirstNonBlank(e.buf, e.pos()))
	e.status = insertStatus
	return Executed
}

func (c *EnterInsertModeAtStartCommand) Keys() []string { return []string{"I"} }
func (c *EnterInsertModeAtStartCommand) Mode() Mode     { return ModeNormal }
func (c *EnterInsertModeAtStartCommand) ID() string     { return "mode.insert_start" }
func (c *EnterInsertModeAtStartCommand) NextMode() Mode { return ModeInsert }

// InsertLineBelowCommand opens a line below and enters Insert mode (o).
type InsertLineBelowCommand struct{ EditBase }

func (c *InsertLineBelowCommand) Execute(e *Engine) ExecuteResult {
	openLine(e, 1)
	e.status = insertStatus
	return Executed
}

func (c *InsertLineBelowCommand) Keys() []string { return []string{"o"} }
func (c *InsertLineBelowCommand) Mode() Mode     { return ModeNormal }
func (c *InsertLineBelowCommand) ID() string     { return "insert.line_below" }
func (c *InsertLineBelowCommand) NextMode() Mode { return ModeInsert }

// InsertLineAboveCommand opens a line above and enters Insert mode (O).
type InsertLineAboveCommand struct{ EditBase }

func (c *InsertLineAboveCommand) Execute(e *Engine) ExecuteResult {
	openLine(e, 0)
	e.status = insertStatus
	return Executed
}

func (c *InsertLineAboveCommand) Keys() []string { return []string{"O"} }
func (c *InsertLineAboveCommand) Mode() Mode     { return ModeNormal }
func (c *InsertLineAboveCommand) ID() string     { return "insert.line_above" }
func (c *InsertLineAboveCommand) NextMode() Mode { return ModeInsert }

// openLine inserts an auto-indented line at e.line+offset and moves there.
// An empty document just gains its first line.
func openLine(e *Engine, offset int) {
	if e.buf.IsEmpty() {
		if !e.recovered("insert.open_line", e.buf.InsertLine(0, nil)) {
			e.line, e.col = 0, 0
		}
		return
	}
	indent := e.autoIndent(e.line)
	at := e.line + offset
	if e.recovered("insert.open_line", e.buf.InsertLine(at, indent)) {
		return
	}
	e.line = at
	e.col = len(indent)
	e.markAutoIndent(len(indent))
}
