package editor

import (
	"github.com/zjrosen/kilovim/internal/editor/motion"
	"github.com/zjrosen/kilovim/internal/editor/wrap"
)

// ============================================================================
// Motion Commands
// ============================================================================

// MoveLeftCommand moves the cursor left (h, <left>).
type MoveLeftCommand struct{ MotionBase }

func (c *MoveLeftCommand) Execute(e *Engine) ExecuteResult {
	if e.col == 0 {
		return Skipped
	}
	e.col = max(e.col-e.count(), 0)
	return Executed
}

func (c *MoveLeftCommand) Keys() []string { return []string{"h", "<left>"} }
func (c *MoveLeftCommand) Mode() Mode     { return ModeNormal }
func (c *MoveLeftCommand) ID() string     { return "move.left" }

// MoveRightCommand moves the cursor right (l, <right>). The column is clamped
// to the line after execution.
type MoveRightCommand struct{ MotionBase }

func (c *MoveRightCommand) Execute(e *Engine) ExecuteResult {
	if e.col >= e.lastCol() {
		return Skipped
	}
	e.col += e.count()
	return Executed
}

func (c *MoveRightCommand) Keys() []string { return []string{"l", "<right>"} }
func (c *MoveRightCommand) Mode() Mode     { return ModeNormal }
func (c *MoveRightCommand) ID() string     { return "move.right" }

// MoveDownCommand moves to the next line (j, <down>), landing on its first
// visual row at the same visual column.
type MoveDownCommand struct{ MotionBase }

func (c *MoveDownCommand) Execute(e *Engine) ExecuteResult {
	return moveLines(e, e.count())
}

func (c *MoveDownCommand) Keys() []string { return []string{"j", "<down>"} }
func (c *MoveDownCommand) Mode() Mode     { return ModeNormal }
func (c *MoveDownCommand) ID() string     { return "move.down" }

// MoveUpCommand moves to the previous line (k, <up>).
type MoveUpCommand struct{ MotionBase }

func (c *MoveUpCommand) Execute(e *Engine) ExecuteResult {
	return moveLines(e, -e.count())
}

func (c *MoveUpCommand) Keys() []string { return []string{"k", "<up>"} }
func (c *MoveUpCommand) Mode() Mode     { return ModeNormal }
func (c *MoveUpCommand) ID() string     { return "move.up" }

// moveLines shifts the cursor by delta logical lines. The cursor lands on the
// first visual row of the target line at the current visual column.
func moveLines(e *Engine, delta int) ExecuteResult {
	target := max(0, min(e.line+delta, e.buf.Len()-1))
	if e.buf.IsEmpty() || target == e.line {
		return Skipped
	}
	e.setVisual(wrap.Cursor{Row: e.mapper.FirstRowOf(e.buf, target), Col: e.visual.Col})
	return Executed
}

// MoveWordForwardCommand moves to the start of the next word (w).
type MoveWordForwardCommand struct{ MotionBase }

func (c *MoveWordForwardCommand) Execute(e *Engine) ExecuteResult {
	p := e.pos()
	for range e.count() {
		p = motion.WordForward(e.buf, p)
	}
	e.moveTo(p)
	return Executed
}

func (c *MoveWordForwardCommand) Keys() []string { return []string{"w"} }
func (c *MoveWordForwardCommand) Mode() Mode     { return ModeNormal }
func (c *MoveWordForwardCommand) ID() string     { return "move.word_forward" }

// MoveWordBackwardCommand moves to the start of the previous word (b).
type MoveWordBackwardCommand struct{ MotionBase }

func (c *MoveWordBackwardCommand) Execute(e *Engine) ExecuteResult {
	p := e.pos()
	for range e.count() {
		p = motion.WordBackward(e.buf, p)
	}
	e.moveTo(p)
	return Executed
}

func (c *MoveWordBackwardCommand) Keys() []string { return []string{"b"} }
func (c *MoveWordBackwardCommand) Mode() Mode     { return ModeNormal }
func (c *MoveWordBackwardCommand) ID() string     { return "move.word_backward" }

// MoveWordEndCommand moves to the end of the next word (e).
type MoveWordEndCommand struct{ MotionBase }

func (c *MoveWordEndCommand) Execute(e *Engine) ExecuteResult {
	p := e.pos()
	for range e.count() {
		p = motion.WordEnd(e.buf, p)
	}
	e.moveTo(p)
	return Executed
}

func (c *MoveWordEndCommand) Keys() []string { return []string{"e"} }
func (c *MoveWordEndCommand) Mode() Mode     { return ModeNormal }
func (c *MoveWordEndCommand) ID() string     { return "move.word_end" }

// MoveToLineStartCommand moves to column 0 (0).
type MoveToLineStartCommand struct{ MotionBase }

func (c *MoveToLineStartCommand) Execute(e *Engine) ExecuteResult {
	e.moveTo(motion.LineStart(e.pos()))
	return Executed
}

func (c *MoveToLineStartCommand) Keys() []string { return []string{"0"} }
func (c *MoveToLineStartCommand) Mode() Mode     { return ModeNormal }
func (c *MoveToLineStartCommand) ID() string     { return "move.line_start" }

// MoveToLineEndCommand moves to the last byte of the line ($).
type MoveToLineEndCommand struct{ MotionBase }

func (c *MoveToLineEndCommand) Execute(e *Engine) ExecuteResult {
	e.moveTo(motion.LineEnd(e.buf, e.pos()))
	return Executed
}

func (c *MoveToLineEndCommand) Keys() []string { return []string{"$"} }
func (c *MoveToLineEndCommand) Mode() Mode     { return ModeNormal }
func (c *MoveToLineEndCommand) ID() string     { return "move.line_end" }

// MoveToLastLineCommand moves to column 0 of the last line (G).
type MoveToLastLineCommand struct{ MotionBase }

func (c *MoveToLastLineCommand) Execute(e *Engine) ExecuteResult {
	e.line = max(e.buf.Len()-1, 0)
	e.col = 0
	return Executed
}

func (c *MoveToLastLineCommand) Keys() []string { return []string{"G"} }
func (c *MoveToLastLineCommand) Mode() Mode     { return ModeNormal }
func (c *MoveToLastLineCommand) ID() string     { return "move.last_line" }

// MoveToFirstLineCommand moves to line count-1, the first line by default (gg).
type MoveToFirstLineCommand struct{ MotionBase }

func (c *MoveToFirstLineCommand) Execute(e *Engine) ExecuteResult {
	e.line = e.count() - 1
	e.col = 0
	return Executed
}

func (c *MoveToFirstLineCommand) Keys() []string { return []string{"gg"} }
func (c *MoveToFirstLineCommand) Mode() Mode     { return ModeNormal }
func (c *MoveToFirstLineCommand) ID() string     { return "move.first_line" }

// ============================================================================
// Insert Mode Navigation
// ============================================================================

// InsertMoveCommand handles arrows, Home and End while inserting. The cursor
// may rest one past the last byte.
type InsertMoveCommand struct {
	MotionBase
	key Key
}

func (c *InsertMoveCommand) Execute(e *Engine) ExecuteResult {
	switch c.key {
	case KeyLeft:
		if e.col == 0 {
			return Skipped
		}
		e.col--
	case KeyRight:
		if e.col >= e.buf.LineLen(e.line) {
			return Skipped
		}
		e.col++
	case KeyUp:
		return moveLines(e, -1)
	case KeyDown:
		return moveLines(e, 1)
	case KeyHome:
		e.col = 0
	case KeyEnd:
		e.col = e.buf.LineLen(e.line)
	}
	return Executed
}

func (c *InsertMoveCommand) Keys() []string { return []string{c.key.String()} }
func (c *InsertMoveCommand) Mode() Mode     { return ModeInsert }
func (c *InsertMoveCommand) ID() string     { return "insert.move" }

// PageCommand scrolls a screenful (<pgup>, <pgdown>). The cursor first jumps
// to the top or bottom visible row, then moves one viewport height further.
type PageCommand struct {
	MotionBase
	down bool
}

func (c *PageCommand) Execute(e *Engine) ExecuteResult {
	if e.buf.IsEmpty() {
		return Skipped
	}
	col := e.col
	if c.down {
		bottom := min(e.rowOffset+e.height, e.mapper.TotalRows(e.buf)) - 1
		e.line = e.mapper.LineAt(e.buf, wrap.Cursor{Row: bottom})
		e.line = min(e.line+e.height, e.buf.Len()-1)
	} else {
		e.line = max(e.visibleLine()-e.height, 0)
	}
	e.col = min(col, e.buf.LineLen(e.line))
	return Executed
}

func (c *PageCommand) Keys() []string {
	if c.down {
		return []string{"<pgdown>"}
	}
	return []string{"<pgup>"}
}
func (c *PageCommand) Mode() Mode { return ModeInsert }
func (c *PageCommand) ID() string { return "insert.page" }
