package editor

import "github.com/zjrosen/kilovim/internal/log"

// ============================================================================
// Yank / Paste / Undo
// ============================================================================

// YankLineCommand copies count lines into the line register (yy).
type YankLineCommand struct{ MotionBase }

func (c *YankLineCommand) Execute(e *Engine) ExecuteResult {
	if e.regs.YankLines(e.buf, e.line, e.count()) == 0 {
		return Skipped
	}
	return Executed
}

func (c *YankLineCommand) Keys() []string { return []string{"yy"} }
func (c *YankLineCommand) Mode() Mode     { return ModeNormal }
func (c *YankLineCommand) ID() string     { return "yank.line" }

// PasteCommand pastes the string register at the cursor when it holds
// anything, otherwise the line register below the cursor line (p).
type PasteCommand struct{ EditBase }

func (c *PasteCommand) Execute(e *Engine) ExecuteResult {
	if e.regs.IsEmpty() {
		e.status = "Nothing to paste"
		return Skipped
	}
	if e.regs.HasSpan() {
		n, err := e.regs.PasteSpan(e.buf, e.line, e.col)
		if e.recovered("paste.span", err) {
			return Skipped
		}
		e.col += n - 1
		return Executed
	}

	n, err := e.regs.PasteLines(e.buf, e.line)
	if e.recovered("paste.lines", err) {
		return Skipped
	}
	if n > 0 && e.buf.Len() > n {
		e.line++
	}
	e.col = 0
	return Executed
}

func (c *PasteCommand) Keys() []string { return []string{"p"} }
func (c *PasteCommand) Mode() Mode     { return ModeNormal }
func (c *PasteCommand) ID() string     { return "paste" }

// UndoCommand restores the snapshot taken before the last edit (u). It does
// not capture a snapshot itself, so pressing u again is a no-op change.
type UndoCommand struct{}

func (c *UndoCommand) Execute(e *Engine) ExecuteResult {
	if !e.snapshot.HasSnapshot() {
		e.status = "Already at oldest change"
		return Skipped
	}
	if err := e.snapshot.Restore(e.buf); err != nil {
		log.Debug(log.CatUndo, "restore", "error", err)
		return Skipped
	}
	log.Debug(log.CatUndo, "restored", "lines", e.buf.Len())
	return Executed
}

func (c *UndoCommand) Keys() []string { return []string{"u"} }
func (c *UndoCommand) Mode() Mode     { return ModeNormal }
func (c *UndoCommand) ID() string     { return "undo" }
func (c *UndoCommand) Mutates() bool  { return false }
