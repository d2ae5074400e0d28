package editor

// ============================================================================
// Visual Mode Entry / Exit
// ============================================================================

// EnterVisualLineModeCommand starts a line selection anchored at the cursor line (V).
type EnterVisualLineModeCommand struct{ ModeEntryBase }

func (c *EnterVisualLineModeCommand) Execute(e *Engine) ExecuteResult {
	e.anchor = e.line
	e.status = visualLineStatus
	return Executed
}

func (c *EnterVisualLineModeCommand) Keys() []string { return []string{"V"} }
func (c *EnterVisualLineModeCommand) Mode() Mode     { return ModeNormal }
func (c *EnterVisualLineModeCommand) ID() string     { return "mode.visual_line" }
func (c *EnterVisualLineModeCommand) NextMode() Mode { return ModeVisualLine }

// EnterVisualCharModeCommand starts a column selection on the cursor line (v).
type EnterVisualCharModeCommand struct{ ModeEntryBase }

func (c *EnterVisualCharModeCommand) Execute(e *Engine) ExecuteResult {
	e.anchor = e.col
	e.status = visualCharStatus
	return Executed
}

func (c *EnterVisualCharModeCommand) Keys() []string { return []string{"v"} }
func (c *EnterVisualCharModeCommand) Mode() Mode     { return ModeNormal }
func (c *EnterVisualCharModeCommand) ID() string     { return "mode.visual" }
func (c *EnterVisualCharModeCommand) NextMode() Mode { return ModeVisualChar }

// ExitVisualModeCommand drops the selection (<escape>).
type ExitVisualModeCommand struct {
	ModeEntryBase
	mode Mode
}

func (c *ExitVisualModeCommand) Execute(e *Engine) ExecuteResult {
	e.status = ""
	return Executed
}

func (c *ExitVisualModeCommand) Keys() []string { return []string{"<escape>"} }
func (c *ExitVisualModeCommand) Mode() Mode     { return c.mode }
func (c *ExitVisualModeCommand) ID() string     { return "mode.normal" }
func (c *ExitVisualModeCommand) NextMode() Mode { return ModeNormal }

// ============================================================================
// Visual Line Operators
// ============================================================================

// VisualLineCutCommand yanks and deletes the selected lines (x).
type VisualLineCutCommand struct{ EditBase }

func (c *VisualLineCutCommand) Execute(e *Engine) ExecuteResult {
	e.status = ""
	if e.buf.IsEmpty() {
		return Skipped
	}
	start, end := e.highlight[0], e.highlight[1]
	n := e.regs.YankLines(e.buf, start, end-start+1)
	deleteLines(e, start, n)
	e.line, e.col = start, 0
	return Executed
}

func (c *VisualLineCutCommand) Keys() []string { return []string{"x"} }
func (c *VisualLineCutCommand) Mode() Mode     { return ModeVisualLine }
func (c *VisualLineCutCommand) ID() string     { return "visual_line.cut" }
func (c *VisualLineCutCommand) NextMode() Mode { return ModeNormal }

// VisualLineYankCommand copies the selected lines (y).
type VisualLineYankCommand struct{ MotionBase }

func (c *VisualLineYankCommand) Execute(e *Engine) ExecuteResult {
	e.status = ""
	start, end := e.highlight[0], e.highlight[1]
	if e.regs.YankLines(e.buf, start, end-start+1) == 0 {
		return Skipped
	}
	e.line = start
	return Executed
}

func (c *VisualLineYankCommand) Keys() []string { return []string{"y"} }
func (c *VisualLineYankCommand) Mode() Mode     { return ModeVisualLine }
func (c *VisualLineYankCommand) ID() string     { return "visual_line.yank" }
func (c *VisualLineYankCommand) NextMode() Mode { return ModeNormal }

// VisualLineIndentCommand indents the selected lines (>).
type VisualLineIndentCommand struct{ EditBase }

func (c *VisualLineIndentCommand) Execute(e *Engine) ExecuteResult {
	return shiftSelection(e, true)
}

func (c *VisualLineIndentCommand) Keys() []string { return []string{">"} }
func (c *VisualLineIndentCommand) Mode() Mode     { return ModeVisualLine }
func (c *VisualLineIndentCommand) ID() string     { return "visual_line.indent" }
func (c *VisualLineIndentCommand) NextMode() Mode { return ModeNormal }

// VisualLineUnindentCommand unindents the selected lines (<).
type VisualLineUnindentCommand struct{ EditBase }

func (c *VisualLineUnindentCommand) Execute(e *Engine) ExecuteResult {
	return shiftSelection(e, false)
}

func (c *VisualLineUnindentCommand) Keys() []string { return []string{"<"} }
func (c *VisualLineUnindentCommand) Mode() Mode     { return ModeVisualLine }
func (c *VisualLineUnindentCommand) ID() string     { return "visual_line.unindent" }
func (c *VisualLineUnindentCommand) NextMode() Mode { return ModeNormal }

func shiftSelection(e *Engine, right bool) ExecuteResult {
	e.status = ""
	if e.buf.IsEmpty() {
		return Skipped
	}
	e.line = e.highlight[0]
	shiftLines(e, e.highlight[0], e.highlight[1], right)
	return Executed
}

// ============================================================================
// Visual Char Operators
// ============================================================================

// VisualCharCutCommand moves the selected bytes into the string register (x).
type VisualCharCutCommand struct{ EditBase }

func (c *VisualCharCutCommand) Execute(e *Engine) ExecuteResult {
	e.status = ""
	start, end := e.highlight[0], e.highlight[1]
	if e.regs.YankSpan(e.buf, e.line, start, end) == 0 {
		return Skipped
	}
	if _, err := e.buf.DeleteRange(e.line, start, end+1); e.recovered("visual.cut", err) {
		return Skipped
	}
	e.col = start
	return Executed
}

func (c *VisualCharCutCommand) Keys() []string { return []string{"x"} }
func (c *VisualCharCutCommand) Mode() Mode     { return ModeVisualChar }
func (c *VisualCharCutCommand) ID() string     { return "visual.cut" }
func (c *VisualCharCutCommand) NextMode() Mode { return ModeNormal }

// VisualCharYankCommand copies the selected bytes into the string register (y).
type VisualCharYankCommand struct{ MotionBase }

func (c *VisualCharYankCommand) Execute(e *Engine) ExecuteResult {
	e.status = ""
	start, end := e.highlight[0], e.highlight[1]
	if e.regs.YankSpan(e.buf, e.line, start, end) == 0 {
		return Skipped
	}
	e.col = start
	return Executed
}

func (c *VisualCharYankCommand) Keys() []string { return []string{"y"} }
func (c *VisualCharYankCommand) Mode() Mode     { return ModeVisualChar }
func (c *VisualCharYankCommand) ID() string     { return "visual.yank" }
func (c *VisualCharYankCommand) NextMode() Mode { return ModeNormal }

// DecorateVisualCommand wraps the selected bytes in a markdown marker
// (<ctrl+b> bold, <ctrl+i> italic, <ctrl+e> code).
type DecorateVisualCommand struct {
	EditBase
	marker string
	key    Key
}

func (c *DecorateVisualCommand) Execute(e *Engine) ExecuteResult {
	e.status = ""
	if e.buf.LineLen(e.line) == 0 {
		return Skipped
	}
	start := e.highlight[0]
	end := min(e.highlight[1], e.buf.LineLen(e.line)-1)
	m := []byte(c.marker)
	if e.recovered("visual.decorate", e.buf.InsertBytes(e.line, end+1, m)) {
		return Skipped
	}
	if e.recovered("visual.decorate", e.buf.InsertBytes(e.line, start, m)) {
		return Skipped
	}
	e.col = start
	return Executed
}

func (c *DecorateVisualCommand) Keys() []string { return []string{c.key.String()} }
func (c *DecorateVisualCommand) Mode() Mode     { return ModeVisualChar }
func (c *DecorateVisualCommand) ID() string     { return "visual.decorate" }
func (c *DecorateVisualCommand) NextMode() Mode { return ModeNormal }
