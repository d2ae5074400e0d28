package editor

import (
	"errors"
	"fmt"

	"github.com/zjrosen/kilovim/internal/editor/buffer"
	"github.com/zjrosen/kilovim/internal/editor/motion"
	"github.com/zjrosen/kilovim/internal/editor/register"
	"github.com/zjrosen/kilovim/internal/editor/undo"
	"github.com/zjrosen/kilovim/internal/editor/wrap"
	"github.com/zjrosen/kilovim/internal/log"
)

// ErrUnresolvedCommand is reported when a pending key sequence matches
// nothing in the multi-key table. The sequence is discarded.
var ErrUnresolvedCommand = errors.New("unresolved command")

// DefaultIndentWidth is the number of spaces >> and << shift by.
const DefaultIndentWidth = 4

// Store persists the document. Implemented by textfile.Store.
type Store interface {
	Save(name string, lines []string) (int, error)
}

// Config holds configuration options for a new Engine.
type Config struct {
	IndentWidth int    // Spaces per indent level (default 4)
	SmartIndent bool   // New lines inherit the indent of the current line
	Filename    string // Target of :w without an argument
	Store       Store  // Persistence for :w, :x and Ctrl-S; nil disables saving
}

// Cursor is a viewport-relative visual position. Continuation marks a cursor
// one past the end of a line that exactly fills its last row; it is drawn at
// column 0 of the following row but belongs to the line above.
type Cursor struct {
	Row          int
	Col          int
	Continuation bool
}

// Highlight is the active visual selection: line indices in VisualLine
// mode, logical columns of the cursor line in VisualChar mode.
type Highlight struct {
	Active   bool
	Linewise bool
	Start    int
	End      int
}

// RenderState is everything a front end needs to draw one frame.
type RenderState struct {
	Lines     []string
	Cursor    Cursor
	RowOffset int
	Mode      Mode
	Status    string
	Highlight Highlight
	Pending   string
	Dirty     bool
	Quit      bool
	Filename  string
}

// Engine is one editing session. It is not safe for concurrent use; callers
// feed it keys from a single goroutine.
type Engine struct {
	buf    *buffer.Buffer
	mapper wrap.Mapper
	height int

	// logical cursor; the visual position is derived after every key
	line int
	col  int

	visual    wrap.Cursor
	rowOffset int

	mode    Mode
	repeat  int
	pending PendingBuilder
	cmdline []byte

	anchor    int
	highlight [2]int

	snapshot undo.Snapshot
	regs     register.Registers
	search   []byte

	// line that received auto-indent in the current Insert session, and its width
	autoIndentLine  int
	autoIndentWidth int

	status      string
	filename    string
	store       Store
	indentWidth int
	smartIndent bool
	quit        bool

	commands *CommandRegistry
	sequence *PendingRegistry
}

// New creates an Engine with an empty document and an 80x24 viewport.
func New(cfg Config) *Engine {
	if cfg.IndentWidth <= 0 {
		cfg.IndentWidth = DefaultIndentWidth
	}
	return &Engine{
		buf:         buffer.New(),
		mapper:      wrap.New(80),
		height:      24,
		filename:    cfg.Filename,
		store:       cfg.Store,
		indentWidth: cfg.IndentWidth,
		smartIndent: cfg.SmartIndent,
		commands:    DefaultRegistry,
		sequence:    DefaultPendingRegistry,
	}
}

// LoadText replaces the document, resets the cursor and marks it clean.
func (e *Engine) LoadText(lines []string) {
	e.buf.SetLines(lines)
	e.line, e.col, e.rowOffset = 0, 0, 0
	e.sync()
}

// SerializeText returns the document lines.
func (e *Engine) SerializeText() []string {
	return e.buf.Lines()
}

// SetViewport sets the text area size. Widths below one are clamped.
func (e *Engine) SetViewport(width, height int) {
	e.mapper = wrap.New(width)
	e.height = max(height, 1)
	e.sync()
}

// Filename returns the current save target.
func (e *Engine) Filename() string {
	return e.filename
}

// SetStatus replaces the status message shown by the front end.
func (e *Engine) SetStatus(format string, args ...any) {
	e.status = fmt.Sprintf(format, args...)
}

// State returns the current render state without consuming a key.
func (e *Engine) State() RenderState {
	s := RenderState{
		Lines:     e.buf.Lines(),
		Cursor:    Cursor{Row: e.visual.Row - e.rowOffset, Col: e.visual.Col, Continuation: e.visual.Continuation},
		RowOffset: e.rowOffset,
		Mode:      e.mode,
		Status:    e.status,
		Pending:   e.pendingString(),
		Dirty:     e.buf.Dirty(),
		Quit:      e.quit,
		Filename:  e.filename,
	}
	if e.mode.IsVisual() {
		s.Highlight = Highlight{
			Active:   true,
			Linewise: e.mode == ModeVisualLine,
			Start:    e.highlight[0],
			End:      e.highlight[1],
		}
	}
	return s
}

// HandleKey processes one key and returns the resulting state.
func (e *Engine) HandleKey(k Key) RenderState {
	log.Debug(log.CatKeys, "key", "key", k.String(), "mode", e.mode)

	var (
		next Mode
		cmd  Command
	)
	switch e.mode {
	case ModeInsert:
		next, cmd = insertTransition(e, k)
	case ModeCommandLine:
		next, cmd = commandLineTransition(e, k)
	case ModeVisualLine, ModeVisualChar:
		next, cmd = visualTransition(e, k)
	case ModeReplaceChar:
		next, cmd = replaceCharTransition(e, k)
	default:
		next, cmd = normalTransition(e, k)
	}

	if cmd != nil {
		e.execute(cmd)
		if mc, ok := cmd.(ModeChanger); ok {
			next = mc.NextMode()
		}
		if ck, ok := cmd.(countKeeper); !ok || !ck.keepsCount() {
			e.repeat = 0
			e.pending.Clear()
		}
	}
	e.mode = next
	e.sync()
	return e.State()
}

// execute runs cmd, taking the undo snapshot first when it edits the buffer.
func (e *Engine) execute(cmd Command) {
	if cmd.Mutates() {
		e.snapshot.Capture(e.buf)
		log.Debug(log.CatUndo, "snapshot", "lines", e.snapshot.Len(), "before", cmd.ID())
	}
	if cmd.Execute(e) == Skipped {
		log.Debug(log.CatEdit, "skipped", "id", cmd.ID())
		return
	}
	log.Debug(log.CatEdit, "executed", "id", cmd.ID(), "line", e.line, "col", e.col)
}

// ============================================================================
// Transitions
// ============================================================================

// normalTransition resolves a Normal-mode key. Digits feed the repeat count;
// single-key commands win unless they are one of the keys that continue a
// pending sequence (w e $ i a); everything else extends the sequence.
func normalTransition(e *Engine, k Key) (Mode, Command) {
	if k.IsDigit() && (k != '0' || e.repeat > 0) {
		e.repeat = e.repeat*10 + int(k-'0')
		return ModeNormal, nil
	}

	key := k.String()
	if cmd, ok := e.commands.Get(ModeNormal, key); ok {
		if e.pending.IsEmpty() || !continuesSequence(k) {
			return ModeNormal, cmd
		}
	}

	if k < 0 || k > 0xff {
		e.pending.Clear()
		return ModeNormal, nil
	}
	c := byte(k)
	if e.pending.IsEmpty() {
		if !e.sequence.IsOperator(c) {
			e.discardSequence(key)
			return ModeNormal, nil
		}
		e.pending.SetOperator(c)
		return ModeNormal, nil
	}

	e.pending.AppendKey(c)
	op, rest := e.pending.Operator(), e.pending.Rest()
	if cmd, ok := e.sequence.Get(op, rest); ok {
		return ModeNormal, cmd
	}
	if e.sequence.HasPrefix(op, rest) {
		return ModeNormal, nil
	}
	e.discardSequence(e.pending.String())
	return ModeNormal, nil
}

// continuesSequence reports whether k is both a single-key command and a
// later key of some multi-key sequence.
func continuesSequence(k Key) bool {
	switch k {
	case 'w', 'e', '$', 'i', 'a':
		return true
	}
	return false
}

func (e *Engine) discardSequence(seq string) {
	err := fmt.Errorf("sequence %q: %w", seq, ErrUnresolvedCommand)
	log.Debug(log.CatKeys, "discarded", "error", err)
	e.pending.Clear()
	e.repeat = 0
}

func insertTransition(e *Engine, k Key) (Mode, Command) {
	if cmd, ok := e.commands.Get(ModeInsert, k.String()); ok {
		return ModeInsert, cmd
	}
	if k.IsPrintable() {
		return ModeInsert, &InsertCharCommand{ch: byte(k)}
	}
	return ModeInsert, nil
}

func commandLineTransition(e *Engine, k Key) (Mode, Command) {
	if (k == KeyBackspace || k == KeyDelete) && len(e.cmdline) == 0 {
		return ModeNormal, &CancelCommandLineCommand{}
	}
	if cmd, ok := e.commands.Get(ModeCommandLine, k.String()); ok {
		return ModeCommandLine, cmd
	}
	if k.IsPrintable() {
		return ModeCommandLine, &CommandLineAppendCommand{ch: byte(k)}
	}
	return ModeCommandLine, nil
}

func visualTransition(e *Engine, k Key) (Mode, Command) {
	if cmd, ok := e.commands.Get(e.mode, k.String()); ok {
		return e.mode, cmd
	}
	return e.mode, nil
}

func replaceCharTransition(e *Engine, k Key) (Mode, Command) {
	if cmd, ok := e.commands.Get(ModeReplaceChar, k.String()); ok {
		return ModeReplaceChar, cmd
	}
	if k.IsPrintable() {
		return ModeNormal, &ReplaceCharCommand{ch: byte(k)}
	}
	e.repeat = 0
	return ModeNormal, nil
}

// ============================================================================
// Cursor helpers
// ============================================================================

// count returns the repeat count, defaulting to 1.
func (e *Engine) count() int {
	return max(e.repeat, 1)
}

func (e *Engine) currentLine() []byte {
	return e.buf.Line(e.line)
}

func (e *Engine) pos() motion.Pos {
	return motion.Pos{Line: e.line, Col: e.col}
}

func (e *Engine) moveTo(p motion.Pos) {
	e.line, e.col = p.Line, p.Col
}

// setVisual places the logical cursor at the absolute visual position c.
func (e *Engine) setVisual(c wrap.Cursor) {
	e.line = e.mapper.LineAt(e.buf, c)
	e.col = e.mapper.LogicalColumnOf(e.buf, c)
}

// lastCol is the rightmost column the cursor may occupy in the current mode.
func (e *Engine) lastCol() int {
	n := e.buf.LineLen(e.line)
	if e.mode == ModeInsert {
		return n
	}
	return max(n-1, 0)
}

func (e *Engine) pendingString() string {
	s := e.pending.String()
	if e.repeat > 0 {
		s = fmt.Sprintf("%d%s", e.repeat, s)
	}
	return s
}

// sync clamps the logical cursor, re-derives the visual cursor through the
// wrap mapper and scrolls so the cursor row stays inside the viewport.
func (e *Engine) sync() {
	if e.buf.IsEmpty() {
		e.line, e.col = 0, 0
	} else {
		e.line = max(0, min(e.line, e.buf.Len()-1))
		e.col = max(0, min(e.col, e.lastCol()))
	}
	e.visual = e.mapper.VisualPositionOf(e.buf, e.line, e.col)

	switch e.mode {
	case ModeVisualLine:
		e.highlight = [2]int{min(e.anchor, e.line), max(e.anchor, e.line)}
	case ModeVisualChar:
		e.highlight = [2]int{min(e.anchor, e.col), max(e.anchor, e.col)}
	}

	if e.visual.Row < e.rowOffset {
		e.rowOffset = e.visual.Row
	}
	if e.visual.Row >= e.rowOffset+e.height {
		e.rowOffset = e.visual.Row - e.height + 1
	}
}

// visibleLine returns the logical line shown at the top of the viewport.
func (e *Engine) visibleLine() int {
	return e.mapper.LogicalLineOf(e.buf, e.rowOffset)
}
