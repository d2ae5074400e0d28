package editor

import "strings"

// ExecuteResult indicates the outcome of command execution.
type ExecuteResult int

const (
	// Executed means the command ran and consumed the key.
	Executed ExecuteResult = iota
	// Skipped means pre-conditions weren't met (e.g. x on an empty line).
	Skipped
)

// Command is one resolved effect of a key or key sequence.
type Command interface {
	// Execute applies the command to the engine.
	Execute(e *Engine) ExecuteResult

	// Keys returns the trigger key(s) that invoke this command.
	// For single-key commands: []string{"h"}, []string{"<left>"}
	// For aliases: []string{"h", "<left>"}
	Keys() []string

	// Mode returns which mode this command is dispatched in.
	Mode() Mode

	// ID returns a hierarchical identifier for logging, e.g. "delete.line".
	ID() string

	// Mutates reports whether the command edits the buffer. The engine takes
	// the undo snapshot right before executing a mutating command.
	Mutates() bool
}

// ModeChanger is implemented by commands that leave the mode they run in.
type ModeChanger interface {
	NextMode() Mode
}

// countKeeper is implemented by commands whose repeat count must survive
// into the next key ('r' hands its count to the replacement byte).
type countKeeper interface {
	keepsCount() bool
}

// ============================================================================
// Base structs for reducing boilerplate in Command implementations
// ============================================================================

// MotionBase is embedded by commands that only move the cursor.
type MotionBase struct{}

func (MotionBase) Mutates() bool { return false }

// EditBase is embedded by commands that change buffer content.
type EditBase struct{}

func (EditBase) Mutates() bool { return true }

// ModeEntryBase is embedded by commands that only switch modes.
type ModeEntryBase struct{}

func (ModeEntryBase) Mutates() bool { return false }

// ============================================================================
// CommandRegistry
// ============================================================================

// CommandRegistry provides mode-aware, key-based command dispatch.
type CommandRegistry struct {
	// commands maps Mode -> trigger key -> command
	commands map[Mode]map[string]Command
}

// NewCommandRegistry creates an empty command registry.
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		commands: make(map[Mode]map[string]Command),
	}
}

// Register adds a command to the registry using its Mode() and Keys() methods.
// Commands with multiple keys are registered under each key.
func (r *CommandRegistry) Register(cmd Command) {
	r.registerWithModeKeys(cmd.Mode(), cmd)
}

// Get retrieves a command for a specific mode and key.
func (r *CommandRegistry) Get(mode Mode, key string) (Command, bool) {
	if modeMap, ok := r.commands[mode]; ok {
		if cmd, ok := modeMap[key]; ok {
			return cmd, true
		}
	}
	return nil, false
}

// registerWithModeKeys adds a command with explicit mode, registering all its Keys().
// Used when one command type serves several modes (arrows in Normal and Visual).
func (r *CommandRegistry) registerWithModeKeys(mode Mode, cmd Command) {
	if r.commands[mode] == nil {
		r.commands[mode] = make(map[string]Command)
	}
	for _, key := range cmd.Keys() {
		r.commands[mode][key] = cmd
	}
}

// ============================================================================
// PendingRegistry - Multi-key sequence dispatch
// ============================================================================

// PendingRegistry maps (operator byte, remaining keys) to a command.
// Example: ('d', "aw") -> DeleteAroundWordCommand.
type PendingRegistry struct {
	commands map[byte]map[string]Command
}

// NewPendingRegistry creates an empty pending command registry.
func NewPendingRegistry() *PendingRegistry {
	return &PendingRegistry{
		commands: make(map[byte]map[string]Command),
	}
}

// Register adds a command for an operator and the keys that follow it.
func (r *PendingRegistry) Register(operator byte, rest string, cmd Command) {
	if r.commands[operator] == nil {
		r.commands[operator] = make(map[string]Command)
	}
	r.commands[operator][rest] = cmd
}

// IsOperator reports whether op starts any sequence.
func (r *PendingRegistry) IsOperator(op byte) bool {
	_, ok := r.commands[op]
	return ok
}

// Get retrieves the command for an exact sequence.
func (r *PendingRegistry) Get(operator byte, rest string) (Command, bool) {
	if opMap, ok := r.commands[operator]; ok {
		if cmd, ok := opMap[rest]; ok {
			return cmd, true
		}
	}
	return nil, false
}

// HasPrefix returns true if some longer sequence for operator starts with prefix.
func (r *PendingRegistry) HasPrefix(operator byte, prefix string) bool {
	for key := range r.commands[operator] {
		if len(key) > len(prefix) && strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

// ============================================================================
// PendingBuilder
// ============================================================================

// PendingBuilder accumulates a multi-key sequence such as "dd" or "caw".
type PendingBuilder struct {
	operator byte
	keys     []byte
}

// Clear resets the builder to empty state.
func (b *PendingBuilder) Clear() {
	b.operator = 0
	b.keys = b.keys[:0]
}

// IsEmpty returns true if no sequence is being built.
func (b *PendingBuilder) IsEmpty() bool {
	return b.operator == 0
}

// SetOperator starts a sequence.
func (b *PendingBuilder) SetOperator(op byte) {
	b.operator = op
	b.keys = b.keys[:0]
}

// Operator returns the first key of the sequence.
func (b *PendingBuilder) Operator() byte {
	return b.operator
}

// AppendKey adds a key after the operator.
func (b *PendingBuilder) AppendKey(c byte) {
	b.keys = append(b.keys, c)
}

// Rest returns the keys typed after the operator.
func (b *PendingBuilder) Rest() string {
	return string(b.keys)
}

// String returns the whole sequence typed so far.
func (b *PendingBuilder) String() string {
	if b.IsEmpty() {
		return ""
	}
	return string(b.operator) + string(b.keys)
}

// ============================================================================
// Default Registries
// ============================================================================

// DefaultPendingRegistry holds the fixed multi-key command table.
var DefaultPendingRegistry = newDefaultPendingRegistry()

func newDefaultPendingRegistry() *PendingRegistry {
	r := NewPendingRegistry()

	r.Register('d', "d", &DeleteLineCommand{})
	r.Register('d', "w", &DeleteWordCommand{})
	r.Register('d', "e", &DeleteToWordEndCommand{})
	r.Register('d', "$", &DeleteToEOLCommand{})
	r.Register('d', "aw", &DeleteAroundWordCommand{})

	r.Register('c', "w", &ChangeWordCommand{})
	r.Register('c', "aw", &ChangeAroundWordCommand{})

	r.Register('>', ">", &IndentLinesCommand{})
	r.Register('<', "<", &UnindentLinesCommand{})

	r.Register('g', "g", &MoveToFirstLineCommand{})
	r.Register('y', "y", &YankLineCommand{})

	return r
}

// DefaultRegistry holds every single-key command, per mode.
var DefaultRegistry = newDefaultRegistry()

func newDefaultRegistry() *CommandRegistry {
	r := NewCommandRegistry()

	// ============================================================================
	// Normal Mode Commands
	// ============================================================================

	r.Register(&MoveLeftCommand{})
	r.Register(&MoveRightCommand{})
	r.Register(&MoveDownCommand{})
	r.Register(&MoveUpCommand{})
	r.Register(&MoveWordForwardCommand{})
	r.Register(&MoveWordBackwardCommand{})
	r.Register(&MoveWordEndCommand{})
	r.Register(&MoveToLineStartCommand{})
	r.Register(&MoveToLineEndCommand{})
	r.Register(&MoveToLastLineCommand{})

	r.Register(&DeleteCharCommand{})
	r.Register(&SubstituteCharCommand{})
	r.Register(&ToggleCaseCommand{})
	r.Register(&EnterReplaceCharCommand{})
	r.Register(&PasteCommand{})
	r.Register(&UndoCommand{})

	r.Register(&EnterInsertModeCommand{})
	r.Register(&EnterInsertModeAfterCommand{})
	r.Register(&EnterInsertModeAtEndCommand{})
	r.Register(&EnterInsertModeAtStartCommand{})
	r.Register(&InsertLineBelowCommand{})
	r.Register(&InsertLineAboveCommand{})
	r.Register(&EnterVisualLineModeCommand{})
	r.Register(&EnterVisualCharModeCommand{})
	r.Register(&EnterCommandLineCommand{})

	r.Register(&SearchWordUnderCursorCommand{})
	r.Register(&SearchNextCommand{})
	r.Register(&DecorateWordCommand{mode: ModeNormal, marker: markerBold, key: Ctrl('b')})
	r.Register(&DecorateWordCommand{mode: ModeNormal, marker: markerItalic, key: Ctrl('i')})
	r.Register(&DecorateWordCommand{mode: ModeNormal, marker: markerCode, key: Ctrl('e')})
	r.Register(&ToggleSmartIndentCommand{mode: ModeNormal})
	r.Register(&MarkupLinksCommand{})
	r.Register(&ClearPendingCommand{})

	// ============================================================================
	// Insert Mode Commands
	// ============================================================================

	r.Register(&InsertNewlineCommand{})
	r.Register(&BackspaceCommand{})
	r.Register(&DeleteForwardCommand{})
	r.Register(&ExitInsertModeCommand{})
	r.Register(&InsertMoveCommand{key: KeyLeft})
	r.Register(&InsertMoveCommand{key: KeyRight})
	r.Register(&InsertMoveCommand{key: KeyUp})
	r.Register(&InsertMoveCommand{key: KeyDown})
	r.Register(&InsertMoveCommand{key: KeyHome})
	r.Register(&InsertMoveCommand{key: KeyEnd})
	r.Register(&PageCommand{down: false})
	r.Register(&PageCommand{down: true})
	r.Register(&SaveCommand{})
	r.Register(&DecorateWordCommand{mode: ModeInsert, marker: markerBold, key: Ctrl('b')})
	r.Register(&DecorateWordCommand{mode: ModeInsert, marker: markerItalic, key: Ctrl('i')})
	r.Register(&DecorateWordCommand{mode: ModeInsert, marker: markerCode, key: Ctrl('e')})
	r.Register(&ToggleSmartIndentCommand{mode: ModeInsert})

	// ============================================================================
	// Command Line Mode Commands
	// ============================================================================

	r.Register(&ExecuteCommandLineCommand{})
	r.Register(&CommandLineBackspaceCommand{})
	r.Register(&CancelCommandLineCommand{})

	// ============================================================================
	// Visual Mode Commands
	// ============================================================================

	r.registerWithModeKeys(ModeVisualLine, &MoveLeftCommand{})
	r.registerWithModeKeys(ModeVisualLine, &MoveRightCommand{})
	r.registerWithModeKeys(ModeVisualLine, &MoveDownCommand{})
	r.registerWithModeKeys(ModeVisualLine, &MoveUpCommand{})
	r.Register(&VisualLineCutCommand{})
	r.Register(&VisualLineYankCommand{})
	r.Register(&VisualLineIndentCommand{})
	r.Register(&VisualLineUnindentCommand{})
	r.Register(&ExitVisualModeCommand{mode: ModeVisualLine})

	r.registerWithModeKeys(ModeVisualChar, &MoveLeftCommand{})
	r.registerWithModeKeys(ModeVisualChar, &MoveRightCommand{})
	r.Register(&VisualCharCutCommand{})
	r.Register(&VisualCharYankCommand{})
	r.Register(&DecorateVisualCommand{marker: markerBold, key: Ctrl('b')})
	r.Register(&DecorateVisualCommand{marker: markerItalic, key: Ctrl('i')})
	r.Register(&DecorateVisualCommand{marker: markerCode, key: Ctrl('e')})
	r.Register(&ExitVisualModeCommand{mode: ModeVisualChar})

	// ============================================================================
	// Replace Char Mode Commands
	// ============================================================================

	r.Register(&CancelReplaceCharCommand{})

	return r
}
