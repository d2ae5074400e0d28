package editor

import (
	"fmt"
	"strings"

	"github.com/zjrosen/kilovim/internal/log"
)

// ============================================================================
// Command Line Mode
// ============================================================================

// EnterCommandLineCommand starts an ex command (:).
type EnterCommandLineCommand struct{ ModeEntryBase }

func (c *EnterCommandLineCommand) Execute(e *Engine) ExecuteResult {
	e.cmdline = e.cmdline[:0]
	e.status = ":"
	return Executed
}

func (c *EnterCommandLineCommand) Keys() []string { return []string{":"} }
func (c *EnterCommandLineCommand) Mode() Mode     { return ModeNormal }
func (c *EnterCommandLineCommand) ID() string     { return "mode.command_line" }
func (c *EnterCommandLineCommand) NextMode() Mode { return ModeCommandLine }

// CommandLineAppendCommand adds a typed byte to the command line.
type CommandLineAppendCommand struct {
	ModeEntryBase
	ch byte
}

func (c *CommandLineAppendCommand) Execute(e *Engine) ExecuteResult {
	e.cmdline = append(e.cmdline, c.ch)
	e.status = ":" + string(e.cmdline)
	return Executed
}

func (c *CommandLineAppendCommand) Keys() []string { return []string{string(c.ch)} }
func (c *CommandLineAppendCommand) Mode() Mode     { return ModeCommandLine }
func (c *CommandLineAppendCommand) ID() string     { return "command_line.append" }
func (c *CommandLineAppendCommand) NextMode() Mode { return ModeCommandLine }

// CommandLineBackspaceCommand removes the last typed byte. Backspacing over
// the ':' leaves command line mode.
type CommandLineBackspaceCommand struct{ ModeEntryBase }

func (c *CommandLineBackspaceCommand) Execute(e *Engine) ExecuteResult {
	if len(e.cmdline) == 0 {
		return Skipped
	}
	e.cmdline = e.cmdline[:len(e.cmdline)-1]
	e.status = ":" + string(e.cmdline)
	return Executed
}

func (c *CommandLineBackspaceCommand) Keys() []string { return []string{"<backspace>", "<delete>"} }
func (c *CommandLineBackspaceCommand) Mode() Mode     { return ModeCommandLine }
func (c *CommandLineBackspaceCommand) ID() string     { return "command_line.backspace" }

// CancelCommandLineCommand abandons the command line (<escape>).
type CancelCommandLineCommand struct{ ModeEntryBase }

func (c *CancelCommandLineCommand) Execute(e *Engine) ExecuteResult {
	e.cmdline = e.cmdline[:0]
	e.status = ""
	return Executed
}

func (c *CancelCommandLineCommand) Keys() []string { return []string{"<escape>"} }
func (c *CancelCommandLineCommand) Mode() Mode     { return ModeCommandLine }
func (c *CancelCommandLineCommand) ID() string     { return "command_line.cancel" }
func (c *CancelCommandLineCommand) NextMode() Mode { return ModeNormal }

// ExecuteCommandLineCommand runs the typed ex command (<enter>):
//
//	:w [name]   save
//	:x [name]   save and quit (also :wq)
//	:q          quit unless there are unsaved changes
//	:q!         quit unconditionally
type ExecuteCommandLineCommand struct{ ModeEntryBase }

func (c *ExecuteCommandLineCommand) Execute(e *Engine) ExecuteResult {
	line := strings.TrimSpace(string(e.cmdline))
	e.cmdline = e.cmdline[:0]
	e.status = ""

	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	log.Debug(log.CatKeys, "ex command", "name", name, "arg", arg)

	switch name {
	case "":
	case "w":
		e.save(arg)
	case "x", "wq":
		if e.save(arg) {
			e.quit = true
		}
	case "q":
		if e.buf.Dirty() {
			e.status = "No write since last change"
			return Executed
		}
		e.quit = true
	case "q!":
		e.quit = true
	default:
		e.status = fmt.Sprintf("Not an editor command: %s", line)
	}
	return Executed
}

func (c *ExecuteCommandLineCommand) Keys() []string { return []string{"<enter>"} }
func (c *ExecuteCommandLineCommand) Mode() Mode     { return ModeCommandLine }
func (c *ExecuteCommandLineCommand) ID() string     { return "command_line.execute" }
func (c *ExecuteCommandLineCommand) NextMode() Mode { return ModeNormal }

// SaveCommand writes the document to its current file name (<ctrl+s>).
type SaveCommand struct{ ModeEntryBase }

func (c *SaveCommand) Execute(e *Engine) ExecuteResult {
	if !e.save("") {
		return Skipped
	}
	return Executed
}

func (c *SaveCommand) Keys() []string { return []string{"<ctrl+s>"} }
func (c *SaveCommand) Mode() Mode     { return ModeInsert }
func (c *SaveCommand) ID() string     { return "file.save" }

// save writes through the Store. An empty name means the current file name.
// The outcome is reported in the status line.
func (e *Engine) save(name string) bool {
	if name == "" {
		name = e.filename
	}
	if name == "" {
		e.status = "No file name"
		return false
	}
	if e.store == nil {
		e.status = fmt.Sprintf("Can't write \"%s\": no store", name)
		return false
	}
	n, err := e.store.Save(name, e.SerializeText())
	if err != nil {
		log.ErrorErr(log.CatFile, "save failed", err, "name", name)
		e.status = fmt.Sprintf("Can't write \"%s\": %v", name, err)
		return false
	}
	e.filename = name
	e.buf.ClearDirty()
	log.Info(log.CatFile, "saved", "name", name, "bytes", n)
	e.status = fmt.Sprintf("\"%s\" written", name)
	return true
}
