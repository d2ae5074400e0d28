package editor

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/zjrosen/kilovim/internal/editor/motion"
)

const (
	markerBold   = "**"
	markerItalic = "*"
	markerCode   = "`"
)

// ClearPendingCommand drops any partial sequence and repeat count (<escape>).
type ClearPendingCommand struct{ MotionBase }

func (c *ClearPendingCommand) Execute(e *Engine) ExecuteResult {
	e.pending.Clear()
	e.repeat = 0
	return Executed
}

func (c *ClearPendingCommand) Keys() []string { return []string{"<escape>"} }
func (c *ClearPendingCommand) Mode() Mode     { return ModeNormal }
func (c *ClearPendingCommand) ID() string     { return "pending.clear" }

// ============================================================================
// Search
// ============================================================================

// SearchWordUnderCursorCommand makes the word under the cursor the search
// string and jumps to its next occurrence (*).
type SearchWordUnderCursorCommand struct{ MotionBase }

func (c *SearchWordUnderCursorCommand) Execute(e *Engine) ExecuteResult {
	if start, end, ok := motion.WordBounds(e.currentLine(), e.col); ok {
		e.search = bytes.Clone(e.currentLine()[start:end])
	}
	return searchNext(e)
}

func (c *SearchWordUnderCursorCommand) Keys() []string { return []string{"*"} }
func (c *SearchWordUnderCursorCommand) Mode() Mode     { return ModeNormal }
func (c *SearchWordUnderCursorCommand) ID() string     { return "search.word" }

// SearchNextCommand repeats the last search (n).
type SearchNextCommand struct{ MotionBase }

func (c *SearchNextCommand) Execute(e *Engine) ExecuteResult {
	return searchNext(e)
}

func (c *SearchNextCommand) Keys() []string { return []string{"n"} }
func (c *SearchNextCommand) Mode() Mode     { return ModeNormal }
func (c *SearchNextCommand) ID() string     { return "search.next" }

func searchNext(e *Engine) ExecuteResult {
	if len(e.search) == 0 {
		e.status = "No previous search"
		return Skipped
	}
	p, ok := motion.SearchNext(e.buf, e.pos(), e.search)
	if !ok {
		e.status = fmt.Sprintf("Pattern not found: %s", e.search)
		return Skipped
	}
	e.moveTo(p)
	e.status = "/" + string(e.search)
	return Executed
}

// ============================================================================
// Markdown Decoration
// ============================================================================

// DecorateWordCommand toggles a markdown marker around the word under the
// cursor (<ctrl+b> bold, <ctrl+i> italic, <ctrl+e> code).
type DecorateWordCommand struct {
	EditBase
	mode   Mode
	marker string
	key    Key
}

func (c *DecorateWordCommand) Execute(e *Engine) ExecuteResult {
	line := e.currentLine()
	start, end, ok := motion.WordBounds(line, e.col)
	if !ok {
		return Skipped
	}
	m := []byte(c.marker)
	w := len(m)

	decorated := start >= w && bytes.Equal(line[start-w:start], m) && bytes.HasPrefix(line[end:], m)
	// A marker made of word bytes (the backtick) ends up inside the word bounds.
	if !decorated && motion.IsWord(m[0]) && end-start > 2*w &&
		bytes.HasPrefix(line[start:end], m) && bytes.HasSuffix(line[start:end], m) {
		start, end = start+w, end-w
		decorated = true
	}
	if decorated {
		if _, err := e.buf.DeleteRange(e.line, end, end+w); e.recovered("decorate.word", err) {
			return Skipped
		}
		if _, err := e.buf.DeleteRange(e.line, start-w, start); e.recovered("decorate.word", err) {
			return Skipped
		}
		e.col = max(start-w, min(e.col-w, end-w-1))
		return Executed
	}

	if e.recovered("decorate.word", e.buf.InsertBytes(e.line, end, m)) {
		return Skipped
	}
	if e.recovered("decorate.word", e.buf.InsertBytes(e.line, start, m)) {
		return Skipped
	}
	e.col += w
	return Executed
}

func (c *DecorateWordCommand) Keys() []string { return []string{c.key.String()} }
func (c *DecorateWordCommand) Mode() Mode     { return c.mode }
func (c *DecorateWordCommand) ID() string     { return "decorate.word" }

// ToggleSmartIndentCommand switches auto-indent of new lines (<ctrl+z>).
type ToggleSmartIndentCommand struct {
	MotionBase
	mode Mode
}

func (c *ToggleSmartIndentCommand) Execute(e *Engine) ExecuteResult {
	e.smartIndent = !e.smartIndent
	if e.smartIndent {
		e.status = "smart indent on"
	} else {
		e.status = "smart indent off"
	}
	return Executed
}

func (c *ToggleSmartIndentCommand) Keys() []string { return []string{"<ctrl+z>"} }
func (c *ToggleSmartIndentCommand) Mode() Mode     { return c.mode }
func (c *ToggleSmartIndentCommand) ID() string     { return "option.smart_indent" }

// ============================================================================
// Link Markup
// ============================================================================

// MarkupLinksCommand rewrites the first bare http URL of every line as a
// reference link "[url][n]" and appends "[n]: url" at the end of the
// document (<ctrl+h>). Lines starting with '[' or already holding "[http"
// are left alone.
type MarkupLinksCommand struct{ EditBase }

func (c *MarkupLinksCommand) Execute(e *Engine) ExecuteResult {
	total := e.buf.Len()
	if total == 0 {
		return Skipped
	}

	ref := 1
	for i := total - 1; i >= 0 && isReferenceLine(e.buf.Line(i)); i-- {
		ref++
	}

	marked := 0
	for y := range total {
		line := e.buf.Line(y)
		if len(line) == 0 || line[0] == '[' || bytes.Contains(line, []byte("[http")) {
			continue
		}
		p := bytes.Index(line, []byte("http"))
		if p < 0 {
			continue
		}
		end := len(line)
		if from := min(p+10, len(line)); from < len(line) {
			if sp := bytes.IndexByte(line[from:], ' '); sp >= 0 {
				end = from + sp
			}
		}
		url := bytes.Clone(line[p:end])
		n := strconv.Itoa(ref)

		var out []byte
		out = append(out, line[:p]...)
		out = append(out, '[')
		out = append(out, url...)
		out = append(out, "]["+n+"]"...)
		out = append(out, line[end:]...)
		if e.recovered("markup.links", e.buf.ReplaceLine(y, out)) {
			break
		}

		if !isReferenceLine(e.buf.Line(e.buf.Len() - 1)) {
			if e.recovered("markup.links", e.buf.InsertLine(e.buf.Len(), nil)) {
				break
			}
		}
		refLine := append([]byte("["+n+"]: "), url...)
		if e.recovered("markup.links", e.buf.InsertLine(e.buf.Len(), refLine)) {
			break
		}
		ref++
		marked++
	}

	if marked == 0 {
		return Skipped
	}
	e.status = fmt.Sprintf("%d links marked up", marked)
	return Executed
}

func (c *MarkupLinksCommand) Keys() []string { return []string{"<ctrl+h>"} }
func (c *MarkupLinksCommand) Mode() Mode     { return ModeNormal }
func (c *MarkupLinksCommand) ID() string     { return "markup.links" }

func isReferenceLine(line []byte) bool {
	return len(line) > 0 && line[0] == '['
}
