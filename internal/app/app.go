// Package app contains the root application model: a Bubble Tea front end
// that feeds terminal keys to the editor engine and draws its RenderState.
package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/kilovim/internal/editor"
	"github.com/zjrosen/kilovim/internal/editor/wrap"
	"github.com/zjrosen/kilovim/internal/keys"
	"github.com/zjrosen/kilovim/internal/log"
)

// chromeRows is the number of rows below the text area: status bar and
// message line.
const chromeRows = 2

var (
	cursorStyle    = lipgloss.NewStyle().Reverse(true)
	selectionStyle = lipgloss.NewStyle().Background(lipgloss.Color("238")).Foreground(lipgloss.Color("255"))
	statusBarStyle = lipgloss.NewStyle().Reverse(true)
	modeStyle      = lipgloss.NewStyle().Bold(true).Reverse(true)
	tildeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// Model is the root application state.
type Model struct {
	engine *editor.Engine
	state  editor.RenderState
	keys   keys.AppKeyMap

	width  int
	height int

	// external modification of the open file
	changes     <-chan struct{}
	changedDisk func() bool
}

// Option configures a Model.
type Option func(*Model)

// WithFileWatch makes the model warn when the open file is modified by
// another program. changes signals possible modifications; changed confirms
// them so the editor's own writes are not reported.
func WithFileWatch(changes <-chan struct{}, changed func() bool) Option {
	return func(m *Model) {
		m.changes = changes
		m.changedDisk = changed
	}
}

// fileChangedMsg is delivered when the watcher signals a change.
type fileChangedMsg struct{}

// New creates the application model around a loaded engine.
func New(e *editor.Engine, opts ...Option) Model {
	m := Model{
		engine: e,
		state:  e.State(),
		keys:   keys.App,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func (m Model) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	ch := m.changes
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}

// State returns the last render state received from the engine.
func (m Model) State() editor.RenderState {
	return m.state
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle(windowTitle(m.state.Filename)),
		m.waitForChange(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.engine.SetViewport(msg.Width, max(msg.Height-chromeRows, 1))
		m.state = m.engine.State()
		log.Debug(log.CatUI, "resize", "width", msg.Width, "height", msg.Height)
		return m, nil

	case fileChangedMsg:
		if m.changedDisk != nil && m.changedDisk() {
			log.Warn(log.CatFile, "changed on disk", "name", m.state.Filename)
			m.engine.SetStatus("WARNING: %q changed on disk since it was read", m.state.Filename)
			m.state = m.engine.State()
		}
		return m, m.waitForChange()

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			log.Info(log.CatUI, "force quit", "dirty", m.state.Dirty)
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.Redraw) {
			return m, tea.ClearScreen
		}

		name := m.state.Filename
		for _, k := range translateKey(msg) {
			m.state = m.engine.HandleKey(k)
			if m.state.Quit {
				return m, tea.Quit
			}
		}
		if m.state.Filename != name {
			return m, tea.SetWindowTitle(windowTitle(m.state.Filename))
		}
	}
	return m, nil
}

func windowTitle(name string) string {
	if name == "" {
		return "kilovim"
	}
	return "kilovim - " + name
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	textHeight := max(m.height-chromeRows, 1)

	var b strings.Builder
	for i, row := range m.textRows(textHeight) {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(row)
	}
	b.WriteByte('\n')
	b.WriteString(m.statusBar())
	b.WriteByte('\n')
	b.WriteString(ansi.Truncate(m.state.Status, m.width, "…"))
	return b.String()
}

// ============================================================================
// Text area
// ============================================================================

// document adapts the render state lines to wrap.Text.
type document []string

func (d document) Len() int          { return len(d) }
func (d document) LineLen(i int) int { return len(d[i]) }

// visualRow is one wrapped segment of a logical line.
type visualRow struct {
	line int
	text string
}

// textRows renders textHeight rows starting at the engine's row offset.
func (m Model) textRows(textHeight int) []string {
	s := m.state
	mapper := wrap.New(m.width)
	doc := document(s.Lines)

	rows := make([]string, 0, textHeight)
	first := mapper.LogicalLineOf(doc, s.RowOffset)
	skip := s.RowOffset - mapper.FirstRowOf(doc, first)

	for i := first; i < len(doc) && len(rows) < textHeight; i++ {
		for _, text := range mapper.Segments([]byte(doc[i])) {
			if skip > 0 {
				skip--
				continue
			}
			if len(rows) == textHeight {
				break
			}
			r := visualRow{line: i, text: string(text)}
			rows = append(rows, m.renderRow(r, len(rows), mapper, doc))
		}
	}

	for len(rows) < textHeight {
		if len(rows) == s.Cursor.Row {
			rows = append(rows, cursorStyle.Render(" "))
			continue
		}
		rows = append(rows, tildeStyle.Render("~"))
	}
	return rows
}

// renderRow draws one segment with the selection and cursor applied.
// Control and non-ASCII bytes are shown as '?' so each byte keeps its column.
func (m Model) renderRow(r visualRow, screenRow int, mapper wrap.Mapper, doc document) string {
	s := m.state
	cursorCol := -1
	if screenRow == s.Cursor.Row {
		cursorCol = s.Cursor.Col
	}

	selected := func(col int) bool {
		h := s.Highlight
		if !h.Active {
			return false
		}
		if h.Linewise {
			return r.line >= h.Start && r.line <= h.End
		}
		cursorLine := mapper.LineAt(doc, wrap.Cursor{
			Row:          s.RowOffset + s.Cursor.Row,
			Col:          s.Cursor.Col,
			Continuation: s.Cursor.Continuation,
		})
		abs := mapper.LogicalColumnOf(doc, wrap.Cursor{Row: s.RowOffset + screenRow, Col: col})
		return r.line == cursorLine && abs >= h.Start && abs <= h.End
	}

	var out, run strings.Builder
	flush := func() {
		if run.Len() > 0 {
			out.WriteString(selectionStyle.Render(run.String()))
			run.Reset()
		}
	}
	for col := 0; col < len(r.text); col++ {
		ch := displayByte(r.text[col])
		switch {
		case col == cursorCol:
			flush()
			out.WriteString(cursorStyle.Render(ch))
		case selected(col):
			run.WriteString(ch)
		default:
			flush()
			out.WriteString(ch)
		}
	}
	flush()

	if cursorCol >= len(r.text) {
		out.WriteString(cursorStyle.Render(" "))
	} else if len(r.text) == 0 && s.Highlight.Active && s.Highlight.Linewise && selected(0) {
		out.WriteString(selectionStyle.Render(" "))
	}
	return out.String()
}

func displayByte(c byte) string {
	if c < ' ' || c >= 0x7f {
		return "?"
	}
	return string(c)
}

// ============================================================================
// Status bar
// ============================================================================

func (m Model) statusBar() string {
	s := m.state
	name := s.Filename
	if name == "" {
		name = "[No Name]"
	}
	if s.Dirty {
		name += " [+]"
	}
	mode := " " + s.Mode.String() + " "
	left := " " + name
	right := fmt.Sprintf("%s  %d lines ", s.Pending, len(s.Lines))

	avail := max(m.width-lipgloss.Width(mode), 0)
	gap := avail - len(left) - len(right)
	bar := left + strings.Repeat(" ", max(gap, 1)) + right
	return modeStyle.Render(ansi.Truncate(mode, m.width, "")) + statusBarStyle.Render(ansi.Truncate(bar, avail, ""))
}
