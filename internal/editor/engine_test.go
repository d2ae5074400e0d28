package editor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/kilovim/internal/editor/buffer"
)

// newTestEngine creates an engine holding lines with smart indent enabled.
func newTestEngine(lines ...string) *Engine {
	e := New(Config{SmartIndent: true})
	e.LoadText(lines)
	return e
}

// typeKeys feeds every byte of keys to the engine and returns the last state.
func typeKeys(e *Engine, keys string) RenderState {
	s := e.State()
	for i := 0; i < len(keys); i++ {
		s = e.HandleKey(Key(keys[i]))
	}
	return s
}

// registerLines pastes the line register into a scratch buffer.
func registerLines(e *Engine) []string {
	b := buffer.New()
	_, _ = e.regs.PasteLines(b, -1)
	return b.Lines()
}

// registerSpan pastes the string register into a scratch line.
func registerSpan(e *Engine) string {
	b := buffer.New("")
	_, _ = e.regs.PasteSpan(b, 0, 0)
	return string(b.Line(0))
}

type memStore struct {
	files map[string][]string
	err   error
}

func (m *memStore) Save(name string, lines []string) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if m.files == nil {
		m.files = map[string][]string{}
	}
	m.files[name] = append([]string(nil), lines...)
	n := 0
	for _, l := range lines {
		n += len(l) + 1
	}
	return n, nil
}

// ============================================================================
// Scenarios
// ============================================================================

func TestDeleteLines_WithCount(t *testing.T) {
	e := newTestEngine("l0", "l1", "l2", "l3", "l4")
	s := typeKeys(e, "3dd")

	require.Equal(t, []string{"l3", "l4"}, s.Lines)
	require.Equal(t, []string{"l0", "l1", "l2"}, registerLines(e))
	require.Equal(t, Cursor{Row: 0, Col: 0}, s.Cursor)
	require.Equal(t, ModeNormal, s.Mode)
	require.Empty(t, s.Pending)
}

func TestDeleteLines_CountClampedToRemaining(t *testing.T) {
	e := newTestEngine("a", "b", "c")
	typeKeys(e, "j")
	s := typeKeys(e, "9dd")
	require.Equal(t, []string{"a"}, s.Lines)
	require.Equal(t, []string{"b", "c"}, registerLines(e))
	require.Equal(t, 0, s.Cursor.Row)
}

func TestDeleteWord(t *testing.T) {
	e := newTestEngine("hello world")
	s := typeKeys(e, "dw")
	require.Equal(t, []string{"world"}, s.Lines)
	require.Equal(t, Cursor{Row: 0, Col: 0}, s.Cursor)
}

func TestInsertEscapeUndo(t *testing.T) {
	e := newTestEngine("abc", "def")
	s := typeKeys(e, "ix\x1b")
	require.Equal(t, []string{"xabc", "def"}, s.Lines)
	require.Equal(t, ModeNormal, s.Mode)

	s = typeKeys(e, "u")
	require.Equal(t, []string{"abc", "def"}, s.Lines)
}

func TestQuit_RefusedWhenDirty(t *testing.T) {
	e := newTestEngine("abc")
	typeKeys(e, "x")

	s := typeKeys(e, ":q\r")
	require.Equal(t, "No write since last change", s.Status)
	require.Equal(t, ModeNormal, s.Mode)
	require.False(t, s.Quit)

	s = typeKeys(e, ":q!\r")
	require.True(t, s.Quit)
}

func TestQuit_CleanBuffer(t *testing.T) {
	e := newTestEngine("abc")
	s := typeKeys(e, ":q\r")
	require.True(t, s.Quit)
}

func TestWrap_CursorOnSecondSegment(t *testing.T) {
	e := newTestEngine("abcde")
	e.SetViewport(3, 10)
	s := typeKeys(e, "$")
	require.Equal(t, Cursor{Row: 1, Col: 1}, s.Cursor)
}

func TestInsert_FillingSegmentAdvancesRow(t *testing.T) {
	e := newTestEngine("ab", "next")
	e.SetViewport(3, 10)

	s := typeKeys(e, "Ac")
	require.Equal(t, []string{"abc", "next"}, s.Lines)
	require.Equal(t, Cursor{Row: 1, Col: 0, Continuation: true}, s.Cursor)

	// the continuation row still belongs to line 0
	s = typeKeys(e, "d")
	require.Equal(t, []string{"abcd", "next"}, s.Lines)
	require.Equal(t, Cursor{Row: 1, Col: 1}, s.Cursor)

	s = typeKeys(e, "\x1b")
	require.Equal(t, Cursor{Row: 1, Col: 0}, s.Cursor)
}

func TestMoveDown_FromWrappedRowKeepsVisualColumn(t *testing.T) {
	e := newTestEngine("abcdefgh", "xyz")
	e.SetViewport(3, 10)

	s := typeKeys(e, "$")
	require.Equal(t, Cursor{Row: 2, Col: 1}, s.Cursor)

	s = typeKeys(e, "j")
	require.Equal(t, Cursor{Row: 3, Col: 1}, s.Cursor)
	require.Equal(t, 1, e.line)
	require.Equal(t, 1, e.col)

	s = typeKeys(e, "k")
	require.Equal(t, Cursor{Row: 0, Col: 1}, s.Cursor)
	require.Equal(t, 0, e.line)
	require.Equal(t, 1, e.col)
}

func TestMoveUp_FromContinuationRow(t *testing.T) {
	e := newTestEngine("abc", "def", "next")
	e.SetViewport(3, 10)

	s := typeKeys(e, "jA")
	require.Equal(t, Cursor{Row: 2, Col: 0, Continuation: true}, s.Cursor)

	s = e.HandleKey(KeyUp)
	require.Equal(t, Cursor{Row: 0, Col: 0}, s.Cursor)
	require.Equal(t, 0, e.line)
}

func TestDeleteSoleLine_ThenInsert(t *testing.T) {
	e := newTestEngine("only")
	s := typeKeys(e, "dd")
	require.Empty(t, s.Lines)
	require.Equal(t, Cursor{}, s.Cursor)

	s = typeKeys(e, "iz")
	require.Equal(t, []string{"z"}, s.Lines)
}

// ============================================================================
// Repeat count and pending sequences
// ============================================================================

func TestZero_IsLineStartWithoutCount(t *testing.T) {
	e := newTestEngine("hello")
	s := typeKeys(e, "$0")
	require.Equal(t, 0, s.Cursor.Col)

	s = typeKeys(e, "10l")
	require.Equal(t, 4, s.Cursor.Col)
}

func TestPending_ShownWhilePartial(t *testing.T) {
	e := newTestEngine("a", "b")
	s := typeKeys(e, "3d")
	require.Equal(t, "3d", s.Pending)

	s = typeKeys(e, "\x1b")
	require.Empty(t, s.Pending)
	require.Equal(t, []string{"a", "b"}, s.Lines)
}

func TestPending_UnresolvedDiscarded(t *testing.T) {
	e := newTestEngine("abc")
	s := typeKeys(e, "dq")
	require.Empty(t, s.Pending)
	require.Equal(t, []string{"abc"}, s.Lines)

	s = typeKeys(e, "x")
	require.Equal(t, []string{"bc"}, s.Lines)
}

func TestPending_MotionClearsSequence(t *testing.T) {
	e := newTestEngine("a", "b")
	s := typeKeys(e, "dj")
	require.Empty(t, s.Pending)
	require.Equal(t, 1, s.Cursor.Row)
	require.Equal(t, []string{"a", "b"}, s.Lines)
}

// ============================================================================
// Multi-key table
// ============================================================================

func TestDeleteToWordEnd(t *testing.T) {
	e := newTestEngine("hello world")
	s := typeKeys(e, "de")
	require.Equal(t, []string{" world"}, s.Lines)
}

func TestDeleteToEOL(t *testing.T) {
	e := newTestEngine("hello world")
	s := typeKeys(e, "wd$")
	require.Equal(t, []string{"hello "}, s.Lines)
	require.Equal(t, 5, s.Cursor.Col)
}

func TestDeleteToEOL_WithCount(t *testing.T) {
	e := newTestEngine("abc", "def", "ghi")
	s := typeKeys(e, "l2d$")
	require.Equal(t, []string{"a", "ghi"}, s.Lines)
}

func TestChangeWord(t *testing.T) {
	e := newTestEngine("hello world")
	s := typeKeys(e, "cw")
	require.Equal(t, ModeInsert, s.Mode)
	require.Equal(t, insertStatus, s.Status)

	s = typeKeys(e, "bye\x1b")
	require.Equal(t, []string{"bye world"}, s.Lines)
}

func TestDeleteAroundWord(t *testing.T) {
	e := newTestEngine("foo bar baz")
	s := typeKeys(e, "wldaw")
	require.Equal(t, []string{"foo baz"}, s.Lines)
	require.Equal(t, 4, s.Cursor.Col)
}

func TestChangeAroundWord(t *testing.T) {
	e := newTestEngine("foo bar baz")
	s := typeKeys(e, "wcawqux \x1b")
	require.Equal(t, []string{"foo qux baz"}, s.Lines)
}

func TestIndentUnindent(t *testing.T) {
	e := newTestEngine("a", "", "b")
	s := typeKeys(e, "3>>")
	require.Equal(t, []string{"    a", "", "    b"}, s.Lines)
	require.Equal(t, 4, s.Cursor.Col)

	s = typeKeys(e, "<<")
	require.Equal(t, []string{"a", "", "    b"}, s.Lines)
}

func TestIndent_CustomWidth(t *testing.T) {
	e := New(Config{IndentWidth: 2})
	e.LoadText([]string{"x"})
	s := typeKeys(e, ">>")
	require.Equal(t, []string{"  x"}, s.Lines)
}

func TestGotoLines(t *testing.T) {
	e := newTestEngine("a", "b", "c", "d")
	s := typeKeys(e, "G")
	require.Equal(t, 3, s.Cursor.Row)
	s = typeKeys(e, "gg")
	require.Equal(t, 0, s.Cursor.Row)
	s = typeKeys(e, "3gg")
	require.Equal(t, 2, s.Cursor.Row)
	s = typeKeys(e, "99gg")
	require.Equal(t, 3, s.Cursor.Row)
}

func TestYankLinePaste(t *testing.T) {
	e := newTestEngine("a", "b")
	s := typeKeys(e, "yyp")
	require.Equal(t, []string{"a", "a", "b"}, s.Lines)
	require.Equal(t, 1, s.Cursor.Row)
}

func TestPaste_EmptyRegister(t *testing.T) {
	e := newTestEngine("a")
	s := typeKeys(e, "p")
	require.Equal(t, []string{"a"}, s.Lines)
	require.Equal(t, "Nothing to paste", s.Status)
}

// ============================================================================
// Single-key edits
// ============================================================================

func TestDeleteChar_WithCount(t *testing.T) {
	e := newTestEngine("abcdef")
	s := typeKeys(e, "3x")
	require.Equal(t, []string{"def"}, s.Lines)

	s = typeKeys(e, "$9x")
	require.Equal(t, []string{"de"}, s.Lines)
	require.Equal(t, 1, s.Cursor.Col)
}

func TestDeleteChar_EmptyDocumentIsNoop(t *testing.T) {
	e := newTestEngine()
	s := typeKeys(e, "x")
	require.Empty(t, s.Lines)
	require.False(t, s.Dirty)
}

func TestSubstitute(t *testing.T) {
	e := newTestEngine("abc")
	s := typeKeys(e, "sZ\x1b")
	require.Equal(t, []string{"Zbc"}, s.Lines)
}

func TestToggleCase(t *testing.T) {
	e := newTestEngine("abC!")
	s := typeKeys(e, "~~")
	require.Equal(t, []string{"ABC!"}, s.Lines)
	require.Equal(t, 2, s.Cursor.Col)

	s = typeKeys(e, "2~")
	require.Equal(t, []string{"ABc!"}, s.Lines)
	require.Equal(t, 3, s.Cursor.Col)
}

func TestReplaceChar(t *testing.T) {
	e := newTestEngine("abcd")
	s := typeKeys(e, "rx")
	require.Equal(t, []string{"xbcd"}, s.Lines)
	require.Equal(t, 0, s.Cursor.Col)
	require.Equal(t, ModeNormal, s.Mode)

	s = typeKeys(e, "3rz")
	require.Equal(t, []string{"zzzd"}, s.Lines)
	require.Equal(t, 2, s.Cursor.Col)

	s = typeKeys(e, "r\x1b")
	require.Equal(t, []string{"zzzd"}, s.Lines)
	require.Equal(t, ModeNormal, s.Mode)
}

func TestReplaceChar_CountClampsToLine(t *testing.T) {
	e := newTestEngine("abc")
	s := typeKeys(e, "l5rx")
	require.Equal(t, []string{"axx"}, s.Lines)
	require.Equal(t, 2, s.Cursor.Col)
	require.Equal(t, ModeNormal, s.Mode)
}

func TestReplaceChar_ModeWhilePending(t *testing.T) {
	e := newTestEngine("abc")
	s := typeKeys(e, "2r")
	require.Equal(t, ModeReplaceChar, s.Mode)
	require.Equal(t, "2", s.Pending)
}

// ============================================================================
// Insert mode
// ============================================================================

func TestInsertModeEntries(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		keys  string
		want  []string
	}{
		{"a appends after cursor", []string{"ac"}, "ab\x1b", []string{"abc"}},
		{"A appends at end", []string{"ab"}, "Ac\x1b", []string{"abc"}},
		{"I inserts after indent", []string{"  b"}, "$Ia\x1b", []string{"  ab"}},
		{"o opens below with indent", []string{"  a"}, "ob\x1b", []string{"  a", "  b"}},
		{"O opens above with indent", []string{"  a"}, "Ob\x1b", []string{"  b", "  a"}},
		{"escape empties auto-indent line", []string{"  a"}, "o\x1b", []string{"  a", ""}},
		{"escape keeps typed blank line", []string{""}, "i   \x1b", []string{"   "}},
		{"escape keeps spaces typed after indent", []string{"  a"}, "o  \x1b", []string{"  a", "    "}},
		{"escape empties indent left by enter", []string{"  a"}, "A\r\x1b", []string{"  a", ""}},
		{"escape keeps spaces after text", []string{"a"}, "A  \x1b", []string{"a  "}},
		{"enter keeps indent", []string{"    foo"}, "A\rbar\x1b", []string{"    foo", "    bar"}},
		{"enter splits line", []string{"foobar"}, "3li\r\x1b", []string{"foo", "bar"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(tt.lines...)
			s := typeKeys(e, tt.keys)
			require.Equal(t, tt.want, s.Lines)
			require.Equal(t, ModeNormal, s.Mode)
		})
	}
}

func TestInsert_SmartIndentOff(t *testing.T) {
	e := New(Config{})
	e.LoadText([]string{"  a"})
	s := typeKeys(e, "ob")
	require.Equal(t, []string{"  a", "b"}, s.Lines)
}

func TestToggleSmartIndent(t *testing.T) {
	e := newTestEngine("  a")
	s := e.HandleKey(Ctrl('z'))
	require.Equal(t, "smart indent off", s.Status)
	s = typeKeys(e, "ob")
	require.Equal(t, []string{"  a", "b"}, s.Lines)

	s = e.HandleKey(Ctrl('z'))
	require.Equal(t, "smart indent on", s.Status)
}

func TestInsert_BackspaceJoinsLines(t *testing.T) {
	e := newTestEngine("ab", "cd")
	typeKeys(e, "ji")
	s := e.HandleKey(KeyBackspace)
	require.Equal(t, []string{"abcd"}, s.Lines)
	require.Equal(t, Cursor{Row: 0, Col: 2}, s.Cursor)

	s = e.HandleKey(KeyBackspace)
	require.Equal(t, []string{"acd"}, s.Lines)
	require.Equal(t, 1, s.Cursor.Col)
}

func TestInsert_BackspaceAtOriginIsNoop(t *testing.T) {
	e := newTestEngine("ab")
	typeKeys(e, "i")
	s := e.HandleKey(KeyBackspace)
	require.Equal(t, []string{"ab"}, s.Lines)
	require.False(t, s.Dirty)
}

func TestInsert_DeleteAndNavigation(t *testing.T) {
	e := newTestEngine("abc", "de")
	typeKeys(e, "i")
	s := e.HandleKey(KeyDelete)
	require.Equal(t, []string{"bc", "de"}, s.Lines)

	s = e.HandleKey(KeyEnd)
	require.Equal(t, 2, s.Cursor.Col)
	s = e.HandleKey(KeyDown)
	require.Equal(t, Cursor{Row: 1, Col: 2}, s.Cursor)
	s = e.HandleKey(KeyHome)
	require.Equal(t, 0, s.Cursor.Col)
	s = e.HandleKey(KeyRight)
	require.Equal(t, 1, s.Cursor.Col)
	s = e.HandleKey(KeyUp)
	require.Equal(t, Cursor{Row: 0, Col: 1}, s.Cursor)
	s = e.HandleKey(KeyLeft)
	require.Equal(t, 0, s.Cursor.Col)
}

func TestInsert_PageDown(t *testing.T) {
	e := newTestEngine("0", "1", "2", "3", "4", "5", "6", "7", "8", "9")
	e.SetViewport(10, 3)
	typeKeys(e, "i")
	s := e.HandleKey(KeyPageDown)
	require.Equal(t, 5, s.RowOffset+s.Cursor.Row)

	s = e.HandleKey(KeyPageUp)
	require.Equal(t, 0, s.RowOffset+s.Cursor.Row)
}

func TestInsert_IntoEmptyDocument(t *testing.T) {
	e := newTestEngine()
	s := typeKeys(e, "i\rx")
	require.Equal(t, []string{"", "x"}, s.Lines)
}

// ============================================================================
// Search, decoration, links
// ============================================================================

func TestSearchWordUnderCursor(t *testing.T) {
	e := newTestEngine("foo bar", "baz foo")
	s := typeKeys(e, "*")
	require.Equal(t, Cursor{Row: 1, Col: 4}, s.Cursor)
	require.Equal(t, "/foo", s.Status)

	s = typeKeys(e, "n")
	require.Equal(t, Cursor{Row: 0, Col: 0}, s.Cursor)
}

func TestSearchNext_WithoutPattern(t *testing.T) {
	e := newTestEngine("abc")
	s := typeKeys(e, "n")
	require.Equal(t, "No previous search", s.Status)
}

func TestDecorateWord_Toggles(t *testing.T) {
	e := newTestEngine("hello world")
	s := e.HandleKey(Ctrl('b'))
	require.Equal(t, []string{"**hello** world"}, s.Lines)
	require.Equal(t, 2, s.Cursor.Col)

	s = e.HandleKey(Ctrl('b'))
	require.Equal(t, []string{"hello world"}, s.Lines)
	require.Equal(t, 0, s.Cursor.Col)

	typeKeys(e, "w")
	s = e.HandleKey(Ctrl('e'))
	require.Equal(t, []string{"hello `world`"}, s.Lines)
}

func TestDecorateWord_CodeToggles(t *testing.T) {
	e := newTestEngine("hello world")
	s := e.HandleKey(Ctrl('e'))
	require.Equal(t, []string{"`hello` world"}, s.Lines)
	require.Equal(t, 1, s.Cursor.Col)

	s = e.HandleKey(Ctrl('e'))
	require.Equal(t, []string{"hello world"}, s.Lines)
	require.Equal(t, 0, s.Cursor.Col)
}

func TestDecorateWord_CodeTogglesFromMarker(t *testing.T) {
	e := newTestEngine("say `hi` now")
	typeKeys(e, "$bb")
	require.Equal(t, 4, e.col)

	s := e.HandleKey(Ctrl('e'))
	require.Equal(t, []string{"say hi now"}, s.Lines)
	require.Equal(t, 4, s.Cursor.Col)
}

func TestDecorateWord_InsertMode(t *testing.T) {
	e := newTestEngine("word")
	typeKeys(e, "i")
	s := e.HandleKey(Ctrl('i'))
	require.Equal(t, []string{"*word*"}, s.Lines)
	require.Equal(t, ModeInsert, s.Mode)
}

func TestMarkupLinks(t *testing.T) {
	e := newTestEngine("see http://example.com now", "plain", "go https://go.dev")
	s := e.HandleKey(Ctrl('h'))
	require.Equal(t, []string{
		"see [http://example.com][1] now",
		"plain",
		"go [https://go.dev][2]",
		"",
		"[1]: http://example.com",
		"[2]: https://go.dev",
	}, s.Lines)
	require.Equal(t, "2 links marked up", s.Status)

	// already marked lines are skipped
	s = e.HandleKey(Ctrl('h'))
	require.Len(t, s.Lines, 6)
}

// ============================================================================
// Visual modes
// ============================================================================

func TestVisualLine_Cut(t *testing.T) {
	e := newTestEngine("a", "b", "c")
	s := typeKeys(e, "Vj")
	require.Equal(t, ModeVisualLine, s.Mode)
	require.Equal(t, Highlight{Active: true, Linewise: true, Start: 0, End: 1}, s.Highlight)
	require.Equal(t, visualLineStatus, s.Status)

	s = typeKeys(e, "x")
	require.Equal(t, []string{"c"}, s.Lines)
	require.Equal(t, []string{"a", "b"}, registerLines(e))
	require.Equal(t, ModeNormal, s.Mode)
	require.False(t, s.Highlight.Active)
}

func TestVisualLine_UpwardSelectionYank(t *testing.T) {
	e := newTestEngine("a", "b", "c")
	s := typeKeys(e, "GVky")
	require.Equal(t, []string{"b", "c"}, registerLines(e))
	require.Equal(t, 1, s.Cursor.Row)
}

func TestVisualLine_Indent(t *testing.T) {
	e := newTestEngine("a", "b", "c")
	s := typeKeys(e, "Vj>")
	require.Equal(t, []string{"    a", "    b", "c"}, s.Lines)
	s = typeKeys(e, "Vj<")
	require.Equal(t, []string{"a", "b", "c"}, s.Lines)
}

func TestVisualChar_YankAndPasteSpan(t *testing.T) {
	e := newTestEngine("hello")
	s := typeKeys(e, "vl")
	require.Equal(t, Highlight{Active: true, Start: 0, End: 1}, s.Highlight)

	s = typeKeys(e, "y")
	require.Equal(t, ModeNormal, s.Mode)
	require.Equal(t, "he", registerSpan(e))

	s = typeKeys(e, "$p")
	require.Equal(t, []string{"hellheo"}, s.Lines)
	require.Equal(t, 5, s.Cursor.Col)

	// yanking lines empties the string register again
	typeKeys(e, "yy")
	assert.False(t, e.regs.HasSpan())
}

func TestVisualChar_Cut(t *testing.T) {
	e := newTestEngine("abcdef")
	s := typeKeys(e, "lvllx")
	require.Equal(t, []string{"aef"}, s.Lines)
	require.Equal(t, "bcd", registerSpan(e))
	require.Equal(t, 1, s.Cursor.Col)
}

func TestVisualChar_Decorate(t *testing.T) {
	e := newTestEngine("hello")
	typeKeys(e, "vl")
	s := e.HandleKey(Ctrl('e'))
	require.Equal(t, []string{"`he`llo"}, s.Lines)
	require.Equal(t, ModeNormal, s.Mode)

	typeKeys(e, "u$vhh")
	s = e.HandleKey(Ctrl('b'))
	require.Equal(t, []string{"he**llo**"}, s.Lines)
}

func TestVisual_EscapeCancels(t *testing.T) {
	e := newTestEngine("abc")
	s := typeKeys(e, "vl\x1b")
	require.Equal(t, ModeNormal, s.Mode)
	require.Empty(t, s.Status)
	require.Equal(t, []string{"abc"}, s.Lines)
}

// ============================================================================
// Command line and saving
// ============================================================================

func TestCommandLine_WriteNamed(t *testing.T) {
	store := &memStore{}
	e := New(Config{Store: store})
	e.LoadText([]string{"abc"})
	typeKeys(e, "x")

	s := typeKeys(e, ":w out.txt\r")
	require.Equal(t, `"out.txt" written`, s.Status)
	require.False(t, s.Dirty)
	require.Equal(t, "out.txt", s.Filename)
	require.Equal(t, []string{"bc"}, store.files["out.txt"])

	s = typeKeys(e, ":q\r")
	require.True(t, s.Quit)
}

func TestCommandLine_NoFileName(t *testing.T) {
	e := New(Config{Store: &memStore{}})
	s := typeKeys(e, ":w\r")
	require.Equal(t, "No file name", s.Status)
	require.Equal(t, ModeNormal, s.Mode)

	s = typeKeys(e, ":x\r")
	require.Equal(t, "No file name", s.Status)
	require.False(t, s.Quit)
}

func TestCommandLine_SaveAndQuit(t *testing.T) {
	store := &memStore{}
	e := New(Config{Store: store, Filename: "doc.md"})
	e.LoadText([]string{"a"})
	s := typeKeys(e, ":x\r")
	require.True(t, s.Quit)
	require.Equal(t, []string{"a"}, store.files["doc.md"])

	e = New(Config{Store: store, Filename: "doc.md"})
	s = typeKeys(e, ":wq\r")
	require.True(t, s.Quit)
}

func TestCommandLine_SaveError(t *testing.T) {
	e := New(Config{Store: &memStore{err: errors.New("read-only")}, Filename: "f"})
	e.LoadText([]string{"a"})
	typeKeys(e, "x")
	s := typeKeys(e, ":w\r")
	require.Equal(t, `Can't write "f": read-only`, s.Status)
	require.True(t, s.Dirty)
}

func TestCommandLine_EditingAndCancel(t *testing.T) {
	e := newTestEngine("a")
	s := typeKeys(e, ":wx")
	require.Equal(t, ModeCommandLine, s.Mode)
	require.Equal(t, ":wx", s.Status)

	s = e.HandleKey(KeyBackspace)
	require.Equal(t, ":w", s.Status)

	s = typeKeys(e, "\x1b")
	require.Equal(t, ModeNormal, s.Mode)

	typeKeys(e, ":")
	s = e.HandleKey(KeyBackspace)
	require.Equal(t, ModeNormal, s.Mode)
}

func TestCommandLine_Unknown(t *testing.T) {
	e := newTestEngine("a")
	s := typeKeys(e, ":foo\r")
	require.Equal(t, "Not an editor command: foo", s.Status)
	require.False(t, s.Quit)
}

func TestInsert_CtrlSSaves(t *testing.T) {
	store := &memStore{}
	e := New(Config{Store: store, Filename: "n.txt"})
	typeKeys(e, "ihi")
	s := e.HandleKey(Ctrl('s'))
	require.Equal(t, ModeInsert, s.Mode)
	require.Equal(t, []string{"hi"}, store.files["n.txt"])
	require.False(t, s.Dirty)
}

// ============================================================================
// Undo
// ============================================================================

func TestUndo_WithoutSnapshot(t *testing.T) {
	e := newTestEngine("a")
	s := typeKeys(e, "u")
	require.Equal(t, []string{"a"}, s.Lines)
	require.Equal(t, "Already at oldest change", s.Status)
}

func TestUndo_IsSingleLevel(t *testing.T) {
	e := newTestEngine("abc")
	typeKeys(e, "xx")
	s := typeKeys(e, "u")
	require.Equal(t, []string{"bc"}, s.Lines)
	s = typeKeys(e, "u")
	require.Equal(t, []string{"bc"}, s.Lines)
}

func TestUndo_RestoresDeletedLines(t *testing.T) {
	e := newTestEngine("a", "b")
	typeKeys(e, "2dd")
	s := typeKeys(e, "u")
	require.Equal(t, []string{"a", "b"}, s.Lines)
}

// ============================================================================
// Scrolling
// ============================================================================

func TestScroll_FollowsCursor(t *testing.T) {
	e := newTestEngine("0", "1", "2", "3", "4")
	e.SetViewport(10, 2)

	s := typeKeys(e, "G")
	require.Equal(t, 3, s.RowOffset)
	require.Equal(t, Cursor{Row: 1, Col: 0}, s.Cursor)

	s = typeKeys(e, "gg")
	require.Equal(t, 0, s.RowOffset)
	require.Equal(t, Cursor{}, s.Cursor)
}

func TestScroll_WrappedRows(t *testing.T) {
	e := newTestEngine("abcdefghi", "x")
	e.SetViewport(3, 2)
	s := typeKeys(e, "j")
	require.Equal(t, 2, s.RowOffset)
	require.Equal(t, Cursor{Row: 1, Col: 0}, s.Cursor)
}

func TestSetViewport_ClampsWidth(t *testing.T) {
	e := newTestEngine("abc")
	e.SetViewport(0, 0)
	s := typeKeys(e, "$")
	require.Equal(t, Cursor{Row: 0, Col: 0}, s.Cursor)
	require.Equal(t, 2, s.RowOffset)
}

func TestLoadSerialize(t *testing.T) {
	e := New(Config{})
	e.LoadText([]string{"x", "", "y"})
	require.Equal(t, []string{"x", "", "y"}, e.SerializeText())
	require.False(t, e.State().Dirty)
	require.Equal(t, ModeNormal, e.State().Mode)
}

// ============================================================================
// Properties
// ============================================================================

var fuzzKeys = []Key{
	'h', 'j', 'k', 'l', 'w', 'b', 'e', '0', '$', 'G', 'g', 'd', 'c', 'y', 'a',
	'i', 'A', 'I', 'o', 'O', 'x', 's', '~', 'r', 'p', 'u', 'V', 'v', '>', '<',
	'*', 'n', '2', '3', ' ', 'z', '.', KeyEscape, KeyEnter, KeyBackspace,
	KeyDelete, KeyLeft, KeyRight, KeyUp, KeyDown, KeyHome, KeyEnd, KeyPageUp,
	KeyPageDown, Ctrl('b'), Ctrl('i'), Ctrl('e'), Ctrl('h'), Ctrl('z'),
}

// Property: any key stream leaves the cursor inside the document and the
// visual/logical mapping consistent.
func TestEngine_CursorStaysInBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lines := rapid.SliceOfN(rapid.StringMatching(`[a-z .]{0,12}`), 0, 5).Draw(t, "lines")
		width := rapid.IntRange(1, 8).Draw(t, "width")
		height := rapid.IntRange(1, 6).Draw(t, "height")
		keys := rapid.SliceOfN(rapid.SampledFrom(fuzzKeys), 1, 60).Draw(t, "keys")

		e := newTestEngine(lines...)
		e.SetViewport(width, height)
		for _, k := range keys {
			s := e.HandleKey(k)
			if s.Quit {
				return
			}
			require.GreaterOrEqual(t, s.Cursor.Row, 0)
			require.Less(t, s.Cursor.Row, height)
			require.GreaterOrEqual(t, s.Cursor.Col, 0)
			require.Less(t, s.Cursor.Col, width)

			if len(s.Lines) == 0 {
				require.Equal(t, 0, e.line)
				continue
			}
			require.Less(t, e.line, len(s.Lines))
			n := len(s.Lines[e.line])
			if s.Mode == ModeInsert {
				require.LessOrEqual(t, e.col, n)
			} else {
				require.LessOrEqual(t, e.col, max(n-1, 0))
			}
			b := buffer.New(s.Lines...)
			require.Equal(t, e.line, e.mapper.LineAt(b, e.visual))
			require.Equal(t, e.col, e.mapper.LogicalColumnOf(b, e.visual))
		}
	})
}
