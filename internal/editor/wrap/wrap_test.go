package wrap

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/kilovim/internal/editor/buffer"
)

type textLines []string

func (t textLines) Len() int          { return len(t) }
func (t textLines) LineLen(i int) int { return len(t[i]) }

func TestRowCount(t *testing.T) {
	m := New(3)
	tests := []struct {
		n    int
		want int
	}{
		{0, 1},
		{1, 1},
		{3, 1},
		{4, 2},
		{6, 2},
		{7, 3},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, m.RowCount(tt.n), "len %d", tt.n)
	}
}

func TestNew_ClampsWidth(t *testing.T) {
	require.Equal(t, 1, New(0).Width)
	require.Equal(t, 1, New(-5).Width)
	require.Equal(t, 4, Mapper{}.RowCount(4))
}

func TestScenario_abcde_Width3(t *testing.T) {
	text := buffer.New("abcde")
	m := New(3)

	segs := m.Segments(text.Line(0))
	require.Len(t, segs, 2)
	require.Equal(t, "abc", string(segs[0]))
	require.Equal(t, "de", string(segs[1]))

	c := Cursor{Row: 1, Col: 1}
	require.Equal(t, 0, m.LogicalLineOf(text, 1))
	col := m.LogicalColumnOf(text, c)
	require.Equal(t, 4, col)
	require.Equal(t, byte('e'), text.Line(0)[col])
}

func TestLogicalLineOf(t *testing.T) {
	text := textLines{"abcdefg", "", "xy", "0123456789"}
	m := New(3)
	// rows: 0-2 line0, 3 line1, 4 line2, 5-8 line3
	want := []int{0, 0, 0, 1, 2, 3, 3, 3, 3}
	for row, line := range want {
		require.Equal(t, line, m.LogicalLineOf(text, row), "row %d", row)
	}
	require.Equal(t, 3, m.LogicalLineOf(text, 50))
	require.Equal(t, 9, m.TotalRows(text))
	require.Equal(t, 5, m.FirstRowOf(text, 3))
}

func TestLogicalLineOf_EmptyDocument(t *testing.T) {
	m := New(10)
	require.Equal(t, 0, m.LogicalLineOf(textLines{}, 4))
	require.Equal(t, 0, m.LogicalColumnOf(textLines{}, Cursor{Row: 2, Col: 3}))
	require.Equal(t, Cursor{}, m.VisualPositionOf(textLines{}, 3, 3))
	require.Equal(t, 0, m.TotalRows(textLines{}))
}

func TestVisualPositionOf(t *testing.T) {
	text := textLines{"ab", "abcdefgh"}
	m := New(3)
	require.Equal(t, Cursor{Row: 0, Col: 1}, m.VisualPositionOf(text, 0, 1))
	require.Equal(t, Cursor{Row: 1, Col: 0}, m.VisualPositionOf(text, 1, 0))
	require.Equal(t, Cursor{Row: 2, Col: 1}, m.VisualPositionOf(text, 1, 4))
	require.Equal(t, Cursor{Row: 3, Col: 2}, m.VisualPositionOf(text, 1, 8))
}

func TestContinuation_FullSegment(t *testing.T) {
	// "abc" exactly fills width 3: the insert cursor after 'c' moves to the
	// start of the next visual row but still belongs to line 0.
	text := textLines{"abc", "next"}
	m := New(3)

	c := m.VisualPositionOf(text, 0, 3)
	require.Equal(t, Cursor{Row: 1, Col: 0, Continuation: true}, c)
	require.Equal(t, 0, m.LineAt(text, c))
	require.Equal(t, 3, m.LogicalColumnOf(text, c))

	// Without the flag the same row belongs to the next line.
	plain := Cursor{Row: 1, Col: 0}
	require.Equal(t, 1, m.LineAt(text, plain))
	require.Equal(t, 0, m.LogicalColumnOf(text, plain))
}

func TestContinuation_NotForPartialSegment(t *testing.T) {
	text := textLines{"abcd"}
	m := New(3)
	c := m.VisualPositionOf(text, 0, 4)
	require.Equal(t, Cursor{Row: 1, Col: 1}, c)
}

func TestSegmentLen(t *testing.T) {
	m := New(4)
	require.Equal(t, 4, m.SegmentLen(10, 0))
	require.Equal(t, 4, m.SegmentLen(10, 1))
	require.Equal(t, 2, m.SegmentLen(10, 2))
	require.Equal(t, 0, m.SegmentLen(10, 3))
	require.Equal(t, 0, m.SegmentLen(0, 0))
}

// Property: the row count of every line is ceil(len/W), or 1 when empty.
func TestRowCount_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		w := rapid.IntRange(1, 40).Draw(t, "width")
		k := rapid.IntRange(0, 500).Draw(t, "len")
		m := New(w)
		want := 1
		if k > 0 {
			want = (k + w - 1) / w
		}
		require.Equal(t, want, m.RowCount(k))
	})
}

// Property: every reachable visual position survives the round trip through
// logical coordinates.
func TestRoundTrip_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		w := rapid.IntRange(1, 12).Draw(t, "width")
		lines := rapid.SliceOfN(rapid.StringMatching(`[a-z ]{0,30}`), 1, 8).Draw(t, "lines")
		text := textLines(lines)
		m := New(w)

		total := m.TotalRows(text)
		r := rapid.IntRange(0, total-1).Draw(t, "row")
		line := m.LogicalLineOf(text, r)
		seg := r - m.FirstRowOf(text, line)
		segLen := m.SegmentLen(len(text[line]), seg)
		c := 0
		if segLen > 0 {
			c = rapid.IntRange(0, segLen-1).Draw(t, "col")
		}

		cur := Cursor{Row: r, Col: c}
		got := m.VisualPositionOf(text, m.LineAt(text, cur), m.LogicalColumnOf(text, cur))
		require.Equal(t, cur, got)
	})
}

// Property: logical -> visual -> logical is the identity for every column up
// to and including the end of the line (the insert-mode position).
func TestLogicalRoundTrip_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		w := rapid.IntRange(1, 12).Draw(t, "width")
		lines := rapid.SliceOfN(rapid.StringMatching(`[a-z]{0,30}`), 1, 8).Draw(t, "lines")
		text := textLines(lines)
		m := New(w)

		line := rapid.IntRange(0, len(lines)-1).Draw(t, "line")
		col := rapid.IntRange(0, len(lines[line])).Draw(t, "col")

		c := m.VisualPositionOf(text, line, col)
		require.Equal(t, line, m.LineAt(text, c))
		require.Equal(t, col, m.LogicalColumnOf(text, c))
	})
}
