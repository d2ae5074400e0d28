// Package wrap translates between logical (line, column) positions and the
// visual rows a fixed-width viewport wraps them into.
//
// Every logical line occupies ceil(len/W) visual rows, or a single row when it
// is empty. Columns are bytes; no attempt is made to measure display width.
package wrap

// Text is the read-only view of a document the mapper walks.
type Text interface {
	Len() int
	LineLen(i int) int
}

// Cursor is an absolute visual position (row counted from the start of the
// document, not from the top of the viewport).
//
// Continuation is set when the cursor sits on the row just past a line whose
// length is an exact multiple of the width: the logical column is len(line),
// which arithmetically falls on a row that belongs to the next line.
type Cursor struct {
	Row          int
	Col          int
	Continuation bool
}

// Mapper converts coordinates for a viewport Width bytes wide.
type Mapper struct {
	Width int
}

// New returns a Mapper for width, clamped to at least one column.
func New(width int) Mapper {
	return Mapper{Width: max(width, 1)}
}

func (m Mapper) w() int {
	return max(m.Width, 1)
}

// RowCount returns how many visual rows a line of n bytes occupies.
func (m Mapper) RowCount(n int) int {
	if n <= 0 {
		return 1
	}
	w := m.w()
	return (n + w - 1) / w
}

// TotalRows returns the number of visual rows of the whole document.
func (m Mapper) TotalRows(t Text) int {
	total := 0
	for i := 0; i < t.Len(); i++ {
		total += m.RowCount(t.LineLen(i))
	}
	return total
}

// FirstRowOf returns the absolute visual row where line starts.
func (m Mapper) FirstRowOf(t Text, line int) int {
	row := 0
	for i := 0; i < min(line, t.Len()); i++ {
		row += m.RowCount(t.LineLen(i))
	}
	return row
}

// LogicalLineOf returns the line whose wrapped span covers the absolute
// visual row. Rows past the end resolve to the last line.
func (m Mapper) LogicalLineOf(t Text, row int) int {
	n := t.Len()
	if n == 0 || row <= 0 {
		return 0
	}
	covered := 0
	for i := 0; i < n; i++ {
		covered += m.RowCount(t.LineLen(i))
		if covered > row {
			return i
		}
	}
	return n - 1
}

// LineAt resolves the logical line of c, honouring the continuation flag.
func (m Mapper) LineAt(t Text, c Cursor) int {
	row := c.Row
	if c.Continuation && row > 0 {
		row--
	}
	return m.LogicalLineOf(t, row)
}

// LogicalColumnOf converts c into a logical column of its line: the visual
// column plus W for every earlier segment of the same line.
func (m Mapper) LogicalColumnOf(t Text, c Cursor) int {
	if t.Len() == 0 {
		return 0
	}
	line := m.LineAt(t, c)
	segments := max(c.Row-m.FirstRowOf(t, line), 0)
	return c.Col + segments*m.w()
}

// VisualPositionOf is the inverse of LineAt/LogicalColumnOf: segment col/W,
// visual column col%W. A column at the end of a line that exactly fills its
// last segment yields a continuation cursor at column 0 of the following row.
func (m Mapper) VisualPositionOf(t Text, line, col int) Cursor {
	n := t.Len()
	if n == 0 {
		return Cursor{}
	}
	line = max(0, min(line, n-1))
	length := t.LineLen(line)
	col = max(0, min(col, length))

	w := m.w()
	seg := col / w
	return Cursor{
		Row:          m.FirstRowOf(t, line) + seg,
		Col:          col % w,
		Continuation: length > 0 && seg >= m.RowCount(length),
	}
}

// SegmentLen returns the number of bytes on segment seg of a line of length n.
func (m Mapper) SegmentLen(n, seg int) int {
	w := m.w()
	start := seg * w
	if start >= n {
		return 0
	}
	return min(w, n-start)
}

// Segments splits line into its visual rows. An empty line has one empty segment.
func (m Mapper) Segments(line []byte) [][]byte {
	w := m.w()
	if len(line) == 0 {
		return [][]byte{{}}
	}
	rows := m.RowCount(len(line))
	out := make([][]byte, 0, rows)
	for seg := range rows {
		start := seg * w
		out = append(out, line[start:start+m.SegmentLen(len(line), seg)])
	}
	return out
}
