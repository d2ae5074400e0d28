// Package buffer holds the ordered sequence of logical lines edited by kilovim.
//
// A Buffer with zero lines is the "empty document" state and is distinct from a
// Buffer holding one zero-length line. Deleting the last remaining line always
// drains the buffer to the empty state; inserting a character into an empty
// buffer first creates a single empty line.
package buffer

import (
	"errors"
	"fmt"
	"strings"
)

// ErrOutOfRange is returned when a line or column index is outside valid bounds.
var ErrOutOfRange = errors.New("index out of range")

// Line is one logical line. It never stores a trailing newline.
type Line []byte

// Buffer is the ordered list of lines of a document.
type Buffer struct {
	lines []Line
	dirty bool
}

// New creates a buffer from the given lines. No lines yields the empty document.
func New(lines ...string) *Buffer {
	b := &Buffer{}
	b.SetLines(lines)
	return b
}

// Len returns the number of logical lines.
func (b *Buffer) Len() int {
	return len(b.lines)
}

// IsEmpty reports whether the buffer is the empty (N=0) document.
func (b *Buffer) IsEmpty() bool {
	return len(b.lines) == 0
}

// Line returns the content of line i. The returned slice must not be modified.
// Out of range indices return nil.
func (b *Buffer) Line(i int) []byte {
	if i < 0 || i >= len(b.lines) {
		return nil
	}
	return b.lines[i]
}

// LineLen returns the byte length of line i, or 0 when i is out of range.
func (b *Buffer) LineLen(i int) int {
	return len(b.Line(i))
}

// Lines returns a copy of every line as a string.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	for i, l := range b.lines {
		out[i] = string(l)
	}
	return out
}

// String joins all lines with newlines.
func (b *Buffer) String() string {
	return strings.Join(b.Lines(), "\n")
}

// SetLines replaces the whole content. The buffer is marked clean.
func (b *Buffer) SetLines(lines []string) {
	b.lines = make([]Line, len(lines))
	for i, s := range lines {
		b.lines[i] = Line(s)
	}
	b.dirty = false
}

// Clone returns a deep copy of every line.
func (b *Buffer) Clone() []Line {
	out := make([]Line, len(b.lines))
	for i, l := range b.lines {
		out[i] = append(Line(nil), l...)
	}
	return out
}

// Replace swaps in a deep copy of lines, marking the buffer dirty.
func (b *Buffer) Replace(lines []Line) {
	b.lines = make([]Line, len(lines))
	for i, l := range lines {
		b.lines[i] = append(Line(nil), l...)
	}
	b.dirty = true
}

// Dirty reports whether the content changed since the last SetLines or ClearDirty.
func (b *Buffer) Dirty() bool {
	return b.dirty
}

// ClearDirty marks the buffer as saved.
func (b *Buffer) ClearDirty() {
	b.dirty = false
}

// InsertLine inserts content as a new line at index. index == Len() appends.
func (b *Buffer) InsertLine(index int, content []byte) error {
	if index < 0 || index > len(b.lines) {
		return fmt.Errorf("insert line %d of %d: %w", index, len(b.lines), ErrOutOfRange)
	}
	b.lines = append(b.lines, nil)
	copy(b.lines[index+1:], b.lines[index:])
	b.lines[index] = append(Line(nil), content...)
	b.dirty = true
	return nil
}

// DeleteLine removes the line at index and returns its content.
// Removing the only line leaves the empty document.
func (b *Buffer) DeleteLine(index int) (Line, error) {
	if index < 0 || index >= len(b.lines) {
		return nil, fmt.Errorf("delete line %d of %d: %w", index, len(b.lines), ErrOutOfRange)
	}
	removed := b.lines[index]
	b.lines = append(b.lines[:index], b.lines[index+1:]...)
	if len(b.lines) == 0 {
		b.lines = nil
	}
	b.dirty = true
	return removed, nil
}

// ReplaceLine overwrites the content of line index.
func (b *Buffer) ReplaceLine(index int, content []byte) error {
	if index < 0 || index >= len(b.lines) {
		return fmt.Errorf("replace line %d of %d: %w", index, len(b.lines), ErrOutOfRange)
	}
	b.lines[index] = append(Line(nil), content...)
	b.dirty = true
	return nil
}

// AppendToLine appends content to the end of line index.
func (b *Buffer) AppendToLine(index int, content []byte) error {
	if index < 0 || index >= len(b.lines) {
		return fmt.Errorf("append to line %d of %d: %w", index, len(b.lines), ErrOutOfRange)
	}
	b.lines[index] = append(b.lines[index], content...)
	b.dirty = true
	return nil
}

// SplitLine breaks line index at col; the tail becomes a new line below.
// A column past the end splits off an empty line.
func (b *Buffer) SplitLine(index, col int) error {
	if index < 0 || index >= len(b.lines) {
		return fmt.Errorf("split line %d of %d: %w", index, len(b.lines), ErrOutOfRange)
	}
	line := b.lines[index]
	col = clamp(col, 0, len(line))
	tail := append(Line(nil), line[col:]...)
	b.lines[index] = line[:col]
	return b.InsertLine(index+1, tail)
}

// InsertChar inserts ch before column col of line. Columns past the end append.
// An empty document gains a single empty line first.
func (b *Buffer) InsertChar(line, col int, ch byte) error {
	return b.InsertBytes(line, col, []byte{ch})
}

// InsertBytes inserts s before column col of line.
func (b *Buffer) InsertBytes(line, col int, s []byte) error {
	b.ensureLine()
	if line < 0 || line >= len(b.lines) {
		return fmt.Errorf("insert at %d:%d: %w", line, col, ErrOutOfRange)
	}
	l := b.lines[line]
	col = clamp(col, 0, len(l))
	out := make(Line, 0, len(l)+len(s))
	out = append(out, l[:col]...)
	out = append(out, s...)
	out = append(out, l[col:]...)
	b.lines[line] = out
	b.dirty = true
	return nil
}

// DeleteChar removes the byte at column col of line and returns it.
// An empty document gains a single empty line first.
func (b *Buffer) DeleteChar(line, col int) (byte, error) {
	b.ensureLine()
	if line < 0 || line >= len(b.lines) {
		return 0, fmt.Errorf("delete char %d:%d: %w", line, col, ErrOutOfRange)
	}
	l := b.lines[line]
	if col < 0 || col >= len(l) {
		return 0, fmt.Errorf("delete char %d:%d (len %d): %w", line, col, len(l), ErrOutOfRange)
	}
	ch := l[col]
	b.lines[line] = append(l[:col], l[col+1:]...)
	b.dirty = true
	return ch, nil
}

// DeleteRange removes bytes [start, end) of line and returns them. The range
// is clamped to the line.
func (b *Buffer) DeleteRange(line, start, end int) (Line, error) {
	if line < 0 || line >= len(b.lines) {
		return nil, fmt.Errorf("delete range on line %d: %w", line, ErrOutOfRange)
	}
	l := b.lines[line]
	start = clamp(start, 0, len(l))
	end = clamp(end, start, len(l))
	if start == end {
		return nil, nil
	}
	removed := append(Line(nil), l[start:end]...)
	b.lines[line] = append(l[:start], l[end:]...)
	b.dirty = true
	return removed, nil
}

// Truncate cuts line at col, discarding everything from col onwards.
func (b *Buffer) Truncate(line, col int) (Line, error) {
	return b.DeleteRange(line, col, b.LineLen(line))
}

// ensureLine gives an empty document its single empty line.
func (b *Buffer) ensureLine() {
	if len(b.lines) == 0 {
		b.lines = []Line{{}}
		b.dirty = true
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
