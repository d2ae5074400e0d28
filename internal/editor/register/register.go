// Package register holds kilovim's yank/cut storage: one line register and one
// string register. Only one of them is active at a time for pasting.
package register

import (
	"errors"

	"github.com/zjrosen/kilovim/internal/editor/buffer"
)

// ErrEmptyRegister is returned by Paste helpers when nothing was yanked.
var ErrEmptyRegister = errors.New("register is empty")

// Registers stores the most recent yanked lines and span.
type Registers struct {
	lines []buffer.Line
	span  []byte
}

// YankLines copies count lines starting at start into the line register,
// clamped to the buffer. Yanking lines clears the string register.
// It returns the number of lines copied.
func (r *Registers) YankLines(b *buffer.Buffer, start, count int) int {
	n := b.Len()
	start = max(0, start)
	end := min(n, start+max(count, 0))
	r.span = nil
	if start >= end {
		r.lines = nil
		return 0
	}
	r.lines = make([]buffer.Line, 0, end-start)
	for i := start; i < end; i++ {
		r.lines = append(r.lines, append(buffer.Line(nil), b.Line(i)...))
	}
	return end - start
}

// YankSpan copies the inclusive column range [startCol, endCol] of line into
// the string register. The range is clamped to the line; an empty result
// leaves the register empty so the line register is pasted instead.
func (r *Registers) YankSpan(b *buffer.Buffer, line, startCol, endCol int) int {
	l := b.Line(line)
	if startCol > endCol {
		startCol, endCol = endCol, startCol
	}
	startCol = max(0, startCol)
	endCol = min(len(l)-1, endCol)
	if startCol > endCol {
		r.span = nil
		return 0
	}
	r.span = append([]byte(nil), l[startCol:endCol+1]...)
	return len(r.span)
}

// HasSpan reports whether the string register is non-empty and takes
// precedence when pasting.
func (r *Registers) HasSpan() bool {
	return len(r.span) > 0
}

// IsEmpty reports whether neither register holds anything.
func (r *Registers) IsEmpty() bool {
	return len(r.span) == 0 && len(r.lines) == 0
}

// PasteLines inserts the line register below line after and returns how many
// lines were inserted.
func (r *Registers) PasteLines(b *buffer.Buffer, after int) (int, error) {
	if len(r.lines) == 0 {
		return 0, ErrEmptyRegister
	}
	at := min(max(after+1, 0), b.Len())
	for i, l := range r.lines {
		if err := b.InsertLine(at+i, l); err != nil {
			return i, err
		}
	}
	return len(r.lines), nil
}

// PasteSpan inserts the string register before column col of line.
func (r *Registers) PasteSpan(b *buffer.Buffer, line, col int) (int, error) {
	if len(r.span) == 0 {
		return 0, ErrEmptyRegister
	}
	if err := b.InsertBytes(line, col, r.span); err != nil {
		return 0, err
	}
	return len(r.span), nil
}
