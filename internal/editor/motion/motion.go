// Package motion implements cursor motions over logical (line, column)
// coordinates. Motions know nothing about wrapping; callers translate to and
// from visual positions.
//
// Word boundaries use a coarse byte classification: bytes >= '0' (48) are word
// bytes and everything below is a separator. Punctuation such as '.' and ','
// therefore separates words while '_' or ':' do not.
package motion

import "bytes"

// Text is the read-only document view motions scan.
type Text interface {
	Len() int
	Line(i int) []byte
}

// Pos is a logical position.
type Pos struct {
	Line int
	Col  int
}

// IsWord reports whether b belongs to a word.
func IsWord(b byte) bool {
	return b >= 48
}

// LineStart returns column 0 of the line.
func LineStart(p Pos) Pos {
	return Pos{Line: p.Line}
}

// LineEnd returns the last byte of the line, or column 0 when it is empty.
func LineEnd(t Text, p Pos) Pos {
	return Pos{Line: p.Line, Col: max(len(t.Line(p.Line))-1, 0)}
}

// IndentAmount counts the leading spaces of line.
func IndentAmount(line []byte) int {
	i := 0
	for i < len(line) && line[i] == ' ' {
		i++
	}
	return i
}

// FirstNonBlank returns the position just after the leading indentation.
func FirstNonBlank(t Text, p Pos) Pos {
	return Pos{Line: p.Line, Col: IndentAmount(t.Line(p.Line))}
}

// WordForward moves to the start of the next word, continuing onto following
// non-empty lines. With no further word the position is unchanged.
func WordForward(t Text, p Pos) Pos {
	if t.Len() == 0 {
		return p
	}
	line := t.Line(p.Line)
	j := p.Col
	for j < len(line) && IsWord(line[j]) {
		j++
	}
	for j < len(line) && !IsWord(line[j]) {
		j++
	}
	if j < len(line) {
		return Pos{Line: p.Line, Col: j}
	}
	for l := p.Line + 1; l < t.Len(); l++ {
		next := t.Line(l)
		k := 0
		for k < len(next) && !IsWord(next[k]) {
			k++
		}
		if k < len(next) {
			return Pos{Line: l, Col: k}
		}
	}
	return p
}

// WordBackward moves to the start of the current or previous word, crossing
// onto earlier lines when the cursor is already at a word start.
func WordBackward(t Text, p Pos) Pos {
	if t.Len() == 0 {
		return p
	}
	l := p.Line
	line := t.Line(l)
	c := min(p.Col, len(line))
	for {
		c--
		for c >= 0 && !IsWord(line[c]) {
			c--
		}
		if c >= 0 {
			break
		}
		l--
		if l < 0 {
			return Pos{}
		}
		line = t.Line(l)
		c = len(line)
	}
	for c > 0 && IsWord(line[c-1]) {
		c--
	}
	return Pos{Line: l, Col: c}
}

// WordEnd moves to the last byte of the next word end (vim 'e'), continuing
// onto following lines. With no further word the position is unchanged.
func WordEnd(t Text, p Pos) Pos {
	if t.Len() == 0 {
		return p
	}
	l := p.Line
	line := t.Line(l)
	c := p.Col + 1
	for {
		for c < len(line) && !IsWord(line[c]) {
			c++
		}
		if c < len(line) {
			for c+1 < len(line) && IsWord(line[c+1]) {
				c++
			}
			return Pos{Line: l, Col: c}
		}
		l++
		if l >= t.Len() {
			return p
		}
		line = t.Line(l)
		c = 0
	}
}

// WordEndInclusive returns the last byte of the word under the cursor; a
// cursor already on the last byte of a word stays put.
func WordEndInclusive(t Text, p Pos) Pos {
	line := t.Line(p.Line)
	j := p.Col + 1
	for j < len(line) && IsWord(line[j]) {
		j++
	}
	return Pos{Line: p.Line, Col: min(j-1, max(len(line)-1, 0))}
}

// WordBounds returns the half-open byte range of the word covering col.
// ok is false when col is not on a word byte.
func WordBounds(line []byte, col int) (start, end int, ok bool) {
	if col < 0 || col >= len(line) || !IsWord(line[col]) {
		return 0, 0, false
	}
	start = col
	for start > 0 && IsWord(line[start-1]) {
		start--
	}
	end = col + 1
	for end < len(line) && IsWord(line[end]) {
		end++
	}
	return start, end, true
}

// SearchNext finds the first occurrence of needle after from, scanning to the
// end of the document and wrapping around to line 0. ok is false when there
// is no match; the returned position is then from.
func SearchNext(t Text, from Pos, needle []byte) (Pos, bool) {
	n := t.Len()
	if len(needle) == 0 || n == 0 {
		return from, false
	}
	l := max(0, min(from.Line, n-1))
	x := from.Col + 1
	for i := 0; i <= n; i++ {
		line := t.Line(l)
		if x <= len(line) {
			if idx := bytes.Index(line[x:], needle); idx >= 0 {
				return Pos{Line: l, Col: x + idx}, true
			}
		}
		l = (l + 1) % n
		x = 0
	}
	return from, false
}
