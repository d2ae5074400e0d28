// Package undo provides kilovim's single-level undo: one full copy of the
// buffer taken before each mutating command and overwritten by the next.
package undo

import (
	"errors"

	"github.com/zjrosen/kilovim/internal/editor/buffer"
)

// ErrNoActiveSnapshot is returned by Restore before anything was captured.
var ErrNoActiveSnapshot = errors.New("no snapshot captured")

// Snapshot holds at most one copy of a buffer's lines.
type Snapshot struct {
	lines []buffer.Line
	taken bool
}

// Capture replaces the stored copy with the current content of b.
// Capturing an empty document is a no-op so an earlier useful snapshot survives.
func (s *Snapshot) Capture(b *buffer.Buffer) {
	if b.IsEmpty() {
		return
	}
	s.lines = b.Clone()
	s.taken = true
}

// Restore copies the stored lines back into b. The snapshot itself is kept,
// so restoring twice yields the same content as restoring once.
func (s *Snapshot) Restore(b *buffer.Buffer) error {
	if !s.taken {
		return ErrNoActiveSnapshot
	}
	b.Replace(s.lines)
	return nil
}

// HasSnapshot reports whether Capture ever stored a copy.
func (s *Snapshot) HasSnapshot() bool {
	return s.taken
}

// Len returns the number of lines in the stored copy.
func (s *Snapshot) Len() int {
	return len(s.lines)
}
