// Package textfile loads and saves newline-delimited documents.
//
// A file is a sequence of lines separated by '\n'. A trailing '\r' on each
// line is dropped when loading so CRLF files open cleanly; saving always
// writes '\n' terminators, including after the last line.
package textfile

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/afero"

	"github.com/zjrosen/kilovim/internal/log"
)

// ErrIsDirectory is returned when a load or save target names a directory.
var ErrIsDirectory = errors.New("is a directory")

const fileMode = 0o644

// stamp identifies the on-disk version of a file the store last read or wrote.
type stamp struct {
	modTime time.Time
	size    int64
}

// Store reads and writes documents through an afero filesystem. It is not
// safe for concurrent use.
type Store struct {
	fs     afero.Fs
	stamps map[string]stamp
}

// New creates a Store backed by fsys.
func New(fsys afero.Fs) *Store {
	return &Store{fs: fsys, stamps: make(map[string]stamp)}
}

// NewOS creates a Store backed by the real filesystem.
func NewOS() *Store {
	return New(afero.NewOsFs())
}

// Load reads name into lines. A missing file is not an error: it yields an
// empty document so the name can be used for a new file.
func (s *Store) Load(name string) ([]string, error) {
	info, err := s.fs.Stat(name)
	if errors.Is(err, fs.ErrNotExist) {
		delete(s.stamps, name)
		log.Info(log.CatFile, "new file", "name", name)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", name, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("open %s: %w", name, ErrIsDirectory)
	}

	f, err := s.fs.Open(name)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	defer func() { _ = f.Close() }()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	for sc.Scan() {
		lines = append(lines, string(bytes.TrimRight(sc.Bytes(), "\r")))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	s.stamps[name] = stamp{modTime: info.ModTime(), size: info.Size()}
	log.Info(log.CatFile, "loaded", "name", name, "lines", len(lines))
	return lines, nil
}

// Save writes lines to name and returns the number of bytes written. The
// content goes to a temp file in the same directory first and is renamed
// over name, so a failed write leaves the old file intact.
func (s *Store) Save(name string, lines []string) (int, error) {
	if info, err := s.fs.Stat(name); err == nil && info.IsDir() {
		return 0, fmt.Errorf("write %s: %w", name, ErrIsDirectory)
	}

	var buf bytes.Buffer
	for _, l := range lines {
		buf.WriteString(l)
		buf.WriteByte('\n')
	}

	tmp := name + ".kilovim~"
	if err := afero.WriteFile(s.fs, tmp, buf.Bytes(), fileMode); err != nil {
		_ = s.fs.Remove(tmp)
		return 0, fmt.Errorf("writing %s: %w", name, err)
	}
	if err := s.fs.Rename(tmp, name); err != nil {
		_ = s.fs.Remove(tmp)
		return 0, fmt.Errorf("renaming %s: %w", name, err)
	}

	s.remember(name)
	log.Info(log.CatFile, "saved", "name", name, "bytes", buf.Len())
	return buf.Len(), nil
}

// Exists reports whether name is present on the store's filesystem.
func (s *Store) Exists(name string) bool {
	ok, err := afero.Exists(s.fs, name)
	return err == nil && ok
}

// ChangedOnDisk reports whether name differs from the version this store
// last loaded or saved: modified, deleted, or created by someone else.
func (s *Store) ChangedOnDisk(name string) bool {
	known, tracked := s.stamps[name]
	info, err := s.fs.Stat(name)
	if err != nil {
		return tracked
	}
	if !tracked {
		return true
	}
	return !info.ModTime().Equal(known.modTime) || info.Size() != known.size
}

func (s *Store) remember(name string) {
	info, err := s.fs.Stat(name)
	if err != nil {
		delete(s.stamps, name)
		return
	}
	s.stamps[name] = stamp{modTime: info.ModTime(), size: info.Size()}
}
