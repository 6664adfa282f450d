package sink

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
)

// ErrClosed is returned by File methods after Commit or Abort.
var ErrClosed = errors.New("sink: file already closed")

// File writes lines to a temporary file next to its target. Commit renames
// it into place; Abort removes it and leaves the target untouched.
type File struct {
	path   string
	file   *os.File
	writer *bufio.Writer
	closed bool
}

// Create opens a temporary file in the directory of path.
func Create(path string) (*File, error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	f, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return nil, err
	}
	return &File{
		path:   path,
		file:   f,
		writer: bufio.NewWriterSize(f, 64<<10),
	}, nil
}

// Path returns the target path.
func (f *File) Path() string {
	return f.path
}

// WriteLine writes line followed by a newline.
func (f *File) WriteLine(line string) error {
	if f.closed {
		return ErrClosed
	}
	if _, err := f.writer.WriteString(line); err != nil {
		return err
	}
	return f.writer.WriteByte('\n')
}

// Commit flushes the temporary file and renames it to the target path.
func (f *File) Commit() error {
	if f.closed {
		return ErrClosed
	}
	f.closed = true

	tmp := f.file.Name()
	err := f.writer.Flush()
	if err == nil {
		err = f.file.Sync()
	}
	if cerr := f.file.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Chmod(tmp, 0o644)
	}
	if err == nil {
		err = os.Rename(tmp, f.path)
	}
	if err != nil {
		_ = os.Remove(tmp)
	}
	return err
}

// Abort discards everything written. It is a no-op after Commit.
func (f *File) Abort() error {
	if f.closed {
		return nil
	}
	f.closed = true
	_ = f.file.Close()
	return os.Remove(f.file.Name())
}
