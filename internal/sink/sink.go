// Package sink writes ledger lines to the console, a string buffer or a file.
package sink

import (
	"bufio"
	"io"
	"strings"
)

// Console writes lines to an io.Writer through a buffer. Call Flush when done.
type Console struct {
	w *bufio.Writer
}

// NewConsole creates a Console writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: bufio.NewWriter(w)}
}

// WriteLine writes line followed by a newline.
func (c *Console) WriteLine(line string) error {
	if _, err := c.w.WriteString(line); err != nil {
		return err
	}
	return c.w.WriteByte('\n')
}

// Flush writes any buffered data.
func (c *Console) Flush() error {
	return c.w.Flush()
}

// Buffer collects lines in memory.
type Buffer struct {
	b strings.Builder
}

// WriteLine appends line followed by a newline.
func (b *Buffer) WriteLine(line string) error {
	b.b.WriteString(line)
	b.b.WriteByte('\n')
	return nil
}

// String returns everything written so far.
func (b *Buffer) String() string {
	return b.b.String()
}
