package token

import "fmt"

// Position represents a position in the input buffer.
type Position struct {
	// Line number (1-indexed).
	Line int
	// Column is the byte offset on the line (1-indexed).
	Column int
	// Offset is the byte offset from the start of the buffer (0-indexed).
	Offset int
}

// String returns a string representation of the position.
// Format: "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
