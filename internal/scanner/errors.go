package scanner

import (
	"fmt"

	"github.com/kolkov/csvledger/internal/token"
)

// Reason classifies a quoting error.
type Reason uint8

const (
	Unterminated Reason = iota + 1 // quoted field not closed before end of input
	BareQuote                      // quote inside an unquoted field
	AfterQuote                     // text between a closing quote and the delimiter
)

// Error is a quoting error at a position in the buffer.
type Error struct {
	Pos    token.Position
	Reason Reason
	Char   byte // offending byte for AfterQuote
}

// Error returns a formatted error message with position information.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message())
}

// Message describes the error without its position.
func (e *Error) Message() string {
	switch e.Reason {
	case Unterminated:
		return "unterminated quoted field"
	case BareQuote:
		return "bare quote in unquoted field"
	case AfterQuote:
		return fmt.Sprintf("unexpected %q after closing quote", e.Char)
	default:
		return "malformed quote"
	}
}
