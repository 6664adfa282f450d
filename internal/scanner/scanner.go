// Package scanner splits an in-memory CSV buffer into fields without copying.
package scanner

import (
	"github.com/kolkov/csvledger/internal/token"
)

// Options configures a Scanner.
type Options struct {
	Comma     byte // Field delimiter (default ',')
	Quote     byte // Quote character (default '"')
	TrimSpace bool // Exclude blanks around values
}

// Token is a scanned token. Field is set for FIELD tokens only.
type Token struct {
	Type  token.Kind
	Field Field
	Pos   token.Position
}

type terminator uint8

const (
	termNone terminator = iota
	termComma
	termLine
	termEOF
)

// Scanner reads fields from a byte buffer in a single forward pass.
// Fields it returns borrow from the buffer.
type Scanner struct {
	src   []byte
	comma byte
	quote byte
	trim  bool

	offset    int // Current byte offset
	line      int // Current line (1-indexed)
	lineStart int // Offset of the first byte of the current line

	recordStart bool // Next field starts a record
	pendingEOR  bool // Last field ended its record
	done        bool
	err         *Error
}

// New creates a Scanner over src.
func New(src []byte, opts Options) *Scanner {
	s := &Scanner{
		src:         src,
		comma:       opts.Comma,
		quote:       opts.Quote,
		trim:        opts.TrimSpace,
		line:        1,
		recordStart: true,
	}
	if s.comma == 0 {
		s.comma = ','
	}
	if s.quote == 0 {
		s.quote = '"'
	}
	return s
}

// Check scans all of src and returns the first quoting error, if any.
func Check(src []byte, opts Options) error {
	s := New(src, opts)
	for {
		switch s.Scan().Type {
		case token.EOF:
			return nil
		case token.ILLEGAL:
			return s.Err()
		}
	}
}

// Err returns the error that produced an ILLEGAL token, or nil.
func (s *Scanner) Err() error {
	if s.err == nil {
		return nil
	}
	return s.err
}

// Scan returns the next token. After EOF or ILLEGAL every call returns EOF.
func (s *Scanner) Scan() Token {
	if s.pendingEOR {
		s.pendingEOR = false
		s.recordStart = true
		return Token{Type: token.EOR, Pos: s.pos(s.offset)}
	}
	if s.done || s.err != nil {
		return Token{Type: token.EOF, Pos: s.pos(s.offset)}
	}

	if s.recordStart {
		s.skipBlankLines()
		if s.offset >= len(s.src) {
			s.done = true
			return Token{Type: token.EOF, Pos: s.pos(s.offset)}
		}
		s.recordStart = false
	}

	f, term, err := s.scanField()
	if err != nil {
		s.err = err
		return Token{Type: token.ILLEGAL, Pos: err.Pos}
	}

	switch term {
	case termLine:
		s.pendingEOR = true
	case termEOF:
		s.pendingEOR = true
		s.done = true
	}
	return Token{Type: token.FIELD, Field: f, Pos: f.Pos}
}

func (s *Scanner) scanField() (Field, terminator, *Error) {
	if s.trim {
		s.offset = s.skipBlanks(s.offset)
	}

	start := s.offset
	f := Field{Pos: s.pos(start), quote: s.quote}
	state := Unquoted

	i := start
	for ; i < len(s.src); i++ {
		c := s.src[i]
		if state == Unquoted && (c == s.comma || c == '\n' || c == '\r') {
			break
		}
		if state == Quoted && (c == '\n' || c == '\r') && s.lineBreak(i) == 1 {
			s.line++
			s.lineStart = i + 1
		}

		next, act := state.Next(c, s.quote)
		switch act {
		case Open:
			if i != start {
				s.offset = i
				return Field{}, termNone, &Error{Pos: s.pos(i), Reason: BareQuote}
			}
			f.Quoted = true
		case Escape:
			f.Escaped = true
		case Close:
			return s.closeQuoted(f, start+1, i-1, i)
		}
		state = next
	}

	switch state {
	case Quoted:
		s.offset = i
		return Field{}, termNone, &Error{Pos: f.Pos, Reason: Unterminated}
	case QuotedPendingEscape:
		return s.closeQuoted(f, start+1, i-1, i)
	}

	end := i
	if s.trim {
		for end > start && s.isBlank(s.src[end-1]) {
			end--
		}
	}
	f.Data = s.src[start:end]
	s.offset = i
	return f, s.terminator(), nil
}

// closeQuoted finishes a quoted field whose content is src[from:to] and
// whose closing quote is followed by the byte at next.
func (s *Scanner) closeQuoted(f Field, from, to, next int) (Field, terminator, *Error) {
	f.Data = s.src[from:to]
	if s.trim {
		next = s.skipBlanks(next)
	}
	s.offset = next
	term := s.terminator()
	if term == termNone {
		return Field{}, termNone, &Error{Pos: s.pos(next), Reason: AfterQuote, Char: s.src[next]}
	}
	return f, term, nil
}

// terminator consumes the delimiter or line break at the current offset.
func (s *Scanner) terminator() terminator {
	if s.offset >= len(s.src) {
		return termEOF
	}
	if s.src[s.offset] == s.comma {
		s.offset++
		return termComma
	}
	if n := s.lineBreak(s.offset); n > 0 {
		s.newline(s.offset + n)
		return termLine
	}
	return termNone
}

func (s *Scanner) skipBlankLines() {
	for s.offset < len(s.src) {
		i := s.offset
		if s.trim {
			i = s.skipBlanks(i)
		}
		if i >= len(s.src) {
			s.offset = i
			return
		}
		n := s.lineBreak(i)
		if n == 0 {
			return
		}
		s.newline(i + n)
	}
}

// lineBreak returns the length of the line break at i: 2 for CRLF,
// 1 for LF or a lone CR, 0 if there is none.
func (s *Scanner) lineBreak(i int) int {
	switch s.src[i] {
	case '\n':
		return 1
	case '\r':
		if i+1 < len(s.src) && s.src[i+1] == '\n' {
			return 2
		}
		return 1
	}
	return 0
}

func (s *Scanner) newline(next int) {
	s.offset = next
	s.line++
	s.lineStart = next
}

func (s *Scanner) skipBlanks(i int) int {
	for i < len(s.src) && s.isBlank(s.src[i]) {
		i++
	}
	return i
}

func (s *Scanner) isBlank(c byte) bool {
	return (c == ' ' || c == '\t') && c != s.comma
}

func (s *Scanner) pos(offset int) token.Position {
	return token.Position{
		Line:   s.line,
		Column: offset - s.lineStart + 1,
		Offset: offset,
	}
}
