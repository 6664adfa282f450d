package record

import (
	"github.com/kolkov/csvledger/internal/scanner"
	"github.com/kolkov/csvledger/internal/token"
)

// Options configures an Assembler.
type Options struct {
	// ReuseRecord reuses the field slice between calls to Next, so the
	// Record returned by Record is only valid until the next call.
	ReuseRecord bool
}

// Assembler reads records from a Scanner. Like bufio.Scanner, iteration
// stops at the first error, which Err reports.
type Assembler struct {
	sc   *scanner.Scanner
	opts Options

	header     Header
	haveHeader bool
	rec        Record
	row        int
	buf        []scanner.Field
	err        error
	done       bool
}

// New creates an Assembler reading from sc.
func New(sc *scanner.Scanner, opts Options) *Assembler {
	return &Assembler{sc: sc, opts: opts}
}

// ReadHeader reads the first record. Calling it again returns the same header.
func (a *Assembler) ReadHeader() (Header, error) {
	if a.haveHeader {
		return a.header, nil
	}
	if a.err != nil {
		return Header{}, a.err
	}
	fields, line, ok, err := a.read(nil)
	if err != nil {
		a.fail(err)
		return Header{}, err
	}
	if !ok {
		a.fail(ErrNoHeader)
		return Header{}, ErrNoHeader
	}
	a.header = NewHeader(Record{Fields: fields, Line: line})
	a.haveHeader = true
	return a.header, nil
}

// Header returns the header read so far.
func (a *Assembler) Header() Header {
	return a.header
}

// Next advances to the next data record. It reads the header first if
// ReadHeader has not been called.
func (a *Assembler) Next() bool {
	if a.done {
		return false
	}
	if !a.haveHeader {
		if _, err := a.ReadHeader(); err != nil {
			return false
		}
	}

	var dst []scanner.Field
	if a.opts.ReuseRecord {
		dst = a.buf[:0]
	}
	fields, line, ok, err := a.read(dst)
	if err != nil {
		a.fail(err)
		return false
	}
	if !ok {
		a.done = true
		return false
	}
	if a.opts.ReuseRecord {
		a.buf = fields
	}

	a.row++
	if want := a.header.Len(); len(fields) != want {
		a.fail(&CountError{Row: a.row, Line: line, Expected: want, Actual: len(fields)})
		return false
	}
	a.rec = Record{Fields: fields, Row: a.row, Line: line}
	return true
}

// Record returns the record produced by the last successful Next.
func (a *Assembler) Record() Record {
	return a.rec
}

// Err returns the first error encountered, or nil.
func (a *Assembler) Err() error {
	return a.err
}

// Rows returns the number of data records read so far.
func (a *Assembler) Rows() int {
	return a.row
}

func (a *Assembler) fail(err error) {
	a.err = err
	a.done = true
	a.rec = Record{}
}

// read collects fields up to the next record boundary. ok is false when
// the input is exhausted before a field is seen.
func (a *Assembler) read(dst []scanner.Field) (fields []scanner.Field, line int, ok bool, err error) {
	fields = dst
	for {
		tok := a.sc.Scan()
		switch {
		case tok.Type == token.FIELD:
			if len(fields) == 0 {
				line = tok.Pos.Line
			}
			fields = append(fields, tok.Field)
		case tok.Type.IsBoundary():
			// EOR always follows a field; a bare EOF ends the input.
			return fields, line, len(fields) > 0, nil
		default:
			return nil, 0, false, a.sc.Err()
		}
	}
}
