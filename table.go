package csvledger

import (
	"iter"

	"github.com/kolkov/csvledger/internal/record"
	"github.com/kolkov/csvledger/internal/scanner"
	"github.com/kolkov/csvledger/internal/token"
)

// Field is one value. It borrows from the parsed buffer.
type Field = scanner.Field

// Record is one row of fields.
type Record = record.Record

// Header is the first record; it fixes column names and arity.
type Header = record.Header

// Position is a location in the input buffer.
type Position = token.Position

// Table iterates the data records of a parsed buffer. It is forward-only
// and stops at the first error.
type Table struct {
	asm    *record.Assembler
	header Header
	err    error
}

// Parse validates quoting over all of buf, reads the header and returns a
// Table over the remaining records. A quoting error anywhere in buf is
// reported here, before any record is produced.
func Parse(buf []byte, cfg *Config) (*Table, error) {
	c, err := prepare(cfg)
	if err != nil {
		return nil, err
	}
	return parse(buf, c, true)
}

func parse(buf []byte, c *Config, check bool) (*Table, error) {
	opts := c.scannerOptions()
	if check {
		if err := scanner.Check(buf, opts); err != nil {
			return nil, convertError(err)
		}
	}
	asm := record.New(scanner.New(buf, opts), c.recordOptions())
	h, err := asm.ReadHeader()
	if err != nil {
		return nil, convertError(err)
	}
	return &Table{asm: asm, header: h}, nil
}

// Header returns the header record.
func (t *Table) Header() Header {
	return t.header
}

// Next advances to the next data record.
func (t *Table) Next() bool {
	if t.asm.Next() {
		return true
	}
	t.err = convertError(t.asm.Err())
	return false
}

// Record returns the current data record.
func (t *Table) Record() Record {
	return t.asm.Record()
}

// Err returns the error that stopped iteration, or nil at end of input.
func (t *Table) Err() error {
	return t.err
}

// Rows returns the number of data records read so far.
func (t *Table) Rows() int {
	return t.asm.Rows()
}

// Records returns an iterator over the remaining data records. An error
// is yielded once, as the last element.
func (t *Table) Records() iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		for t.Next() {
			if !yield(t.Record(), nil) {
				return
			}
		}
		if err := t.Err(); err != nil {
			yield(Record{}, err)
		}
	}
}
