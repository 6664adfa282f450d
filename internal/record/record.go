// Package record groups scanned fields into records and enforces a
// constant arity set by the header.
package record

import (
	"strings"

	"github.com/kolkov/csvledger/internal/scanner"
)

// Record is one row of fields. Fields borrow from the input buffer.
type Record struct {
	Fields []scanner.Field
	Row    int // 1-based data row number; 0 for the header
	Line   int // Line the record starts on
}

// Len returns the number of fields.
func (r Record) Len() int {
	return len(r.Fields)
}

// Value returns the value of field i.
func (r Record) Value(i int) string {
	return r.Fields[i].String()
}

// Strings returns owned copies of all field values.
func (r Record) Strings() []string {
	out := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		out[i] = strings.Clone(f.String())
	}
	return out
}

// FromStrings builds a Record that owns its values.
func FromStrings(row int, values ...string) Record {
	fields := make([]scanner.Field, len(values))
	for i, v := range values {
		fields[i] = scanner.Owned(v)
	}
	return Record{Fields: fields, Row: row}
}

// Header is the first record of a table. Its names are owned copies so
// diagnostics stay valid after the input buffer is released.
type Header struct {
	Record
	Names []string
}

// NewHeader builds a Header from r, copying the column names.
func NewHeader(r Record) Header {
	return Header{Record: r, Names: r.Strings()}
}

// HeaderOf builds an owned Header from column names.
func HeaderOf(names ...string) Header {
	return NewHeader(FromStrings(0, names...))
}

// Index returns the index of the first column named name, or -1.
func (h Header) Index(name string) int {
	for i, n := range h.Names {
		if n == name {
			return i
		}
	}
	return -1
}

// Name returns the name of column i, or "" if i is out of range.
func (h Header) Name(i int) string {
	if i < 0 || i >= len(h.Names) {
		return ""
	}
	return h.Names[i]
}
