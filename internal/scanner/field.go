package scanner

import (
	"unsafe"

	"github.com/kolkov/csvledger/internal/token"
)

// Field is one delimited value. Data aliases the scanned buffer: for quoted
// fields it spans the bytes between the quotes, with doubled quotes intact.
// The buffer must not be modified while the Field is in use.
type Field struct {
	Data    []byte         // Raw bytes, borrowed from the input buffer
	Quoted  bool           // Field was enclosed in quotes
	Escaped bool           // Data contains doubled quotes that Bytes collapses
	Pos     token.Position // Position of the first byte of the field

	quote byte
}

// Owned returns a Field holding a copy of s. Used for rows that were not
// read from an input buffer.
func Owned(s string) Field {
	return Field{Data: []byte(s)}
}

// Len returns the length of the raw field bytes.
func (f Field) Len() int {
	return len(f.Data)
}

// Bytes returns the field value. The result aliases the input buffer unless
// the field is Escaped, in which case it is a fresh copy with "" collapsed.
func (f Field) Bytes() []byte {
	if !f.Escaped {
		return f.Data
	}
	return unescape(f.Data, f.quote)
}

// String returns the field value as a string. It does not copy unless the
// field is Escaped.
func (f Field) String() string {
	b := f.Bytes()
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}

func unescape(data []byte, quote byte) []byte {
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		out = append(out, data[i])
		if data[i] == quote && i+1 < len(data) && data[i+1] == quote {
			i++
		}
	}
	return out
}
