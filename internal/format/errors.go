package format

import "fmt"

// NumericError reports a numeric cell that does not hold a decimal number.
type NumericError struct {
	Column string // Header name
	Index  int    // 0-based column index
	Row    int    // Data row number
	Line   int
	Raw    string
}

func (e *NumericError) Error() string {
	return fmt.Sprintf("line %d: row %d: column %q (%d): invalid numeric value %q",
		e.Line, e.Row, e.Column, e.Index, e.Raw)
}
