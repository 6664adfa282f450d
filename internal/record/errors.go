package record

import (
	"errors"
	"fmt"
)

// ErrNoHeader is returned when the input holds no records at all.
var ErrNoHeader = errors.New("no header record")

// CountError reports a data record whose field count differs from the header's.
type CountError struct {
	Row      int
	Line     int
	Expected int
	Actual   int
}

func (e *CountError) Error() string {
	return fmt.Sprintf("line %d: row %d has %d fields, expected %d", e.Line, e.Row, e.Actual, e.Expected)
}
