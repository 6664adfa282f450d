package csvledger

import (
	"errors"
	"fmt"

	"github.com/kolkov/csvledger/internal/accounts"
	"github.com/kolkov/csvledger/internal/format"
	"github.com/kolkov/csvledger/internal/record"
	"github.com/kolkov/csvledger/internal/scanner"
)

var (
	// ErrMalformedQuote matches any *MalformedQuoteError.
	ErrMalformedQuote = errors.New("malformed quote")
	// ErrColumnCountMismatch matches any *ColumnCountMismatchError.
	ErrColumnCountMismatch = errors.New("column count mismatch")
	// ErrInvalidNumericField matches any *InvalidNumericFieldError.
	ErrInvalidNumericField = errors.New("invalid numeric field")
	// ErrInvalidConfig matches any *ConfigError.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrInvalidTransaction matches any *TransactionError.
	ErrInvalidTransaction = errors.New("invalid transaction")
	// ErrNoHeader is returned for input without any record.
	ErrNoHeader = record.ErrNoHeader
)

// MalformedQuoteError reports an unterminated or improperly escaped quote.
type MalformedQuoteError struct {
	Line   int    // 1-based line number
	Column int    // 1-based byte column
	Offset int    // Byte offset in the buffer
	Reason string // Error description
}

func (e *MalformedQuoteError) Error() string {
	return fmt.Sprintf("malformed quote at %d:%d: %s", e.Line, e.Column, e.Reason)
}

func (e *MalformedQuoteError) Is(target error) bool { return target == ErrMalformedQuote }

// ColumnCountMismatchError reports a record whose field count differs from
// the header's.
type ColumnCountMismatchError struct {
	Row      int // 1-based data row
	Line     int // Line the record starts on
	Expected int
	Actual   int
}

func (e *ColumnCountMismatchError) Error() string {
	return fmt.Sprintf("column count mismatch at line %d (row %d): expected %d fields, got %d",
		e.Line, e.Row, e.Expected, e.Actual)
}

func (e *ColumnCountMismatchError) Is(target error) bool { return target == ErrColumnCountMismatch }

// InvalidNumericFieldError reports a numeric column cell that is not a
// decimal number.
type InvalidNumericFieldError struct {
	Column string // Header name
	Index  int    // 0-based column index
	Row    int
	Line   int
	Raw    string // Cell content
}

func (e *InvalidNumericFieldError) Error() string {
	return fmt.Sprintf("invalid numeric field at line %d (row %d): column %q: %q",
		e.Line, e.Row, e.Column, e.Raw)
}

func (e *InvalidNumericFieldError) Is(target error) bool { return target == ErrInvalidNumericField }

// ConfigError reports an invalid option.
type ConfigError struct {
	Field   string // Option name, empty for file-level errors
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("config error: %s", e.Message)
	}
	return fmt.Sprintf("config error: %s: %s", e.Field, e.Message)
}

func (e *ConfigError) Is(target error) bool { return target == ErrInvalidConfig }

// TransactionError reports an invalid transaction header or row.
type TransactionError struct {
	Row     int    // 0 for the header
	Line    int
	Column  string // Empty when the whole row is at fault
	Message string
}

func (e *TransactionError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("invalid transaction at line %d: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("invalid transaction at line %d (row %d): %s: %s", e.Line, e.Row, e.Column, e.Message)
}

func (e *TransactionError) Is(target error) bool { return target == ErrInvalidTransaction }

// convertError maps internal error types to the public ones.
func convertError(err error) error {
	if err == nil {
		return nil
	}
	var (
		se *scanner.Error
		ce *record.CountError
		ne *format.NumericError
		oe *format.OptionError
		ae *accounts.Error
	)
	switch {
	case errors.As(err, &se):
		return &MalformedQuoteError{
			Line:   se.Pos.Line,
			Column: se.Pos.Column,
			Offset: se.Pos.Offset,
			Reason: se.Message(),
		}
	case errors.As(err, &ce):
		return &ColumnCountMismatchError{Row: ce.Row, Line: ce.Line, Expected: ce.Expected, Actual: ce.Actual}
	case errors.As(err, &ne):
		return &InvalidNumericFieldError{Column: ne.Column, Index: ne.Index, Row: ne.Row, Line: ne.Line, Raw: ne.Raw}
	case errors.As(err, &oe):
		return &ConfigError{Field: oe.Option, Message: oe.Msg}
	case errors.As(err, &ae):
		return &TransactionError{Row: ae.Row, Line: ae.Line, Column: ae.Column, Message: ae.Msg}
	}
	return err
}
