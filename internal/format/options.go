// Package format renders records as aligned ledger lines.
package format

import (
	"fmt"

	"github.com/kolkov/csvledger/internal/match"
)

// DefaultDelimiter separates cells in a ledger line.
const DefaultDelimiter = " | "

// Options configures a Layout.
type Options struct {
	Delimiter    string   // Output delimiter (default " | ")
	Quote        byte     // Quote for cells that need it (default '"')
	Widths       []int    // Per-column width: 0 auto, >0 fixed minimum, <0 natural
	Numeric      []int    // Numeric column indices (0-based)
	NumericNames []string // Numeric columns by exact header name
	NumericMatch string   // Pattern selecting numeric columns by header name
	Decimals     int      // Decimal places for numeric cells
	AllowEmpty   bool     // Render empty numeric cells blank instead of failing
	NoHeader     bool     // The header line is not written; names do not widen columns
}

// OptionError reports options that do not fit the header.
type OptionError struct {
	Option string
	Msg    string
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Option, e.Msg)
}

// patterns caches compiled NumericMatch expressions across layouts.
var patterns = match.NewCache(16)
