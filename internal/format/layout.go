package format

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/shopspring/decimal"

	"github.com/kolkov/csvledger/internal/match"
	"github.com/kolkov/csvledger/internal/record"
	"github.com/kolkov/csvledger/internal/scanner"
)

// Align is the horizontal alignment of a column.
type Align uint8

const (
	Left Align = iota
	Right
)

// Column describes one output column.
type Column struct {
	Name    string
	Width   int // Current width in display cells
	Auto    bool
	Natural bool // No padding
	Numeric bool
	Align   Align
}

// Layout is a compiled ledger layout for one header. Measure widens auto
// columns; after the last Measure a Layout is read-only and Format is pure.
type Layout struct {
	header   record.Header
	cols     []Column
	delim    string
	special  string // Delimiter bytes that force quoting
	quote    byte
	decimals int32
	empty    bool
	named    bool // Header names count toward widths
}

// Compile builds a Layout for h.
func Compile(h record.Header, opts Options) (*Layout, error) {
	if opts.Delimiter == "" {
		opts.Delimiter = DefaultDelimiter
	}
	if opts.Quote == 0 {
		opts.Quote = '"'
	}
	if opts.Decimals < 0 {
		return nil, &OptionError{Option: "decimals", Msg: "must not be negative"}
	}
	if len(opts.Widths) > h.Len() {
		return nil, &OptionError{Option: "column_widths", Msg: "more widths than columns"}
	}

	l := &Layout{
		header:   h,
		cols:     make([]Column, h.Len()),
		delim:    opts.Delimiter,
		special:  strings.TrimSpace(opts.Delimiter),
		quote:    opts.Quote,
		decimals: int32(opts.Decimals),
		empty:    opts.AllowEmpty,
		named:    !opts.NoHeader,
	}
	if l.special == "" {
		l.special = opts.Delimiter
	}

	for i := range l.cols {
		l.cols[i].Name = h.Name(i)
	}
	if err := l.markNumeric(opts); err != nil {
		return nil, err
	}

	for i := range l.cols {
		c := &l.cols[i]
		if c.Numeric {
			c.Align = Right
		}
		w := 0
		if i < len(opts.Widths) {
			w = opts.Widths[i]
		}
		switch {
		case w < 0:
			c.Natural = true
		case w == 0:
			c.Auto = true
			if l.named {
				c.Width = runewidth.StringWidth(l.text(c.Name))
			}
		default:
			c.Width = w
		}
	}
	return l, nil
}

func (l *Layout) markNumeric(opts Options) error {
	for _, i := range opts.Numeric {
		if i < 0 || i >= len(l.cols) {
			return &OptionError{Option: "numeric_columns", Msg: "column index out of range"}
		}
		l.cols[i].Numeric = true
	}
	for _, name := range opts.NumericNames {
		i := l.header.Index(name)
		if i < 0 {
			return &OptionError{Option: "numeric_names", Msg: "unknown column " + name}
		}
		l.cols[i].Numeric = true
	}
	if opts.NumericMatch != "" {
		re, err := patterns.Get(opts.NumericMatch)
		if err != nil {
			return &OptionError{Option: "numeric_match", Msg: err.Error()}
		}
		for i := range l.cols {
			if re.MatchString(l.cols[i].Name) {
				l.cols[i].Numeric = true
			}
		}
	}
	return nil
}

// Header returns the header the layout was compiled for.
func (l *Layout) Header() record.Header {
	return l.header
}

// Columns returns a copy of the column descriptions.
func (l *Layout) Columns() []Column {
	return append([]Column(nil), l.cols...)
}

// HasAuto reports whether any column takes its width from the data.
func (l *Layout) HasAuto() bool {
	for _, c := range l.cols {
		if c.Auto {
			return true
		}
	}
	return false
}

// Numeric reports whether column i is numeric.
func (l *Layout) Numeric(i int) bool {
	return l.cols[i].Numeric
}

// Measure widens auto columns to fit r.
func (l *Layout) Measure(r record.Record) error {
	if err := l.checkArity(r); err != nil {
		return err
	}
	for i := range l.cols {
		c := &l.cols[i]
		if !c.Auto {
			continue
		}
		s, err := l.cell(i, r.Fields[i], r)
		if err != nil {
			return err
		}
		if w := runewidth.StringWidth(s); w > c.Width {
			c.Width = w
		}
	}
	return nil
}

// Format renders r as one ledger line.
func (l *Layout) Format(r record.Record) (string, error) {
	if err := l.checkArity(r); err != nil {
		return "", err
	}
	cells := make([]string, len(l.cols))
	for i := range l.cols {
		s, err := l.cell(i, r.Fields[i], r)
		if err != nil {
			return "", err
		}
		cells[i] = s
	}
	return l.join(cells), nil
}

// HeaderLine renders the column names.
func (l *Layout) HeaderLine() string {
	cells := make([]string, len(l.cols))
	for i := range l.cols {
		cells[i] = l.text(l.cols[i].Name)
	}
	return l.join(cells)
}

// Rule renders a separator line matching the column widths. Blanks in the
// delimiter become '-' and other delimiter bytes become '+'.
func (l *Layout) Rule() string {
	cross := strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' {
			return '-'
		}
		return '+'
	}, l.delim)

	var b strings.Builder
	for i, c := range l.cols {
		if i > 0 {
			b.WriteString(cross)
		}
		w := c.Width
		if c.Natural && l.named {
			w = runewidth.StringWidth(l.text(c.Name))
		}
		b.WriteString(strings.Repeat("-", w))
	}
	return b.String()
}

func (l *Layout) checkArity(r record.Record) error {
	if r.Len() != len(l.cols) {
		return &record.CountError{Row: r.Row, Line: r.Line, Expected: len(l.cols), Actual: r.Len()}
	}
	return nil
}

// cell renders the unpadded text of field i.
func (l *Layout) cell(i int, f scanner.Field, r record.Record) (string, error) {
	if !l.cols[i].Numeric {
		return l.text(f.String()), nil
	}
	d, ok, err := l.number(i, f, r)
	if err != nil {
		return "", err
	}
	if !ok {
		return l.text(""), nil
	}
	return d.StringFixed(l.decimals), nil
}

// text returns s as a cell. In a single-column layout an empty cell is
// written as an empty quoted field so the line is not blank.
func (l *Layout) text(s string) string {
	if s == "" && len(l.cols) == 1 {
		return string([]byte{l.quote, l.quote})
	}
	return l.quoted(s)
}

// number parses numeric field i. ok is false for an allowed empty cell.
func (l *Layout) number(i int, f scanner.Field, r record.Record) (d decimal.Decimal, ok bool, err error) {
	raw := f.String()
	if raw == "" && l.empty {
		return decimal.Zero, false, nil
	}
	if match.IsNumber(raw) {
		if d, err = decimal.NewFromString(raw); err == nil {
			return d, true, nil
		}
	}
	return decimal.Zero, false, &NumericError{
		Column: l.cols[i].Name,
		Index:  i,
		Row:    r.Row,
		Line:   r.Line,
		Raw:    strings.Clone(raw),
	}
}

func (l *Layout) join(cells []string) string {
	var b strings.Builder
	last := len(cells) - 1
	for i, s := range cells {
		c := l.cols[i]
		if i > 0 {
			b.WriteString(l.delim)
		}
		pad := 0
		if !c.Natural {
			pad = c.Width - runewidth.StringWidth(s)
		}
		if pad > 0 && c.Align == Right {
			b.WriteString(strings.Repeat(" ", pad))
		}
		b.WriteString(s)
		// No trailing blanks after the last cell.
		if pad > 0 && c.Align == Left && i < last {
			b.WriteString(strings.Repeat(" ", pad))
		}
	}
	return b.String()
}

// quoted returns s, CSV-quoted if it contains the delimiter, a quote or a
// line break.
func (l *Layout) quoted(s string) string {
	if !strings.ContainsAny(s, "\r\n"+string(l.quote)) && !strings.Contains(s, l.special) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte(l.quote)
	for i := 0; i < len(s); i++ {
		if s[i] == l.quote {
			b.WriteByte(l.quote)
		}
		b.WriteByte(s[i])
	}
	b.WriteByte(l.quote)
	return b.String()
}
