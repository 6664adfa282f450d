package csvledger

import "github.com/kolkov/csvledger/internal/format"

// Column describes one output column of a Layout.
type Column = format.Column

// Layout renders records of one header as ledger lines.
type Layout struct {
	l *format.Layout
}

// Compile builds a Layout for h from the formatting options in cfg.
func Compile(h Header, cfg *Config) (*Layout, error) {
	c, err := prepare(cfg)
	if err != nil {
		return nil, err
	}
	return compile(h, c)
}

func compile(h Header, c *Config) (*Layout, error) {
	l, err := format.Compile(h, c.formatOptions())
	if err != nil {
		return nil, convertError(err)
	}
	return &Layout{l: l}, nil
}

// Measure widens auto-width columns to fit r.
func (l *Layout) Measure(r Record) error {
	return convertError(l.l.Measure(r))
}

// Format renders r as one line. The result does not depend on earlier
// calls to Format.
func (l *Layout) Format(r Record) (string, error) {
	s, err := l.l.Format(r)
	return s, convertError(err)
}

// HeaderLine renders the column names.
func (l *Layout) HeaderLine() string {
	return l.l.HeaderLine()
}

// Rule renders a separator line.
func (l *Layout) Rule() string {
	return l.l.Rule()
}

// Columns describes the output columns.
func (l *Layout) Columns() []Column {
	return l.l.Columns()
}

// Format formats a single record under h. Auto-width columns are sized
// from the header and r alone.
func Format(h Header, r Record, cfg *Config) (string, error) {
	l, err := Compile(h, cfg)
	if err != nil {
		return "", err
	}
	if err := l.Measure(r); err != nil {
		return "", err
	}
	return l.Format(r)
}
