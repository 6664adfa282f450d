package format

import (
	"github.com/shopspring/decimal"

	"github.com/kolkov/csvledger/internal/record"
)

// TotalLabel labels the totals line.
const TotalLabel = "total"

// Tally sums the numeric columns of a Layout.
type Tally struct {
	layout *Layout
	sums   []decimal.Decimal
	rows   int
}

// NewTally creates an empty Tally over l.
func (l *Layout) NewTally() *Tally {
	return &Tally{layout: l, sums: make([]decimal.Decimal, len(l.cols))}
}

// Add adds the numeric cells of r.
func (t *Tally) Add(r record.Record) error {
	l := t.layout
	if err := l.checkArity(r); err != nil {
		return err
	}
	for i, c := range l.cols {
		if !c.Numeric {
			continue
		}
		d, ok, err := l.number(i, r.Fields[i], r)
		if err != nil {
			return err
		}
		if ok {
			t.sums[i] = t.sums[i].Add(d)
		}
	}
	t.rows++
	return nil
}

// Rows returns the number of records added.
func (t *Tally) Rows() int {
	return t.rows
}

// Record returns the totals as a record: the label in the first text
// column, sums in numeric columns, other cells empty.
func (t *Tally) Record() record.Record {
	l := t.layout
	values := make([]string, len(l.cols))
	labelled := false
	for i, c := range l.cols {
		switch {
		case c.Numeric:
			values[i] = t.sums[i].StringFixed(l.decimals)
		case !labelled:
			values[i] = TotalLabel
			labelled = true
		}
	}
	return record.FromStrings(0, values...)
}

// Line renders the totals line.
func (t *Tally) Line() (string, error) {
	return t.layout.Format(t.Record())
}
