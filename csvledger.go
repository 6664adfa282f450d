package csvledger

import (
	"github.com/kolkov/csvledger/internal/format"
	"github.com/kolkov/csvledger/internal/sink"
)

// Version is the csvledger version string.
const Version = "0.1.0"

// Sink receives formatted lines, one call per line, without the newline.
type Sink interface {
	WriteLine(line string) error
}

// Summary describes a finished conversion.
type Summary struct {
	Rows    int // Data records converted
	Columns int
	Lines   int // Lines written to the sink
}

// Run converts buf and returns the output as a string.
// On error the output written before the error is returned with it.
//
// Example:
//
//	out, err := csvledger.Run([]byte("a,b\n1,2\n"), nil)
//	// out: "a | b\n1 | 2\n"
func Run(buf []byte, cfg *Config) (string, error) {
	var b sink.Buffer
	_, err := Convert(buf, &b, cfg)
	return b.String(), err
}

// Convert parses buf and writes the header line, one line per record and
// the optional totals line to s.
//
// When the layout has auto-width columns the records are measured in a
// first pass, so formatting errors are reported before anything is
// written. Otherwise lines are written as records are read, and lines
// written before an error stay written.
func Convert(buf []byte, s Sink, cfg *Config) (Summary, error) {
	c, err := prepare(cfg)
	if err != nil {
		return Summary{}, err
	}
	t, err := parse(buf, c, true)
	if err != nil {
		return Summary{}, err
	}
	layout, err := compile(t.Header(), c)
	if err != nil {
		return Summary{}, err
	}
	log := c.Logger.With("columns", t.Header().Len())

	var tally *format.Tally
	if c.Totals {
		tally = layout.l.NewTally()
	}

	if layout.l.HasAuto() {
		for t.Next() {
			r := t.Record()
			if err := layout.Measure(r); err != nil {
				return Summary{}, err
			}
			if tally != nil {
				if err := tally.Add(r); err != nil {
					return Summary{}, convertError(err)
				}
			}
		}
		if err := t.Err(); err != nil {
			return Summary{}, err
		}
		if tally != nil {
			if err := layout.Measure(tally.Record()); err != nil {
				return Summary{}, err
			}
		}
		log.Debug("measured columns", "rows", t.Rows())

		// Second pass over the same buffer; quoting was checked above.
		if t, err = parse(buf, c, false); err != nil {
			return Summary{}, err
		}
	}

	sum := Summary{Columns: t.Header().Len()}
	write := func(line string) error {
		if err := s.WriteLine(line); err != nil {
			return err
		}
		sum.Lines++
		return nil
	}

	if *c.Header {
		if err := write(layout.HeaderLine()); err != nil {
			return sum, err
		}
	}
	if c.Rule && *c.Header {
		if err := write(layout.Rule()); err != nil {
			return sum, err
		}
	}

	measured := layout.l.HasAuto()
	for t.Next() {
		r := t.Record()
		line, err := layout.Format(r)
		if err != nil {
			return sum, err
		}
		if tally != nil && !measured {
			if err := tally.Add(r); err != nil {
				return sum, convertError(err)
			}
		}
		if err := write(line); err != nil {
			return sum, err
		}
		sum.Rows++
	}
	if err := t.Err(); err != nil {
		return sum, err
	}

	if tally != nil {
		if c.Rule {
			if err := write(layout.Rule()); err != nil {
				return sum, err
			}
		}
		line, err := tally.Line()
		if err != nil {
			return sum, convertError(err)
		}
		if err := write(line); err != nil {
			return sum, err
		}
	}

	if tally != nil {
		log.Debug("totals written", "rows", tally.Rows())
	}
	log.Debug("converted", "rows", sum.Rows, "lines", sum.Lines)
	return sum, nil
}
