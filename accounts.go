package csvledger

import (
	"fmt"

	"github.com/kolkov/csvledger/internal/accounts"
	"github.com/kolkov/csvledger/internal/amount"
	"github.com/kolkov/csvledger/internal/format"
)

// Settle reads type,client,tx,amount transactions from buf, applies them
// to client accounts and writes the account statement to s, one line per
// client in ascending client order.
//
// Only the output options of cfg apply to the statement: DelimiterOut,
// Quote, ColumnWidths (over the statement columns), Header and Rule.
// Amounts always have four decimal places. A transaction that would move a
// balance out of range fails with a *TransactionError.
func Settle(buf []byte, s Sink, cfg *Config) error {
	c, err := prepare(cfg)
	if err != nil {
		return err
	}
	t, err := parse(buf, c, true)
	if err != nil {
		return err
	}
	binder, err := accounts.Bind(t.Header())
	if err != nil {
		return convertError(err)
	}

	log := c.Logger
	ledger := accounts.New()
	for t.Next() {
		r := t.Record()
		tx, err := binder.Decode(r)
		if err != nil {
			return convertError(err)
		}
		out := ledger.Apply(tx)
		if out == accounts.Overflow {
			return convertError(&accounts.Error{
				Row:    r.Row,
				Line:   r.Line,
				Column: "amount",
				Msg:    fmt.Sprintf("client %d balance out of range", tx.Client),
			})
		}
		if out != accounts.Applied {
			log.Debug("transaction ignored",
				"row", r.Row,
				"type", tx.Kind.String(),
				"client", tx.Client,
				"tx", tx.Tx,
				"reason", out.String())
		}
	}
	if err := t.Err(); err != nil {
		return err
	}

	h, rows := ledger.Statement()
	l, err := format.Compile(h, format.Options{
		Delimiter: c.DelimiterOut,
		Quote:     c.Quote[0],
		Widths:    c.ColumnWidths,
		Numeric:   accounts.NumericColumns,
		Decimals:  amount.Places,
		NoHeader:  !*c.Header,
	})
	if err != nil {
		return convertError(err)
	}
	layout := &Layout{l: l}
	for _, r := range rows {
		if err := layout.Measure(r); err != nil {
			return err
		}
	}

	if *c.Header {
		if err := s.WriteLine(layout.HeaderLine()); err != nil {
			return err
		}
		if c.Rule {
			if err := s.WriteLine(layout.Rule()); err != nil {
				return err
			}
		}
	}
	for _, r := range rows {
		line, err := layout.Format(r)
		if err != nil {
			return err
		}
		if err := s.WriteLine(line); err != nil {
			return err
		}
	}
	log.Debug("settled", "transactions", t.Rows(), "accounts", len(rows))
	return nil
}
