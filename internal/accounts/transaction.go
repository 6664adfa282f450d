// Package accounts applies deposits, withdrawals and disputes to client
// accounts and renders account statements.
package accounts

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kolkov/csvledger/internal/amount"
	"github.com/kolkov/csvledger/internal/record"
)

// Kind is a transaction type.
type Kind uint8

const (
	Deposit Kind = iota + 1
	Withdrawal
	Dispute
	Resolve
	Chargeback
)

var kindNames = [...]string{
	Deposit:    "deposit",
	Withdrawal: "withdrawal",
	Dispute:    "dispute",
	Resolve:    "resolve",
	Chargeback: "chargeback",
}

func (k Kind) String() string {
	if k > 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// ParseKind looks up a transaction type by name, ignoring case.
func ParseKind(s string) (Kind, bool) {
	for k := Deposit; k <= Chargeback; k++ {
		if strings.EqualFold(s, kindNames[k]) {
			return k, true
		}
	}
	return 0, false
}

// HasAmount reports whether transactions of kind k carry an amount.
func (k Kind) HasAmount() bool {
	return k == Deposit || k == Withdrawal
}

// Transaction is one decoded input row.
type Transaction struct {
	Kind   Kind
	Client uint16
	Tx     uint32
	Amount amount.Amount
}

// Columns lists the input columns in canonical order.
var Columns = [4]string{"type", "client", "tx", "amount"}

const (
	colType = iota
	colClient
	colTx
	colAmount
)

// Error reports a header or row that is not a valid transaction.
type Error struct {
	Row    int    // Data row, 0 for the header
	Line   int
	Column string // Empty when the error concerns the whole row
	Msg    string
}

func (e *Error) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("line %d: row %d: column %q: %s", e.Line, e.Row, e.Column, e.Msg)
}

// Binder maps header columns to transaction fields.
type Binder struct {
	index [4]int
}

// Bind checks that h names exactly the columns type, client, tx and amount
// in any order. Names are compared ignoring case and surrounding blanks.
func Bind(h record.Header) (*Binder, error) {
	if h.Len() != len(Columns) {
		return nil, &Error{Line: h.Line, Msg: fmt.Sprintf("header has %d columns, want %s", h.Len(), strings.Join(Columns[:], ","))}
	}
	b := &Binder{index: [4]int{-1, -1, -1, -1}}
	for i, name := range h.Names {
		name = strings.TrimSpace(name)
		c := columnIndex(name)
		if c < 0 {
			return nil, &Error{Line: h.Line, Msg: fmt.Sprintf("unexpected column %q", name)}
		}
		if b.index[c] >= 0 {
			return nil, &Error{Line: h.Line, Msg: fmt.Sprintf("duplicate column %q", name)}
		}
		b.index[c] = i
	}
	return b, nil
}

func columnIndex(name string) int {
	for i, c := range Columns {
		if strings.EqualFold(name, c) {
			return i
		}
	}
	return -1
}

// Decode converts r into a Transaction.
func (b *Binder) Decode(r record.Record) (Transaction, error) {
	fail := func(col int, format string, args ...any) (Transaction, error) {
		return Transaction{}, &Error{Row: r.Row, Line: r.Line, Column: Columns[col], Msg: fmt.Sprintf(format, args...)}
	}
	value := func(col int) string {
		return strings.TrimSpace(r.Fields[b.index[col]].String())
	}
	if r.Len() != len(Columns) {
		return Transaction{}, &Error{Row: r.Row, Line: r.Line, Msg: fmt.Sprintf("row has %d fields, want %d", r.Len(), len(Columns))}
	}

	var t Transaction
	kind, ok := ParseKind(value(colType))
	if !ok {
		return fail(colType, "unknown transaction type %q", value(colType))
	}
	t.Kind = kind

	client, err := strconv.ParseUint(value(colClient), 10, 16)
	if err != nil {
		return fail(colClient, "invalid client id %q", value(colClient))
	}
	t.Client = uint16(client)

	tx, err := strconv.ParseUint(value(colTx), 10, 32)
	if err != nil {
		return fail(colTx, "invalid transaction id %q", value(colTx))
	}
	t.Tx = uint32(tx)

	raw := value(colAmount)
	switch {
	case kind.HasAmount() && raw == "":
		return fail(colAmount, "%s requires an amount", kind)
	case kind.HasAmount():
		a, err := amount.Parse(raw)
		if err != nil {
			return fail(colAmount, "invalid amount %q: %v", raw, err)
		}
		t.Amount = a
	case raw != "":
		return fail(colAmount, "%s must not have an amount", kind)
	}
	return t, nil
}
