package accounts

import (
	"errors"
	"testing"

	"github.com/kolkov/csvledger/internal/record"
)

func TestBind(t *testing.T) {
	ok := [][]string{
		{"type", "client", "tx", "amount"},
		{" type", "  client", " tx  ", "amount  "},
		{"amount", "TX", "Client", "Type"},
	}
	for _, names := range ok {
		if _, err := Bind(record.HeaderOf(names...)); err != nil {
			t.Errorf("Bind(%q): %v", names, err)
		}
	}

	bad := [][]string{
		{"type", "client", "tx"},
		{"type", "client", "tx", "amount", "foo"},
		{"client", "type", "ammount", "tx"},
		{"type", "client", "tx", ""},
		{"type", "type", "tx", "amount"},
	}
	for _, names := range bad {
		_, err := Bind(record.HeaderOf(names...))
		var e *Error
		if !errors.As(err, &e) {
			t.Errorf("Bind(%q) error = %v, want *Error", names, err)
		}
	}
}

func decode(t *testing.T, values ...string) (Transaction, error) {
	t.Helper()
	b, err := Bind(record.HeaderOf(Columns[:]...))
	if err != nil {
		t.Fatal(err)
	}
	r := record.FromStrings(1, values...)
	r.Line = 2
	return b.Decode(r)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   Transaction
	}{
		{"deposit", []string{"deposit", "1", "2", "3.1"}, Transaction{Deposit, 1, 2, 31000}},
		{"withdrawal", []string{"withdrawal", "1", "2", "3.0"}, Transaction{Withdrawal, 1, 2, 30000}},
		{"dispute", []string{"dispute", "1", "2", ""}, Transaction{Dispute, 1, 2, 0}},
		{"resolve", []string{"resolve", "1", "2", ""}, Transaction{Resolve, 1, 2, 0}},
		{"chargeback", []string{"chargeback", "1", "2", ""}, Transaction{Chargeback, 1, 2, 0}},
		{"blanks", []string{"  deposit  ", "1  ", "  2", "  3.0  "}, Transaction{Deposit, 1, 2, 30000}},
		{"upper case", []string{"DEPOSIT", "65535", "4294967295", "1"}, Transaction{Deposit, 65535, 4294967295, 10000}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decode(t, tt.values...)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if got != tt.want {
				t.Errorf("Decode = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		column string
	}{
		{"unknown type", []string{"xyz", "1", "1", "2.0"}, "type"},
		{"bad client", []string{"deposit", "x", "1", "1"}, "client"},
		{"client overflow", []string{"deposit", "65536", "2", "3.0"}, "client"},
		{"negative client", []string{"deposit", "-1", "2", "3.0"}, "client"},
		{"bad tx", []string{"deposit", "1", "x", "1"}, "tx"},
		{"bad amount", []string{"deposit", "1", "2", "x"}, "amount"},
		{"deposit missing amount", []string{"deposit", "1", "2", ""}, "amount"},
		{"withdrawal missing amount", []string{"withdrawal", "1", "2", ""}, "amount"},
		{"dispute with amount", []string{"dispute", "1", "2", "3.0"}, "amount"},
		{"five places", []string{"deposit", "1", "2", "1.00001"}, "amount"},
		{"negative amount", []string{"deposit", "1", "2", "-1"}, "amount"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decode(t, tt.values...)
			var e *Error
			if !errors.As(err, &e) {
				t.Fatalf("err = %v, want *Error", err)
			}
			if e.Column != tt.column || e.Row != 1 || e.Line != 2 {
				t.Errorf("Error = %+v, want column %q row 1 line 2", e, tt.column)
			}
		})
	}

	if _, err := decode(t, "deposit", "1", "2"); err == nil {
		t.Error("expected error for short row")
	}
}

func TestKind(t *testing.T) {
	for k := Deposit; k <= Chargeback; k++ {
		got, ok := ParseKind(k.String())
		if !ok || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, ok)
		}
	}
	if Kind(0).String() != "Kind(?)" || Kind(9).String() != "Kind(?)" {
		t.Error("unknown kind String()")
	}
	if !Deposit.HasAmount() || Dispute.HasAmount() {
		t.Error("HasAmount mismatch")
	}
}
