package accounts

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/kolkov/csvledger/internal/amount"
	"github.com/kolkov/csvledger/internal/record"
)

// Outcome describes what Apply did with a transaction.
type Outcome uint8

const (
	Applied         Outcome = iota
	AccountLocked           // deposit or withdrawal on a locked account
	DuplicateTx             // transaction id already seen
	UnknownTx               // dispute, resolve or chargeback of an unknown transaction
	ClientMismatch          // referenced transaction belongs to another client
	AlreadyDisputed         // dispute of a transaction under dispute
	NotDisputed             // resolve or chargeback of an undisputed transaction
	Overflow                // a balance would leave the Amount range
)

var outcomeNames = [...]string{
	Applied:         "applied",
	AccountLocked:   "account locked",
	DuplicateTx:     "duplicate transaction",
	UnknownTx:       "unknown transaction",
	ClientMismatch:  "client mismatch",
	AlreadyDisputed: "already disputed",
	NotDisputed:     "not disputed",
	Overflow:        "balance overflow",
}

func (o Outcome) String() string {
	if int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return "Outcome(?)"
}

// Account is a snapshot of one client's balances.
type Account struct {
	Client    uint16
	Available amount.Amount
	Held      amount.Amount
	Total     amount.Amount
	Locked    bool
}

type account struct {
	available amount.Amount
	held      amount.Amount
	total     amount.Amount
	disputed  map[uint32]amount.Amount
	locked    bool
}

type entry struct {
	client uint16
	amount amount.Amount // Signed: withdrawals are negative
}

// Ledger holds client accounts and every deposit and withdrawal seen, since
// a dispute may reference any earlier transaction.
type Ledger struct {
	accounts map[uint16]*account
	txs      map[uint32]entry
}

// New creates an empty Ledger.
func New() *Ledger {
	return &Ledger{
		accounts: make(map[uint16]*account),
		txs:      make(map[uint32]entry),
	}
}

// Apply applies t and reports what happened. Operations that do not apply,
// including those that would overflow a balance, leave the ledger unchanged.
func (l *Ledger) Apply(t Transaction) Outcome {
	switch t.Kind {
	case Deposit:
		return l.insert(t.Client, t.Tx, t.Amount)
	case Withdrawal:
		return l.insert(t.Client, t.Tx, t.Amount.Neg())
	case Dispute:
		return l.hold(t.Client, t.Tx)
	case Resolve:
		return l.release(t.Client, t.Tx, false)
	case Chargeback:
		return l.release(t.Client, t.Tx, true)
	}
	return UnknownTx
}

func (l *Ledger) insert(client uint16, tx uint32, amt amount.Amount) Outcome {
	if _, ok := l.txs[tx]; ok {
		return DuplicateTx
	}
	a := l.accounts[client]
	if a == nil {
		a = &account{disputed: make(map[uint32]amount.Amount)}
		l.accounts[client] = a
	}
	if a.locked {
		return AccountLocked
	}
	available, ok1 := a.available.Add(amt)
	total, ok2 := a.total.Add(amt)
	if !ok1 || !ok2 {
		return Overflow
	}
	a.available, a.total = available, total
	l.txs[tx] = entry{client: client, amount: amt}
	return Applied
}

func (l *Ledger) hold(client uint16, tx uint32) Outcome {
	e, ok := l.txs[tx]
	if !ok {
		return UnknownTx
	}
	if e.client != client {
		return ClientMismatch
	}
	a := l.accounts[client]
	if _, ok := a.disputed[tx]; ok {
		return AlreadyDisputed
	}
	available, ok1 := a.available.Sub(e.amount)
	held, ok2 := a.held.Add(e.amount)
	if !ok1 || !ok2 {
		return Overflow
	}
	a.available, a.held = available, held
	a.disputed[tx] = e.amount
	return Applied
}

func (l *Ledger) release(client uint16, tx uint32, chargeback bool) Outcome {
	e, ok := l.txs[tx]
	if !ok {
		return UnknownTx
	}
	if e.client != client {
		return ClientMismatch
	}
	a := l.accounts[client]
	amt, ok := a.disputed[tx]
	if !ok {
		return NotDisputed
	}
	held, ok := a.held.Sub(amt)
	if !ok {
		return Overflow
	}
	if chargeback {
		total, ok := a.total.Sub(amt)
		if !ok {
			return Overflow
		}
		a.total = total
		a.locked = true
	} else {
		available, ok := a.available.Add(amt)
		if !ok {
			return Overflow
		}
		a.available = available
	}
	a.held = held
	delete(a.disputed, tx)
	return Applied
}

// Accounts returns all accounts sorted by client id.
func (l *Ledger) Accounts() []Account {
	out := make([]Account, 0, len(l.accounts))
	for id, a := range l.accounts {
		out = append(out, Account{
			Client:    id,
			Available: a.available,
			Held:      a.held,
			Total:     a.total,
			Locked:    a.locked,
		})
	}
	slices.SortFunc(out, func(x, y Account) int {
		return cmp.Compare(x.Client, y.Client)
	})
	return out
}

// StatementColumns names the statement columns.
var StatementColumns = []string{"client", "available", "held", "total", "locked"}

// NumericColumns are the statement columns holding amounts.
var NumericColumns = []int{1, 2, 3}

// Statement returns the account statement as a header and one owned record
// per account.
func (l *Ledger) Statement() (record.Header, []record.Record) {
	accounts := l.Accounts()
	rows := make([]record.Record, len(accounts))
	for i, a := range accounts {
		rows[i] = record.FromStrings(i+1,
			strconv.FormatUint(uint64(a.Client), 10),
			a.Available.String(),
			a.Held.String(),
			a.Total.String(),
			strconv.FormatBool(a.Locked),
		)
	}
	return record.HeaderOf(StatementColumns...), rows
}
