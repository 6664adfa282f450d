// Package csvledger converts CSV data into aligned ledger-style text.
//
// Parsing is zero-copy: fields are slices of the input buffer and are only
// copied when they contain escaped quotes. The buffer must not be modified
// while any [Field], [Record] or [Table] derived from it is in use.
//
// # Quick Start
//
// Convert a buffer in one call:
//
//	out, err := csvledger.Run([]byte("item,price\npen,1.5\n"), &csvledger.Config{
//	    NumericNames: []string{"price"},
//	})
//	// out:
//	// item | price
//	// pen  |  1.50
//
// # Parsing
//
// [Parse] validates quoting over the whole buffer, reads the header and
// returns a [Table] that yields data records lazily:
//
//	t, err := csvledger.Parse(buf, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for rec, err := range t.Records() {
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(rec.Value(0))
//	}
//
// # Formatting
//
// [Compile] builds a [Layout] for a header. Auto-width columns grow with
// [Layout.Measure]; [Layout.Format] renders one record per line. [Convert]
// runs the whole pipeline into a [Sink].
//
// # Accounts
//
// [Settle] reads type,client,tx,amount transactions and writes one
// statement line per client account.
//
// # Error Handling
//
// Errors are returned as specific types, each matching a sentinel with
// errors.Is:
//   - [MalformedQuoteError]: [ErrMalformedQuote]
//   - [ColumnCountMismatchError]: [ErrColumnCountMismatch]
//   - [InvalidNumericFieldError]: [ErrInvalidNumericField]
//   - [ConfigError]: [ErrInvalidConfig]
//   - [TransactionError]: [ErrInvalidTransaction]
//
// # Thread Safety
//
// A [Table] is not safe for concurrent use. A [Layout] may be shared by
// readers once measuring is done.
package csvledger
