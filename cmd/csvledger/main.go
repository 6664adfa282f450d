// csvledger - CSV to ledger converter
//
// Reads a CSV file (or stdin) and prints it as aligned ledger lines, or,
// with --accounts, as client account statements.
package main

import (
	"fmt"
	"os"
)

// version is set by GoReleaser at build time via -ldflags.
// For development builds, it will be "dev".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "csvledger: %v\n", err)
		os.Exit(1)
	}
}
