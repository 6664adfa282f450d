package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"go.jetify.com/typeid/v2"

	"github.com/kolkov/csvledger"
	"github.com/kolkov/csvledger/internal/sink"
)

type options struct {
	output       string
	configPath   string
	delimiter    string
	outDelimiter string
	widths       []int
	numeric      []string
	numericMatch string
	decimals     int
	totals       bool
	rule         bool
	noHeader     bool
	trim         bool
	allowEmpty   bool
	accounts     bool
	verbose      bool
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "csvledger [flags] [file|-]",
		Short: "Format CSV data as an aligned ledger",
		Long: `csvledger reads a CSV file and prints every record as one aligned
ledger line. Numeric columns are right-aligned with a fixed number of
decimal places and can be totalled.

With --accounts the input is a list of type,client,tx,amount transactions
(deposit, withdrawal, dispute, resolve, chargeback) and the output is one
statement line per client account.

Without a file argument, or with "-", input is read from stdin.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, &opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "write output to `file` instead of stdout")
	f.StringVarP(&opts.configPath, "config", "c", "", "read options from a YAML `file`")
	f.StringVarP(&opts.delimiter, "delimiter", "d", ",", "input field delimiter")
	f.StringVarP(&opts.outDelimiter, "out-delimiter", "D", " | ", "output cell delimiter")
	f.IntSliceVarP(&opts.widths, "widths", "w", nil, "column widths (0 auto, negative unpadded)")
	f.StringSliceVarP(&opts.numeric, "numeric", "n", nil, "numeric columns by 0-based index or header name")
	f.StringVar(&opts.numericMatch, "numeric-match", "", "treat columns whose name matches `regexp` as numeric")
	f.IntVar(&opts.decimals, "decimals", csvledger.DefaultDecimals, "decimal places for numeric columns")
	f.BoolVar(&opts.totals, "totals", false, "append a totals line")
	f.BoolVar(&opts.rule, "rule", false, "draw separator lines")
	f.BoolVar(&opts.noHeader, "no-header", false, "omit the header line")
	f.BoolVar(&opts.trim, "trim", false, "trim blanks around values")
	f.BoolVar(&opts.allowEmpty, "allow-empty", false, "allow empty numeric cells")
	f.BoolVar(&opts.accounts, "accounts", false, "print account statements for a transaction list")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output to stderr")
	return cmd
}

func run(cmd *cobra.Command, args []string, opts *options) error {
	cfg, err := buildConfig(cmd, opts)
	if err != nil {
		return err
	}

	runID, err := typeid.Generate("run")
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), opts.verbose).With("run", runID.String())
	cfg.Logger = logger

	input := "-"
	if len(args) == 1 {
		input = args[0]
	}
	buf, err := readInput(input, cmd.InOrStdin())
	if err != nil {
		return err
	}
	logger.Debug("input read", "source", input, "bytes", len(buf))

	if opts.output == "" {
		out := sink.NewConsole(cmd.OutOrStdout())
		err := convert(buf, out, cfg, opts.accounts)
		if ferr := out.Flush(); err == nil {
			err = ferr
		}
		return err
	}

	out, err := sink.Create(opts.output)
	if err != nil {
		return err
	}
	if err := convert(buf, out, cfg, opts.accounts); err != nil {
		if aerr := out.Abort(); aerr != nil {
			logger.Warn("removing temporary output", "err", aerr)
		}
		return err
	}
	if err := out.Commit(); err != nil {
		return err
	}
	logger.Debug("output written", "path", out.Path())
	return nil
}

func convert(buf []byte, s csvledger.Sink, cfg *csvledger.Config, accounts bool) error {
	if accounts {
		return csvledger.Settle(buf, s, cfg)
	}
	sum, err := csvledger.Convert(buf, s, cfg)
	if err == nil {
		cfg.Logger.Debug("done", "rows", sum.Rows, "lines", sum.Lines)
	}
	return err
}

// buildConfig loads the config file, if any, and applies flags the user set.
func buildConfig(cmd *cobra.Command, opts *options) (*csvledger.Config, error) {
	cfg := &csvledger.Config{}
	if opts.configPath != "" {
		loaded, err := csvledger.LoadConfig(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	f := cmd.Flags()
	if f.Changed("delimiter") {
		d, err := delimiter(opts.delimiter)
		if err != nil {
			return nil, err
		}
		cfg.DelimiterIn = d
	}
	if f.Changed("out-delimiter") {
		cfg.DelimiterOut = opts.outDelimiter
	}
	if f.Changed("widths") {
		cfg.ColumnWidths = opts.widths
	}
	if f.Changed("numeric") {
		cfg.NumericColumns, cfg.NumericNames = nil, nil
		for _, n := range opts.numeric {
			if i, err := strconv.Atoi(n); err == nil {
				cfg.NumericColumns = append(cfg.NumericColumns, i)
			} else {
				cfg.NumericNames = append(cfg.NumericNames, n)
			}
		}
	}
	if f.Changed("numeric-match") {
		cfg.NumericMatch = opts.numericMatch
	}
	if f.Changed("decimals") {
		cfg.Decimals = &opts.decimals
	}
	if f.Changed("totals") {
		cfg.Totals = opts.totals
	}
	if f.Changed("rule") {
		cfg.Rule = opts.rule
	}
	if f.Changed("no-header") {
		header := !opts.noHeader
		cfg.Header = &header
	}
	if f.Changed("trim") {
		cfg.TrimSpace = opts.trim
	}
	if f.Changed("allow-empty") {
		cfg.AllowEmptyNumeric = opts.allowEmpty
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// delimiter accepts a literal byte or the names "tab" and `\t`.
func delimiter(s string) (string, error) {
	switch s {
	case "tab", `\t`:
		return "\t", nil
	}
	if len(s) != 1 {
		return "", fmt.Errorf("delimiter must be a single byte, got %q", s)
	}
	return s, nil
}

func readInput(name string, stdin io.Reader) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(name)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	handler := log.NewWithOptions(w, log.Options{
		Level:  level,
		Prefix: "csvledger",
	})
	return slog.New(handler)
}
