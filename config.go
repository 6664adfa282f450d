package csvledger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kolkov/csvledger/internal/format"
	"github.com/kolkov/csvledger/internal/record"
	"github.com/kolkov/csvledger/internal/scanner"
)

// DefaultDecimals is the number of decimal places for numeric cells.
const DefaultDecimals = 2

// Config holds parsing and formatting options. The zero value is usable.
type Config struct {
	// DelimiterIn is the input field delimiter, a single byte (default: ",").
	DelimiterIn string `yaml:"delimiter_in"`

	// DelimiterOut separates cells in ledger lines (default: " | ").
	DelimiterOut string `yaml:"delimiter_out"`

	// Quote is the quote character, a single byte (default: `"`).
	// It is used both for reading and for quoting output cells.
	Quote string `yaml:"quote"`

	// TrimSpace excludes blanks around values and skips blank lines.
	TrimSpace bool `yaml:"trim_space"`

	// ColumnWidths sets per-column widths in display cells.
	// 0 sizes the column to its widest cell, a positive value is a
	// minimum width, a negative value disables padding.
	// Columns without an entry are sized automatically.
	ColumnWidths []int `yaml:"column_widths"`

	// NumericColumns lists 0-based indices of numeric columns.
	NumericColumns []int `yaml:"numeric_columns"`

	// NumericNames lists numeric columns by header name.
	NumericNames []string `yaml:"numeric_names"`

	// NumericMatch is a regular expression; columns whose header name
	// matches it are numeric.
	NumericMatch string `yaml:"numeric_match"`

	// Decimals is the number of decimal places for numeric cells.
	// If nil, DefaultDecimals is used.
	Decimals *int `yaml:"decimals"`

	// AllowEmptyNumeric renders empty numeric cells blank instead of
	// failing with InvalidNumericFieldError.
	AllowEmptyNumeric bool `yaml:"allow_empty_numeric"`

	// Totals appends a line with the sum of each numeric column.
	Totals bool `yaml:"totals"`

	// Rule writes a separator line after the header and before totals.
	Rule bool `yaml:"rule"`

	// Header controls whether the header line is written (default: true).
	Header *bool `yaml:"header"`

	// ReuseRecord reuses the field slice between records. A Record is then
	// only valid until the next call to Table.Next.
	ReuseRecord bool `yaml:"reuse_record"`

	// Logger receives debug logs from Convert and Settle.
	// If nil, logs are discarded.
	Logger *slog.Logger `yaml:"-"`
}

// applyDefaults fills in default values for unset Config fields.
func (c *Config) applyDefaults() {
	if c.DelimiterIn == "" {
		c.DelimiterIn = ","
	}
	if c.DelimiterOut == "" {
		c.DelimiterOut = format.DefaultDelimiter
	}
	if c.Quote == "" {
		c.Quote = `"`
	}
	if c.Decimals == nil {
		d := DefaultDecimals
		c.Decimals = &d
	}
	if c.Header == nil {
		on := true
		c.Header = &on
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
}

// Validate reports the first invalid option as a *ConfigError.
func (c *Config) Validate() error {
	if c.DelimiterIn != "" && !singleByte(c.DelimiterIn) {
		return &ConfigError{Field: "delimiter_in", Message: "must be a single byte other than a line break"}
	}
	if c.Quote != "" && !singleByte(c.Quote) {
		return &ConfigError{Field: "quote", Message: "must be a single byte other than a line break"}
	}
	if c.DelimiterIn != "" && c.DelimiterIn == c.Quote {
		return &ConfigError{Field: "quote", Message: "must differ from delimiter_in"}
	}
	if strings.ContainsAny(c.DelimiterOut, "\r\n") {
		return &ConfigError{Field: "delimiter_out", Message: "must not contain a line break"}
	}
	if c.Decimals != nil && (*c.Decimals < 0 || *c.Decimals > 30) {
		return &ConfigError{Field: "decimals", Message: "must be between 0 and 30"}
	}
	for _, i := range c.NumericColumns {
		if i < 0 {
			return &ConfigError{Field: "numeric_columns", Message: fmt.Sprintf("negative column index %d", i)}
		}
	}
	return nil
}

func singleByte(s string) bool {
	return len(s) == 1 && s[0] != '\n' && s[0] != '\r'
}

// prepare returns a validated copy of cfg with defaults applied.
func prepare(cfg *Config) (*Config, error) {
	var c Config
	if cfg != nil {
		c = *cfg
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.applyDefaults()
	return &c, nil
}

func (c *Config) scannerOptions() scanner.Options {
	return scanner.Options{
		Comma:     c.DelimiterIn[0],
		Quote:     c.Quote[0],
		TrimSpace: c.TrimSpace,
	}
}

func (c *Config) recordOptions() record.Options {
	return record.Options{ReuseRecord: c.ReuseRecord}
}

func (c *Config) formatOptions() format.Options {
	return format.Options{
		Delimiter:    c.DelimiterOut,
		Quote:        c.Quote[0],
		Widths:       c.ColumnWidths,
		Numeric:      c.NumericColumns,
		NumericNames: c.NumericNames,
		NumericMatch: c.NumericMatch,
		Decimals:     *c.Decimals,
		AllowEmpty:   c.AllowEmptyNumeric,
		NoHeader:     !*c.Header,
	}
}

// LoadConfig reads a YAML config file. Unknown keys are an error.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeConfig(f)
}

// DecodeConfig reads a YAML config from r. An empty document yields an
// empty Config.
func DecodeConfig(r io.Reader) (*Config, error) {
	var c Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, &ConfigError{Message: err.Error()}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}
