package csvledger

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestConfigDefaults(t *testing.T) {
	c, err := prepare(nil)
	if err != nil {
		t.Fatal(err)
	}
	if c.DelimiterIn != "," || c.DelimiterOut != " | " || c.Quote != `"` {
		t.Errorf("delimiters = %q %q %q", c.DelimiterIn, c.DelimiterOut, c.Quote)
	}
	if *c.Decimals != DefaultDecimals || !*c.Header || c.Logger == nil {
		t.Errorf("defaults = %+v", c)
	}
}

func TestPrepareCopies(t *testing.T) {
	cfg := &Config{}
	if _, err := prepare(cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.DelimiterIn != "" || cfg.Decimals != nil || cfg.Logger != nil {
		t.Errorf("caller config modified: %+v", cfg)
	}
}

func TestConfigValidate(t *testing.T) {
	neg := -1
	big := 31
	tests := []struct {
		name  string
		cfg   Config
		field string
	}{
		{"multi-byte delimiter", Config{DelimiterIn: "::"}, "delimiter_in"},
		{"newline delimiter", Config{DelimiterIn: "\n"}, "delimiter_in"},
		{"empty-ish quote", Config{Quote: "''"}, "quote"},
		{"quote equals delimiter", Config{DelimiterIn: ";", Quote: ";"}, "quote"},
		{"newline out delimiter", Config{DelimiterOut: "\r\n"}, "delimiter_out"},
		{"negative decimals", Config{Decimals: &neg}, "decimals"},
		{"too many decimals", Config{Decimals: &big}, "decimals"},
		{"negative column", Config{NumericColumns: []int{0, -2}}, "numeric_columns"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("Validate() = %v, want *ConfigError", err)
			}
			if ce.Field != tt.field {
				t.Errorf("Field = %q, want %q", ce.Field, tt.field)
			}
		})
	}

	ok := Config{DelimiterIn: "\t", Quote: "'", DelimiterOut: ";"}
	if err := ok.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestDecodeConfig(t *testing.T) {
	doc := `
delimiter_in: ";"
delimiter_out: " ; "
quote: "'"
trim_space: true
column_widths: [0, 10, -1]
numeric_columns: [2]
numeric_names: [price]
numeric_match: "(?i)amount"
decimals: 4
allow_empty_numeric: true
totals: true
rule: true
header: false
reuse_record: true
`
	c, err := DecodeConfig(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("DecodeConfig() error = %v", err)
	}
	decimals, header := 4, false
	want := &Config{
		DelimiterIn:       ";",
		DelimiterOut:      " ; ",
		Quote:             "'",
		TrimSpace:         true,
		ColumnWidths:      []int{0, 10, -1},
		NumericColumns:    []int{2},
		NumericNames:      []string{"price"},
		NumericMatch:      "(?i)amount",
		Decimals:          &decimals,
		AllowEmptyNumeric: true,
		Totals:            true,
		Rule:              true,
		Header:            &header,
		ReuseRecord:       true,
	}
	if !reflect.DeepEqual(c, want) {
		t.Errorf("DecodeConfig() = %+v\nwant %+v", c, want)
	}
}

func TestDecodeConfigErrors(t *testing.T) {
	for _, doc := range []string{
		"delimiter: ','\n",
		"decimals: many\n",
		"delimiter_in: '::'\n",
	} {
		if _, err := DecodeConfig(strings.NewReader(doc)); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("DecodeConfig(%q) error = %v, want ErrInvalidConfig", doc, err)
		}
	}
}

func TestDecodeConfigEmpty(t *testing.T) {
	c, err := DecodeConfig(strings.NewReader(""))
	if err != nil {
		t.Fatalf("DecodeConfig() error = %v", err)
	}
	if !reflect.DeepEqual(c, &Config{}) {
		t.Errorf("DecodeConfig() = %+v", c)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.yaml")
	if err := os.WriteFile(path, []byte("totals: true\nnumeric_names: [qty]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if !c.Totals || !reflect.DeepEqual(c.NumericNames, []string{"qty"}) {
		t.Errorf("LoadConfig() = %+v", c)
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadConfig(missing) error = %v", err)
	}
}
