package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/kolkov/csvledger"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRunStdin(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"defaults", "a,b\n1,2\n", nil, "a | b\n1 | 2\n"},
		{"dash argument", "a\nx\n", []string{"-"}, "a\nx\n"},
		{"numeric by name", "item,price\npen,1.5\n", []string{"-n", "price", "--decimals", "1"}, "item | price\npen  |   1.5\n"},
		{"numeric by index", "item,price\npen,1.5\n", []string{"-n", "1", "-w=-1,-1"}, "item | price\npen | 1.50\n"},
		{"tab delimiter", "a\tb\n1\t2\n", []string{"-d", "tab", "-D", ","}, "a,b\n1,2\n"},
		{"totals", "k,v\na,1\nb,2\n", []string{"-n", "v", "--totals", "--no-header"}, "a     | 1.00\nb     | 2.00\ntotal | 3.00\n"},
		{"accounts", "type,client,tx,amount\ndeposit,1,1,1.5\n", []string{"--accounts", "-D", ", ", "-w=-1,-1,-1,-1,-1"},
			"client, available, held, total, locked\n1, 1.5000, 0.0000, 1.5000, false\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, tt.stdin, tt.args...)
			if err != nil {
				t.Fatalf("execute error = %v", err)
			}
			if out != tt.want {
				t.Errorf("output =\n%q\nwant\n%q", out, tt.want)
			}
		})
	}
}

func TestRunFileOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.csv")
	outPath := filepath.Join(dir, "out.txt")
	if err := os.WriteFile(in, []byte("a,b\n1,2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := execute(t, "", "-o", outPath, in)
	if err != nil {
		t.Fatalf("execute error = %v", err)
	}
	if stdout != "" {
		t.Errorf("stdout = %q", stdout)
	}
	got, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "a | b\n1 | 2\n" {
		t.Errorf("file = %q", got)
	}
}

func TestRunFileOutputAbort(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "out.txt")

	_, _, err := execute(t, "a,b\n1,\"2\n", "-o", outPath)
	if !errors.Is(err, csvledger.ErrMalformedQuote) {
		t.Fatalf("error = %v, want ErrMalformedQuote", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("directory not empty after failure: %v", entries)
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"bad delimiter", []string{"-d", "::"}, nil},
		{"missing file", []string{filepath.Join(t.TempDir(), "none.csv")}, os.ErrNotExist},
		{"bad decimals", []string{"--decimals", "-3"}, csvledger.ErrInvalidConfig},
		{"unknown numeric", []string{"-n", "nope"}, csvledger.ErrInvalidConfig},
		{"too many args", []string{"a", "b"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, "a,b\n1,2\n", tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRunConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.yaml")
	doc := "numeric_names: [v]\ndecimals: 3\ntotals: true\n"
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	out, _, err := execute(t, "k,v\na,1\n", "-c", path, "--decimals", "0", "-w=-1,-1")
	if err != nil {
		t.Fatalf("execute error = %v", err)
	}
	if want := "k | v\na | 1\ntotal | 1\n"; out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestBuildConfigNumeric(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"-n", "0,price,2", "--no-header"}); err != nil {
		t.Fatal(err)
	}
	var opts options
	opts.numeric = []string{"0", "price", "2"}
	opts.noHeader = true
	cfg, err := buildConfig(cmd, &opts)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(cfg.NumericColumns, []int{0, 2}) || !reflect.DeepEqual(cfg.NumericNames, []string{"price"}) {
		t.Errorf("numeric = %v %v", cfg.NumericColumns, cfg.NumericNames)
	}
	if cfg.Header == nil || *cfg.Header {
		t.Error("header should be off")
	}
	if cfg.Decimals != nil || cfg.DelimiterIn != "" {
		t.Error("unset flags should not override config")
	}
}

func TestVerboseLogging(t *testing.T) {
	_, stderr, err := execute(t, "a\n1\n", "-v")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr, "run=run_") {
		t.Errorf("stderr lacks run id: %q", stderr)
	}

	_, stderr, _ = execute(t, "a\n1\n")
	if stderr != "" {
		t.Errorf("quiet run logged %q", stderr)
	}
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "", "--version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, version) {
		t.Errorf("version output = %q", out)
	}
}

func TestDelimiter(t *testing.T) {
	for in, want := range map[string]string{"tab": "\t", `\t`: "\t", ";": ";"} {
		if got, err := delimiter(in); err != nil || got != want {
			t.Errorf("delimiter(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := delimiter(""); err == nil {
		t.Error("expected error for empty delimiter")
	}
}
