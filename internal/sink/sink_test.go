package sink

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestConsole(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(&out)
	c.WriteLine("a | b")
	c.WriteLine("")
	if out.Len() != 0 {
		t.Error("expected buffered output before Flush")
	}
	if err := c.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if got := out.String(); got != "a | b\n\n" {
		t.Errorf("got %q", got)
	}
}

func TestBuffer(t *testing.T) {
	var b Buffer
	b.WriteLine("one")
	b.WriteLine("two")
	if b.String() != "one\ntwo\n" {
		t.Errorf("got %q", b.String())
	}
}

func TestFileCommit(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "out.txt")

	f, err := Create(target)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	f.WriteLine("first")
	f.WriteLine("second")

	if _, err := os.Stat(target); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("target exists before Commit: %v", err)
	}
	if err := f.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	content, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(content) != "first\nsecond\n" {
		t.Errorf("got %q", content)
	}
	if err := f.WriteLine("late"); !errors.Is(err, ErrClosed) {
		t.Errorf("WriteLine after Commit = %v, want ErrClosed", err)
	}
	if err := f.Abort(); err != nil {
		t.Errorf("Abort after Commit = %v", err)
	}
	assertOnly(t, dir, "out.txt")
}

func TestFileAbort(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "out.txt")
	if err := os.WriteFile(target, []byte("keep\n"), 0644); err != nil {
		t.Fatal(err)
	}

	f, err := Create(target)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	f.WriteLine("partial")
	if err := f.Abort(); err != nil {
		t.Fatalf("Abort failed: %v", err)
	}

	content, _ := os.ReadFile(target)
	if string(content) != "keep\n" {
		t.Errorf("target changed: %q", content)
	}
	if err := f.Commit(); !errors.Is(err, ErrClosed) {
		t.Errorf("Commit after Abort = %v, want ErrClosed", err)
	}
	assertOnly(t, dir, "out.txt")
}

func TestFileMissingDir(t *testing.T) {
	if _, err := Create(filepath.Join(t.TempDir(), "missing", "out.txt")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func assertOnly(t *testing.T, dir string, names ...string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, e := range entries {
		got = append(got, e.Name())
	}
	if len(got) != len(names) {
		t.Fatalf("directory holds %v, want %v", got, names)
	}
	for i := range names {
		if got[i] != names[i] {
			t.Errorf("directory holds %v, want %v", got, names)
		}
	}
}
