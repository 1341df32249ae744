package logging

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func newPlainLogger(buf *bytes.Buffer) *ColorLogger {
	old := color.NoColor
	color.NoColor = true
	l := New(buf)
	color.NoColor = old
	return l
}

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	l := newPlainLogger(&buf)

	l.Infof("listening on %s", "127.0.0.1:4000")
	l.Errorf("boom %d", 7)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), buf.String())
	}
	if lines[0] != "info: listening on 127.0.0.1:4000" {
		t.Errorf("info line = %q", lines[0])
	}
	if lines[1] != "error: boom 7" {
		t.Errorf("error line = %q", lines[1])
	}
}

func TestErrorChainOrder(t *testing.T) {
	var buf bytes.Buffer
	l := newPlainLogger(&buf)

	inner := errors.New("connection reset")
	mid := fmt.Errorf("reading index: %w", inner)
	outer := fmt.Errorf("serving /docs: %w", mid)

	ErrorChain(l, outer)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	want := []string{
		"error: serving /docs: reading index: connection reset",
		"error: caused by: reading index: connection reset",
		"error: caused by: connection reset",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %q", len(lines), len(want), buf.String())
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}
