package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestPlainPrinterLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPlainPrinter(&buf)

	p.Step("downloading %s", "tool.tar.gz")
	p.Ok("verified")
	p.Warn("skipping %s", "extraction")
	p.Error("verification failed")
	p.Plain("sha256 = %s", "abc")

	want := []string{
		"==> downloading tool.tar.gz",
		"ok: verified",
		"warn: skipping extraction",
		"error: verification failed",
		"sha256 = abc",
	}
	got := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")

	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(got), len(want), buf.String())
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPrinterBufferHasNoColor(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Ok("done")
	if strings.Contains(buf.String(), "\033[") {
		t.Errorf("non-terminal writer should get no ANSI codes: %q", buf.String())
	}
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, false)

	log.Debug("hidden", "key", "value")
	log.Warn("shown", "tool", "curl")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug output emitted without verbose mode")
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn output missing: %q", out)
	}
	if !strings.Contains(out, "curl") {
		t.Errorf("key-value pair missing: %q", out)
	}
}

func TestLoggerVerbose(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, true)

	log.Debug("visible now")
	if !strings.Contains(buf.String(), "visible now") {
		t.Errorf("debug output missing in verbose mode: %q", buf.String())
	}
}

func TestLoggerOddKeyValues(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, true)

	log.Info("message", "key") // trailing key without value
	if !strings.Contains(buf.String(), "message") {
		t.Errorf("message missing: %q", buf.String())
	}
}
