package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func newTestLogger(verbose, debug bool) (Logger, *bytes.Buffer, *bytes.Buffer) {
	color.NoColor = true
	var out, errOut bytes.Buffer
	return Logger{Verbose: verbose, Debug: debug, Out: &out, Err: &errOut}, &out, &errOut
}

func TestQuietLoggerOnlyPrintsCriticalWarnings(t *testing.T) {
	l, out, errOut := newTestLogger(false, false)

	l.Infof("info %d", 1)
	l.Debugf("debug %d", 2)
	l.Warnf("warn %d", 3)
	l.Errorf("error %d", 4)
	l.WarnfAlways("always %d", 5)

	if out.Len() != 0 {
		t.Errorf("Expected no stdout, got %q", out.String())
	}
	if got := errOut.String(); got != "[warn] always 5\n" {
		t.Errorf("Expected only the critical warning, got %q", got)
	}
}

func TestVerboseLogger(t *testing.T) {
	l, out, errOut := newTestLogger(true, false)

	l.Infof("embedding into %s", "cover.png")
	l.Debugf("hidden")
	l.Warnf("careful")

	if !strings.Contains(out.String(), "[info] embedding into cover.png") {
		t.Errorf("Expected info line, got %q", out.String())
	}
	if strings.Contains(out.String(), "hidden") {
		t.Errorf("Debug output should be suppressed in verbose mode, got %q", out.String())
	}
	if !strings.Contains(errOut.String(), "[warn] careful") {
		t.Errorf("Expected warning on stderr, got %q", errOut.String())
	}
}

func TestDebugLoggerShowsEverything(t *testing.T) {
	l, out, _ := newTestLogger(false, true)

	l.Infof("info")
	l.Debugf("debug")

	if !strings.Contains(out.String(), "[info] info") || !strings.Contains(out.String(), "[debug] debug") {
		t.Errorf("Expected info and debug lines, got %q", out.String())
	}
}

func TestErrorfAndReturnWraps(t *testing.T) {
	l, _, errOut := newTestLogger(true, false)
	sentinel := errors.New("sentinel")

	err := l.ErrorfAndReturn("failed to read carrier: %w", sentinel)

	if !errors.Is(err, sentinel) {
		t.Errorf("Expected returned error to wrap sentinel, got %v", err)
	}
	if !strings.Contains(errOut.String(), "[error] failed to read carrier: sentinel") {
		t.Errorf("Expected logged error, got %q", errOut.String())
	}
}
