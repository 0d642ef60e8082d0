package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	defer func() {
		SetLevel(Notice)
		SetSink(os.Stdout)
	}()

	type spec struct {
		level    Level
		expDebug bool
		expInfo  bool
	}
	specs := []spec{
		{Notice, false, false},
		{Info, false, true},
		{Debug, true, true},
	}

	logger := New("log test")
	for index, s := range specs {
		var buf bytes.Buffer
		SetSink(&buf)
		SetLevel(s.level)

		logger.Debug("debug line")
		logger.Info("info line")
		logger.Notice("notice line")

		out := buf.String()
		if got := strings.Contains(out, "debug line"); got != s.expDebug {
			t.Fatalf("[spec %d] expected debug output %t; got %t", index, s.expDebug, got)
		}
		if got := strings.Contains(out, "info line"); got != s.expInfo {
			t.Fatalf("[spec %d] expected info output %t; got %t", index, s.expInfo, got)
		}
		if !strings.Contains(out, "[log test]") || !strings.Contains(out, "notice line") {
			t.Fatalf("[spec %d] expected notice output tagged with the module name; got %q", index, out)
		}
	}
}

func TestSetSinkKeepsLevel(t *testing.T) {
	defer func() {
		SetLevel(Notice)
		SetSink(os.Stdout)
	}()

	SetLevel(Debug)
	var buf bytes.Buffer
	SetSink(&buf)
	if GetLevel() != Debug {
		t.Fatalf("expected level to survive a sink change; got %d", GetLevel())
	}

	New("log test").Debug("still verbose")
	if !strings.Contains(buf.String(), "still verbose") {
		t.Fatalf("expected debug output after sink change; got %q", buf.String())
	}

	SetLevel(Level(42))
	if GetLevel() != Notice {
		t.Fatalf("expected unknown level to select notice; got %d", GetLevel())
	}
}
