package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"debug":   LevelDebug,
		"":        LevelInfo,
		"INFO":    LevelInfo,
		"warning": LevelWarn,
		"error":   LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil {
			t.Errorf("%q: unexpected error %v", in, err)
		}
		if got != want {
			t.Errorf("%q: expected %d, got %d", in, want, got)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestInitText(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(Config{Level: LevelDebug, Format: "text", Output: &buf}); err != nil {
		t.Fatalf("init: %v", err)
	}
	LogStage("canonical", "filter{(1=1)}%>%map{element}")
	out := buf.String()
	if !strings.Contains(out, "stage=canonical") || !strings.Contains(out, "level=DEBUG") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestInitLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(Config{Level: LevelError, Output: &buf}); err != nil {
		t.Fatalf("init: %v", err)
	}
	Debug("hidden")
	Warn("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
	Error("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected error message, got %q", buf.String())
	}
}

func TestInitJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chainsimp.log")
	if err := Init(Config{Level: LevelWarn, Format: "json", LogFile: path}); err != nil {
		t.Fatalf("init: %v", err)
	}
	Warn("mismatch", "input", 3)
	Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var rec map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(data), &rec); err != nil {
		t.Fatalf("expected one JSON record, got %q: %v", data, err)
	}
	if rec["msg"] != "mismatch" || rec["input"] != float64(3) {
		t.Errorf("unexpected record %v", rec)
	}
}

func TestInitRejectsFormat(t *testing.T) {
	if err := Init(Config{Format: "xml"}); err == nil {
		t.Error("expected error for unknown format")
	}
}
