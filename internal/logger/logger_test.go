package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestInit_FansOutToFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var console, file bytes.Buffer
	log := Init(Options{Level: "info", Console: &console, File: &file})

	log.Debug("hidden")
	log.Info("poll complete", "goals", 4)

	if strings.Contains(console.String(), "hidden") {
		t.Fatal("debug record written at info level")
	}
	if !strings.Contains(console.String(), "poll complete") {
		t.Fatalf("console = %q, want record", console.String())
	}

	var rec map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(file.Bytes()), &rec); err != nil {
		t.Fatalf("file record not JSON: %v (%q)", err, file.String())
	}
	if rec["msg"] != "poll complete" || rec["goals"] != float64(4) {
		t.Fatalf("file record = %v", rec)
	}
}
