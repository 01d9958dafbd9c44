package observability

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"DEBUG", slog.LevelDebug},
		{"Warn", slog.LevelWarn},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestInitLoggerSetsDefault(t *testing.T) {
	logger := InitLogger(LogConfig{Level: "info", Format: "text"})

	if logger.Handler() != slog.Default().Handler() {
		t.Error("InitLogger did not set the default logger")
	}
}

func TestInitLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "risk.log")

	logger := InitLogger(LogConfig{Level: "warn", Format: "json", File: path})
	logger.Info("suppressed")
	logger.Warn("prediction side effect failed", "kind", "publish")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 record below warn filtered out, got %d: %q", len(lines), data)
	}

	var record map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatalf("record is not JSON: %v", err)
	}
	if record["msg"] != "prediction side effect failed" {
		t.Errorf("msg = %v", record["msg"])
	}
	if record["kind"] != "publish" {
		t.Errorf("kind = %v", record["kind"])
	}
}

func TestNewRotatingFileDefaults(t *testing.T) {
	w := newRotatingFile(LogConfig{File: "risk.log"})
	if w.MaxSize != 100 || w.MaxBackups != 3 || w.MaxAge != 28 {
		t.Errorf("unexpected defaults: size=%d backups=%d age=%d", w.MaxSize, w.MaxBackups, w.MaxAge)
	}

	w = newRotatingFile(LogConfig{File: "risk.log", MaxSizeMB: 10, MaxBackups: 1, MaxAgeDays: 7})
	if w.MaxSize != 10 || w.MaxBackups != 1 || w.MaxAge != 7 {
		t.Errorf("overrides not applied: size=%d backups=%d age=%d", w.MaxSize, w.MaxBackups, w.MaxAge)
	}
}
