package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestStructuredLogger(t *testing.T) {
	t.Run("TextFormat", func(t *testing.T) {
		buf := &bytes.Buffer{}
		l := NewStdLogger()
		l.SetLevel(LogLevelInfo)
		l.SetOutput(buf)
		l.SetFormat(LogFormatText)
		l.Info("converted %d tables", 12)

		output := buf.String()
		if !strings.Contains(output, "INFO") || !strings.Contains(output, "converted 12 tables") {
			t.Errorf("Unexpected text output: %s", output)
		}
	})

	t.Run("JSONFormat", func(t *testing.T) {
		buf := &bytes.Buffer{}
		l := NewStdLogger()
		l.SetLevel(LogLevelInfo)
		l.SetOutput(buf)
		l.SetFormat(LogFormatJSON)
		l.Info("converted %d tables", 12)

		var data map[string]any
		if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
			t.Fatalf("Failed to unmarshal JSON output: %v", err)
		}

		if data["level"] != "INFO" || data["msg"] != "converted 12 tables" {
			t.Errorf("Unexpected JSON output: %v", data)
		}
		if _, ok := data["time"]; !ok {
			t.Errorf("Missing time field in JSON output")
		}
	})

	t.Run("WithFields", func(t *testing.T) {
		buf := &bytes.Buffer{}
		l := NewStdLogger()
		l.SetLevel(LogLevelInfo)
		l.SetOutput(buf)
		l.SetFormat(LogFormatJSON)
		l2 := l.WithFields(map[string]any{"table": "authors"})
		l2.Info("introspected")

		var data map[string]any
		if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
			t.Fatalf("Failed to unmarshal JSON output: %v", err)
		}

		if data["table"] != "authors" || data["msg"] != "introspected" {
			t.Errorf("Unexpected JSON output with fields: %v", data)
		}
	})

	t.Run("SQLJSON", func(t *testing.T) {
		buf := &bytes.Buffer{}
		l := NewStdLogger()
		l.SetLevel(LogLevelInfo)
		l.SetOutput(buf)
		l.SetFormat(LogFormatJSON)
		l.SQL("PRAGMA table_info(\"authors\")", time.Millisecond*10)

		var data map[string]any
		if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
			t.Fatalf("Failed to unmarshal JSON output: %v", err)
		}

		if data["level"] != "SQL" || data["sql"] != "PRAGMA table_info(\"authors\")" {
			t.Errorf("Unexpected SQL JSON output: %v", data)
		}
		if data["duration"] == "" {
			t.Errorf("Missing duration in SQL JSON output")
		}
	})

	t.Run("LevelFiltering", func(t *testing.T) {
		buf := &bytes.Buffer{}
		l := NewStdLogger()
		l.SetLevel(LogLevelWarn)
		l.SetOutput(buf)
		l.SetFormat(LogFormatText)

		l.Info("schema snapshot cached")
		l.Warn("ignoring relationship")

		output := buf.String()
		if strings.Contains(output, "INFO") {
			t.Errorf("Output should not contain INFO at warn level: %s", output)
		}
		if !strings.Contains(output, "WARN") || !strings.Contains(output, "ignoring relationship") {
			t.Errorf("Output missing WARN: %s", output)
		}
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"silent", LogLevelSilent},
		{"off", LogLevelSilent},
		{"error", LogLevelError},
		{"WARN", LogLevelWarn},
		{"warning", LogLevelWarn},
		{"info", LogLevelInfo},
		{"bogus", LogLevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
