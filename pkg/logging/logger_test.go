package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("Level.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"DEBUG", DebugLevel},
		{"debug", DebugLevel},
		{"WARNING", WarnLevel},
		{"error", ErrorLevel},
		{"invalid", InfoLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestJSONLogger_WritesValidJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	logger.Info("analysis complete", NodeCount(12), EdgeCount(30))

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if entry.Message != "analysis complete" {
		t.Errorf("Expected message 'analysis complete', got %q", entry.Message)
	}
	if entry.Level != "INFO" {
		t.Errorf("Expected level INFO, got %q", entry.Level)
	}
	if entry.Fields["nodes"].(float64) != 12 {
		t.Errorf("Expected nodes field 12, got %v", entry.Fields["nodes"])
	}
}

func TestJSONLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, WarnLevel)

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("visible")

	lines := strings.Count(buf.String(), "\n")
	if lines != 1 {
		t.Errorf("Expected 1 log line, got %d", lines)
	}
}

func TestJSONLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)
	child := logger.With(Component("engine"))

	child.Info("started")

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if entry.Fields["component"] != "engine" {
		t.Errorf("Expected component field from parent, got %v", entry.Fields)
	}
}

func TestErrorField(t *testing.T) {
	f := Error(errors.New("boom"))
	if f.Key != "error" || f.Value != "boom" {
		t.Errorf("Unexpected error field: %+v", f)
	}

	nilField := Error(nil)
	if nilField.Value != nil {
		t.Errorf("Expected nil value for nil error, got %v", nilField.Value)
	}
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	logger.Info("discarded")
	if logger.GetLevel() != InfoLevel {
		t.Errorf("Expected InfoLevel, got %v", logger.GetLevel())
	}
}
