package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoggerLevels(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := New(slog.LevelDebug, FormatJSON, buf)

	tests := []struct {
		level string
		log   func(msg string, args ...any)
	}{
		{"DEBUG", logger.Debug},
		{"INFO", logger.Info},
		{"WARN", logger.Warn},
		{"ERROR", logger.Error},
	}

	for _, test := range tests {
		buf.Reset()
		test.log("test message", "key", "value")

		var logEntry map[string]any
		if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
			t.Fatalf("Failed to parse log output: %v", err)
		}
		if logEntry["level"] != test.level || logEntry["msg"] != "test message" || logEntry["key"] != "value" {
			t.Errorf("%s message not logged correctly: %v", test.level, logEntry)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := New(slog.LevelDebug, FormatJSON, buf)

	logger.SetLevel(slog.LevelWarn)
	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	output := buf.String()
	lines := strings.Split(output, "\n")
	// Subtract 1 because the last line is empty
	if len(lines)-1 != 2 {
		t.Errorf("Expected 2 messages, got %d", len(lines)-1)
	}
	if !strings.Contains(output, "warn message") || !strings.Contains(output, "error message") {
		t.Error("Messages at or above warn level should be logged")
	}
}

func TestTextFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := New(slog.LevelInfo, FormatText, buf)

	logger.Info("test message", "key", "value")
	output := buf.String()
	if !strings.Contains(output, "test message") || !strings.Contains(output, "key=value") {
		t.Error("Text format not logged correctly")
	}
}

func TestSetFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := New(slog.LevelInfo, FormatText, buf)

	logger.SetFormat(FormatJSON)
	logger.Info("test message", "key", "value")

	var logEntry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("Output after SetFormat should be JSON: %v", err)
	}
	if logEntry["msg"] != "test message" {
		t.Errorf("Expected msg 'test message', got %v", logEntry["msg"])
	}
}

func TestAddOutput(t *testing.T) {
	buf1 := &bytes.Buffer{}
	buf2 := &bytes.Buffer{}
	logger := New(slog.LevelInfo, FormatJSON, buf1)

	logger.Info("first message")
	logger.AddOutput(buf2)
	logger.Info("second message")

	if !strings.Contains(buf1.String(), "first message") || !strings.Contains(buf1.String(), "second message") {
		t.Error("Original output should receive all messages")
	}
	if strings.Contains(buf2.String(), "first message") {
		t.Error("Added output should not see messages logged before AddOutput")
	}
	if !strings.Contains(buf2.String(), "second message") {
		t.Error("Added output should receive subsequent messages")
	}
}

func TestMultipleOutputs(t *testing.T) {
	buf1 := &bytes.Buffer{}
	buf2 := &bytes.Buffer{}
	logger := New(slog.LevelInfo, FormatJSON, buf1, buf2)

	logger.Info("test message", "key", "value")

	if buf1.String() != buf2.String() {
		t.Error("Multiple outputs should have the same content")
	}

	var logEntry map[string]any
	if err := json.Unmarshal(buf1.Bytes(), &logEntry); err != nil {
		t.Fatalf("Failed to parse log output: %v", err)
	}
	if logEntry["msg"] != "test message" || logEntry["key"] != "value" {
		t.Error("Message not logged correctly to multiple outputs")
	}
}

func TestLogRotation(t *testing.T) {
	tempDir := t.TempDir()
	logPath := filepath.Join(tempDir, "test.log")

	if err := Init(slog.LevelInfo, FormatJSON, logPath); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	defer defaultLogger.Close()

	defaultLogger.Info("test message 1", "key", "value1")

	newLogPath := filepath.Join(tempDir, "test2.log")
	if err := defaultLogger.Rotate(newLogPath); err != nil {
		t.Fatalf("Failed to rotate log file: %v", err)
	}

	defaultLogger.Info("test message 2", "key", "value2")

	oldContent, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read old log file: %v", err)
	}
	if !strings.Contains(string(oldContent), "test message 1") {
		t.Error("Old log file should contain first message")
	}
	if strings.Contains(string(oldContent), "test message 2") {
		t.Error("Old log file should not receive messages after rotation")
	}

	newContent, err := os.ReadFile(newLogPath)
	if err != nil {
		t.Fatalf("Failed to read new log file: %v", err)
	}
	if !strings.Contains(string(newContent), "test message 2") {
		t.Error("New log file should contain second message")
	}
}

func TestLogLevelFromString(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"WARN", slog.LevelWarn},
		{"invalid", slog.LevelInfo}, // Default level
	}

	for _, test := range tests {
		level := GetLevelFromString(test.input)
		if level != test.expected {
			t.Errorf("Expected level %v for input %s, got %v", test.expected, test.input, level)
		}
	}
}

func TestConcurrentLogging(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := New(slog.LevelDebug, FormatJSON, buf)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(id int) {
			for j := 0; j < 100; j++ {
				logger.Info("message", "id", id, "count", j)
			}
			done <- true
		}(i)
	}

	for i := 0; i < 10; i++ {
		<-done
	}

	lines := strings.Split(buf.String(), "\n")
	// Subtract 1 because the last line is empty
	if len(lines)-1 != 1000 {
		t.Errorf("Expected 1000 messages, got %d", len(lines)-1)
	}
}
