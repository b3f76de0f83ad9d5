// Copyright 2025 The C2PA Testfile Maker Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

// TestParseLogLevel tests parsing of log level strings.
func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"silent", LevelSilent},
		{"off", LevelSilent},
		{"  info  ", LevelInfo},
		{"bogus", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLogLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

// TestParseLogFormat tests parsing of log format strings.
func TestParseLogFormat(t *testing.T) {
	if got := ParseLogFormat("json"); got != FormatJSON {
		t.Errorf("ParseLogFormat(json) = %v, want FormatJSON", got)
	}
	if got := ParseLogFormat("text"); got != FormatText {
		t.Errorf("ParseLogFormat(text) = %v, want FormatText", got)
	}
	if got := ParseLogFormat("bogus"); got != FormatText {
		t.Errorf("ParseLogFormat(bogus) = %v, want FormatText", got)
	}
}

// TestNewLogger tests that NewLogger honors the options.
func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerOptions{
		Level:  LevelWarn,
		Format: FormatJSON,
		Output: &buf,
	})

	if logger.GetLevel() != LevelWarn {
		t.Errorf("GetLevel() = %v, want %v", logger.GetLevel(), LevelWarn)
	}
	if _, ok := logger.formatter.(*JSONFormatter); !ok {
		t.Errorf("Expected JSONFormatter, got %T", logger.formatter)
	}
}

// TestLoggerLevelFiltering tests that messages below the level are dropped.
func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerOptions{Level: LevelWarn, Output: &buf})

	logger.Debug("dropped")
	logger.Info("dropped too")
	logger.Warn("kept")
	logger.Error("also kept")

	output := buf.String()
	if strings.Contains(output, "dropped") {
		t.Errorf("Messages below the level should be dropped, got %q", output)
	}
	if !strings.Contains(output, "kept") || !strings.Contains(output, "also kept") {
		t.Errorf("Messages at or above the level should be kept, got %q", output)
	}
}

// TestLoggerSilent tests that the silent level drops everything.
func TestLoggerSilent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerOptions{Level: LevelSilent, Output: &buf})

	logger.Error("should not appear")
	if buf.Len() != 0 {
		t.Errorf("Silent logger wrote output: %q", buf.String())
	}
}

// TestLoggerWithFields tests that fields appear in output and the original
// logger is unchanged.
func TestLoggerWithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerOptions{Level: LevelInfo, Output: &buf})

	child := logger.WithField("asset", "input.png")
	child.Info("signing")

	if !strings.Contains(buf.String(), "asset=input.png") {
		t.Errorf("Expected field in output, got %q", buf.String())
	}

	buf.Reset()
	logger.Info("plain")
	if strings.Contains(buf.String(), "asset=") {
		t.Errorf("Parent logger should not carry the child's fields, got %q", buf.String())
	}
}

// TestJSONFormatter tests JSON log output structure.
func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerOptions{Level: LevelInfo, Format: FormatJSON, Output: &buf})

	logger.WithField("algorithm", "es256").Info("signed %d assets", 3)

	var entry struct {
		Level   string                 `json:"level"`
		Message string                 `json:"message"`
		Fields  map[string]interface{} `json:"fields"`
	}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Output is not valid JSON: %v (%q)", err, buf.String())
	}
	if entry.Level != "info" {
		t.Errorf("Level = %q, want info", entry.Level)
	}
	if entry.Message != "signed 3 assets" {
		t.Errorf("Message = %q", entry.Message)
	}
	if entry.Fields["algorithm"] != "es256" {
		t.Errorf("Fields = %v", entry.Fields)
	}
}

// TestTextFormatter tests text output with level prefix and timestamp.
func TestTextFormatter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerOptions{
		Level:     LevelInfo,
		Formatter: &TextFormatter{ShowLevel: true},
		Output:    &buf,
	})

	logger.Warn("watch out")
	if !strings.Contains(buf.String(), "[WARN] watch out") {
		t.Errorf("Unexpected text output: %q", buf.String())
	}
}

// TestEnsureLogger tests the nil fallback.
func TestEnsureLogger(t *testing.T) {
	if EnsureLogger(nil) == nil {
		t.Fatal("EnsureLogger(nil) returned nil")
	}

	var buf bytes.Buffer
	custom := NewLogger(LoggerOptions{Level: LevelDebug, Output: &buf})
	if EnsureLogger(custom) != custom {
		t.Error("EnsureLogger should return the given logger unchanged")
	}
}
