package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/semigo-ml/semigo/pkg/errors"
)

// TestLoggerInterface tests the Logger interface implementation
func TestLoggerInterface(t *testing.T) {
	testLogger, buffer := NewTestLogger(LevelDebug)

	// Test Debug logging
	testLogger.Debug("debug message", "key1", "value1", "number", 42)

	// Test Info logging
	testLogger.Info("info message", "operation", "augment")

	// Test Warn logging
	testLogger.Warn("warning message", "warning_code", "TEST_WARNING")

	// Test Error logging
	testErr := fmt.Errorf("test error")
	testLogger.Error("error message", "error", testErr)

	// Verify output was captured
	output := buffer.String()
	if output == "" {
		t.Fatal("Expected log output, got empty string")
	}

	// Verify all log levels were captured
	for _, msg := range []string{"debug message", "info message", "warning message", "error message"} {
		if !testLogger.ContainsMessage(msg) {
			t.Errorf("%q not found in output", msg)
		}
	}

	// Verify structured fields
	if !testLogger.ContainsField("key1", "value1") {
		t.Error("Expected field key1=value1 not found")
	}

	if !testLogger.ContainsField("number", 42.0) { // JSON unmarshaling converts numbers to float64
		t.Error("Expected field number=42 not found")
	}
}

// TestLoggerWith tests the With method for context-aware logging
func TestLoggerWith(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelDebug)

	// Create contextual logger
	contextLogger := testLogger.With(
		ModelNameKey, "PseudoLabeler",
		ComponentKey, "semisupervised",
	)

	contextLogger.Info("augmentation started",
		PoolSizeKey, 2000,
		LabeledSizeKey, 1000,
	)

	tl, ok := contextLogger.(*TestLogger)
	if !ok {
		t.Fatalf("With() returned %T, expected *TestLogger", contextLogger)
	}

	// The contextual fields and the call-site fields should both be present
	if !tl.ContainsField(ModelNameKey, "PseudoLabeler") {
		t.Error("Expected contextual model name field")
	}
	if !tl.ContainsField(PoolSizeKey, 2000.0) {
		t.Error("Expected pool size field")
	}
}

// TestLoggerLevelFiltering tests that messages below the minimum level are dropped
func TestLoggerLevelFiltering(t *testing.T) {
	testLogger, buffer := NewTestLogger(LevelWarn)

	testLogger.Debug("should be dropped")
	testLogger.Info("should also be dropped")
	testLogger.Warn("should be kept")

	if testLogger.ContainsMessage("should be dropped") {
		t.Error("Debug message should have been filtered out")
	}
	if testLogger.ContainsMessage("should also be dropped") {
		t.Error("Info message should have been filtered out")
	}
	if !testLogger.ContainsMessage("should be kept") {
		t.Error("Warn message should have been captured")
	}

	if !testLogger.Enabled(context.Background(), LevelError) {
		t.Error("Expected LevelError to be enabled at LevelWarn minimum")
	}
	if testLogger.Enabled(context.Background(), LevelDebug) {
		t.Error("Expected LevelDebug to be disabled at LevelWarn minimum")
	}

	_ = buffer
}

// TestSetupWarnings tests that library warnings are routed through zerolog
// as structured events.
func TestSetupWarnings(t *testing.T) {
	var buf bytes.Buffer
	SetupWarnings(&buf)
	defer errors.SetZerologWarnFunc(nil)

	errors.Warn(errors.NewDegenerateSelectionWarning(2000, 2000))

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected JSON warning output, got %q: %v", buf.String(), err)
	}

	if entry["type"] != "DegenerateSelectionWarning" {
		t.Errorf("Expected structured warning type, got %v", entry["type"])
	}
	if entry["selected"] != 2000.0 {
		t.Errorf("Expected selected=2000, got %v", entry["selected"])
	}
	if entry["pool_size"] != 2000.0 {
		t.Errorf("Expected pool_size=2000, got %v", entry["pool_size"])
	}
	if entry["component"] != "semigo" {
		t.Errorf("Expected component=semigo, got %v", entry["component"])
	}
}

// TestLevelString tests the human-readable form of log levels
func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(100), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}
