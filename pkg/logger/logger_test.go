package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogLevels(t *testing.T) {
	opts := Options{
		Level:    "debug",
		Output:   "console",
		Colorize: false,
	}

	if err := Init(opts); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	Debug("debug message", "key", "value")
	Info("info message", "key", "value")
	Warn("warn message", "key", "value")
	Error("error message", "key", "value")
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	if err := Init(Options{Level: "verbose"}); err == nil {
		t.Fatal("Init should reject an unknown level")
	}
	if err := Init(Options{Level: "info", Output: "file"}); err == nil {
		t.Fatal("Init should require a file path for file output")
	}
}

func TestSetLevel(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "level.log")

	if err := Init(Options{Level: "info", Output: "file", FilePath: logPath}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if err := SetLevel("error"); err != nil {
		t.Fatalf("SetLevel failed: %v", err)
	}

	Info("should not appear")
	Error("should appear")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if strings.Contains(string(content), "should not appear") {
		t.Errorf("info message written after raising level to error")
	}
	if !strings.Contains(string(content), "should appear") {
		t.Errorf("error message missing from log")
	}
}

func TestJSONOutputMasksCredentials(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.json")

	opts := Options{
		Level:    "info",
		Output:   "file",
		Format:   "json",
		FilePath: logPath,
	}

	if err := Init(opts); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	Info("tmdb request", "endpoint", "/movie/550", "api_key", "0123456789abcdef")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	if !strings.Contains(string(content), `"msg":"tmdb request"`) {
		t.Fatalf("JSON log does not contain expected message")
	}
	if !strings.Contains(string(content), `"endpoint":"/movie/550"`) {
		t.Fatalf("JSON log does not contain expected key-value pair")
	}
	if strings.Contains(string(content), "0123456789abcdef") {
		t.Fatalf("JSON log leaked the api key")
	}
}

func TestBothOutput(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "nested", "test.log")

	opts := Options{
		Level:    "info",
		Output:   "both",
		Format:   "json",
		FilePath: logPath,
		Colorize: true,
	}

	if err := Init(opts); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	Info("test message", "key", "value")

	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		t.Fatalf("Log file was not created")
	}
}

func TestInitDefault(t *testing.T) {
	mu.Lock()
	defaultLogger = nil
	mu.Unlock()

	Info("test default init")

	if defaultLogger == nil {
		t.Fatal("Default logger was not initialized")
	}
}

func BenchmarkLogger(b *testing.B) {
	opts := Options{
		Level:    "info",
		Output:   "console",
		Colorize: false,
	}

	if err := Init(opts); err != nil {
		b.Fatalf("Init failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Info("benchmark message", "key", "value", "count", i)
	}
}
