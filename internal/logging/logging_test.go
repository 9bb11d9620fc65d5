package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNewWritesJSONLines(t *testing.T) {
	dir := t.TempDir()

	logger := New(Options{Dir: dir})
	logger.Info("run started", zap.String("plan", "android-bot-env"))
	logger.Sync()

	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "run started") {
		t.Errorf("log = %q, want message", out)
	}
	if !strings.Contains(out, `"plan":"android-bot-env"`) {
		t.Errorf("log = %q, want structured field", out)
	}
}

func TestNewDefaultLevelDropsDebug(t *testing.T) {
	dir := t.TempDir()

	logger := New(Options{Dir: dir})
	logger.Debug("verbose detail")
	logger.Info("kept")
	logger.Sync()

	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if strings.Contains(string(data), "verbose detail") {
		t.Error("debug entry written at the default level")
	}
	if !strings.Contains(string(data), "kept") {
		t.Error("info entry missing")
	}
}

func TestNewDebugLevel(t *testing.T) {
	dir := t.TempDir()

	logger := New(Options{Dir: dir, Debug: true})
	logger.Debug("verbose detail")
	logger.Sync()

	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "verbose detail") {
		t.Error("debug entry missing with Debug enabled")
	}
}

func TestNopDiscards(t *testing.T) {
	logger := Nop()
	logger.Info("anything")
	if err := logger.Sync(); err != nil {
		t.Errorf("Sync: %v", err)
	}
}
