// ABOUTME: Tests for the file-backed debug logger
// ABOUTME: Write path, disabled mode, and oversized-log truncation

package debuglog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogWritesToFile(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir); err != nil {
		t.Fatal(err)
	}
	Log("analyzing %s", "meal.jpg")
	Error("upload", errors.New("connection reset"))
	Close()

	data, err := os.ReadFile(filepath.Join(dir, "debug.log"))
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.Contains(out, "analyzing meal.jpg") {
		t.Errorf("log line missing:\n%s", out)
	}
	if !strings.Contains(out, "ERROR [upload]: connection reset") {
		t.Errorf("error line missing:\n%s", out)
	}
}

func TestInitTruncatesOversizedLog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "debug.log")
	if err := os.WriteFile(path, make([]byte, maxLogBytes+1), 0600); err != nil {
		t.Fatal(err)
	}

	if err := Init(dir); err != nil {
		t.Fatal(err)
	}
	Log("fresh start")
	Close()

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() > 1024 {
		t.Errorf("oversized log must be truncated on init, got %d bytes", info.Size())
	}
}

func TestEmptyConfigDirDisablesLogging(t *testing.T) {
	if err := Init(""); err != nil {
		t.Fatalf("empty dir must disable, not fail: %v", err)
	}
	Log("dropped")
	Close()
}
