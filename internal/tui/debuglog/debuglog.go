// ABOUTME: Debug logger for the TUI that writes to a file under the config dir
// ABOUTME: Keeps diagnostics off the terminal the TUI owns

package debuglog

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// maxLogBytes caps the debug log. Diagnostics from old sessions are not
// worth unbounded disk use, so an oversized log starts over.
const maxLogBytes = 1 << 20

var (
	logFile *os.File
	mu      sync.Mutex
	enabled bool
)

// Init opens the debug log under the config directory. An empty configDir
// disables logging entirely.
func Init(configDir string) error {
	mu.Lock()
	defer mu.Unlock()

	if configDir == "" {
		enabled = false
		return nil
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		enabled = false
		return err
	}

	logPath := filepath.Join(configDir, "debug.log")
	flags := os.O_CREATE | os.O_APPEND | os.O_WRONLY
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogBytes {
		flags = os.O_CREATE | os.O_TRUNC | os.O_WRONLY
	}
	f, err := os.OpenFile(logPath, flags, 0600)
	if err != nil {
		enabled = false
		return err
	}

	logFile = f
	enabled = true
	return nil
}

// Close closes the log file
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	enabled = false
}

// Log writes a message to the debug log
func Log(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled || logFile == nil {
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(logFile, "[%s] %s\n", timestamp, msg)
}

// Error logs an error with context
func Error(context string, err error) {
	if err == nil {
		return
	}
	Log("ERROR [%s]: %v", context, err)
}

// Warn logs a warning message
func Warn(format string, args ...interface{}) {
	Log("WARN: "+format, args...)
}
