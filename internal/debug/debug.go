// Package debug provides development logging for pomo.
//
// Logging is off unless Enable is called. In development mode the bridge
// logs every command it dispatches and every failure it swallows.
package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// EnvVar selects development mode when set to "development".
const EnvVar = "POMO_ENV"

var (
	enabled bool
	logFile *os.File
	mirror  io.Writer
	mu      sync.Mutex
	logPath string
)

// Option configures Enable.
type Option func()

// WithMirror copies every log line to w as well as the log file.
func WithMirror(w io.Writer) Option {
	return func() { mirror = w }
}

// DevMode reports whether development logging should be on: either the
// --debug flag was given or POMO_ENV is "development".
func DevMode(flag bool) bool {
	return flag || os.Getenv(EnvVar) == "development"
}

// Enable turns on debug logging to the specified file.
func Enable(path string, opts ...Option) error {
	mu.Lock()
	defer mu.Unlock()

	if enabled {
		return nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec // path comes from xdg or the caller
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}

	logFile = f
	logPath = path
	enabled = true
	for _, opt := range opts {
		opt()
	}

	// Write session header directly (can't call Log() - would deadlock)
	timestamp := time.Now().Format("15:04:05.000")
	header := fmt.Sprintf("[%s] === pomo debug session started ===\n", timestamp)
	header += fmt.Sprintf("[%s] Time: %s\n", timestamp, time.Now().Format(time.RFC3339))
	header += fmt.Sprintf("[%s] Log file: %s\n", timestamp, path)
	header += fmt.Sprintf("[%s] ===================================\n", timestamp)
	write(header)

	return nil
}

// Disable turns off debug logging and closes the file.
func Disable() {
	mu.Lock()
	defer mu.Unlock()

	if !enabled {
		return
	}

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	mirror = nil
	enabled = false
}

// IsEnabled returns whether debug logging is enabled.
func IsEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// Log writes a debug message if logging is enabled.
func Log(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled || logFile == nil {
		return
	}

	timestamp := time.Now().Format("15:04:05.000")
	msg := fmt.Sprintf(format, args...)
	write(fmt.Sprintf("[%s] %s\n", timestamp, msg))
}

// write must be called with mu held.
func write(s string) {
	_, _ = logFile.WriteString(s)
	_ = logFile.Sync() // Flush immediately for real-time viewing
	if mirror != nil {
		_, _ = io.WriteString(mirror, s)
	}
}

// LogPath returns the path to the log file.
func LogPath() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}

// Event logs a bridge event with component context.
func Event(component, eventType, details string) {
	Log("[%s] %s: %s", component, eventType, details)
}

// Error logs an error with context.
func Error(component string, err error, context string) {
	Log("[%s] ERROR: %s - %v", component, context, err)
}
