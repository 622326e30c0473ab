// Package verbose provides debug logging for the upgrade pipeline.
package verbose

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	enabled bool
	writer  io.Writer = os.Stderr
)

// Enable turns on verbose logging and allows debug messages to be printed.
//
// It performs the following operations:
//   - Acquires a write lock to ensure thread-safe modification
//   - Sets the enabled flag to true
//   - Releases the write lock
func Enable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = true
}

// Disable turns off verbose logging and prevents debug messages from being printed.
//
// It performs the following operations:
//   - Acquires a write lock to ensure thread-safe modification
//   - Sets the enabled flag to false
//   - Releases the write lock
func Disable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = false
}

// IsEnabled returns whether verbose logging is currently enabled.
//
// Returns:
//   - bool: true if verbose logging is enabled, false otherwise
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// SetWriter sets the output writer for verbose messages.
//
// Parameters:
//   - w: The io.Writer to use for output; if nil, the writer remains unchanged
func SetWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w != nil {
		writer = w
	}
}

// getWriter returns the current writer with proper locking for internal use.
//
// Returns:
//   - io.Writer: The currently configured output writer
func getWriter() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return writer
}

// Printf prints a formatted verbose message if enabled.
//
// It performs the following operations:
//   - Checks if verbose logging is enabled
//   - Formats and prints the message with [DEBUG] prefix to the configured writer
//   - Does nothing if verbose logging is disabled
//
// Parameters:
//   - format: Printf-style format string
//   - args: Variadic arguments to format into the string
func Printf(format string, args ...any) {
	if IsEnabled() {
		_, _ = fmt.Fprintf(getWriter(), "[DEBUG] "+format+"\n", args...)
	}
}

// Info prints an informational verbose message if enabled.
//
// Parameters:
//   - msg: The message string to print
func Info(msg string) {
	if IsEnabled() {
		_, _ = fmt.Fprintf(getWriter(), "[DEBUG] %s\n", msg)
	}
}

// Infof prints a formatted informational verbose message if enabled.
//
// Parameters:
//   - format: Printf-style format string
//   - args: Variadic arguments to format into the string
func Infof(format string, args ...any) {
	if IsEnabled() {
		_, _ = fmt.Fprintf(getWriter(), "[DEBUG] "+format+"\n", args...)
	}
}

// CommandExec logs command execution details if enabled.
//
// It performs the following operations:
//   - Checks if verbose logging is enabled
//   - Prints the command being executed
//   - Prints the working directory where the command will run
//   - Does nothing if verbose logging is disabled
//
// Parameters:
//   - cmd: The command string being executed
//   - workDir: The working directory path for command execution
func CommandExec(cmd, workDir string) {
	if IsEnabled() {
		w := getWriter()
		_, _ = fmt.Fprintf(w, "[DEBUG] Executing: %s\n", cmd)
		_, _ = fmt.Fprintf(w, "        Working dir: %s\n", workDir)
	}
}

// FetchResult logs the outcome of a candidate fetch if enabled.
//
// It performs the following operations:
//   - Checks if verbose logging is enabled
//   - Prints the source name together with the candidate count
//   - Does nothing if verbose logging is disabled
//
// Parameters:
//   - source: The upgrade source ("repo", "aur", "devel")
//   - count: Number of candidates the source reported
func FetchResult(source string, count int) {
	if IsEnabled() {
		_, _ = fmt.Fprintf(getWriter(), "[DEBUG] Source '%s' reported %d candidate(s)\n", source, count)
	}
}
