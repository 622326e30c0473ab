// Package warnings routes operator-facing warning messages to a
// configurable writer, defaulting to stderr.
package warnings

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu         sync.RWMutex
	warnWriter io.Writer = os.Stderr
)

// Warnf writes formatted warning messages to the configured warning writer.
//
// It performs the following operations:
//   - Acquires a read lock to safely access the warning writer
//   - Formats the message using the provided format string and arguments
//   - Writes the formatted message to the configured writer
//   - Releases the read lock
//
// Parameters:
//   - format: Printf-style format string for the warning message
//   - args: Variadic arguments to format into the string
func Warnf(format string, args ...any) {
	mu.RLock()
	w := warnWriter
	mu.RUnlock()
	_, _ = fmt.Fprintf(w, format, args...)
}

// Ignoredf reports an upgrade that the resolver flagged but policy excludes.
//
// The line format is fixed so scripts watching stderr can match it:
// "warning: NAME: ignoring package upgrade (OLD => NEW)".
//
// Parameters:
//   - name: The package whose upgrade is being ignored
//   - old: The locally installed version
//   - new: The version the registry offers
func Ignoredf(name, old, new string) {
	Warnf("warning: %s: ignoring package upgrade (%s => %s)\n", name, old, new)
}

// WarningWriter returns the currently configured warning writer.
//
// Returns:
//   - io.Writer: The currently configured writer for warning messages
func WarningWriter() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return warnWriter
}

// SetWarningWriter swaps the warning writer and returns a restore function.
//
// It performs the following operations:
//   - Acquires a write lock to ensure thread-safe modification
//   - Saves the previous warning writer for restoration
//   - Sets the new warning writer (defaults to os.Stderr if nil)
//   - Returns a function that restores the previous writer when called
//
// Parameters:
//   - w: The new io.Writer to use; if nil, defaults to os.Stderr
//
// Returns:
//   - func(): A restore function that sets the writer back to the previous value
func SetWarningWriter(w io.Writer) func() {
	mu.Lock()
	defer mu.Unlock()

	previous := warnWriter
	if w == nil {
		warnWriter = os.Stderr
	} else {
		warnWriter = w
	}

	return func() {
		mu.Lock()
		defer mu.Unlock()
		warnWriter = previous
	}
}
