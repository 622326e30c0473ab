// Package cmdexec provides shell command execution for aurup's external
// tool probes (pacman, pacman-conf, git). Commands run through the user's
// shell so aliases and shell configuration stay available.
package cmdexec

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/ajxudir/aurup/pkg/verbose"
)

// getShell returns the user's shell and args to run a command.
//
// This function checks the SHELL environment variable first (Unix systems),
// and falls back to platform-specific defaults if not set.
//
// Returns:
//   - shell: The path to the shell executable
//   - args: The shell arguments needed to execute a command string
func getShell() (shell string, args []string) {
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh, []string{"-c"}
	}
	return getDefaultShell()
}

// ExecuteFunc is the function signature for command execution.
//
// Parameters:
//   - ctx: Context for cancellation control
//   - command: The command string to execute through the shell
//   - dir: Working directory for command execution ("" for current)
//
// Returns:
//   - []byte: Stdout produced by the command
//   - error: Any error that occurred during execution, including cancellation
type ExecuteFunc func(ctx context.Context, command string, dir string) ([]byte, error)

// Execute is the default command execution function.
//
// This variable holds the implementation used for command execution
// throughout the application. It can be replaced with a mock implementation
// for testing.
var Execute ExecuteFunc = executeCommand

// executeCommand runs a single command string through the shell.
//
// It performs the following operations:
//   - Step 1: Rejects blank command strings
//   - Step 2: Checks for prior context cancellation
//   - Step 3: Runs the command through the user's shell, capturing stdout
//     and stderr separately
//   - Step 4: On failure, wraps the error with the trimmed stderr output
//
// Parameters:
//   - ctx: Context for cancellation control
//   - command: The command string to execute
//   - dir: Working directory for command execution ("" for current)
//
// Returns:
//   - []byte: Stdout produced by the command
//   - error: Execution error annotated with stderr, or nil on success
func executeCommand(ctx context.Context, command string, dir string) ([]byte, error) {
	if strings.TrimSpace(command) == "" {
		return nil, fmt.Errorf("no command provided")
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	verbose.CommandExec(command, dir)

	shell, args := getShell()
	cmd := exec.CommandContext(ctx, shell, append(args, command)...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return stdout.Bytes(), fmt.Errorf("%s: %w", msg, err)
		}
		return stdout.Bytes(), err
	}

	return stdout.Bytes(), nil
}

// ShellEscape escapes a string for safe use in shell commands.
//
// This function wraps values in single quotes and properly escapes any
// single quotes within the value. Safe characters (alphanumeric, dash,
// underscore, etc.) are returned unquoted for readability.
//
// Parameters:
//   - s: String to escape for shell usage
//
// Returns:
//   - string: Shell-safe escaped string, either quoted or unquoted if safe
func ShellEscape(s string) string {
	if s == "" {
		return "''"
	}

	needsEscape := false
	for _, r := range s {
		if !isShellSafe(r) {
			needsEscape = true
			break
		}
	}
	if !needsEscape {
		return s
	}

	// Single quotes preserve everything literally except single quotes
	// themselves, which close the quote, escape, and reopen.
	var escaped strings.Builder
	escaped.WriteRune('\'')
	for _, r := range s {
		if r == '\'' {
			escaped.WriteString("'\\''")
		} else {
			escaped.WriteRune(r)
		}
	}
	escaped.WriteRune('\'')
	return escaped.String()
}

// isShellSafe returns true if the character is safe to use unquoted in shell.
//
// Safe characters include alphanumerics and a limited set of special
// characters (dash, underscore, dot, slash, at, colon, plus, equal) that
// don't require quoting.
//
// Parameters:
//   - r: Rune (character) to check
//
// Returns:
//   - bool: true if the rune never needs quoting
func isShellSafe(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	}
	switch r {
	case '-', '_', '.', '/', '@', ':', '+', '=':
		return true
	}
	return false
}
