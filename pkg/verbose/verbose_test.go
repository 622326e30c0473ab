package verbose

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestEnableDisable tests the behavior of Enable and Disable.
//
// It verifies:
//   - Enable turns verbose logging on
//   - Disable turns verbose logging off
func TestEnableDisable(t *testing.T) {
	defer Disable()

	Enable()
	assert.True(t, IsEnabled())

	Disable()
	assert.False(t, IsEnabled())
}

// TestPrintf tests the behavior of Printf.
//
// It verifies:
//   - Prints with the [DEBUG] prefix when enabled
//   - Stays silent when disabled
func TestPrintf(t *testing.T) {
	var buf bytes.Buffer
	SetWriter(&buf)
	defer SetWriter(os.Stderr)
	defer Disable()

	Enable()
	Printf("checking %d packages", 3)
	assert.Equal(t, "[DEBUG] checking 3 packages\n", buf.String())

	buf.Reset()
	Disable()
	Printf("should not appear")
	assert.Empty(t, buf.String())
}

// TestInfo tests the behavior of Info and Infof.
//
// It verifies:
//   - Both print with the [DEBUG] prefix when enabled
func TestInfo(t *testing.T) {
	var buf bytes.Buffer
	SetWriter(&buf)
	defer SetWriter(os.Stderr)
	defer Disable()

	Enable()
	Info("plain message")
	Infof("formatted %s", "message")

	assert.Contains(t, buf.String(), "[DEBUG] plain message\n")
	assert.Contains(t, buf.String(), "[DEBUG] formatted message\n")
}

// TestCommandExec tests the behavior of CommandExec.
//
// It verifies:
//   - Logs the command and its working directory
func TestCommandExec(t *testing.T) {
	var buf bytes.Buffer
	SetWriter(&buf)
	defer SetWriter(os.Stderr)
	defer Disable()

	Enable()
	CommandExec("pacman -Qu", "/tmp")

	assert.Contains(t, buf.String(), "Executing: pacman -Qu")
	assert.Contains(t, buf.String(), "Working dir: /tmp")
}

// TestFetchResult tests the behavior of FetchResult.
//
// It verifies:
//   - Logs the source together with its candidate count
func TestFetchResult(t *testing.T) {
	var buf bytes.Buffer
	SetWriter(&buf)
	defer SetWriter(os.Stderr)
	defer Disable()

	Enable()
	FetchResult("aur", 4)

	assert.Equal(t, "[DEBUG] Source 'aur' reported 4 candidate(s)\n", buf.String())
}
