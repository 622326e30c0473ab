package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

// TestRunVersion tests the behavior of runVersion.
//
// It verifies:
//   - Prints the version, commit, build time, and target
func TestRunVersion(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	runVersion(cmd)

	out := buf.String()
	assert.Contains(t, out, "aurup "+Version)
	assert.Contains(t, out, "commit:")
	assert.Contains(t, out, "built:")
	assert.Contains(t, out, getBuildTarget())
}

// TestGetBuildTarget tests the behavior of getBuildTarget.
//
// It verifies:
//   - Returns an os/arch pair
func TestGetBuildTarget(t *testing.T) {
	assert.Contains(t, getBuildTarget(), "/")
}
