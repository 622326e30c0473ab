package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Build information, injected at link time.
var (
	// Version is the release version.
	Version = "dev"

	// BuildTime is the build timestamp.
	BuildTime = "unknown"

	// GitCommit is the source revision.
	GitCommit = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		runVersion(cmd)
	},
}

// runVersion prints the build information.
//
// Parameters:
//   - cmd: The cobra command, used for output routing
func runVersion(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "aurup %s\n", Version)
	fmt.Fprintf(out, "  commit:  %s\n", GitCommit)
	fmt.Fprintf(out, "  built:   %s\n", BuildTime)
	fmt.Fprintf(out, "  target:  %s\n", getBuildTarget())
}

// getBuildTarget returns the os/arch pair of the running binary.
//
// Returns:
//   - string: The build target, e.g. "linux/amd64"
func getBuildTarget() string {
	return runtime.GOOS + "/" + runtime.GOARCH
}
