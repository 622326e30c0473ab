// Package cmd implements the command-line interface for aurup.
// It provides the check command that aggregates pending upgrades from the
// repositories, the AUR, and devel packages, plus version information.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ajxudir/aurup/pkg/errors"
	"github.com/ajxudir/aurup/pkg/verbose"
)

var exitFunc = os.Exit
var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "aurup",
	Short: "Review pending repo, AUR, and devel package upgrades",
	Long: `Aggregate pending package upgrades from the configured repositories,
the AUR, and VCS-tracked devel packages into one numbered list, and
exclude entries interactively before handing off to the upgrade.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verboseFlag {
			verbose.Enable()
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// Execute runs the root command and exits with appropriate code:
//   - 0: Success
//   - 2: Fetch, lookup, or I/O failure
//   - 3: Configuration or selection input error
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		code := errors.GetExitCode(err)
		verbose.Infof("Exit code %d: %v", code, err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		exitFunc(code)
	}
}

// ExecuteTest runs the root command for testing (returns error instead of exiting).
//
// Unlike Execute(), this function returns the error directly without calling
// os.Exit, making it suitable for use in test suites.
//
// Returns:
//   - error: Command execution error, or nil on success
func ExecuteTest() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Enable verbose debug output")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(checkCmd)
}
