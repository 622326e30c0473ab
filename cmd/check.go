package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ajxudir/aurup/pkg/alpm"
	"github.com/ajxudir/aurup/pkg/aur"
	"github.com/ajxudir/aurup/pkg/config"
	"github.com/ajxudir/aurup/pkg/devel"
	"github.com/ajxudir/aurup/pkg/errors"
	"github.com/ajxudir/aurup/pkg/upgrade"
	"github.com/ajxudir/aurup/pkg/verbose"
)

var (
	checkConfigFile string
	checkMenu       bool
	checkNoMenu     bool
	checkRepoOnly   bool
	checkAUROnly    bool
	checkDevel      bool
	checkNoColor    bool
)

// stdinReaderFunc provides the stdin reader (can be replaced in tests).
var stdinReaderFunc = func() *bufio.Reader {
	return bufio.NewReader(os.Stdin)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "List pending upgrades and pick exclusions",
	Long: `Gather pending upgrades from the repositories, the AUR, and tracked
devel packages, show them as one numbered list, and read an exclusion
selection like "1 2 3", "1-3", or a source label such as "aur".

Without the menu every candidate is kept.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd)
	},
}

// runCheck executes the upgrade check pipeline.
//
// It performs the following operations:
//   - Step 1: Loads and adjusts configuration from flags
//   - Step 2: Builds the pacman, AUR, and devel collaborators
//   - Step 3: Runs the aggregation pipeline with the exclusion menu
//   - Step 4: Prints the keep/skip outcome
//
// Parameters:
//   - cmd: The cobra command being executed
//
// Returns:
//   - error: ExitError describing the failure, or nil on success
func runCheck(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadCheckConfig()
	if err != nil {
		return err
	}

	src, err := buildSource(ctx, cfg)
	if err != nil {
		return err
	}

	opts := upgrade.Options{
		Menu:  cfg.UpgradeMenu,
		Print: true,
		Out:   cmd.OutOrStdout(),
		ReadLine: func(prompt string) (string, error) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s ", prompt)
			line, err := stdinReaderFunc().ReadString('\n')
			if err != nil && line == "" {
				return "", err
			}
			return strings.TrimRight(line, "\r\n"), nil
		},
	}
	if cfg.Color {
		opts.OldMark = colorMark(color.New(color.FgRed, color.Bold))
		opts.NewMark = colorMark(color.New(color.FgGreen, color.Bold))
	}

	result, err := upgrade.Get(ctx, src, opts)
	if err != nil {
		if _, ok := errors.IsConsistencyError(err); ok || upgrade.IsParseError(err) {
			return errors.NewExitError(errors.ExitConfigError, err)
		}
		return errors.NewExitError(errors.ExitFailure, err)
	}

	out := cmd.OutOrStdout()
	if result == nil {
		fmt.Fprintln(out, " there is nothing to do")
		return nil
	}

	printOutcome(out, result)
	return nil
}

// loadCheckConfig loads configuration and applies flag overrides.
//
// Flags narrow the configured behavior: --repo-only and --aur-only pick a
// mode, --devel enables probing, --no-menu and --no-color switch the
// interactive niceties off.
//
// Returns:
//   - *config.Config: The effective configuration
//   - error: ExitError with the configuration exit code on failure
func loadCheckConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(checkConfigFile, "")
	if err != nil {
		return nil, errors.NewExitError(errors.ExitConfigError, err)
	}

	if checkRepoOnly && checkAUROnly {
		return nil, errors.NewExitErrorf(errors.ExitConfigError,
			"--repo-only and --aur-only are mutually exclusive")
	}
	if checkRepoOnly {
		cfg.Mode = config.ModeRepo
	}
	if checkAUROnly {
		cfg.Mode = config.ModeAUR
	}
	if checkDevel {
		cfg.Devel = true
	}
	if checkMenu && checkNoMenu {
		return nil, errors.NewExitErrorf(errors.ExitConfigError,
			"--menu and --no-menu are mutually exclusive")
	}
	if checkMenu {
		cfg.UpgradeMenu = true
	}
	if checkNoMenu {
		cfg.UpgradeMenu = false
	}
	if checkNoColor {
		cfg.Color = false
	}
	return cfg, nil
}

// buildSource assembles the pipeline collaborators from the configuration.
//
// It performs the following operations:
//   - Step 1: Creates the pacman database view and wires repo staging,
//     version lookup, and database ordering
//   - Step 2: Wires the AUR resolver over the foreign package list when
//     the AUR source is enabled
//   - Step 3: Loads the devel state file and wires the commit prober when
//     devel probing is enabled
//
// Parameters:
//   - ctx: Context for cancellation
//   - cfg: The effective configuration
//
// Returns:
//   - upgrade.Source: The wired collaborators
//   - error: ExitError on devel state load failure
func buildSource(ctx context.Context, cfg *config.Config) (upgrade.Source, error) {
	pacman := alpm.NewPacman(cfg.WorkingDir)

	src := upgrade.Source{
		LocalVersion: func(name string) (string, error) {
			return pacman.LocalVersion(ctx, name)
		},
		DBIndex: dbIndexFunc(ctx, cfg, pacman),
	}

	if cfg.RepoEnabled() {
		src.Repo = pacman.Staged
	}

	if cfg.AUREnabled() {
		client := aur.NewClient(cfg.AURURL)
		src.AUR = func(ctx context.Context) (aur.Updates, error) {
			foreign, err := pacman.Foreign(ctx)
			if err != nil {
				return aur.Updates{}, err
			}
			return aur.Resolve(ctx, client, foreign, cfg.Ignored)
		}
	}

	if cfg.DevelEnabled() {
		state, err := devel.LoadState(cfg.DevelFile)
		if err != nil {
			return upgrade.Source{}, errors.NewExitErrorf(errors.ExitConfigError,
				"failed to load devel state: %v", err)
		}
		prober := &devel.Prober{State: state, WorkingDir: cfg.WorkingDir}
		src.Devel = prober.Probe
	}

	return src, nil
}

// dbIndexFunc returns the database ordering function.
//
// When the configuration lists databases explicitly that order wins;
// otherwise the order is read from pacman-conf once, on first use.
//
// Parameters:
//   - ctx: Context for cancellation
//   - cfg: The effective configuration
//   - pacman: The database view used for the pacman-conf fallback
//
// Returns:
//   - func(string) int: Database name to priority position
func dbIndexFunc(ctx context.Context, cfg *config.Config, pacman *alpm.Pacman) func(string) int {
	if len(cfg.DBs) > 0 {
		return cfg.DBIndex
	}

	var dbs []string
	var loaded bool
	return func(name string) int {
		if !loaded {
			loaded = true
			repos, err := pacman.Repos(ctx)
			if err != nil {
				verbose.Infof("Falling back to lexical repo order: %v", err)
			} else {
				dbs = repos
			}
		}
		for i, db := range dbs {
			if db == name {
				return i
			}
		}
		return len(dbs)
	}
}

// printOutcome reports the keep/skip partition of the check.
//
// Parameters:
//   - out: Destination writer
//   - result: The partition
func printOutcome(out io.Writer, result *upgrade.Upgrades) {
	keep := len(result.RepoKeep) + len(result.AURKeep)
	skip := len(result.RepoSkip) + len(result.AURSkip)
	fmt.Fprintf(out, ":: %d package(s) to upgrade, %d excluded\n", keep, skip)

	if len(result.RepoKeep) > 0 {
		fmt.Fprintf(out, "repo: %s\n", strings.Join(result.RepoKeep, " "))
	}
	if len(result.AURKeep) > 0 {
		fmt.Fprintf(out, "aur:  %s\n", strings.Join(result.AURKeep, " "))
	}
	for _, name := range result.RepoSkip {
		verbose.Infof("Excluded repo package: %s", name)
	}
	for _, name := range result.AURSkip {
		verbose.Infof("Excluded AUR package: %s", name)
	}
}

// colorMark adapts a color to the highlighter shape.
//
// Parameters:
//   - c: The color to apply
//
// Returns:
//   - upgrade.Highlighter: Function wrapping a span in the color
func colorMark(c *color.Color) upgrade.Highlighter {
	sprint := c.SprintFunc()
	return func(s string) string {
		return sprint(s)
	}
}

func init() {
	checkCmd.Flags().StringVarP(&checkConfigFile, "config", "c", "", "Path to config file")
	checkCmd.Flags().BoolVar(&checkMenu, "menu", false, "Show the exclusion menu even when disabled in config")
	checkCmd.Flags().BoolVar(&checkNoMenu, "no-menu", false, "Keep every candidate without prompting")
	checkCmd.Flags().BoolVar(&checkRepoOnly, "repo-only", false, "Only consult the binary repositories")
	checkCmd.Flags().BoolVar(&checkAUROnly, "aur-only", false, "Only consult the AUR")
	checkCmd.Flags().BoolVar(&checkDevel, "devel", false, "Also probe VCS-tracked packages for new commits")
	checkCmd.Flags().BoolVar(&checkNoColor, "no-color", false, "Disable highlighted version diffs")
}
