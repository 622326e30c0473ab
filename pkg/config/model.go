package config

import "fmt"

// Operation modes controlling which upgrade sources are consulted.
const (
	// ModeAny consults repositories, the AUR, and devel packages.
	ModeAny = "any"

	// ModeRepo consults only the configured binary repositories.
	ModeRepo = "repo"

	// ModeAUR consults only the AUR (and devel packages when enabled).
	ModeAUR = "aur"
)

// Config is the root configuration structure.
type Config struct {
	// DBs lists the sync databases in priority order. Repo upgrade
	// candidates are sorted by their database's position in this list.
	// When empty, the order is read from pacman-conf at startup.
	DBs []string `yaml:"dbs,omitempty"`

	// Mode selects the upgrade sources: "any", "repo", or "aur".
	Mode string `yaml:"mode,omitempty"`

	// Devel enables VCS-tracked package probing.
	Devel bool `yaml:"devel,omitempty"`

	// UpgradeMenu enables the interactive exclusion menu. When false,
	// every candidate is kept without prompting.
	UpgradeMenu bool `yaml:"upgrade_menu,omitempty"`

	// CombinedUpgrade includes repository candidates alongside AUR ones.
	CombinedUpgrade bool `yaml:"combined_upgrade,omitempty"`

	// AURURL is the base URL of the AUR RPC endpoint.
	AURURL string `yaml:"aur_url,omitempty"`

	// IgnorePkg lists packages whose upgrades are reported as warnings
	// and never offered.
	IgnorePkg []string `yaml:"ignore_pkg,omitempty"`

	// DevelFile is the path of the devel package state file.
	DevelFile string `yaml:"devel_file,omitempty"`

	// Color enables highlighted version diffs in the menu.
	Color bool `yaml:"color,omitempty"`

	// WorkingDir is a runtime value resolved at load time.
	// It is not persisted to YAML.
	WorkingDir string `yaml:"-"`
}

// RepoEnabled reports whether repository candidates should be gathered.
//
// Repository candidates are skipped in AUR-only mode and when combined
// upgrades are disabled.
//
// Returns:
//   - bool: true if the repo source participates in the aggregate
func (c *Config) RepoEnabled() bool {
	return c.Mode != ModeAUR && c.CombinedUpgrade
}

// AUREnabled reports whether AUR candidates should be gathered.
//
// Returns:
//   - bool: true if the AUR source participates in the aggregate
func (c *Config) AUREnabled() bool {
	return c.Mode != ModeRepo
}

// DevelEnabled reports whether devel candidates should be gathered.
//
// Devel probing piggybacks on the AUR source: repo-only mode disables it
// regardless of the devel toggle.
//
// Returns:
//   - bool: true if the devel source participates in the aggregate
func (c *Config) DevelEnabled() bool {
	return c.Devel && c.Mode != ModeRepo
}

// Ignored reports whether a package is on the operator ignore list.
//
// Parameters:
//   - name: The package name to check
//
// Returns:
//   - bool: true if upgrades for the package must be suppressed
func (c *Config) Ignored(name string) bool {
	for _, ignored := range c.IgnorePkg {
		if ignored == name {
			return true
		}
	}
	return false
}

// DBIndex returns the priority position of a sync database.
//
// Parameters:
//   - name: The database name to look up
//
// Returns:
//   - int: The zero-based position in the priority list, or len(DBs) for
//     databases that are not configured (sorting them last)
func (c *Config) DBIndex(name string) int {
	for i, db := range c.DBs {
		if db == name {
			return i
		}
	}
	return len(c.DBs)
}

// Validate checks the configuration for invalid values.
//
// It performs the following operations:
//   - Step 1: Verifies the mode is one of "any", "repo", "aur"
//   - Step 2: Verifies the AUR URL is set when the AUR source is enabled
//
// Returns:
//   - error: Description of the first invalid value, or nil when valid
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeAny, ModeRepo, ModeAUR:
	default:
		return fmt.Errorf("invalid mode %q: must be %q, %q, or %q", c.Mode, ModeAny, ModeRepo, ModeAUR)
	}
	if c.AUREnabled() && c.AURURL == "" {
		return fmt.Errorf("aur_url must be set when mode is %q", c.Mode)
	}
	return nil
}
