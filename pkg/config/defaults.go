package config

import (
	"os"
	"path/filepath"
)

// DefaultAURURL is the canonical AUR RPC endpoint.
const DefaultAURURL = "https://aur.archlinux.org"

// DefaultConfigFile is the config file name looked up in the working directory.
const DefaultConfigFile = ".aurup.yml"

// DefaultConfig returns the built-in configuration used when no config
// file is found.
//
// It performs the following operations:
//   - Step 1: Enables all three sources with the interactive menu
//   - Step 2: Points the AUR client at the canonical RPC endpoint
//   - Step 3: Places the devel state file under the user config directory
//
// Returns:
//   - *Config: A fully populated default configuration
func DefaultConfig() *Config {
	return &Config{
		Mode:            ModeAny,
		Devel:           false,
		UpgradeMenu:     true,
		CombinedUpgrade: true,
		AURURL:          DefaultAURURL,
		Color:           true,
		DevelFile:       defaultDevelFile(),
	}
}

// defaultDevelFile returns the default path of the devel state file.
//
// Falls back to a working-directory-relative name when the user config
// directory cannot be determined.
//
// Returns:
//   - string: Path to the devel state file
func defaultDevelFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".aurup-devel.json"
	}
	return filepath.Join(dir, "aurup", "devel.json")
}
