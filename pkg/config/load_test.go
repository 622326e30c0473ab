package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadConfig tests the behavior of LoadConfig.
//
// It verifies:
//   - Missing config files fall back to the built-in defaults
//   - A local .aurup.yml in the working directory is picked up
//   - Explicit config paths win over the local file
//   - Partial files merge over the defaults
//   - Invalid values are rejected
func TestLoadConfig(t *testing.T) {
	t.Run("defaults when nothing found", func(t *testing.T) {
		cfg, err := LoadConfig("", t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, ModeAny, cfg.Mode)
		assert.True(t, cfg.UpgradeMenu)
		assert.True(t, cfg.CombinedUpgrade)
		assert.Equal(t, DefaultAURURL, cfg.AURURL)
	})

	t.Run("local config file", func(t *testing.T) {
		dir := t.TempDir()
		content := "mode: repo\nupgrade_menu: false\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte(content), 0o644))

		cfg, err := LoadConfig("", dir)
		require.NoError(t, err)

		assert.Equal(t, ModeRepo, cfg.Mode)
		assert.False(t, cfg.UpgradeMenu)
		assert.Equal(t, dir, cfg.WorkingDir)
	})

	t.Run("explicit config path", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "custom.yml")
		content := "mode: aur\ndevel: true\nignore_pkg:\n  - held\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		cfg, err := LoadConfig(path, dir)
		require.NoError(t, err)

		assert.Equal(t, ModeAUR, cfg.Mode)
		assert.True(t, cfg.Devel)
		assert.Equal(t, []string{"held"}, cfg.IgnorePkg)
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "custom.yml")
		require.NoError(t, os.WriteFile(path, []byte("devel: true\n"), 0o644))

		cfg, err := LoadConfig(path, dir)
		require.NoError(t, err)

		assert.True(t, cfg.Devel)
		assert.Equal(t, ModeAny, cfg.Mode)
		assert.Equal(t, DefaultAURURL, cfg.AURURL)
	})

	t.Run("invalid mode rejected", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "custom.yml")
		require.NoError(t, os.WriteFile(path, []byte("mode: bogus\n"), 0o644))

		_, err := LoadConfig(path, dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bogus")
	})

	t.Run("invalid yaml rejected", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "custom.yml")
		require.NoError(t, os.WriteFile(path, []byte("mode: [unclosed"), 0o644))

		_, err := LoadConfig(path, dir)
		require.Error(t, err)
	})

	t.Run("missing explicit file rejected", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yml"), "")
		require.Error(t, err)
	})
}

// TestConfigSourceToggles tests the behavior of the source toggle helpers.
//
// It verifies:
//   - Mode and the combined/devel flags gate each source correctly
func TestConfigSourceToggles(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		repo  bool
		aur   bool
		devel bool
	}{
		{
			name:  "any with everything on",
			cfg:   Config{Mode: ModeAny, CombinedUpgrade: true, Devel: true},
			repo:  true,
			aur:   true,
			devel: true,
		},
		{
			name:  "repo only",
			cfg:   Config{Mode: ModeRepo, CombinedUpgrade: true, Devel: true},
			repo:  true,
			aur:   false,
			devel: false,
		},
		{
			name:  "aur only",
			cfg:   Config{Mode: ModeAUR, CombinedUpgrade: true, Devel: true},
			repo:  false,
			aur:   true,
			devel: true,
		},
		{
			name:  "combined disabled drops repo",
			cfg:   Config{Mode: ModeAny, CombinedUpgrade: false},
			repo:  false,
			aur:   true,
			devel: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.repo, tt.cfg.RepoEnabled())
			assert.Equal(t, tt.aur, tt.cfg.AUREnabled())
			assert.Equal(t, tt.devel, tt.cfg.DevelEnabled())
		})
	}
}

// TestConfigIgnored tests the behavior of Config.Ignored.
//
// It verifies:
//   - Exact-name matching against the ignore list
func TestConfigIgnored(t *testing.T) {
	cfg := Config{IgnorePkg: []string{"held", "pinned"}}

	assert.True(t, cfg.Ignored("held"))
	assert.True(t, cfg.Ignored("pinned"))
	assert.False(t, cfg.Ignored("free"))
	assert.False(t, cfg.Ignored("hel"))
}

// TestConfigDBIndex tests the behavior of Config.DBIndex.
//
// It verifies:
//   - Configured databases return their priority position
//   - Unknown databases sort last
func TestConfigDBIndex(t *testing.T) {
	cfg := Config{DBs: []string{"core", "extra"}}

	assert.Equal(t, 0, cfg.DBIndex("core"))
	assert.Equal(t, 1, cfg.DBIndex("extra"))
	assert.Equal(t, 2, cfg.DBIndex("community"))
}

// TestConfigValidate tests the behavior of Config.Validate.
//
// It verifies:
//   - Valid modes pass
//   - An empty AUR URL fails unless the AUR source is disabled
func TestConfigValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cfg := Config{Mode: ModeAny, AURURL: DefaultAURURL}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("missing aur url", func(t *testing.T) {
		cfg := Config{Mode: ModeAny}
		assert.Error(t, cfg.Validate())
	})

	t.Run("repo mode needs no aur url", func(t *testing.T) {
		cfg := Config{Mode: ModeRepo}
		assert.NoError(t, cfg.Validate())
	})
}
