package upgrade

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajxudir/aurup/pkg/alpm"
	"github.com/ajxudir/aurup/pkg/aur"
	aurerrors "github.com/ajxudir/aurup/pkg/errors"
	"github.com/ajxudir/aurup/pkg/warnings"
)

func stubSource() Source {
	return Source{
		AUR: func(ctx context.Context) (aur.Updates, error) {
			return aur.Updates{Updates: []aur.Update{
				{Name: "foo", Local: "1.0", Remote: "2.0"},
			}}, nil
		},
		Devel: func(ctx context.Context) ([]string, error) {
			return []string{"bar-git"}, nil
		},
		Repo: func(ctx context.Context) ([]alpm.Candidate, error) {
			return []alpm.Candidate{
				{Name: "linux", DB: "core", Local: "6.1.1", Remote: "6.1.2"},
			}, nil
		},
		LocalVersion: func(name string) (string, error) { return "r90.abcdef-1", nil },
	}
}

// TestGet tests the behavior of Get.
//
// It verifies:
//   - Returns nil when every source is empty
//   - Keeps every candidate when the menu is disabled
//   - Devel candidates shadow their AUR counterparts
//   - Fetch failures abort with no partial result
func TestGet(t *testing.T) {
	t.Run("nothing to do returns nil", func(t *testing.T) {
		src := Source{
			AUR: func(ctx context.Context) (aur.Updates, error) {
				return aur.Updates{}, nil
			},
			Devel: func(ctx context.Context) ([]string, error) { return nil, nil },
			Repo: func(ctx context.Context) ([]alpm.Candidate, error) {
				return nil, nil
			},
		}
		result, err := Get(context.Background(), src, Options{})
		require.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("menu disabled keeps everything", func(t *testing.T) {
		result, err := Get(context.Background(), stubSource(), Options{})
		require.NoError(t, err)
		require.NotNil(t, result)

		assert.Equal(t, []string{"linux"}, result.RepoKeep)
		assert.Equal(t, []string{"foo", "bar-git"}, result.AURKeep)
		assert.Empty(t, result.RepoSkip)
		assert.Empty(t, result.AURSkip)
	})

	t.Run("devel shadows the AUR entry of the same name", func(t *testing.T) {
		src := stubSource()
		src.AUR = func(ctx context.Context) (aur.Updates, error) {
			return aur.Updates{Updates: []aur.Update{
				{Name: "bar-git", Local: "r90.abcdef-1", Remote: "r91.fedcba-1"},
				{Name: "foo", Local: "1.0", Remote: "2.0"},
			}}, nil
		}

		result, err := Get(context.Background(), src, Options{})
		require.NoError(t, err)
		assert.Equal(t, []string{"foo", "bar-git"}, result.AURKeep)
	})

	t.Run("nil fetchers disable their sources", func(t *testing.T) {
		src := stubSource()
		src.AUR = nil
		src.Devel = nil

		result, err := Get(context.Background(), src, Options{})
		require.NoError(t, err)
		assert.Equal(t, []string{"linux"}, result.RepoKeep)
		assert.Empty(t, result.AURKeep)
	})

	t.Run("aur failure aborts", func(t *testing.T) {
		src := stubSource()
		src.AUR = func(ctx context.Context) (aur.Updates, error) {
			return aur.Updates{}, errors.New("rpc unreachable")
		}

		result, err := Get(context.Background(), src, Options{})
		require.Error(t, err)
		assert.Nil(t, result)
		assert.Contains(t, err.Error(), "rpc unreachable")
	})

	t.Run("devel failure aborts", func(t *testing.T) {
		src := stubSource()
		src.Devel = func(ctx context.Context) ([]string, error) {
			return nil, errors.New("ls-remote timed out")
		}

		result, err := Get(context.Background(), src, Options{})
		require.Error(t, err)
		assert.Nil(t, result)
		assert.Contains(t, err.Error(), "ls-remote timed out")
	})

	t.Run("repo failure aborts", func(t *testing.T) {
		src := stubSource()
		src.Repo = func(ctx context.Context) ([]alpm.Candidate, error) {
			return nil, errors.New("database locked")
		}

		result, err := Get(context.Background(), src, Options{})
		require.Error(t, err)
		assert.Nil(t, result)
	})

	t.Run("missing devel package is a consistency error", func(t *testing.T) {
		src := stubSource()
		src.LocalVersion = func(name string) (string, error) {
			return "", errors.New("no such package")
		}

		_, err := Get(context.Background(), src, Options{})
		require.Error(t, err)
		_, ok := aurerrors.IsConsistencyError(err)
		assert.True(t, ok)
	})
}

// TestGetMenu tests the behavior of Get with the menu enabled.
//
// It verifies:
//   - Renders the table and prompts before partitioning
//   - Applies the parsed exclusion to the partition
//   - Blank input keeps every candidate
//   - Malformed input aborts with a parse error
func TestGetMenu(t *testing.T) {
	menuOptions := func(out *bytes.Buffer, input string) Options {
		return Options{
			Menu: true,
			Out:  out,
			ReadLine: func(prompt string) (string, error) {
				_, _ = out.WriteString(prompt + "\n")
				return input, nil
			},
		}
	}

	t.Run("exclusion applies to the partition", func(t *testing.T) {
		var out bytes.Buffer
		// devel bar-git: 1, aur foo: 2, repo linux: 3
		result, err := Get(context.Background(), stubSource(), menuOptions(&out, "2"))
		require.NoError(t, err)

		assert.Equal(t, []string{"linux"}, result.RepoKeep)
		assert.Equal(t, []string{"bar-git"}, result.AURKeep)
		assert.Equal(t, []string{"foo"}, result.AURSkip)
		assert.Contains(t, out.String(), "Packages to exclude (eg: 1 2 3, 1-3):")
		assert.Contains(t, out.String(), "core/linux")
		assert.Contains(t, out.String(), "devel/bar-git")
	})

	t.Run("blank input keeps everything", func(t *testing.T) {
		var out bytes.Buffer
		result, err := Get(context.Background(), stubSource(), menuOptions(&out, ""))
		require.NoError(t, err)

		assert.Equal(t, 3, result.Total())
		assert.Empty(t, result.RepoSkip)
		assert.Empty(t, result.AURSkip)
	})

	t.Run("malformed input aborts", func(t *testing.T) {
		var out bytes.Buffer
		result, err := Get(context.Background(), stubSource(), menuOptions(&out, "1 garbage! 2"))
		require.Error(t, err)
		assert.Nil(t, result)
		assert.Contains(t, err.Error(), `"garbage!"`)
	})

	t.Run("read failure aborts", func(t *testing.T) {
		opts := Options{
			Menu: true,
			Out:  &bytes.Buffer{},
			ReadLine: func(prompt string) (string, error) {
				return "", errors.New("stdin closed")
			},
		}
		_, err := Get(context.Background(), stubSource(), opts)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "stdin closed")
	})

	t.Run("menu without a line source aborts", func(t *testing.T) {
		opts := Options{Menu: true, Out: &bytes.Buffer{}}
		_, err := Get(context.Background(), stubSource(), opts)
		require.Error(t, err)
	})
}

// TestGetPrint tests the behavior of Get with action lines enabled.
//
// It verifies:
//   - Announces the AUR and devel lookups on the output writer
//   - Ignored AUR entries surface on the warning writer only
func TestGetPrint(t *testing.T) {
	t.Run("announces lookups", func(t *testing.T) {
		var out bytes.Buffer
		_, err := Get(context.Background(), stubSource(), Options{Print: true, Out: &out})
		require.NoError(t, err)

		assert.Contains(t, out.String(), ":: Looking for AUR upgrades")
		assert.Contains(t, out.String(), ":: Looking for devel upgrades")
	})

	t.Run("action lines complete before the fetches start", func(t *testing.T) {
		// Both fetch goroutines observe the writer; every write to it must
		// have happened before either goroutine was spawned.
		var out bytes.Buffer
		src := stubSource()

		var aurSaw, develSaw string
		src.AUR = func(ctx context.Context) (aur.Updates, error) {
			aurSaw = out.String()
			return aur.Updates{}, nil
		}
		src.Devel = func(ctx context.Context) ([]string, error) {
			develSaw = out.String()
			return nil, nil
		}

		_, err := Get(context.Background(), src, Options{Print: true, Out: &out})
		require.NoError(t, err)

		for _, saw := range []string{aurSaw, develSaw} {
			assert.Contains(t, saw, ":: Looking for AUR upgrades")
			assert.Contains(t, saw, ":: Looking for devel upgrades")
		}
	})

	t.Run("disabled sources are not announced", func(t *testing.T) {
		var out bytes.Buffer
		src := stubSource()
		src.Devel = nil

		_, err := Get(context.Background(), src, Options{Print: true, Out: &out})
		require.NoError(t, err)

		assert.Contains(t, out.String(), ":: Looking for AUR upgrades")
		assert.NotContains(t, out.String(), ":: Looking for devel upgrades")
	})

	t.Run("ignored entries warn and disappear", func(t *testing.T) {
		var warned bytes.Buffer
		restore := warnings.SetWarningWriter(&warned)
		defer restore()

		src := stubSource()
		src.AUR = func(ctx context.Context) (aur.Updates, error) {
			return aur.Updates{
				Updates: []aur.Update{{Name: "foo", Local: "1.0", Remote: "2.0"}},
				Ignored: []aur.Update{{Name: "held", Local: "1.0", Remote: "1.1"}},
			}, nil
		}

		var out bytes.Buffer
		result, err := Get(context.Background(), src, Options{Out: &out})
		require.NoError(t, err)

		assert.Equal(t, "warning: held: ignoring package upgrade (1.0 => 1.1)\n", warned.String())
		assert.NotContains(t, result.AURKeep, "held")
		assert.NotContains(t, strings.Join(result.AURSkip, " "), "held")
	})
}
