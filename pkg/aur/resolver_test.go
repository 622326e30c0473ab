package aur

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolverServer(t *testing.T, versions map[string]string) *Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"type":"multiinfo","results":[`)
		first := true
		for _, name := range r.URL.Query()["arg[]"] {
			version, ok := versions[name]
			if !ok {
				continue
			}
			if !first {
				fmt.Fprint(w, ",")
			}
			first = false
			fmt.Fprintf(w, `{"Name":%q,"Version":%q}`, name, version)
		}
		fmt.Fprint(w, `]}`)
	}))
	t.Cleanup(server.Close)
	return NewClient(server.URL)
}

// TestResolve tests the behavior of Resolve.
//
// It verifies:
//   - Keeps only packages the registry offers a newer version of
//   - Packages unknown to the registry are silently skipped
//   - The ignore predicate routes entries into Ignored
//   - Both result lists come back sorted by name
func TestResolve(t *testing.T) {
	t.Run("keeps newer versions only", func(t *testing.T) {
		client := resolverServer(t, map[string]string{
			"newer": "2.0-1",
			"same":  "1.0-1",
			"older": "0.9-1",
		})
		foreign := map[string]string{
			"newer":   "1.0-1",
			"same":    "1.0-1",
			"older":   "1.0-1",
			"unknown": "1.0-1",
		}

		result, err := Resolve(context.Background(), client, foreign, nil)
		require.NoError(t, err)

		require.Len(t, result.Updates, 1)
		assert.Equal(t, Update{Name: "newer", Local: "1.0-1", Remote: "2.0-1"}, result.Updates[0])
		assert.Empty(t, result.Ignored)
	})

	t.Run("routes ignored packages", func(t *testing.T) {
		client := resolverServer(t, map[string]string{
			"foo":  "2.0-1",
			"held": "2.0-1",
		})
		foreign := map[string]string{"foo": "1.0-1", "held": "1.0-1"}
		ignored := func(name string) bool { return name == "held" }

		result, err := Resolve(context.Background(), client, foreign, ignored)
		require.NoError(t, err)

		require.Len(t, result.Updates, 1)
		assert.Equal(t, "foo", result.Updates[0].Name)
		require.Len(t, result.Ignored, 1)
		assert.Equal(t, "held", result.Ignored[0].Name)
	})

	t.Run("results sorted by name", func(t *testing.T) {
		client := resolverServer(t, map[string]string{
			"zeta":  "2.0-1",
			"alpha": "2.0-1",
			"mid":   "2.0-1",
		})
		foreign := map[string]string{"zeta": "1.0-1", "alpha": "1.0-1", "mid": "1.0-1"}

		result, err := Resolve(context.Background(), client, foreign, nil)
		require.NoError(t, err)

		require.Len(t, result.Updates, 3)
		assert.Equal(t, "alpha", result.Updates[0].Name)
		assert.Equal(t, "mid", result.Updates[1].Name)
		assert.Equal(t, "zeta", result.Updates[2].Name)
	})

	t.Run("no foreign packages", func(t *testing.T) {
		client := resolverServer(t, nil)
		result, err := Resolve(context.Background(), client, nil, nil)
		require.NoError(t, err)
		assert.Empty(t, result.Updates)
		assert.Empty(t, result.Ignored)
	})
}
