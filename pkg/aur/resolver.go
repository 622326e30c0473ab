package aur

import (
	"context"
	"sort"

	"github.com/ajxudir/aurup/pkg/utils"
)

// Update is one AUR upgrade candidate.
//
// Fields:
//   - Name: Package name
//   - Local: Installed version
//   - Remote: Version the AUR offers
type Update struct {
	Name   string
	Local  string
	Remote string
}

// Updates is the resolver result: candidates to offer and candidates
// operator policy excludes.
//
// Ignored entries are reported as warnings by the caller and never enter
// the aggregate.
//
// Fields:
//   - Updates: Upgrades to offer
//   - Ignored: Upgrades suppressed by the ignore list
type Updates struct {
	Updates []Update
	Ignored []Update
}

// Resolve compares installed foreign packages against the AUR and splits
// the newer ones into offered and ignored updates.
//
// It performs the following operations:
//   - Step 1: Fetches registry records for every foreign package
//   - Step 2: Keeps packages whose registry version is newer than the
//     installed one per pacman version comparison
//   - Step 3: Routes entries on the ignore list into Ignored
//   - Step 4: Sorts both lists by name for stable output
//
// Parameters:
//   - ctx: Context for cancellation
//   - client: The RPC client
//   - foreign: Installed foreign packages mapped to their versions
//   - ignored: Predicate for the operator ignore list; nil ignores nothing
//
// Returns:
//   - Updates: The split candidate lists
//   - error: RPC failure
func Resolve(ctx context.Context, client *Client, foreign map[string]string, ignored func(string) bool) (Updates, error) {
	names := make([]string, 0, len(foreign))
	for name := range foreign {
		names = append(names, name)
	}
	sort.Strings(names)

	pkgs, err := client.Info(ctx, names)
	if err != nil {
		return Updates{}, err
	}

	var result Updates
	for _, pkg := range pkgs {
		local, ok := foreign[pkg.Name]
		if !ok {
			continue
		}
		if utils.VerCmp(pkg.Version, local) <= 0 {
			continue
		}
		update := Update{Name: pkg.Name, Local: local, Remote: pkg.Version}
		if ignored != nil && ignored(pkg.Name) {
			result.Ignored = append(result.Ignored, update)
		} else {
			result.Updates = append(result.Updates, update)
		}
	}

	sort.Slice(result.Updates, func(i, j int) bool { return result.Updates[i].Name < result.Updates[j].Name })
	sort.Slice(result.Ignored, func(i, j int) bool { return result.Ignored[i].Name < result.Ignored[j].Name })
	return result, nil
}
