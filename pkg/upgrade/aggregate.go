package upgrade

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/ajxudir/aurup/pkg/alpm"
	"github.com/ajxudir/aurup/pkg/aur"
)

// Source bundles the collaborator operations the aggregation pipeline
// consumes. Every field is an injectable function so the pipeline can be
// exercised without pacman, the network, or git.
//
// A nil fetch function disables that source.
//
// Fields:
//   - AUR: Resolves AUR upgrade candidates
//   - Devel: Probes VCS-tracked packages for new commits
//   - Repo: Stages repository sysupgrade candidates
//   - LocalVersion: Installed-version lookup for devel candidates
//   - DBIndex: Priority position of a sync database name
type Source struct {
	AUR          func(ctx context.Context) (aur.Updates, error)
	Devel        func(ctx context.Context) ([]string, error)
	Repo         func(ctx context.Context) ([]alpm.Candidate, error)
	LocalVersion func(name string) (string, error)
	DBIndex      func(db string) int
}

// Options control the interactive behavior of the pipeline.
//
// Fields:
//   - Menu: Renders the exclusion menu and prompts; false keeps everything
//   - Print: Emits the ":: Looking for ..." action lines before fetching
//   - Out: Destination for menu and action output; nil selects stdout
//   - ReadLine: Line source for the exclusion prompt; required with Menu
//   - OldMark: Highlighter for divergent old-version suffixes
//   - NewMark: Highlighter for divergent new-version suffixes
type Options struct {
	Menu     bool
	Print    bool
	Out      io.Writer
	ReadLine func(prompt string) (string, error)
	OldMark  Highlighter
	NewMark  Highlighter
}

// Get runs the whole upgrade-check pipeline: concurrent candidate
// fetching, precedence filtering, optional menu interaction, and the
// final partition.
//
// It performs the following operations:
//   - Step 1: Fetches AUR and devel candidates concurrently; both must
//     complete, and either failure aborts the check with no partial result
//   - Step 2: Warns about resolver-ignored entries and drops them
//   - Step 3: Removes AUR candidates that a devel candidate shadows:
//     a VCS-tracked package's upgrade is governed by commit state, not
//     registry version
//   - Step 4: Stages repository candidates and normalizes all three lists
//   - Step 5: Short-circuits to nil when every source came back empty
//   - Step 6: Without the menu, keeps every candidate; with it, renders
//     the table, prompts, parses the selection, and partitions
//
// Parameters:
//   - ctx: Context for cancellation
//   - src: The collaborator operations
//   - opts: Interactive behavior
//
// Returns:
//   - *Upgrades: The partition, or nil when there is nothing to do
//   - error: Fetch, lookup, prompt, or selection-parse failure
func Get(ctx context.Context, src Source, opts Options) (*Upgrades, error) {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	aurUpdates, develNames, err := fetchCandidates(ctx, src, opts, out)
	if err != nil {
		return nil, err
	}

	aurRecords := NormalizeAUR(aurUpdates)

	develRecords, err := NormalizeDevel(develNames, src.LocalVersion)
	if err != nil {
		return nil, err
	}

	// Devel tracking wins over the registry entry for the same name.
	develSet := make(map[string]struct{}, len(develRecords))
	for _, r := range develRecords {
		develSet[r.Name] = struct{}{}
	}
	kept := aurRecords[:0]
	for _, r := range aurRecords {
		if _, shadowed := develSet[r.Name]; !shadowed {
			kept = append(kept, r)
		}
	}
	aurRecords = kept

	var repoRecords []Record
	if src.Repo != nil {
		candidates, err := src.Repo(ctx)
		if err != nil {
			return nil, err
		}
		repoRecords = NormalizeRepo(candidates, src.DBIndex)
	}

	if len(repoRecords) == 0 && len(aurRecords) == 0 && len(develRecords) == 0 {
		return nil, nil
	}

	if !opts.Menu {
		return Partition(repoRecords, aurRecords, develRecords,
			NewNumbering(len(develRecords), len(aurRecords), len(repoRecords)), nil), nil
	}

	menu := &Menu{Out: out, OldMark: opts.OldMark, NewMark: opts.NewMark}
	numbering := menu.Render(repoRecords, aurRecords, develRecords)

	if opts.ReadLine == nil {
		return nil, fmt.Errorf("upgrade menu requested but no line source configured")
	}
	line, err := opts.ReadLine("Packages to exclude (eg: 1 2 3, 1-3):")
	if err != nil {
		return nil, fmt.Errorf("failed to read exclusion input: %w", err)
	}

	sel, err := ParseSelection(line)
	if err != nil {
		return nil, err
	}

	return Partition(repoRecords, aurRecords, develRecords, numbering, sel), nil
}

// fetchCandidates runs the AUR and devel fetches concurrently and joins
// them with first-failure-wins semantics.
//
// The action lines print sequentially before either goroutine starts, so
// the output writer is never written from two goroutines at once. Each
// fetch writes only its own result variable.
//
// Parameters:
//   - ctx: Context for cancellation
//   - src: The collaborator operations
//   - opts: Interactive behavior (controls the action lines)
//   - out: Destination for action lines
//
// Returns:
//   - aur.Updates: The resolver result, zero-valued when disabled
//   - []string: Probed devel names, nil when disabled
//   - error: The first fetch failure
func fetchCandidates(ctx context.Context, src Source, opts Options, out io.Writer) (aur.Updates, []string, error) {
	var aurUpdates aur.Updates
	var develNames []string

	if opts.Print {
		if src.AUR != nil {
			_, _ = fmt.Fprintln(out, ":: Looking for AUR upgrades")
		}
		if src.Devel != nil {
			_, _ = fmt.Fprintln(out, ":: Looking for devel upgrades")
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if src.AUR == nil {
			return nil
		}
		var err error
		aurUpdates, err = src.AUR(gctx)
		return err
	})

	g.Go(func() error {
		if src.Devel == nil {
			return nil
		}
		var err error
		develNames, err = src.Devel(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return aur.Updates{}, nil, err
	}
	return aurUpdates, develNames, nil
}
