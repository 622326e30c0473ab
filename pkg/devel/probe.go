package devel

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ajxudir/aurup/pkg/cmdexec"
	"github.com/ajxudir/aurup/pkg/verbose"
)

// defaultParallel bounds concurrent ls-remote probes.
const defaultParallel = 8

// Prober checks tracked packages for new upstream commits.
//
// Fields:
//   - State: The tracked package state
//   - Parallel: Maximum concurrent probes; <= 0 selects the default
//   - WorkingDir: Directory git commands run in ("" for current)
type Prober struct {
	State      *State
	Parallel   int
	WorkingDir string
}

// Probe returns the names of tracked packages whose upstream head moved
// past the recorded commit.
//
// It performs the following operations:
//   - Step 1: Probes every tracked entry concurrently, bounded by the
//     parallel limit, with first-failure-wins semantics
//   - Step 2: Reports a package when the remote head differs from the
//     recorded commit, or when no commit was recorded yet
//   - Step 3: Sorts the resulting names
//
// Parameters:
//   - ctx: Context for cancellation
//
// Returns:
//   - []string: Sorted names of packages needing a rebuild
//   - error: The first probe failure
func (p *Prober) Probe(ctx context.Context) ([]string, error) {
	names := p.State.Names()
	if len(names) == 0 {
		return nil, nil
	}

	limit := p.Parallel
	if limit <= 0 {
		limit = defaultParallel
	}

	var mu sync.Mutex
	var updates []string

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for _, name := range names {
		name := name
		entry, _ := p.State.Get(name)
		g.Go(func() error {
			head, err := p.remoteHead(gctx, entry)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			if head != "" && head != entry.Commit {
				verbose.Infof("Devel package '%s' moved: %s -> %s", name, entry.Commit, head)
				mu.Lock()
				updates = append(updates, name)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(updates)
	verbose.FetchResult("devel", len(updates))
	return updates, nil
}

// remoteHead resolves the current upstream commit of an entry via
// `git ls-remote`.
//
// Parameters:
//   - ctx: Context for cancellation
//   - entry: The tracked entry to probe
//
// Returns:
//   - string: The remote commit hash, "" when the ref does not exist
//   - error: Command failure
func (p *Prober) remoteHead(ctx context.Context, entry Entry) (string, error) {
	ref := entry.Branch
	if ref == "" {
		ref = "HEAD"
	}
	command := fmt.Sprintf("git ls-remote -- %s %s",
		cmdexec.ShellEscape(entry.URL), cmdexec.ShellEscape(ref))

	out, err := cmdexec.Execute(ctx, command, p.WorkingDir)
	if err != nil {
		return "", err
	}

	line := strings.TrimSpace(strings.SplitN(string(out), "\n", 2)[0])
	if line == "" {
		return "", nil
	}
	fields := strings.Fields(line)
	return fields[0], nil
}
