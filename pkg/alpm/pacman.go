package alpm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ajxudir/aurup/pkg/cmdexec"
	"github.com/ajxudir/aurup/pkg/verbose"
)

// Pacman is a Database implementation backed by the pacman command line
// tools. It shells out through cmdexec so tests can stub execution.
//
// Fields:
//   - WorkingDir: Directory commands run in ("" for current)
type Pacman struct {
	WorkingDir string

	dbOnce  sync.Once
	dbByPkg map[string]string
	dbErr   error
}

var _ Database = (*Pacman)(nil)

// NewPacman creates a pacman-backed database view.
//
// Parameters:
//   - workingDir: Directory commands run in ("" for current)
//
// Returns:
//   - *Pacman: The database view
func NewPacman(workingDir string) *Pacman {
	return &Pacman{WorkingDir: workingDir}
}

// Staged returns the upgrade candidates `pacman -Qu` reports, attributed
// to their sync databases.
//
// It performs the following operations:
//   - Step 1: Runs `pacman -Qu` and parses name, installed, and candidate
//     versions; entries pacman marks [ignored] are dropped
//   - Step 2: Builds the package-to-database map from `pacman -Sl` once
//   - Step 3: Attributes every candidate to the first database listing it
//
// Parameters:
//   - ctx: Context for cancellation
//
// Returns:
//   - []Candidate: Staged upgrade candidates in pacman's output order
//   - error: Command or attribution failure
func (p *Pacman) Staged(ctx context.Context) ([]Candidate, error) {
	out, err := cmdexec.Execute(ctx, "pacman -Qu", p.WorkingDir)
	if err != nil {
		// pacman -Qu exits 1 when there is nothing to upgrade.
		if len(strings.TrimSpace(string(out))) == 0 {
			return nil, nil
		}
		return nil, fmt.Errorf("pacman -Qu: %w", err)
	}

	staged := parseQu(string(out))
	if len(staged) == 0 {
		return nil, nil
	}

	dbByPkg, err := p.packageDBs(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(staged))
	for _, c := range staged {
		db, ok := dbByPkg[c.Name]
		if !ok {
			return nil, fmt.Errorf("package %s is upgradable but no sync database lists it", c.Name)
		}
		c.DB = db
		candidates = append(candidates, c)
	}
	verbose.FetchResult("repo", len(candidates))
	return candidates, nil
}

// LocalVersion returns the installed version of a package via `pacman -Q`.
//
// Parameters:
//   - ctx: Context for cancellation
//   - name: The package to look up
//
// Returns:
//   - string: The installed version
//   - error: Lookup failure, including a package that is not installed
func (p *Pacman) LocalVersion(ctx context.Context, name string) (string, error) {
	out, err := cmdexec.Execute(ctx, "pacman -Q "+cmdexec.ShellEscape(name), p.WorkingDir)
	if err != nil {
		return "", fmt.Errorf("pacman -Q %s: %w", name, err)
	}
	_, version, ok := parseQ(string(out))
	if !ok {
		return "", fmt.Errorf("pacman -Q %s: unexpected output %q", name, strings.TrimSpace(string(out)))
	}
	return version, nil
}

// Foreign returns installed packages owned by no sync database via
// `pacman -Qm`.
//
// Parameters:
//   - ctx: Context for cancellation
//
// Returns:
//   - map[string]string: Package name to installed version
//   - error: Command failure
func (p *Pacman) Foreign(ctx context.Context) (map[string]string, error) {
	out, err := cmdexec.Execute(ctx, "pacman -Qm", p.WorkingDir)
	if err != nil {
		if len(strings.TrimSpace(string(out))) == 0 {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("pacman -Qm: %w", err)
	}

	foreign := make(map[string]string)
	for _, line := range strings.Split(string(out), "\n") {
		if name, version, ok := parseQ(line); ok {
			foreign[name] = version
		}
	}
	return foreign, nil
}

// Repos returns the configured sync database names via pacman-conf.
//
// Parameters:
//   - ctx: Context for cancellation
//
// Returns:
//   - []string: Database names in configuration order
//   - error: Command failure
func (p *Pacman) Repos(ctx context.Context) ([]string, error) {
	out, err := cmdexec.Execute(ctx, "pacman-conf --repo-list", p.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("pacman-conf --repo-list: %w", err)
	}
	var repos []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			repos = append(repos, line)
		}
	}
	return repos, nil
}

// packageDBs builds the package-to-database map once per Pacman value.
//
// Parameters:
//   - ctx: Context for cancellation
//
// Returns:
//   - map[string]string: Package name to owning database
//   - error: Command failure
func (p *Pacman) packageDBs(ctx context.Context) (map[string]string, error) {
	p.dbOnce.Do(func() {
		out, err := cmdexec.Execute(ctx, "pacman -Sl", p.WorkingDir)
		if err != nil {
			p.dbErr = fmt.Errorf("pacman -Sl: %w", err)
			return
		}
		p.dbByPkg = parseSl(string(out))
	})
	return p.dbByPkg, p.dbErr
}

// parseQu parses `pacman -Qu` output lines of the form
// "name old -> new", dropping entries marked [ignored].
//
// Parameters:
//   - out: Raw command output
//
// Returns:
//   - []Candidate: Parsed candidates without database attribution
func parseQu(out string) []Candidate {
	var candidates []Candidate
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasSuffix(line, "[ignored]") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 4 || fields[2] != "->" {
			continue
		}
		candidates = append(candidates, Candidate{
			Name:   fields[0],
			Local:  fields[1],
			Remote: fields[3],
		})
	}
	return candidates
}

// parseSl parses `pacman -Sl` output lines of the form
// "repo name version [installed]" into a package-to-database map. The
// first database listing a package wins, matching pacman's own priority.
//
// Parameters:
//   - out: Raw command output
//
// Returns:
//   - map[string]string: Package name to owning database
func parseSl(out string) map[string]string {
	dbByPkg := make(map[string]string)
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		if _, ok := dbByPkg[fields[1]]; !ok {
			dbByPkg[fields[1]] = fields[0]
		}
	}
	return dbByPkg
}

// parseQ parses a single `pacman -Q` style line of the form
// "name version".
//
// Parameters:
//   - line: The output line
//
// Returns:
//   - string: Package name
//   - string: Installed version
//   - bool: true if the line had the expected shape
func parseQ(line string) (string, string, bool) {
	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) != 2 {
		return "", "", false
	}
	return fields[0], fields[1], true
}
