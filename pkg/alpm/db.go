// Package alpm provides a read-only view of the pacman package databases:
// staged sysupgrade candidates, local version lookups, and the list of
// foreign (non-repository) packages.
package alpm

import "context"

// Candidate is one staged repository upgrade.
//
// Fields:
//   - Name: Package name
//   - DB: Name of the sync database offering the upgrade
//   - Local: Installed version
//   - Remote: Version offered by the database
type Candidate struct {
	Name   string
	DB     string
	Local  string
	Remote string
}

// Database is the read-only package database surface the upgrade pipeline
// consumes. The transaction engine behind it is out of scope; this layer
// only stages candidates and answers lookups.
type Database interface {
	// Staged returns the repository upgrade candidates a sysupgrade
	// would install, without acting on them.
	Staged(ctx context.Context) ([]Candidate, error)

	// LocalVersion returns the installed version of a package. A missing
	// package is an error: callers only ask about packages a source
	// already reported as installed.
	LocalVersion(ctx context.Context, name string) (string, error)

	// Foreign returns installed packages that no sync database owns,
	// mapped to their installed versions. These are the AUR resolution
	// inputs.
	Foreign(ctx context.Context) (map[string]string, error)

	// Repos returns the configured sync database names in priority order.
	Repos(ctx context.Context) ([]string, error)
}
