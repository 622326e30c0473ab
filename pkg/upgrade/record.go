// Package upgrade aggregates pending package upgrades from the
// repositories, the AUR, and VCS-tracked devel packages into one numbered
// list, and partitions it into keep and skip sets from the operator's
// exclusion input.
package upgrade

// Group labels shared between rendering and selection. Repository
// candidates use their database name as the group label instead.
const (
	// LabelAUR is the group label for AUR candidates.
	LabelAUR = "aur"

	// LabelDevel is the group label for VCS-tracked candidates.
	LabelDevel = "devel"

	// DevelSentinel is the displayed "new version" of a devel candidate.
	// Devel upgrades are driven by commit state, not a registry version,
	// so the column shows this fixed marker.
	DevelSentinel = "latest-commit"
)

// Kind identifies which of the three source blocks a record belongs to.
type Kind int

// Source blocks in numbering order: devel indices come first, then aur,
// then repo.
const (
	KindDevel Kind = iota
	KindAUR
	KindRepo
)

// Record is one upgrade candidate normalized from any source.
//
// Records are immutable once constructed. The display index is not stored
// here; it is derived from the record's position through Numbering so the
// rendering and partitioning phases can never disagree.
//
// Fields:
//   - Name: Package name, unique within its group
//   - Group: Display/selection label: a database name, "aur", or "devel"
//   - Old: Installed version (looked up for devel candidates)
//   - New: Candidate version; DevelSentinel for devel candidates
type Record struct {
	Name  string
	Group string
	Old   string
	New   string
}

// Upgrades is the final keep/skip partition consumed by the surrounding
// install workflow.
//
// Devel names are folded into the AUR sets: devel packages have no
// independent output channel because they are built from the AUR like any
// other foreign package.
//
// Fields:
//   - RepoKeep: Repository packages to upgrade
//   - RepoSkip: Repository packages the operator excluded
//   - AURKeep: AUR and devel packages to upgrade
//   - AURSkip: AUR and devel packages the operator excluded
type Upgrades struct {
	RepoKeep []string
	RepoSkip []string
	AURKeep  []string
	AURSkip  []string
}

// Total returns the number of names across all four sets.
//
// Returns:
//   - int: Combined size of the keep and skip sets
func (u *Upgrades) Total() int {
	return len(u.RepoKeep) + len(u.RepoSkip) + len(u.AURKeep) + len(u.AURSkip)
}
