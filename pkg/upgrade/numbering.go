package upgrade

// Numbering assigns display indices 1..N contiguously across the
// concatenation devel, then aur, then repo.
//
// Within each block the first listed record receives the highest index of
// the block, so printing the lists top-to-bottom shows indices descending
// from N to 1 while every record keeps a stable number.
//
// Both the menu renderer and the partitioner derive indices through this
// one type, which guarantees the two phases never diverge.
//
// Fields:
//   - Devel: Number of devel candidates
//   - AUR: Number of AUR candidates
//   - Repo: Number of repository candidates
type Numbering struct {
	Devel int
	AUR   int
	Repo  int
}

// NewNumbering creates a Numbering for the given block sizes.
//
// Parameters:
//   - devel: Number of devel candidates
//   - aur: Number of AUR candidates
//   - repo: Number of repository candidates
//
// Returns:
//   - Numbering: The numbering scheme for the three blocks
func NewNumbering(devel, aur, repo int) Numbering {
	return Numbering{Devel: devel, AUR: aur, Repo: repo}
}

// Total returns the number of indices the scheme assigns.
//
// Returns:
//   - int: The highest assigned index N, or 0 when all blocks are empty
func (n Numbering) Total() int {
	return n.Devel + n.AUR + n.Repo
}

// Index returns the display index of a record.
//
// Devel occupies 1..d, aur d+1..d+a, repo d+a+1..N. Within a block,
// position 0 maps to the block's highest index and the last position to
// its lowest.
//
// Parameters:
//   - group: The block the record belongs to
//   - pos: The record's zero-based position within its block's list
//
// Returns:
//   - int: The assigned display index in 1..N
func (n Numbering) Index(group Kind, pos int) int {
	switch group {
	case KindDevel:
		return n.Devel - pos
	case KindAUR:
		return n.Devel + n.AUR - pos
	default:
		return n.Devel + n.AUR + n.Repo - pos
	}
}
