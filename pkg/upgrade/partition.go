package upgrade

// Partition walks the three candidate blocks against the selection and
// produces the final keep/skip sets.
//
// It performs the following operations:
//   - Step 1: Re-derives every record's display index from the same
//     numbering the menu rendered with
//   - Step 2: Excludes a record when the selection covers its index or
//     its group label
//   - Step 3: Folds kept and skipped devel names into the AUR sets
//
// An empty or nil selection keeps everything. The emptiness check is
// explicit even though an empty selection also answers false to every
// Contains call: "no input" meaning "keep all" is a contract, not an
// emergent property.
//
// Parameters:
//   - repo: Ordered repository records
//   - aurRecords: Ordered AUR records
//   - develRecords: Ordered devel records
//   - numbering: The numbering the menu rendered with
//   - sel: The parsed selection, possibly nil
//
// Returns:
//   - *Upgrades: The four disjoint keep/skip sets
func Partition(repo, aurRecords, develRecords []Record, numbering Numbering, sel *Selection) *Upgrades {
	keepAll := sel == nil || sel.IsEmpty()
	excluded := func(kind Kind, pos int, r Record) bool {
		if keepAll {
			return false
		}
		return sel.Contains(numbering.Index(kind, pos), r.Group)
	}

	upgrades := &Upgrades{}

	for pos, r := range repo {
		if excluded(KindRepo, pos, r) {
			upgrades.RepoSkip = append(upgrades.RepoSkip, r.Name)
		} else {
			upgrades.RepoKeep = append(upgrades.RepoKeep, r.Name)
		}
	}

	for pos, r := range aurRecords {
		if excluded(KindAUR, pos, r) {
			upgrades.AURSkip = append(upgrades.AURSkip, r.Name)
		} else {
			upgrades.AURKeep = append(upgrades.AURKeep, r.Name)
		}
	}

	for pos, r := range develRecords {
		if excluded(KindDevel, pos, r) {
			upgrades.AURSkip = append(upgrades.AURSkip, r.Name)
		} else {
			upgrades.AURKeep = append(upgrades.AURKeep, r.Name)
		}
	}

	return upgrades
}
