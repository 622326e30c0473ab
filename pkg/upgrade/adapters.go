package upgrade

import (
	"sort"

	"github.com/ajxudir/aurup/pkg/alpm"
	"github.com/ajxudir/aurup/pkg/aur"
	"github.com/ajxudir/aurup/pkg/errors"
	"github.com/ajxudir/aurup/pkg/warnings"
)

// NormalizeRepo converts staged repository candidates into records.
//
// Candidates are ordered by their database's position in the configured
// priority list, then lexicographically by name, matching the order a
// sysupgrade transaction would present them in.
//
// Parameters:
//   - candidates: Staged repository upgrades
//   - dbIndex: Priority position of a database name; nil keeps input order
//
// Returns:
//   - []Record: Ordered repository records
func NormalizeRepo(candidates []alpm.Candidate, dbIndex func(string) int) []Record {
	records := make([]Record, 0, len(candidates))
	for _, c := range candidates {
		records = append(records, Record{
			Name:  c.Name,
			Group: c.DB,
			Old:   c.Local,
			New:   c.Remote,
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		if dbIndex != nil {
			di, dj := dbIndex(records[i].Group), dbIndex(records[j].Group)
			if di != dj {
				return di < dj
			}
		}
		return records[i].Name < records[j].Name
	})
	return records
}

// NormalizeAUR converts resolver output into records, reporting ignored
// entries as warnings.
//
// Ignored entries never enter the returned list; they surface once on the
// warning writer and disappear from the pipeline.
//
// Parameters:
//   - updates: The resolver result
//
// Returns:
//   - []Record: AUR records in resolver order
func NormalizeAUR(updates aur.Updates) []Record {
	for _, ignored := range updates.Ignored {
		warnings.Ignoredf(ignored.Name, ignored.Local, ignored.Remote)
	}

	records := make([]Record, 0, len(updates.Updates))
	for _, u := range updates.Updates {
		records = append(records, Record{
			Name:  u.Name,
			Group: LabelAUR,
			Old:   u.Local,
			New:   u.Remote,
		})
	}
	return records
}

// NormalizeDevel converts probed package names into records with the
// installed version filled in.
//
// It performs the following operations:
//   - Step 1: Deduplicates and sorts the names
//   - Step 2: Looks up each installed version; a package the probe
//     reported but the local database cannot find is a fatal consistency
//     error
//   - Step 3: Emits records carrying the DevelSentinel as new version
//
// Parameters:
//   - names: Probed package names, possibly with duplicates
//   - localVersion: Installed-version lookup
//
// Returns:
//   - []Record: Sorted devel records
//   - error: Consistency error naming the missing package
func NormalizeDevel(names []string, localVersion func(name string) (string, error)) ([]Record, error) {
	seen := make(map[string]struct{}, len(names))
	unique := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		unique = append(unique, name)
	}
	sort.Strings(unique)

	records := make([]Record, 0, len(unique))
	for _, name := range unique {
		old, err := localVersion(name)
		if err != nil {
			return nil, &errors.ConsistencyError{Package: name, Err: err}
		}
		records = append(records, Record{
			Name:  name,
			Group: LabelDevel,
			Old:   old,
			New:   DevelSentinel,
		})
	}
	return records, nil
}
