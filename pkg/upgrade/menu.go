package upgrade

import (
	"fmt"
	"io"
	"strconv"

	"github.com/ajxudir/aurup/pkg/utils"
)

// Menu renders the numbered upgrade table.
//
// Lines print in descending index order, index N first, while indices
// themselves come from the shared Numbering so the partition phase sees
// the same numbers the operator saw.
//
// Fields:
//   - Out: Destination writer, typically stdout
//   - OldMark: Highlighter for divergent old-version suffixes
//   - NewMark: Highlighter for divergent new-version suffixes
type Menu struct {
	Out     io.Writer
	OldMark Highlighter
	NewMark Highlighter
}

// Render prints the three candidate blocks as one numbered table.
//
// It performs the following operations:
//   - Step 1: Derives the numbering from the three block sizes
//   - Step 2: Computes the index, label, and old-version column widths
//     across all blocks
//   - Step 3: Prints the repo block, then aur, then devel, yielding
//     indices N down to 1 top-to-bottom
//
// Devel rows never diff the sentinel against the installed version; both
// columns are marked whole.
//
// Parameters:
//   - repo: Ordered repository records
//   - aurRecords: Ordered AUR records
//   - develRecords: Ordered devel records
//
// Returns:
//   - Numbering: The numbering used, for the partition phase
func (m *Menu) Render(repo, aurRecords, develRecords []Record) Numbering {
	numbering := NewNumbering(len(develRecords), len(aurRecords), len(repo))

	nWidth := len(strconv.Itoa(numbering.Total()))
	labelWidth := 0
	oldWidth := 0
	for _, block := range [][]Record{repo, aurRecords, develRecords} {
		for _, r := range block {
			labelWidth = utils.Max(labelWidth, utils.DisplayWidth(r.Group+"/"+r.Name))
			oldWidth = utils.Max(oldWidth, utils.DisplayWidth(r.Old))
		}
	}

	m.renderBlock(repo, KindRepo, numbering, nWidth, labelWidth, oldWidth)
	m.renderBlock(aurRecords, KindAUR, numbering, nWidth, labelWidth, oldWidth)
	m.renderBlock(develRecords, KindDevel, numbering, nWidth, labelWidth, oldWidth)
	return numbering
}

// renderBlock prints one source block in list order.
//
// Parameters:
//   - records: The block's ordered records
//   - kind: The block's position in the numbering
//   - numbering: The shared numbering
//   - nWidth: Width of the index column
//   - labelWidth: Width of the group/name column
//   - oldWidth: Width of the old-version column
func (m *Menu) renderBlock(records []Record, kind Kind, numbering Numbering, nWidth, labelWidth, oldWidth int) {
	for pos, r := range records {
		index := numbering.Index(kind, pos)

		// Padding the old version before diffing keeps the arrow column
		// aligned; the pad spaces ride along in the marked suffix.
		paddedOld := utils.ToWidth(r.Old, oldWidth)

		var old, new string
		if r.Group == LabelDevel {
			old = m.mark(m.OldMark, paddedOld)
			new = m.mark(m.NewMark, r.New)
		} else {
			old, new = DiffVersions(paddedOld, r.New, m.markFunc(m.OldMark), m.markFunc(m.NewMark))
		}

		_, _ = fmt.Fprintf(m.Out, "%s %s %s -> %s\n",
			utils.RightAlign(strconv.Itoa(index), nWidth),
			utils.ToWidth(r.Group+"/"+r.Name, labelWidth),
			old,
			new,
		)
	}
}

// mark applies a highlighter, treating nil as plain.
//
// Parameters:
//   - h: The highlighter, possibly nil
//   - s: The span to mark
//
// Returns:
//   - string: The marked span
func (m *Menu) mark(h Highlighter, s string) string {
	if h == nil {
		return s
	}
	return h(s)
}

// markFunc returns a non-nil highlighter.
//
// Parameters:
//   - h: The highlighter, possibly nil
//
// Returns:
//   - Highlighter: h, or PlainHighlighter when h is nil
func (m *Menu) markFunc(h Highlighter) Highlighter {
	if h == nil {
		return PlainHighlighter
	}
	return h
}
