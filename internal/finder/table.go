// Public domain.

package finder

import (
	"strconv"

	"github.com/galneighbors/gnf/internal/catalog"
)

// Output column names of the computed fields.
const (
	ColVelDiff = "velocity_diff_km_s"
	ColRProj   = "Rproj_arcmin"
	ColScore   = "proximity_score"
	ColRank    = "neighbor_rank"
)

// computed field indices of a colSource
const (
	compNone = iota - 1
	compVelDiff
	compRProj
	compScore
	compRank
)

var computedNames = [...]string{ColVelDiff, ColRProj, ColScore, ColRank}

// colSource maps one output column to its source in a match.
type colSource struct {
	name string
	tIdx int // column in the target row, -1 when absent
	rIdx int // column in the reference row, -1 when absent
	comp int // computed field, compNone when from a catalog
}

// mergedColumns flattens the two catalog headers and the computed
// fields into the output column layout.  Columns keep the position of
// their first appearance: target columns in file order, then reference
// columns not already present, then computed fields.  On a name
// collision the reference value overwrites the target value, and
// computed fields overwrite both.
func mergedColumns(target, ref *catalog.Catalog) []colSource {
	var cols []colSource
	pos := make(map[string]int)
	for i, h := range target.Header() {
		pos[h] = len(cols)
		cols = append(cols, colSource{name: h, tIdx: i, rIdx: -1, comp: compNone})
	}
	for i, h := range ref.Header() {
		if j, ok := pos[h]; ok {
			cols[j].rIdx = i
			continue
		}
		pos[h] = len(cols)
		cols = append(cols, colSource{name: h, tIdx: -1, rIdx: i, comp: compNone})
	}
	for ci, h := range computedNames {
		if j, ok := pos[h]; ok {
			cols[j] = colSource{name: h, tIdx: -1, rIdx: -1, comp: ci}
			continue
		}
		pos[h] = len(cols)
		cols = append(cols, colSource{name: h, tIdx: -1, rIdx: -1, comp: ci})
	}
	return cols
}

// Result is the scored match table, ordered and ranked, ready for
// output.
type Result struct {
	Matches []Match

	target *catalog.Catalog
	ref    *catalog.Catalog
	cols   []colSource
}

func newResult(target, ref *catalog.Catalog, matches []Match) *Result {
	return &Result{
		Matches: matches,
		target:  target,
		ref:     ref,
		cols:    mergedColumns(target, ref),
	}
}

// Len returns the number of matches in the table.
func (r *Result) Len() int { return len(r.Matches) }

// Header returns the output column names, valid even for an empty
// table.
func (r *Result) Header() []string {
	h := make([]string, len(r.cols))
	for i, c := range r.cols {
		h[i] = c.name
	}
	return h
}

// Record renders match k as one output record aligned with Header.
func (r *Result) Record(k int) []string {
	m := &r.Matches[k]
	trow := r.target.Row(m.TargetIdx)
	rrow := r.ref.Row(m.RefIdx)
	rec := make([]string, len(r.cols))
	for i, c := range r.cols {
		switch {
		case c.comp != compNone:
			rec[i] = m.computed(c.comp)
		case c.rIdx >= 0:
			rec[i] = rrow[c.rIdx]
		default:
			rec[i] = trow[c.tIdx]
		}
	}
	return rec
}

func (m *Match) computed(ci int) string {
	switch ci {
	case compVelDiff:
		return strconv.FormatFloat(m.VelDiff, 'g', -1, 64)
	case compRProj:
		return strconv.FormatFloat(m.RProj, 'g', -1, 64)
	case compScore:
		return strconv.FormatFloat(m.Score, 'g', -1, 64)
	}
	return strconv.Itoa(m.Rank)
}
