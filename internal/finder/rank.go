// Public domain.

package finder

import (
	"sort"
	"strconv"
)

// idOrder orders target ids numerically when every id parses as a
// number, lexicographically otherwise.
type idOrder struct {
	ids     []string
	nums    []float64
	numeric bool
}

func newIDOrder(ids []string) *idOrder {
	o := &idOrder{ids: ids, nums: make([]float64, len(ids)), numeric: true}
	for i, s := range ids {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			o.numeric = false
			break
		}
		o.nums[i] = v
	}
	return o
}

func (o *idOrder) less(a, b int) bool {
	if o.numeric {
		return o.nums[a] < o.nums[b]
	}
	return o.ids[a] < o.ids[b]
}

func (o *idOrder) eq(a, b int) bool {
	if o.numeric {
		return o.nums[a] == o.nums[b]
	}
	return o.ids[a] == o.ids[b]
}

// rankMatches sorts matches by target id ascending then score
// ascending, keeping insertion order on full ties, and assigns dense
// 1-based ranks within each id group.  Equal scores share a rank and
// the next distinct score takes the following integer.  ids holds the
// id field of every target row, indexed by Match.TargetIdx.
func rankMatches(matches []Match, ids []string) {
	o := newIDOrder(ids)
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if !o.eq(a.TargetIdx, b.TargetIdx) {
			return o.less(a.TargetIdx, b.TargetIdx)
		}
		return a.Score < b.Score
	})
	rank, prev := 0, 0.
	for i := range matches {
		switch {
		case i == 0 || !o.eq(matches[i].TargetIdx, matches[i-1].TargetIdx):
			rank, prev = 1, matches[i].Score
		case matches[i].Score != prev:
			rank++
			prev = matches[i].Score
		}
		matches[i].Rank = rank
	}
}
