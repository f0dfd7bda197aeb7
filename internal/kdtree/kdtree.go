// Public domain.

// Package kdtree implements a static k-d tree over 3-D Cartesian
// points for k-nearest-neighbor queries.
//
// The tree is bulk built once and read-only afterwards, so queries may
// run concurrently.  Results are deterministic for a fixed tree and
// query: hits come back ordered by non-decreasing Euclidean distance
// with ties broken by ascending point index.
package kdtree

import (
	"container/heap"
	"math"
	"sort"

	"github.com/soniakeys/coord"
)

// DefaultLeafSize is the bucket size below which a node stops
// splitting.
const DefaultLeafSize = 30

// Hit is one query result: the Euclidean distance from the query point
// and the index of the hit in the slice passed to Build.
type Hit struct {
	Dist float64
	Idx  int
}

// node is one cell of the tree.  Leaves hold perm[lo:hi] and have
// left < 0.
type node struct {
	split  float64
	lo, hi int32
	left   int32
	right  int32
	axis   int8
}

// Tree is the index.  It references the point slice passed to Build;
// the slice must not be modified while the tree is in use.
type Tree struct {
	pts      []coord.Cart
	perm     []int32
	nodes    []node
	leafSize int
}

// Build constructs a tree over pts with DefaultLeafSize.
func Build(pts []coord.Cart) *Tree {
	return BuildLeafSize(pts, DefaultLeafSize)
}

// BuildLeafSize constructs a tree over pts with the given bucket size.
func BuildLeafSize(pts []coord.Cart, leafSize int) *Tree {
	if leafSize < 1 {
		leafSize = 1
	}
	t := &Tree{
		pts:      pts,
		perm:     make([]int32, len(pts)),
		leafSize: leafSize,
	}
	for i := range t.perm {
		t.perm[i] = int32(i)
	}
	if len(pts) > 0 {
		t.build(0, int32(len(pts)))
	}
	return t
}

// Len returns the number of indexed points.
func (t *Tree) Len() int { return len(t.pts) }

func axval(p *coord.Cart, ax int8) float64 {
	switch ax {
	case 0:
		return p.X
	case 1:
		return p.Y
	}
	return p.Z
}

// build splits perm[lo:hi], appending nodes, and returns the node
// index.  Splitting is by median on the widest axis, so both halves
// are always non-empty and recursion terminates even for degenerate
// point sets.
func (t *Tree) build(lo, hi int32) int32 {
	nx := int32(len(t.nodes))
	t.nodes = append(t.nodes, node{lo: lo, hi: hi, left: -1, right: -1})
	if int(hi-lo) <= t.leafSize {
		return nx
	}
	ax := t.widestAxis(lo, hi)
	p := t.perm[lo:hi]
	sort.Slice(p, func(i, j int) bool {
		a, b := axval(&t.pts[p[i]], ax), axval(&t.pts[p[j]], ax)
		if a != b {
			return a < b
		}
		return p[i] < p[j]
	})
	mid := lo + (hi-lo)/2
	t.nodes[nx].axis = ax
	t.nodes[nx].split = axval(&t.pts[t.perm[mid]], ax)
	l := t.build(lo, mid)
	r := t.build(mid, hi)
	t.nodes[nx].left = l
	t.nodes[nx].right = r
	return nx
}

// widestAxis picks the coordinate with the largest spread over
// perm[lo:hi].
func (t *Tree) widestAxis(lo, hi int32) int8 {
	p0 := t.pts[t.perm[lo]]
	min, max := p0, p0
	for _, px := range t.perm[lo+1 : hi] {
		p := &t.pts[px]
		if p.X < min.X {
			min.X = p.X
		} else if p.X > max.X {
			max.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		} else if p.Y > max.Y {
			max.Y = p.Y
		}
		if p.Z < min.Z {
			min.Z = p.Z
		} else if p.Z > max.Z {
			max.Z = p.Z
		}
	}
	ax, spread := int8(0), max.X-min.X
	if s := max.Y - min.Y; s > spread {
		ax, spread = 1, s
	}
	if s := max.Z - min.Z; s > spread {
		ax = 2
	}
	return ax
}

// hit2 is an internal candidate carrying squared distance.
type hit2 struct {
	d2  float64
	idx int32
}

// resHeap is a max-heap on (squared distance, index) so the current
// worst candidate sits on top for cheap replacement.
type resHeap []hit2

func (h resHeap) Len() int { return len(h) }
func (h resHeap) Less(i, j int) bool {
	if h[i].d2 != h[j].d2 {
		return h[i].d2 > h[j].d2
	}
	return h[i].idx > h[j].idx
}
func (h resHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *resHeap) Push(x any)   { *h = append(*h, x.(hit2)) }

func (h *resHeap) Pop() any {
	old := *h
	n := len(old)
	last := old[n-1]
	*h = old[:n-1]
	return last
}

// Query returns the k nearest indexed points to q, ordered by
// non-decreasing distance, ties by ascending index.  If the tree holds
// fewer than k points all of them are returned.  Exact duplicates of q
// are returned with distance 0.  NaN coordinates never panic or hang;
// hits for such queries are unspecified.
func (t *Tree) Query(q coord.Cart, k int) []Hit {
	if k <= 0 || len(t.pts) == 0 {
		return nil
	}
	if k > len(t.pts) {
		k = len(t.pts)
	}
	h := make(resHeap, 0, k)
	t.search(0, &q, k, &h)
	res := make([]Hit, len(h))
	for i, c := range h {
		res[i] = Hit{Dist: math.Sqrt(c.d2), Idx: int(c.idx)}
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Dist != res[j].Dist {
			return res[i].Dist < res[j].Dist
		}
		return res[i].Idx < res[j].Idx
	})
	return res
}

func (t *Tree) search(nx int32, q *coord.Cart, k int, h *resHeap) {
	nd := &t.nodes[nx]
	if nd.left < 0 {
		for _, px := range t.perm[nd.lo:nd.hi] {
			var d coord.Cart
			d.Sub(&t.pts[px], q)
			d2 := d.Square()
			if len(*h) < k {
				heap.Push(h, hit2{d2, px})
				continue
			}
			if top := (*h)[0]; d2 < top.d2 || (d2 == top.d2 && px < top.idx) {
				(*h)[0] = hit2{d2, px}
				heap.Fix(h, 0)
			}
		}
		return
	}
	diff := axval(q, nd.axis) - nd.split
	near, far := nd.left, nd.right
	if !(diff < 0) {
		near, far = far, near
	}
	t.search(near, q, k, h)
	// the far cell can only matter if the splitting plane is no farther
	// than the current worst candidate, or the heap isn't full yet.
	// equality must recurse so that equidistant points with lower index
	// across the plane are still seen.
	if len(*h) < k || diff*diff <= (*h)[0].d2 {
		t.search(far, q, k, h)
	}
}
