// Package spatial provides an R-tree backed index over page rectangles.
package spatial

import (
	"github.com/tidwall/rtree"

	"github.com/tsawler/colbox/model"
)

type entry struct {
	index int
	rect  model.Rect
}

// Index stores rectangles together with their insertion position so that
// queries can reproduce the answer of a linear scan in insertion order.
type Index struct {
	tree  rtree.RTreeG[entry]
	count int
}

// NewIndex builds an index over rects. Empty rectangles are indexed too;
// the predicates below decide whether they can ever match.
func NewIndex(rects []model.Rect) *Index {
	idx := &Index{}
	for _, r := range rects {
		idx.Insert(r)
	}
	return idx
}

// Insert adds r at the next insertion position
func (idx *Index) Insert(r model.Rect) {
	idx.tree.Insert(
		[2]float64{r.X0, r.Y0},
		[2]float64{r.X1, r.Y1},
		entry{index: idx.count, rect: r},
	)
	idx.count++
}

// Len returns the number of indexed rectangles
func (idx *Index) Len() int {
	return idx.count
}

// AnyIntersecting reports whether some indexed rectangle overlaps r with
// positive area.
func (idx *Index) AnyIntersecting(r model.Rect) bool {
	if idx.count == 0 || r.IsEmpty() {
		return false
	}
	found := false
	idx.tree.Search(
		[2]float64{r.X0, r.Y0},
		[2]float64{r.X1, r.Y1},
		func(_, _ [2]float64, e entry) bool {
			if e.rect.Intersects(r) {
				found = true
				return false
			}
			return true
		},
	)
	return found
}

// FirstContaining returns the insertion position of the first indexed
// rectangle that contains r, or -1 if none does.
func (idx *Index) FirstContaining(r model.Rect) int {
	if idx.count == 0 {
		return -1
	}
	best := -1
	idx.tree.Search(
		[2]float64{r.X0, r.Y0},
		[2]float64{r.X1, r.Y1},
		func(_, _ [2]float64, e entry) bool {
			if (best < 0 || e.index < best) && e.rect.Contains(r) {
				best = e.index
			}
			return true
		},
	)
	return best
}
