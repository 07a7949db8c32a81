// Package render draws column reconstruction results for inspection, as a
// PNG overlay of the page geometry or as an HTML report.
package render

import (
	"github.com/tsawler/colbox/layout"
	"github.com/tsawler/colbox/model"
)

// Overlay is the geometry drawn for one page
type Overlay struct {
	Bounds    model.Rect
	Panels    []model.Rect
	Images    []model.Rect
	Blocks    []model.Rect
	Obstacles []model.Rect
	Columns   []layout.Column
}

// NewOverlay collects the geometry of page together with its columns.
// Blocks starting with non-horizontal text are reported as obstacles.
func NewOverlay(page layout.PagePrimitives, columns []layout.Column) Overlay {
	ov := Overlay{
		Bounds:  page.Bounds(),
		Panels:  page.Drawings(),
		Columns: columns,
	}
	for _, img := range page.Images() {
		ov.Images = append(ov.Images, img.BBox)
	}
	for _, blk := range page.TextBlocks(ov.Bounds) {
		if len(blk.Lines) > 0 && !blk.Lines[0].Dir.IsHorizontal() {
			ov.Obstacles = append(ov.Obstacles, blk.BBox)
			continue
		}
		ov.Blocks = append(ov.Blocks, blk.BBox)
	}
	return ov
}
