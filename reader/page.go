package reader

import (
	"github.com/tsawler/colbox/model"
)

// Page holds the primitives collected from one PDF page, in top-down
// coordinates with the origin at the top-left corner of the MediaBox.
type Page struct {
	bounds   model.Rect
	blocks   []model.TextBlock
	drawings []model.Rect
	images   []model.Image
}

// NewPage creates a page from already collected primitives
func NewPage(bounds model.Rect, blocks []model.TextBlock, drawings []model.Rect, images []model.Image) *Page {
	return &Page{
		bounds:   bounds,
		blocks:   blocks,
		drawings: drawings,
		images:   images,
	}
}

// Bounds returns the page rectangle
func (p *Page) Bounds() model.Rect {
	return p.bounds
}

// Width returns the page width
func (p *Page) Width() float64 {
	return p.bounds.Width()
}

// Height returns the page height
func (p *Page) Height() float64 {
	return p.bounds.Height()
}

// Drawings returns the bounding boxes of the page's rectangles
func (p *Page) Drawings() []model.Rect {
	return p.drawings
}

// Images returns the image placements known for the page
func (p *Page) Images() []model.Image {
	return p.images
}

// TextBlocks returns the text blocks intersecting clip, reduced to the
// lines that intersect it
func (p *Page) TextBlocks(clip model.Rect) []model.TextBlock {
	return model.ClipBlocks(p.blocks, clip)
}
