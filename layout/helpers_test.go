package layout

import (
	"github.com/tsawler/colbox/model"
)

// fakePage is an in-memory PagePrimitives that counts panel and image lookups
type fakePage struct {
	bounds   model.Rect
	drawings []model.Rect
	images   []model.Image
	blocks   []model.TextBlock

	// unclipped returns every block whatever the clip
	unclipped bool

	drawingCalls int
	imageCalls   int
}

func (p *fakePage) Bounds() model.Rect { return p.bounds }

func (p *fakePage) Drawings() []model.Rect {
	p.drawingCalls++
	return p.drawings
}

func (p *fakePage) Images() []model.Image {
	p.imageCalls++
	return p.images
}

func (p *fakePage) TextBlocks(clip model.Rect) []model.TextBlock {
	if p.unclipped {
		return p.blocks
	}
	return model.ClipBlocks(p.blocks, clip)
}

func letterPage() *fakePage {
	return &fakePage{bounds: rect(0, 0, 612, 792)}
}

func rect(x0, y0, x1, y1 float64) model.Rect {
	return model.Rect{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// makeLine creates a line with a single span covering its box
func makeLine(r model.Rect, dir model.Direction, txt string) model.TextLine {
	return model.TextLine{
		BBox:  r,
		Dir:   dir,
		Spans: []model.TextSpan{{Text: txt, BBox: r}},
	}
}

// makeBlock creates a single-line horizontal text block
func makeBlock(x0, y0, x1, y1 float64, txt string) model.TextBlock {
	r := rect(x0, y0, x1, y1)
	return model.TextBlock{BBox: r, Lines: []model.TextLine{makeLine(r, model.Horizontal, txt)}}
}

// makeVerticalBlock creates a single-line block of top-to-bottom text
func makeVerticalBlock(x0, y0, x1, y1 float64, txt string) model.TextBlock {
	r := rect(x0, y0, x1, y1)
	return model.TextBlock{BBox: r, Lines: []model.TextLine{makeLine(r, model.Vertical, txt)}}
}

// twoColumnBlocks returns three lines in a left column and three lines in a
// right column
func twoColumnBlocks() []model.TextBlock {
	return []model.TextBlock{
		makeBlock(50, 100, 280, 112, "Left column line one"),
		makeBlock(50, 120, 280, 132, "Left column line two"),
		makeBlock(50, 140, 280, 152, "Left column line three"),
		makeBlock(320, 100, 550, 112, "Right column line one"),
		makeBlock(320, 120, 550, 132, "Right column line two"),
		makeBlock(320, 140, 550, 152, "Right column line three"),
	}
}

func hasDuplicates(cols []Column) bool {
	seen := map[Column]bool{}
	for _, c := range cols {
		if seen[c] {
			return true
		}
		seen[c] = true
	}
	return false
}

func sameRects(a, b []model.Rect) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
