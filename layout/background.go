package layout

import (
	"github.com/tsawler/colbox/internal/spatial"
	"github.com/tsawler/colbox/model"
)

// BackgroundClassifier assigns rectangles to the panel that encloses them.
// The panel order is fixed when the classifier is created.
type BackgroundClassifier struct {
	panels []model.Rect
	index  *spatial.Index
}

// NewBackgroundClassifier creates a classifier over panels, which must
// already be in their final order (top, then left).
func NewBackgroundClassifier(panels []model.Rect) *BackgroundClassifier {
	return &BackgroundClassifier{
		panels: panels,
		index:  spatial.NewIndex(panels),
	}
}

// Classify returns the 1-based position of the first panel containing r,
// or 0 if no panel does.
func (c *BackgroundClassifier) Classify(r model.Rect) int {
	return c.index.FirstContaining(r) + 1
}

// Panel returns the panel for a background index, and false for index 0
// or an out-of-range index.
func (c *BackgroundClassifier) Panel(background int) (model.Rect, bool) {
	if background < 1 || background > len(c.panels) {
		return model.EmptyRect, false
	}
	return c.panels[background-1], true
}
