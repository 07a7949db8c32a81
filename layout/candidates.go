package layout

import (
	"github.com/tsawler/colbox/internal/spatial"
	"github.com/tsawler/colbox/model"
	"github.com/tsawler/colbox/text"
)

// collect splits text blocks into merge candidates and obstacles.
//
// Only the first line's direction is inspected: a block that starts with a
// non-horizontal line becomes an obstacle as a whole, whatever its other
// lines do.
func (b *ColumnBuilder) collect(blocks []model.TextBlock, images []model.Rect) (candidates, obstacles []model.Rect) {
	imageIndex := spatial.NewIndex(images)
	onImage := func(r model.Rect) bool {
		return b.config.SuppressImageText && imageIndex.FirstContaining(r) >= 0
	}

	for _, blk := range blocks {
		if len(blk.Lines) == 0 {
			continue
		}

		bbox := b.snap(blk.BBox)
		if onImage(bbox) {
			continue
		}

		if !blk.Lines[0].Dir.IsHorizontal() {
			obstacles = append(obstacles, bbox)
			continue
		}

		union := model.EmptyRect
		for _, line := range blk.Lines {
			spans := make([]string, len(line.Spans))
			for i, s := range line.Spans {
				spans[i] = s.Text
			}
			if text.LineLength(spans) < b.config.MinLineChars {
				continue
			}
			union = union.Union(b.snap(line.BBox))
		}

		if union.IsEmpty() || onImage(union) {
			continue
		}
		candidates = append(candidates, union)
	}
	return candidates, obstacles
}
