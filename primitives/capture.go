package primitives

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/tsawler/colbox/model"
)

// Source is any page that can be captured into a primitives document
type Source interface {
	Bounds() model.Rect
	Drawings() []model.Rect
	Images() []model.Image
	TextBlocks(clip model.Rect) []model.TextBlock
}

// Capture converts the primitives of a page into their serialized form.
// Drawings are stored by their bounding rectangle.
func Capture(src Source) PageData {
	bounds := src.Bounds()
	pd := PageData{Width: bounds.Width(), Height: bounds.Height()}

	for _, d := range src.Drawings() {
		b := boxOf(d)
		pd.Drawings = append(pd.Drawings, Drawing{Rect: &b})
	}
	for _, img := range src.Images() {
		pd.Images = append(pd.Images, ImageData{ID: img.ID, BBox: boxOf(img.BBox)})
	}
	for _, blk := range src.TextBlocks(bounds) {
		bb := boxOf(blk.BBox)
		bd := BlockData{BBox: &bb}
		for _, l := range blk.Lines {
			lb := boxOf(l.BBox)
			dir := [2]float64{l.Dir.Cos, l.Dir.Sin}
			ld := LineData{BBox: &lb, Dir: &dir}
			for _, s := range l.Spans {
				ld.Spans = append(ld.Spans, SpanData{Text: s.Text, BBox: boxOf(s.BBox)})
			}
			bd.Lines = append(bd.Lines, ld)
		}
		pd.Blocks = append(pd.Blocks, bd)
	}
	return pd
}

// Encode writes pages as an indented primitives document
func Encode(w io.Writer, pages []PageData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(struct {
		Pages []PageData `json:"pages"`
	}{Pages: pages}); err != nil {
		return fmt.Errorf("failed to encode primitives: %w", err)
	}
	return nil
}

func boxOf(r model.Rect) Box {
	return Box{r.X0, r.Y0, r.X1, r.Y1}
}
