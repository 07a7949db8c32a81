package layout

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/tsawler/colbox/model"
	"github.com/tsawler/colbox/text"
)

// PageText is the text of a page walked in column order
type PageText struct {
	// Paragraphs from the main columns, left column first
	Paragraphs []string `json:"paragraphs"`

	// Other holds text from boxes too wide or too flat to be main columns
	// (banners, captions, headers spanning several columns)
	Other []string `json:"other"`

	// Images lists the images met in the clips with the text printed on them
	Images []ImageText `json:"images"`
}

// ImageText is the text lying on one embedded image
type ImageText struct {
	ID   int      `json:"xref"`
	Text []string `json:"text"`
}

// ReadingOrderConfig holds configuration for reading order extraction
type ReadingOrderConfig struct {
	// Margin is cut from the top and the bottom of the page when no clip is
	// given, to skip running headers and footers
	// Default: 50 units
	Margin float64

	// MainWidthRatio: a box narrower than this multiple of the median box
	// width is a main column
	// Default: 1.5
	MainWidthRatio float64

	// MainAspectRatio: a box whose height/width exceeds this is a main
	// column whatever its width
	// Default: 0.6
	MainAspectRatio float64
}

// DefaultReadingOrderConfig returns sensible default configuration
func DefaultReadingOrderConfig() ReadingOrderConfig {
	return ReadingOrderConfig{
		Margin:          50.0,
		MainWidthRatio:  1.5,
		MainAspectRatio: 0.6,
	}
}

// ReadingOrderDetector walks a page column by column and clusters the text
// of each column into paragraphs
type ReadingOrderDetector struct {
	config  ReadingOrderConfig
	builder *ColumnBuilder
	log     logrus.FieldLogger
}

// NewReadingOrderDetector creates a detector with default configuration
func NewReadingOrderDetector() *ReadingOrderDetector {
	return NewReadingOrderDetectorWithConfig(DefaultReadingOrderConfig(), NewColumnBuilder())
}

// NewReadingOrderDetectorWithConfig creates a detector using the given
// configuration and column builder
func NewReadingOrderDetectorWithConfig(config ReadingOrderConfig, builder *ColumnBuilder) *ReadingOrderDetector {
	if builder == nil {
		builder = NewColumnBuilder()
	}
	return &ReadingOrderDetector{
		config:  config,
		builder: builder,
		log:     builder.log,
	}
}

// SplitMainColumns separates main text columns from outlier boxes, judging
// widths against the true median (upper middle of the sorted widths). Main
// columns are returned sorted by left edge; outliers keep their order.
func (d *ReadingOrderDetector) SplitMainColumns(boxes []model.Rect) (main, other []model.Rect) {
	if len(boxes) == 0 {
		return nil, nil
	}

	widths := make([]float64, len(boxes))
	for i, b := range boxes {
		widths[i] = b.Width()
	}
	sort.Float64s(widths)
	median := widths[len(widths)/2]

	for _, b := range boxes {
		if b.Width()/median < d.config.MainWidthRatio || b.Height()/b.Width() > d.config.MainAspectRatio {
			main = append(main, b)
		} else {
			other = append(other, b)
		}
	}
	sort.SliceStable(main, func(i, j int) bool {
		return main[i].X0 < main[j].X0
	})
	return main, other
}

// rawBlock is a page text block in the form the paragraph pass consumes
type rawBlock struct {
	bbox model.Rect
	text string
}

// Extract walks the text of page clip by clip. With no clips the page
// minus the configured top and bottom margin is used. Text consumed by one
// clip is not repeated by later clips.
func (d *ReadingOrderDetector) Extract(page PagePrimitives, clips ...model.Rect) (*PageText, error) {
	result := &PageText{
		Paragraphs: []string{},
		Other:      []string{},
		Images:     []ImageText{},
	}
	if page == nil {
		return result, nil
	}

	bounds := page.Bounds()
	var blocks []rawBlock
	for _, b := range page.TextBlocks(bounds) {
		blocks = append(blocks, rawBlock{bbox: b.BBox, text: text.CollapseWhitespace(b.Text())})
	}
	if len(blocks) == 0 {
		return result, nil
	}

	if len(clips) == 0 {
		clip := bounds
		clip.Y0 += d.config.Margin
		clip.Y1 -= d.config.Margin
		clips = []model.Rect{clip}
	}

	images := page.Images()
	consumed := make([]bool, len(blocks))
	reported := make(map[int]bool)

	for ci, clip := range clips {
		remaining := 0
		for _, c := range consumed {
			if !c {
				remaining++
			}
		}
		if remaining == 0 {
			break
		}
		// image text is drawn from the blocks left when the clip starts
		consumedBefore := append([]bool(nil), consumed...)

		columns, err := d.builder.Build(page, clip)
		if err != nil {
			return nil, fmt.Errorf("clip %d: %w", ci, err)
		}
		if len(columns) == 0 {
			continue
		}

		main, other := d.SplitMainColumns(Rects(columns))
		d.log.WithFields(logrus.Fields{
			"clip":  clip.String(),
			"main":  len(main),
			"other": len(other),
		}).Debug("columns classified")

		for _, box := range other {
			for _, i := range takeIntersecting(blocks, consumed, box) {
				result.Other = appendText(result.Other, blocks[i].text)
			}
		}

		for _, box := range main {
			result.Paragraphs = append(result.Paragraphs, clusterParagraphs(blocks, consumed, box)...)
		}

		for _, img := range images {
			if reported[img.ID] || !img.BBox.Intersects(clip) {
				continue
			}
			reported[img.ID] = true
			it := ImageText{ID: img.ID, Text: []string{}}
			for i, blk := range blocks {
				if consumedBefore[i] || !img.BBox.Contains(blk.bbox) {
					continue
				}
				it.Text = appendText(it.Text, blk.text)
				consumed[i] = true
			}
			result.Images = append(result.Images, it)
		}
	}

	return result, nil
}

// takeIntersecting marks and returns the unconsumed blocks intersecting box,
// ordered by top edge.
func takeIntersecting(blocks []rawBlock, consumed []bool, box model.Rect) []int {
	var idx []int
	for i, b := range blocks {
		if !consumed[i] && b.bbox.Intersects(box) {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return blocks[idx[a]].bbox.Y0 < blocks[idx[b]].bbox.Y0
	})
	for _, i := range idx {
		consumed[i] = true
	}
	return idx
}

// clusterParagraphs turns the unconsumed blocks of one column into
// paragraphs: the topmost block absorbs every remaining block that
// intersects it, and the rest are processed again.
func clusterParagraphs(blocks []rawBlock, consumed []bool, column model.Rect) []string {
	pending := takeIntersecting(blocks, consumed, column)

	var paragraphs []string
	for len(pending) > 0 {
		head := blocks[pending[0]]
		parts := []string{head.text}
		var rest []int
		for _, i := range pending[1:] {
			if head.bbox.Intersects(blocks[i].bbox) {
				parts = append(parts, blocks[i].text)
			} else {
				rest = append(rest, i)
			}
		}
		paragraphs = appendText(paragraphs, strings.Join(nonEmpty(parts), " "))
		pending = rest
	}
	return paragraphs
}

func nonEmpty(parts []string) []string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func appendText(list []string, s string) []string {
	if s == "" {
		return list
	}
	return append(list, s)
}
