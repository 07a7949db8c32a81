package layout

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/tsawler/colbox/model"
)

// PagePrimitives gives the column builder access to the geometric
// primitives of one page. Rectangles are in top-down page coordinates.
type PagePrimitives interface {
	// Bounds returns the page rectangle
	Bounds() model.Rect

	// Drawings returns the bounding boxes of the page's vector drawings
	Drawings() []model.Rect

	// Images returns the placements of embedded images
	Images() []model.Image

	// TextBlocks returns the text blocks intersecting clip
	TextBlocks(clip model.Rect) []model.TextBlock
}

// Column is one reconstructed column box
type Column struct {
	// Bounding box of the column
	BBox model.Rect `json:"bbox"`

	// Background is the 1-based index of the panel enclosing the column
	// (0 when the column is not on a panel)
	Background int `json:"background"`
}

// Rects returns the bounding boxes of the columns, in order
func Rects(columns []Column) []model.Rect {
	out := make([]model.Rect, len(columns))
	for i, c := range columns {
		out[i] = c.BBox
	}
	return out
}

// ColumnConfig holds configuration for column reconstruction
type ColumnConfig struct {
	// RowTolerance is the maximum difference between the bottom edges of
	// consecutive column boxes for the cleaner to treat them as one row
	// Default: 10 units
	RowTolerance float64

	// SuppressImageText drops text lying entirely on an embedded image
	// Default: true
	SuppressImageText bool

	// MinLineChars is the minimum number of non-whitespace characters for a
	// line to contribute to its block's candidate box
	// Default: 2
	MinLineChars int

	// SnapToGrid rounds every primitive rectangle outward to integer
	// coordinates before it is used
	// Default: true
	SnapToGrid bool
}

// DefaultColumnConfig returns sensible default configuration
func DefaultColumnConfig() ColumnConfig {
	return ColumnConfig{
		RowTolerance:      10.0,
		SuppressImageText: true,
		MinLineChars:      2,
		SnapToGrid:        true,
	}
}

// ColumnBuilder reconstructs column boxes from page primitives.
// A ColumnBuilder holds only configuration and may be shared between
// goroutines; every Build call owns its own state.
type ColumnBuilder struct {
	config ColumnConfig
	log    logrus.FieldLogger
}

// NewColumnBuilder creates a new column builder with default configuration
func NewColumnBuilder() *ColumnBuilder {
	return NewColumnBuilderWithConfig(DefaultColumnConfig())
}

// NewColumnBuilderWithConfig creates a column builder with custom configuration
func NewColumnBuilderWithConfig(config ColumnConfig) *ColumnBuilder {
	return &ColumnBuilder{
		config: config,
		log:    discardLogger(),
	}
}

// WithLogger returns a copy of the builder that logs its decisions to l
func (b *ColumnBuilder) WithLogger(l logrus.FieldLogger) *ColumnBuilder {
	nb := *b
	if l == nil {
		l = discardLogger()
	}
	nb.log = l
	return &nb
}

// Config returns the builder's configuration
func (b *ColumnBuilder) Config() ColumnConfig {
	return b.config
}

// Build reconstructs the column boxes of the text inside clip. The zero
// rectangle selects the whole page.
//
// The result honors the merge gates (no merge across columns, backgrounds
// or obstacles) and contains no duplicates, but it is not ordered globally;
// callers impose their own reading order.
func (b *ColumnBuilder) Build(page PagePrimitives, clip model.Rect) ([]Column, error) {
	if page == nil {
		return nil, errors.New("no page primitives")
	}
	if clip == model.EmptyRect {
		clip = page.Bounds()
	}
	if err := clip.Validate(); err != nil {
		return nil, fmt.Errorf("clip: %w", err)
	}
	if clip.IsEmpty() {
		b.log.WithField("clip", clip.String()).Debug("clip has no area")
		return nil, nil
	}

	blocks := page.TextBlocks(clip)
	if len(blocks) == 0 {
		b.log.Debug("no text blocks in clip")
		return nil, nil
	}
	for i, blk := range blocks {
		if err := blk.Validate(); err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
	}

	var images []model.Rect
	if b.config.SuppressImageText {
		for i, img := range page.Images() {
			if err := img.BBox.Validate(); err != nil {
				return nil, fmt.Errorf("image %d: %w", i, err)
			}
			images = append(images, b.snap(img.BBox))
		}
	}

	candidates, obstacles := b.collect(blocks, images)
	if len(candidates) == 0 {
		b.log.WithField("obstacles", len(obstacles)).Debug("no horizontal text candidates")
		return nil, nil
	}

	drawings := page.Drawings()
	panels := make([]model.Rect, 0, len(drawings))
	for i, d := range drawings {
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("drawing %d: %w", i, err)
		}
		panels = append(panels, b.snap(d))
	}

	return b.mergeColumns(candidates, panels, obstacles), nil
}

// MergeColumns runs classification, merging and cleaning over candidate
// rectangles that were already built by the caller.
func (b *ColumnBuilder) MergeColumns(candidates, panels, obstacles []model.Rect) ([]Column, error) {
	for _, group := range [][]model.Rect{candidates, panels, obstacles} {
		for _, r := range group {
			if err := r.Validate(); err != nil {
				return nil, err
			}
		}
	}
	var nonEmpty []model.Rect
	for _, c := range candidates {
		if !c.IsEmpty() {
			nonEmpty = append(nonEmpty, c)
		}
	}
	if len(nonEmpty) == 0 {
		return nil, nil
	}
	return b.mergeColumns(nonEmpty, panels, obstacles), nil
}

// MergeCandidates merges candidates whose background index has already
// been assigned. Candidates with an empty bounding box are ignored.
func (b *ColumnBuilder) MergeCandidates(candidates []Column, obstacles []model.Rect) ([]Column, error) {
	for _, r := range obstacles {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("obstacle: %w", err)
		}
	}
	tagged := make([]Column, 0, len(candidates))
	for _, c := range candidates {
		if err := c.BBox.Validate(); err != nil {
			return nil, fmt.Errorf("candidate: %w", err)
		}
		if !c.BBox.IsEmpty() {
			tagged = append(tagged, c)
		}
	}
	if len(tagged) == 0 {
		return nil, nil
	}
	sortCandidates(tagged)
	merged := newMerger(obstacles, b.log).run(tagged)
	return cleanColumns(merged, b.config.RowTolerance), nil
}

func (b *ColumnBuilder) mergeColumns(candidates, panels, obstacles []model.Rect) []Column {
	panels = append([]model.Rect(nil), panels...)
	sortPanels(panels)
	bg := NewBackgroundClassifier(panels)

	tagged := make([]Column, len(candidates))
	for i, c := range candidates {
		tagged[i] = Column{BBox: c, Background: bg.Classify(c)}
	}
	sortCandidates(tagged)

	b.log.WithFields(logrus.Fields{
		"candidates": len(tagged),
		"panels":     len(panels),
		"obstacles":  len(obstacles),
	}).Debug("merging column candidates")

	merged := newMerger(obstacles, b.log).run(tagged)
	cleaned := cleanColumns(merged, b.config.RowTolerance)

	b.log.WithFields(logrus.Fields{
		"merged":  len(merged),
		"columns": len(cleaned),
	}).Debug("column boxes built")
	return cleaned
}

func (b *ColumnBuilder) snap(r model.Rect) model.Rect {
	if b.config.SnapToGrid {
		return r.Round()
	}
	return r
}

// sortPanels orders panels by top, then left edge
func sortPanels(panels []model.Rect) {
	sort.SliceStable(panels, func(i, j int) bool {
		if panels[i].Y0 != panels[j].Y0 {
			return panels[i].Y0 < panels[j].Y0
		}
		return panels[i].X0 < panels[j].X0
	})
}

// sortCandidates orders candidates by background, top, then left edge
func sortCandidates(cands []Column) {
	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.Background != b.Background {
			return a.Background < b.Background
		}
		if a.BBox.Y0 != b.BBox.Y0 {
			return a.BBox.Y0 < b.BBox.Y0
		}
		return a.BBox.X0 < b.BBox.X0
	})
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
