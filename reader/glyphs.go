package reader

import (
	"math"
	"strings"

	"github.com/tsawler/colbox/model"
	"github.com/tsawler/colbox/text"
)

// Glyph is one shown character in PDF user space: X, Y is the origin on the
// baseline and W the horizontal advance.
type Glyph struct {
	Font     string
	FontSize float64
	X        float64
	Y        float64
	W        float64
	S        string
}

// GroupConfig holds the thresholds used to assemble glyphs into lines and
// lines into blocks. All values are fractions of the font size or of the
// line height.
type GroupConfig struct {
	// WordGap is the horizontal gap, relative to the font size, above which
	// a space is inserted between two glyphs of a line
	// Default: 0.25
	WordGap float64

	// LineBreakGap is the horizontal gap, relative to the font size, above
	// which the next glyph starts a new line even on the same baseline
	// Default: 2.0
	LineBreakGap float64

	// BaselineTolerance is the baseline shift, relative to the font size,
	// still treated as the same line
	// Default: 0.3
	BaselineTolerance float64

	// BlockGap is the vertical gap between two lines, relative to the line
	// height, still treated as the same block
	// Default: 0.6
	BlockGap float64
}

// DefaultGroupConfig returns sensible default configuration
func DefaultGroupConfig() GroupConfig {
	return GroupConfig{
		WordGap:           0.25,
		LineBreakGap:      2.0,
		BaselineTolerance: 0.3,
		BlockGap:          0.6,
	}
}

const (
	ascent  = 0.8
	descent = 0.2
)

type runMode int

const (
	runUnknown runMode = iota
	runHorizontal
	runVertical
)

// lineRun accumulates the glyphs of one line
type lineRun struct {
	glyphs []Glyph
	spaces []bool // spaces[i] is true when a space precedes glyphs[i]
	mode   runMode
}

// GroupBlocks assembles glyphs, in content stream order, into text blocks in
// top-down coordinates of a page of the given height.
func GroupBlocks(glyphs []Glyph, pageHeight float64, config GroupConfig) []model.TextBlock {
	var lines []model.TextLine
	var cur *lineRun
	pendingSpace := false

	flush := func() {
		if cur != nil && len(cur.glyphs) > 0 {
			lines = append(lines, cur.build(pageHeight))
		}
		cur = nil
	}

	for _, g := range glyphs {
		if strings.TrimSpace(g.S) == "" {
			pendingSpace = true
			continue
		}
		if cur == nil {
			cur = &lineRun{}
			cur.add(g, false)
			pendingSpace = false
			continue
		}

		mode, gap := cur.continues(g, config)
		if mode == runUnknown {
			flush()
			cur = &lineRun{}
			cur.add(g, false)
			pendingSpace = false
			continue
		}
		if cur.mode == runUnknown {
			cur.mode = mode
		}
		cur.add(g, pendingSpace || (mode == runHorizontal && gap > config.WordGap*fontSize(g)))
		pendingSpace = false
	}
	flush()

	return groupLines(lines, config)
}

func (r *lineRun) add(g Glyph, space bool) {
	r.glyphs = append(r.glyphs, g)
	r.spaces = append(r.spaces, space)
}

// continues reports how g extends the run, and the horizontal gap to the
// previous glyph. runUnknown means g starts a new line.
func (r *lineRun) continues(g Glyph, config GroupConfig) (runMode, float64) {
	prev := r.glyphs[len(r.glyphs)-1]
	fs := fontSize(prev)
	gap := g.X - (prev.X + prev.W)

	horizontal := math.Abs(g.Y-prev.Y) <= config.BaselineTolerance*fs &&
		gap >= -0.5*fs && gap <= config.LineBreakGap*fs
	vertical := math.Abs(g.X-prev.X) <= config.BaselineTolerance*fs &&
		prev.Y-g.Y > 0 && prev.Y-g.Y <= 2*fs

	switch {
	case horizontal && r.mode != runVertical:
		return runHorizontal, gap
	case vertical && r.mode != runHorizontal:
		return runVertical, gap
	}
	return runUnknown, gap
}

// build converts the run into a line. Spans split where the font changes.
func (r *lineRun) build(pageHeight float64) model.TextLine {
	var line model.TextLine
	var sb strings.Builder
	var spanBox model.Rect
	spanStart := 0

	flushSpan := func(end int) {
		if end <= spanStart {
			return
		}
		line.Spans = append(line.Spans, model.TextSpan{
			Text: sb.String(),
			BBox: spanBox.FlipY(pageHeight),
		})
		sb.Reset()
		spanStart = end
	}

	for i, g := range r.glyphs {
		if i > spanStart && (g.Font != r.glyphs[i-1].Font || g.FontSize != r.glyphs[i-1].FontSize) {
			flushSpan(i)
		}
		if r.spaces[i] && i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(g.S)

		box := glyphBox(g)
		if i == spanStart {
			spanBox = box
		} else {
			spanBox = cover(spanBox, box)
		}
		if i == 0 {
			line.BBox = box
		} else {
			line.BBox = cover(line.BBox, box)
		}
	}
	flushSpan(len(r.glyphs))

	line.BBox = line.BBox.FlipY(pageHeight)

	first, last := r.glyphs[0], r.glyphs[len(r.glyphs)-1]
	var dx, dy float64
	switch r.mode {
	case runVertical:
		// PDF space grows upward; directions are reported top-down
		dy = first.Y - last.Y
	default:
		dx = last.X - first.X
	}
	line.Dir = text.WritingDirection(dx, dy, line.Text())
	return line
}

// groupLines joins consecutive horizontal lines that sit close below each
// other and overlap horizontally.
func groupLines(lines []model.TextLine, config GroupConfig) []model.TextBlock {
	var blocks []model.TextBlock
	for _, l := range lines {
		if n := len(blocks); n > 0 && joinsBlock(blocks[n-1], l, config) {
			blocks[n-1].Lines = append(blocks[n-1].Lines, l)
			blocks[n-1].BBox = cover(blocks[n-1].BBox, l.BBox)
			continue
		}
		blocks = append(blocks, model.TextBlock{BBox: l.BBox, Lines: []model.TextLine{l}})
	}
	return blocks
}

func joinsBlock(b model.TextBlock, l model.TextLine, config GroupConfig) bool {
	last := b.Lines[len(b.Lines)-1]
	if !last.Dir.IsHorizontal() || !l.Dir.IsHorizontal() {
		return false
	}
	if l.BBox.X0 >= b.BBox.X1 || b.BBox.X0 >= l.BBox.X1 {
		return false
	}
	h := last.BBox.Height()
	gap := l.BBox.Y0 - last.BBox.Y1
	return gap >= -0.5*h && gap <= config.BlockGap*h
}

// glyphBox is the box of a glyph in PDF space, from descent to ascent.
// Glyphs without an advance get half an em.
func glyphBox(g Glyph) model.Rect {
	fs := fontSize(g)
	w := g.W
	if w <= 0 {
		w = 0.5 * fs
	}
	return model.Rect{
		X0: g.X,
		Y0: g.Y - descent*fs,
		X1: g.X + w,
		Y1: g.Y + ascent*fs,
	}
}

// cover returns the smallest rectangle enclosing a and b. Unlike
// Rect.Union it keeps zero-width boxes.
func cover(a, b model.Rect) model.Rect {
	return model.Rect{
		X0: math.Min(a.X0, b.X0),
		Y0: math.Min(a.Y0, b.Y0),
		X1: math.Max(a.X1, b.X1),
		Y1: math.Max(a.Y1, b.Y1),
	}
}

func fontSize(g Glyph) float64 {
	if g.FontSize <= 0 {
		return 1
	}
	return g.FontSize
}
