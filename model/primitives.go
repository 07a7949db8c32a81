package model

import (
	"fmt"
	"math"
	"strings"
)

// Direction is the unit writing-direction vector of a text line.
// Horizontal left-to-right text has Direction{1, 0}.
type Direction struct {
	Cos float64
	Sin float64
}

// Horizontal is the writing direction of ordinary horizontal text
var Horizontal = Direction{Cos: 1, Sin: 0}

// Vertical is the writing direction of top-to-bottom text
var Vertical = Direction{Cos: 0, Sin: 1}

const directionEpsilon = 1e-3

// IsHorizontal reports whether d is (within rounding) the horizontal
// left-to-right direction.
func (d Direction) IsHorizontal() bool {
	return math.Abs(d.Cos-1) < directionEpsilon && math.Abs(d.Sin) < directionEpsilon
}

// TextSpan is a run of text with a single bounding box
type TextSpan struct {
	Text string
	BBox Rect
}

// TextLine is one line of text with its writing direction
type TextLine struct {
	BBox  Rect
	Dir   Direction
	Spans []TextSpan
}

// Text returns the concatenated span text
func (l TextLine) Text() string {
	var sb strings.Builder
	for _, s := range l.Spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// TextBlock is a group of lines the collector considers one block of text
type TextBlock struct {
	BBox  Rect
	Lines []TextLine
}

// Text returns the block text with lines separated by newlines
func (b TextBlock) Text() string {
	lines := make([]string, 0, len(b.Lines))
	for _, l := range b.Lines {
		lines = append(lines, l.Text())
	}
	return strings.Join(lines, "\n")
}

// Image marks the placement of an embedded image on the page
type Image struct {
	ID   int
	BBox Rect
}

// Validate checks the block, line and span rectangles
func (b TextBlock) Validate() error {
	if err := b.BBox.Validate(); err != nil {
		return fmt.Errorf("text block: %w", err)
	}
	for i, l := range b.Lines {
		if err := l.BBox.Validate(); err != nil {
			return fmt.Errorf("text block line %d: %w", i, err)
		}
		for j, s := range l.Spans {
			if err := s.BBox.Validate(); err != nil {
				return fmt.Errorf("text block line %d span %d: %w", i, j, err)
			}
		}
	}
	return nil
}

// ClipBlocks keeps the lines whose bounding box intersects clip and
// recomputes each block's bounding box from the lines it kept. Blocks left
// without lines are dropped. The zero rectangle keeps everything; any other
// clip without area keeps nothing.
func ClipBlocks(blocks []TextBlock, clip Rect) []TextBlock {
	if clip == EmptyRect {
		return blocks
	}
	if clip.IsEmpty() {
		return nil
	}
	out := make([]TextBlock, 0, len(blocks))
	for _, b := range blocks {
		if !b.BBox.Intersects(clip) {
			continue
		}
		kept := TextBlock{}
		for _, l := range b.Lines {
			if !l.BBox.Intersects(clip) {
				continue
			}
			kept.Lines = append(kept.Lines, l)
			kept.BBox = kept.BBox.Union(l.BBox)
		}
		if len(kept.Lines) > 0 {
			out = append(out, kept)
		}
	}
	return out
}
