// Package drawing reduces vector-graphics paths to the bounding boxes the
// column builder treats as background panels.
package drawing

import (
	"fmt"
	"math"

	"github.com/tsawler/colbox/model"
)

// SegmentType defines the type of path segment
type SegmentType int

const (
	// MoveTo starts a new subpath
	MoveTo SegmentType = iota
	// LineTo draws a line to a point
	LineTo
	// CurveTo draws a cubic Bézier curve
	CurveTo
	// ClosePath closes the current subpath
	ClosePath
)

// Segment represents a single segment of a path
type Segment struct {
	Type SegmentType

	// For MoveTo and LineTo: single point
	// For CurveTo: control point 1, control point 2, end point
	Points []model.Point
}

// Path is one vector drawing: every subpath painted by a single fill or
// stroke operation.
type Path struct {
	Segments []Segment

	current      model.Point
	subpathStart model.Point
	hasCurrent   bool
}

// NewPath creates a new empty path
func NewPath() *Path {
	return &Path{}
}

// MoveTo starts a new subpath at the specified point
func (p *Path) MoveTo(x, y float64) {
	pt := model.Point{X: x, Y: y}
	p.Segments = append(p.Segments, Segment{Type: MoveTo, Points: []model.Point{pt}})
	p.current = pt
	p.subpathStart = pt
	p.hasCurrent = true
}

// LineTo appends a line segment from the current point to (x, y)
func (p *Path) LineTo(x, y float64) {
	if !p.hasCurrent {
		p.MoveTo(x, y)
		return
	}
	pt := model.Point{X: x, Y: y}
	p.Segments = append(p.Segments, Segment{Type: LineTo, Points: []model.Point{pt}})
	p.current = pt
}

// CurveTo appends a cubic Bézier curve with control points (x1, y1) and
// (x2, y2) ending at (x3, y3)
func (p *Path) CurveTo(x1, y1, x2, y2, x3, y3 float64) {
	if !p.hasCurrent {
		p.MoveTo(x1, y1)
	}
	p.Segments = append(p.Segments, Segment{
		Type: CurveTo,
		Points: []model.Point{
			{X: x1, Y: y1},
			{X: x2, Y: y2},
			{X: x3, Y: y3},
		},
	})
	p.current = model.Point{X: x3, Y: y3}
}

// ClosePath closes the current subpath
func (p *Path) ClosePath() {
	if !p.hasCurrent {
		return
	}
	p.Segments = append(p.Segments, Segment{Type: ClosePath})
	p.current = p.subpathStart
}

// Rectangle appends a rectangle as a complete subpath
func (p *Path) Rectangle(x, y, width, height float64) {
	p.MoveTo(x, y)
	p.LineTo(x+width, y)
	p.LineTo(x+width, y+height)
	p.LineTo(x, y+height)
	p.ClosePath()
}

// IsEmpty returns true if the path has no segments
func (p *Path) IsEmpty() bool {
	return len(p.Segments) == 0
}

// Bounds returns the bounding box of every point of the path, Bézier control
// points included. Straight rules produce a zero-height or zero-width box,
// which is empty and so never encloses text.
func (p *Path) Bounds() model.Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, seg := range p.Segments {
		for _, pt := range seg.Points {
			minX = math.Min(minX, pt.X)
			minY = math.Min(minY, pt.Y)
			maxX = math.Max(maxX, pt.X)
			maxY = math.Max(maxY, pt.Y)
		}
	}
	if math.IsInf(minX, 1) {
		return model.EmptyRect
	}
	return model.Rect{X0: minX, Y0: minY, X1: maxX, Y1: maxY}
}

// Apply replays a single path-construction operator onto the path. The
// operator names follow the PDF content-stream operators: "m", "l", "c",
// "v", "y", "h" and "re".
func (p *Path) Apply(op string, operands []float64) error {
	need := map[string]int{"m": 2, "l": 2, "c": 6, "v": 4, "y": 4, "h": 0, "re": 4}
	n, ok := need[op]
	if !ok {
		return fmt.Errorf("unknown path operator %q", op)
	}
	if len(operands) != n {
		return fmt.Errorf("path operator %q expects %d operands, got %d", op, n, len(operands))
	}
	for _, v := range operands {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite operand for %q", model.ErrInvalidGeometry, op)
		}
	}

	o := operands
	switch op {
	case "m":
		p.MoveTo(o[0], o[1])
	case "l":
		p.LineTo(o[0], o[1])
	case "c":
		p.CurveTo(o[0], o[1], o[2], o[3], o[4], o[5])
	case "v":
		if p.hasCurrent {
			p.CurveTo(p.current.X, p.current.Y, o[0], o[1], o[2], o[3])
		}
	case "y":
		if p.hasCurrent {
			p.CurveTo(o[0], o[1], o[2], o[3], o[2], o[3])
		}
	case "h":
		p.ClosePath()
	case "re":
		p.Rectangle(o[0], o[1], o[2], o[3])
	}
	return nil
}
