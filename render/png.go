package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"strconv"

	"golang.org/x/image/colornames"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/tsawler/colbox/model"
)

// Colors used by the overlay
var (
	BackgroundColor = colornames.White
	PanelColor      = colornames.Lavender
	ImageColor      = colornames.Lightblue
	BlockColor      = colornames.Silver
	ObstacleColor   = colornames.Red
	ColumnColor     = colornames.Green
	LabelColor      = colornames.Darkgreen
)

// Config holds configuration for image rendering
type Config struct {
	// Scale is the number of pixels per page unit
	// Default: 1.0
	Scale float64

	// Labels numbers each column box in output order
	// Default: true
	Labels bool
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		Scale:  1.0,
		Labels: true,
	}
}

// Image draws the overlay. Panels and images are filled, blocks and
// obstacles outlined, and columns outlined on top.
func Image(ov Overlay, cfg Config) (*image.RGBA, error) {
	if cfg.Scale <= 0 || math.IsNaN(cfg.Scale) || math.IsInf(cfg.Scale, 0) {
		return nil, fmt.Errorf("invalid scale %g", cfg.Scale)
	}
	if err := ov.Bounds.Validate(); err != nil {
		return nil, fmt.Errorf("page bounds: %w", err)
	}
	if ov.Bounds.IsEmpty() {
		return nil, fmt.Errorf("%w: empty page bounds", model.ErrInvalidGeometry)
	}

	p := painter{origin: ov.Bounds, scale: cfg.Scale}
	w := int(math.Ceil(ov.Bounds.Width() * cfg.Scale))
	h := int(math.Ceil(ov.Bounds.Height() * cfg.Scale))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(BackgroundColor), image.Point{}, draw.Src)

	for _, r := range ov.Panels {
		fill(img, p.rect(r), PanelColor)
	}
	for _, r := range ov.Images {
		fill(img, p.rect(r), ImageColor)
	}
	for _, r := range ov.Blocks {
		stroke(img, p.rect(r), BlockColor, 1)
	}
	for _, r := range ov.Obstacles {
		stroke(img, p.rect(r), ObstacleColor, 1)
	}
	for i, c := range ov.Columns {
		pr := p.rect(c.BBox)
		stroke(img, pr, ColumnColor, 2)
		if cfg.Labels {
			label(img, pr, strconv.Itoa(i+1))
		}
	}
	return img, nil
}

// PNG draws the overlay and writes it as a PNG image
func PNG(w io.Writer, ov Overlay, cfg Config) error {
	img, err := Image(ov, cfg)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// painter maps page rectangles to pixel rectangles
type painter struct {
	origin model.Rect
	scale  float64
}

func (p painter) rect(r model.Rect) image.Rectangle {
	return image.Rect(
		int(math.Floor((r.X0-p.origin.X0)*p.scale)),
		int(math.Floor((r.Y0-p.origin.Y0)*p.scale)),
		int(math.Ceil((r.X1-p.origin.X0)*p.scale)),
		int(math.Ceil((r.Y1-p.origin.Y0)*p.scale)),
	)
}

func fill(img draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(img, r.Intersect(img.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
}

// stroke outlines r with lines of the given width drawn inside it
func stroke(img draw.Image, r image.Rectangle, c color.Color, width int) {
	if r.Empty() {
		return
	}
	fill(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+width), c)
	fill(img, image.Rect(r.Min.X, r.Max.Y-width, r.Max.X, r.Max.Y), c)
	fill(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+width, r.Max.Y), c)
	fill(img, image.Rect(r.Max.X-width, r.Min.Y, r.Max.X, r.Max.Y), c)
}

func label(img draw.Image, r image.Rectangle, s string) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(LabelColor),
		Face: face,
		Dot:  fixed.P(r.Min.X+4, r.Min.Y+face.Ascent+3),
	}
	d.DrawString(s)
}
