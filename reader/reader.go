package reader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ledongthuc/pdf"
	"github.com/sirupsen/logrus"

	"github.com/tsawler/colbox/drawing"
	"github.com/tsawler/colbox/model"
)

// ErrPageOutOfRange is returned when a page number is outside the document
var ErrPageOutOfRange = errors.New("page out of range")

// letter is the page size used when no MediaBox can be found
var letter = model.Rect{X0: 0, Y0: 0, X1: 612, Y1: 792}

// maxParentDepth bounds the walk up the page tree for inherited attributes
const maxParentDepth = 32

// Reader represents a PDF file opened for primitive collection
type Reader struct {
	file   *os.File
	pdf    *pdf.Reader
	config GroupConfig
	log    logrus.FieldLogger
}

// NewReader creates a reader over PDF data of the given size
func NewReader(r io.ReaderAt, size int64) (*Reader, error) {
	pr, err := pdf.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PDF: %w", err)
	}
	return &Reader{
		pdf:    pr,
		config: DefaultGroupConfig(),
		log:    discardLogger(),
	}, nil
}

// Open opens a PDF file and returns a Reader
func Open(filename string) (*Reader, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	reader, err := NewReader(file, info.Size())
	if err != nil {
		file.Close()
		return nil, err
	}
	reader.file = file
	return reader, nil
}

// Close closes the PDF file
func (r *Reader) Close() error {
	if r.file != nil {
		err := r.file.Close()
		r.file = nil
		return err
	}
	return nil
}

// SetLogger sets the logger used for per-page diagnostics
func (r *Reader) SetLogger(l logrus.FieldLogger) {
	if l == nil {
		l = discardLogger()
	}
	r.log = l
}

// SetGroupConfig sets the thresholds used to group glyphs into blocks
func (r *Reader) SetGroupConfig(config GroupConfig) {
	r.config = config
}

// PageCount returns the number of pages in the PDF
func (r *Reader) PageCount() int {
	return r.pdf.NumPage()
}

// Page collects the primitives of page n (1-based)
func (r *Reader) Page(n int) (page *Page, err error) {
	if n < 1 || n > r.pdf.NumPage() {
		return nil, fmt.Errorf("%w: page %d of %d", ErrPageOutOfRange, n, r.pdf.NumPage())
	}
	p := r.pdf.Page(n)
	if p.V.IsNull() {
		return nil, fmt.Errorf("%w: page %d has no page object", ErrPageOutOfRange, n)
	}

	// the PDF library panics on malformed content streams
	defer func() {
		if rec := recover(); rec != nil {
			page = nil
			err = fmt.Errorf("failed to read content of page %d: %v", n, rec)
		}
	}()

	media := mediaBox(p.V)
	content := p.Content()

	glyphs := make([]Glyph, 0, len(content.Text))
	for _, t := range content.Text {
		glyphs = append(glyphs, Glyph{
			Font:     t.Font,
			FontSize: t.FontSize,
			X:        t.X - media.X0,
			Y:        t.Y - media.Y0,
			W:        t.W,
			S:        t.S,
		})
	}

	var drawings []model.Rect
	for _, rc := range content.Rect {
		path := drawing.NewPath()
		path.Rectangle(rc.Min.X-media.X0, rc.Min.Y-media.Y0, rc.Max.X-rc.Min.X, rc.Max.Y-rc.Min.Y)
		bounds := path.Bounds()
		if bounds.IsEmpty() {
			continue
		}
		drawings = append(drawings, bounds.FlipY(media.Height()))
	}

	placed, err := collectImages(p)
	if err != nil {
		r.log.WithField("page", n).WithError(err).Warn("image placements skipped")
	}
	var images []model.Image
	for _, img := range placed {
		bbox := img.BBox
		bbox.X0 -= media.X0
		bbox.X1 -= media.X0
		bbox.Y0 -= media.Y0
		bbox.Y1 -= media.Y0
		if bbox.IsEmpty() {
			continue
		}
		images = append(images, model.Image{ID: img.ID, BBox: bbox.FlipY(media.Height())})
	}

	page = NewPage(
		model.Rect{X1: media.Width(), Y1: media.Height()},
		GroupBlocks(glyphs, media.Height(), r.config),
		drawings,
		images,
	)

	r.log.WithFields(logrus.Fields{
		"page":     n,
		"glyphs":   len(glyphs),
		"blocks":   len(page.blocks),
		"drawings": len(drawings),
		"images":   len(images),
	}).Debug("page primitives collected")

	return page, nil
}

// collectImages scans the page for image placements. A malformed stream
// only costs the images, not the page.
func collectImages(p pdf.Page) (images []model.Image, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			images = nil
			err = fmt.Errorf("failed to scan images: %v", rec)
		}
	}()
	return scanImages(p), nil
}

// mediaBox returns the page's MediaBox in PDF user space, walking up the
// page tree for an inherited one.
func mediaBox(v pdf.Value) model.Rect {
	for depth := 0; depth < maxParentDepth && !v.IsNull(); depth++ {
		if box, ok := parseBox(v.Key("MediaBox")); ok {
			return box
		}
		v = v.Key("Parent")
	}
	return letter
}

func parseBox(v pdf.Value) (model.Rect, bool) {
	if v.Kind() != pdf.Array || v.Len() != 4 {
		return model.Rect{}, false
	}
	var c [4]float64
	for i := range c {
		e := v.Index(i)
		switch e.Kind() {
		case pdf.Integer:
			c[i] = float64(e.Int64())
		case pdf.Real:
			c[i] = e.Float64()
		default:
			return model.Rect{}, false
		}
	}
	box := model.NewRectFromPoints(model.Point{X: c[0], Y: c[1]}, model.Point{X: c[2], Y: c[3]})
	if box.IsEmpty() {
		return model.Rect{}, false
	}
	return box, true
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
