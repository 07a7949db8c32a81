// Package primitives reads page primitives from a JSON document, so that
// column reconstruction can run on output captured from any PDF toolkit.
//
// A document looks like:
//
//	{"pages": [{
//	    "width": 612, "height": 792,
//	    "drawings": [{"items": [["re", 40, 90, 260, 110]]}],
//	    "images": [{"id": 7, "bbox": [300, 600, 500, 700]}],
//	    "blocks": [{"lines": [{"dir": [1, 0],
//	        "spans": [{"text": "Hello", "bbox": [72, 82, 102, 94]}]}]}]
//	}]}
//
// Coordinates are top-down. Drawing items use the path operators "m", "l",
// "c", "v", "y", "h" and "re". Line and block boxes may be omitted; they are
// then derived from their children.
package primitives

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tsawler/colbox/drawing"
	"github.com/tsawler/colbox/model"
)

// ErrPageOutOfRange is returned when a page number is outside the document
var ErrPageOutOfRange = errors.New("page out of range")

// Box is a rectangle encoded as [x0, y0, x1, y1]
type Box [4]float64

// Rect converts the box to a model rectangle
func (b Box) Rect() model.Rect {
	return model.Rect{X0: b[0], Y0: b[1], X1: b[2], Y1: b[3]}
}

// Item is one path operator with its operands, encoded as ["op", n...]
type Item struct {
	Op       string
	Operands []float64
}

// UnmarshalJSON decodes an item from its array form
func (it *Item) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("drawing item: %w", err)
	}
	if len(raw) == 0 {
		return errors.New("drawing item: empty array")
	}
	if err := json.Unmarshal(raw[0], &it.Op); err != nil {
		return fmt.Errorf("drawing item operator: %w", err)
	}
	it.Operands = make([]float64, len(raw)-1)
	for i, r := range raw[1:] {
		if err := json.Unmarshal(r, &it.Operands[i]); err != nil {
			return fmt.Errorf("drawing item %q operand %d: %w", it.Op, i, err)
		}
	}
	return nil
}

// MarshalJSON encodes the item in its array form
func (it Item) MarshalJSON() ([]byte, error) {
	out := make([]interface{}, 0, len(it.Operands)+1)
	out = append(out, it.Op)
	for _, v := range it.Operands {
		out = append(out, v)
	}
	return json.Marshal(out)
}

// Drawing is one vector drawing. Rect, when present, overrides the bounds
// computed from Items.
type Drawing struct {
	Rect  *Box   `json:"rect,omitempty"`
	Items []Item `json:"items,omitempty"`
}

// ImageData is the placement of one image
type ImageData struct {
	ID   int `json:"id"`
	BBox Box `json:"bbox"`
}

// SpanData is a run of text
type SpanData struct {
	Text string `json:"text"`
	BBox Box    `json:"bbox"`
}

// LineData is one line of text. Dir defaults to horizontal.
type LineData struct {
	BBox  *Box        `json:"bbox,omitempty"`
	Dir   *[2]float64 `json:"dir,omitempty"`
	Spans []SpanData  `json:"spans"`
}

// BlockData is one text block
type BlockData struct {
	BBox  *Box       `json:"bbox,omitempty"`
	Lines []LineData `json:"lines"`
}

// PageData is the serialized form of one page
type PageData struct {
	Width    float64     `json:"width"`
	Height   float64     `json:"height"`
	Drawings []Drawing   `json:"drawings,omitempty"`
	Images   []ImageData `json:"images,omitempty"`
	Blocks   []BlockData `json:"blocks,omitempty"`
}

// Document is a decoded primitives document
type Document struct {
	pages []*Page
}

// Load decodes a primitives document from r
func Load(r io.Reader) (*Document, error) {
	var raw struct {
		Pages []PageData `json:"pages"`
	}
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode primitives: %w", err)
	}

	doc := &Document{pages: make([]*Page, 0, len(raw.Pages))}
	for i, pd := range raw.Pages {
		page, err := NewPage(pd)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		doc.pages = append(doc.pages, page)
	}
	return doc, nil
}

// Open reads a primitives document from a file
func Open(filename string) (*Document, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// PageCount returns the number of pages
func (d *Document) PageCount() int {
	return len(d.pages)
}

// Page returns page n (1-based)
func (d *Document) Page(n int) (*Page, error) {
	if n < 1 || n > len(d.pages) {
		return nil, fmt.Errorf("%w: page %d of %d", ErrPageOutOfRange, n, len(d.pages))
	}
	return d.pages[n-1], nil
}

// Close releases the document. It exists so documents and PDF readers can
// be handled alike.
func (d *Document) Close() error {
	return nil
}

// Page holds the primitives of one decoded page
type Page struct {
	bounds   model.Rect
	drawings []model.Rect
	images   []model.Image
	blocks   []model.TextBlock
}

// NewPage converts serialized page data, replaying drawing paths and
// deriving missing line and block boxes.
func NewPage(pd PageData) (*Page, error) {
	if pd.Width <= 0 || pd.Height <= 0 {
		return nil, fmt.Errorf("%w: page size %gx%g", model.ErrInvalidGeometry, pd.Width, pd.Height)
	}
	p := &Page{bounds: model.Rect{X1: pd.Width, Y1: pd.Height}}

	for i, d := range pd.Drawings {
		r, err := drawingBounds(d)
		if err != nil {
			return nil, fmt.Errorf("drawing %d: %w", i, err)
		}
		if r.IsEmpty() {
			continue
		}
		p.drawings = append(p.drawings, r)
	}

	for _, img := range pd.Images {
		p.images = append(p.images, model.Image{ID: img.ID, BBox: img.BBox.Rect()})
	}

	for _, bd := range pd.Blocks {
		blk := model.TextBlock{BBox: model.EmptyRect}
		for _, ld := range bd.Lines {
			line := model.TextLine{Dir: model.Horizontal}
			if ld.Dir != nil {
				line.Dir = model.Direction{Cos: ld.Dir[0], Sin: ld.Dir[1]}
			}
			for _, sd := range ld.Spans {
				span := model.TextSpan{Text: sd.Text, BBox: sd.BBox.Rect()}
				line.Spans = append(line.Spans, span)
				line.BBox = line.BBox.Union(span.BBox)
			}
			if ld.BBox != nil {
				line.BBox = ld.BBox.Rect()
			}
			blk.Lines = append(blk.Lines, line)
			blk.BBox = blk.BBox.Union(line.BBox)
		}
		if bd.BBox != nil {
			blk.BBox = bd.BBox.Rect()
		}
		p.blocks = append(p.blocks, blk)
	}
	return p, nil
}

func drawingBounds(d Drawing) (model.Rect, error) {
	if d.Rect != nil {
		r := d.Rect.Rect()
		return r, r.Validate()
	}
	path := drawing.NewPath()
	for _, it := range d.Items {
		if err := path.Apply(it.Op, it.Operands); err != nil {
			return model.EmptyRect, err
		}
	}
	return path.Bounds(), nil
}

// Bounds returns the page rectangle
func (p *Page) Bounds() model.Rect {
	return p.bounds
}

// Drawings returns the bounding boxes of the page's drawings
func (p *Page) Drawings() []model.Rect {
	return p.drawings
}

// Images returns the image placements
func (p *Page) Images() []model.Image {
	return p.images
}

// TextBlocks returns the text blocks intersecting clip
func (p *Page) TextBlocks(clip model.Rect) []model.TextBlock {
	return model.ClipBlocks(p.blocks, clip)
}
