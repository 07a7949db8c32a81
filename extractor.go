package colbox

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/tsawler/colbox/format"
	"github.com/tsawler/colbox/layout"
	"github.com/tsawler/colbox/model"
	"github.com/tsawler/colbox/primitives"
	"github.com/tsawler/colbox/reader"
	"github.com/tsawler/colbox/render"
)

// PageColumns holds the column boxes of one page
type PageColumns struct {
	Page    int             `json:"page"`
	Columns []layout.Column `json:"columns"`
}

// document is a source of page primitives
type document interface {
	PageCount() int
	Page(n int) (layout.PagePrimitives, error)
	Close() error
}

type pdfDocument struct{ r *reader.Reader }

func (d pdfDocument) PageCount() int { return d.r.PageCount() }
func (d pdfDocument) Close() error   { return d.r.Close() }
func (d pdfDocument) Page(n int) (layout.PagePrimitives, error) {
	p, err := d.r.Page(n)
	if err != nil {
		return nil, err
	}
	return p, nil
}

type primitivesDocument struct{ d *primitives.Document }

func (d primitivesDocument) PageCount() int { return d.d.PageCount() }
func (d primitivesDocument) Close() error   { return d.d.Close() }
func (d primitivesDocument) Page(n int) (layout.PagePrimitives, error) {
	p, err := d.d.Page(n)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Extractor provides a fluent interface for column reconstruction. Each
// configuration method returns a new Extractor instance, so a configured
// Extractor can be branched without affecting the original.
type Extractor struct {
	// Source
	filename string
	format   format.Format

	doc document

	// Lifecycle
	ownsDoc   bool // true if we opened the document and should close it
	docOpened bool

	options ExtractOptions
	log     logrus.FieldLogger

	// Accumulated error (fail-fast)
	err error

	// Warnings accumulated during processing
	warnings []Warning
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename:  e.filename,
		format:    e.format,
		doc:       e.doc,
		ownsDoc:   e.ownsDoc,
		docOpened: e.docOpened,
		options:   e.options.clone(),
		log:       e.log,
		err:       e.err,
		warnings:  append([]Warning(nil), e.warnings...),
	}
}

// ensureDocument opens the document if not already open. The content of
// the file decides its format; the extension is the fallback.
func (e *Extractor) ensureDocument() error {
	if e.docOpened {
		return nil
	}
	if e.filename == "" {
		return errors.New("no filename specified")
	}

	f, err := os.Open(e.filename)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	detected, err := format.DetectFromReader(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	if detected != format.Unknown {
		e.format = detected
	}

	switch e.format {
	case format.PDF:
		r, err := reader.Open(e.filename)
		if err != nil {
			return fmt.Errorf("failed to open PDF: %w", err)
		}
		r.SetLogger(e.log)
		e.doc = pdfDocument{r}

	case format.Primitives:
		d, err := primitives.Open(e.filename)
		if err != nil {
			return fmt.Errorf("failed to open primitives: %w", err)
		}
		e.doc = primitivesDocument{d}

	default:
		return fmt.Errorf("unsupported file format: %s", e.filename)
	}

	e.ownsDoc = true
	e.docOpened = true
	e.log.WithFields(logrus.Fields{
		"file":   e.filename,
		"format": e.format,
		"pages":  e.doc.PageCount(),
	}).Debug("document opened")
	return nil
}

// Close releases resources associated with the Extractor.
// It is safe to call Close multiple times.
func (e *Extractor) Close() error {
	if e.ownsDoc && e.doc != nil {
		err := e.doc.Close()
		e.doc = nil
		e.ownsDoc = false
		e.docOpened = false
		return err
	}
	return nil
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Pages specifies which pages to process (1-indexed).
// Multiple calls are cumulative.
//
// Example:
//
//	pages, _, err := colbox.Open("doc.pdf").Pages(1, 3, 5).Columns()
func (e *Extractor) Pages(pages ...int) *Extractor {
	newExt := e.clone()
	newExt.options.pages = append(newExt.options.pages, pages...)
	return newExt
}

// PageRange specifies a range of pages to process (1-indexed, inclusive).
//
// Example:
//
//	pages, _, err := colbox.Open("doc.pdf").PageRange(5, 10).Columns()
func (e *Extractor) PageRange(start, end int) *Extractor {
	newExt := e.clone()
	for i := start; i <= end; i++ {
		newExt.options.pages = append(newExt.options.pages, i)
	}
	return newExt
}

// Clip restricts processing to a region of each page, in top-down page
// coordinates. Multiple calls add clips that are walked in order; text
// taken by one clip is not repeated by a later one.
//
// Example:
//
//	text, _, err := colbox.Open("doc.pdf").
//	    Clip(model.NewRect(0, 50, 300, 742)).
//	    Clip(model.NewRect(0, 50, 612, 742)).
//	    Extract()
func (e *Extractor) Clip(r model.Rect) *Extractor {
	newExt := e.clone()
	if err := r.Validate(); err != nil && newExt.err == nil {
		newExt.err = fmt.Errorf("clip: %w", err)
	}
	newExt.options.clips = append(newExt.options.clips, r)
	return newExt
}

// KeepImageText keeps text lying on images as column candidates instead of
// suppressing it.
func (e *Extractor) KeepImageText() *Extractor {
	newExt := e.clone()
	newExt.options.columns.SuppressImageText = false
	return newExt
}

// RowTolerance sets how far apart the bottom edges of two column boxes
// may be for them to be ordered as one row.
func (e *Extractor) RowTolerance(tolerance float64) *Extractor {
	newExt := e.clone()
	if tolerance < 0 && newExt.err == nil {
		newExt.err = fmt.Errorf("row tolerance must not be negative, got %g", tolerance)
	}
	newExt.options.columns.RowTolerance = tolerance
	return newExt
}

// WithColumnConfig replaces the column reconstruction settings
func (e *Extractor) WithColumnConfig(config layout.ColumnConfig) *Extractor {
	newExt := e.clone()
	newExt.options.columns = config
	return newExt
}

// WithReadingOrderConfig replaces the reading order settings
func (e *Extractor) WithReadingOrderConfig(config layout.ReadingOrderConfig) *Extractor {
	newExt := e.clone()
	newExt.options.readingOrder = config
	return newExt
}

// WithRenderConfig replaces the settings used by Report for page images
func (e *Extractor) WithRenderConfig(config render.Config) *Extractor {
	newExt := e.clone()
	newExt.options.render = config
	return newExt
}

// WithLogger routes debug output of the extractor and the column builder
// to l.
func (e *Extractor) WithLogger(l logrus.FieldLogger) *Extractor {
	newExt := e.clone()
	if l == nil {
		l = discardLogger()
	}
	newExt.log = l
	if r, ok := newExt.doc.(pdfDocument); ok {
		r.r.SetLogger(l)
	}
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Columns reconstructs the column boxes of the configured pages. With
// clips, each clip is built separately and the boxes are concatenated in
// clip order. This is a terminal operation that closes the document.
//
// Example:
//
//	pages, warnings, err := colbox.Open("paper.pdf").Columns()
//	for _, p := range pages {
//	    for _, c := range p.Columns {
//	        fmt.Println(p.Page, c.BBox)
//	    }
//	}
func (e *Extractor) Columns() ([]PageColumns, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	if err := e.ensureDocument(); err != nil {
		return nil, nil, err
	}
	defer e.Close()

	builder := e.builder()
	var result []PageColumns
	err := e.eachPage(func(n int, page layout.PagePrimitives) error {
		cols, err := e.pageColumns(builder, page)
		if err != nil {
			return err
		}
		result = append(result, PageColumns{Page: n, Columns: cols})
		return nil
	})
	if err != nil {
		return nil, e.warnings, err
	}
	return result, e.warnings, nil
}

// Extract reads the text of the configured pages in column order. This is
// a terminal operation that closes the document.
//
// Example:
//
//	pages, _, err := colbox.Open("newsletter.pdf").Extract()
//	for _, p := range pages {
//	    fmt.Println(strings.Join(p.Paragraphs, "\n\n"))
//	}
func (e *Extractor) Extract() ([]layout.PageText, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	if err := e.ensureDocument(); err != nil {
		return nil, nil, err
	}
	defer e.Close()

	detector := layout.NewReadingOrderDetectorWithConfig(e.options.readingOrder, e.builder())
	var result []layout.PageText
	err := e.eachPage(func(n int, page layout.PagePrimitives) error {
		pt, err := detector.Extract(page, e.options.clips...)
		if err != nil {
			return err
		}
		result = append(result, *pt)
		return nil
	})
	if err != nil {
		return nil, e.warnings, err
	}
	return result, e.warnings, nil
}

// Report collects columns, page geometry and text of the configured pages
// for rendering. This is a terminal operation that closes the document.
//
// Example:
//
//	rep, _, err := colbox.Open("paper.pdf").Report()
//	if err != nil {
//	    // handle error
//	}
//	err = render.HTML(w, rep)
func (e *Extractor) Report() (render.Report, []Warning, error) {
	rep := render.Report{Title: "colbox report"}
	if e.filename != "" {
		rep.Title = filepath.Base(e.filename)
	}
	if e.err != nil {
		return rep, nil, e.err
	}
	if err := e.ensureDocument(); err != nil {
		return rep, nil, err
	}
	defer e.Close()

	builder := e.builder()
	detector := layout.NewReadingOrderDetectorWithConfig(e.options.readingOrder, builder)
	err := e.eachPage(func(n int, page layout.PagePrimitives) error {
		cols, err := e.pageColumns(builder, page)
		if err != nil {
			return err
		}
		pt, err := detector.Extract(page, e.options.clips...)
		if err != nil {
			return err
		}
		rep.Pages = append(rep.Pages, render.PageReport{
			Number:  n,
			Overlay: render.NewOverlay(page, cols),
			Text:    pt,
		})
		return nil
	})
	if err != nil {
		return rep, e.warnings, err
	}
	return rep, e.warnings, nil
}

// RenderConfig returns the settings for drawing page images
func (e *Extractor) RenderConfig() render.Config {
	return e.options.render
}

// PageCount returns the total number of pages in the document.
// This does NOT close the document, allowing further operations.
//
// Example:
//
//	ext := colbox.Open("document.pdf")
//	defer ext.Close()
//	count, err := ext.PageCount()
func (e *Extractor) PageCount() (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	if err := e.ensureDocument(); err != nil {
		return 0, err
	}
	return e.doc.PageCount(), nil
}

// ============================================================================
// Helpers
// ============================================================================

func (e *Extractor) builder() *layout.ColumnBuilder {
	return layout.NewColumnBuilderWithConfig(e.options.columns).WithLogger(e.log)
}

func (e *Extractor) pageColumns(builder *layout.ColumnBuilder, page layout.PagePrimitives) ([]layout.Column, error) {
	if len(e.options.clips) == 0 {
		return builder.Build(page, model.EmptyRect)
	}
	var cols []layout.Column
	for _, clip := range e.options.clips {
		c, err := builder.Build(page, clip)
		if err != nil {
			return nil, err
		}
		cols = append(cols, c...)
	}
	return cols, nil
}

// eachPage loads every requested page in ascending order and passes it to
// fn. Pages without text are reported as warnings.
func (e *Extractor) eachPage(fn func(n int, page layout.PagePrimitives) error) error {
	pageNums, err := e.resolvePages()
	if err != nil {
		return err
	}

	for _, n := range pageNums {
		page, err := e.doc.Page(n)
		if err != nil {
			return fmt.Errorf("page %d: %w", n, err)
		}
		if len(page.TextBlocks(page.Bounds())) == 0 {
			e.warnings = append(e.warnings, Warning{Page: n, Message: "no text found"})
		}
		if err := fn(n, page); err != nil {
			return fmt.Errorf("page %d: %w", n, err)
		}
		e.log.WithField("page", n).Debug("page processed")
	}
	return nil
}

// resolvePages returns the requested page numbers, sorted and without
// duplicates.
func (e *Extractor) resolvePages() ([]int, error) {
	pageCount := e.doc.PageCount()

	if len(e.options.pages) == 0 {
		nums := make([]int, pageCount)
		for i := range nums {
			nums[i] = i + 1
		}
		return nums, nil
	}

	seen := make(map[int]bool)
	var nums []int
	for _, p := range e.options.pages {
		if p < 1 || p > pageCount {
			return nil, fmt.Errorf("page %d out of range (1-%d)", p, pageCount)
		}
		if !seen[p] {
			seen[p] = true
			nums = append(nums, p)
		}
	}
	sort.Ints(nums)
	return nums, nil
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
