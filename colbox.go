// Package colbox provides a fluent API for reconstructing the text columns
// of document pages and reading their text in column order.
//
// Basic usage:
//
//	pages, warnings, err := colbox.Open("paper.pdf").Columns()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", colbox.FormatWarnings(warnings))
//	}
//
// With options:
//
//	text, _, err := colbox.Open("newsletter.pdf").
//	    Pages(1, 2).
//	    RowTolerance(4).
//	    Extract()
//
// Input is either a PDF file or a JSON primitives document captured from
// another PDF toolkit (see package primitives). For lower-level control the
// layout, reader and primitives packages can be used directly.
package colbox

import (
	"io"

	"github.com/tsawler/colbox/format"
	"github.com/tsawler/colbox/primitives"
	"github.com/tsawler/colbox/reader"
)

// Open opens a PDF or primitives file and returns an Extractor for fluent
// configuration. The file is opened lazily by the first operation that
// needs it. The returned Extractor must be closed when done, either
// explicitly via Close() or implicitly by a terminal operation such as
// Columns().
//
// Example:
//
//	pages, warnings, err := colbox.Open("document.pdf").Columns()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		format:   format.Detect(filename),
		options:  defaultOptions(),
		log:      discardLogger(),
	}
}

// FromPrimitives creates an Extractor over a JSON primitives document read
// from src. A decoding error is reported by the first operation.
//
// Example:
//
//	text, _, err := colbox.FromPrimitives(os.Stdin).Extract()
func FromPrimitives(src io.Reader) *Extractor {
	e := &Extractor{
		format:  format.Primitives,
		options: defaultOptions(),
		log:     discardLogger(),
	}
	doc, err := primitives.Load(src)
	if err != nil {
		e.err = err
		return e
	}
	e.doc = primitivesDocument{doc}
	e.ownsDoc = true
	e.docOpened = true
	return e
}

// FromReader creates an Extractor from an already-opened reader.Reader.
// The caller is responsible for closing the reader.
//
// Example:
//
//	r, err := reader.Open("document.pdf")
//	if err != nil {
//	    // handle error
//	}
//	defer r.Close()
//	pages, warnings, err := colbox.FromReader(r).Columns()
func FromReader(r *reader.Reader) *Extractor {
	return &Extractor{
		format:    format.PDF,
		doc:       pdfDocument{r},
		ownsDoc:   false,
		docOpened: true,
		options:   defaultOptions(),
		log:       discardLogger(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := colbox.Must(colbox.Open("document.pdf").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustValue is a helper that wraps a terminal operation such as Columns()
// or Extract() and panics if the error is non-nil. It discards warnings.
//
// Example:
//
//	text := colbox.MustValue(colbox.Open("document.pdf").Extract())
func MustValue[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
