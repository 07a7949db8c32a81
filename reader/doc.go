// Package reader collects the geometric primitives of PDF pages.
//
// # Opening PDF Files
//
// Use [Open] to open a PDF file for reading:
//
//	r, err := reader.Open("document.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
// Or use [NewReader] with any io.ReaderAt.
//
// # Page Primitives
//
// Pages are numbered from 1. [Reader.Page] returns a [Page], which
// implements layout.PagePrimitives:
//
//   - Bounds - the MediaBox (inherited from the page tree when absent)
//   - Drawings - rectangles painted by the content stream
//   - TextBlocks - glyphs grouped into lines and lines into blocks
//
// All rectangles are converted to top-down coordinates with the origin at
// the top-left corner of the MediaBox.
//
// # Text Grouping
//
// [GroupBlocks] works in content stream order. A glyph continues the
// current line when it follows on the same baseline, or sits straight below
// the previous glyph for vertical text. Consecutive horizontal lines that
// overlap horizontally and are separated by less than [GroupConfig.BlockGap]
// line heights form one block.
//
// # Images
//
// Image placements are found by interpreting the content stream a second
// time, tracking the transformation matrix through q, Q and cm. Each Do of
// an image XObject places the unit square under the current matrix. Form
// XObjects are entered with their own matrix and resources. The library
// does not expose object numbers, so images are numbered per page in order
// of first use.
package reader
