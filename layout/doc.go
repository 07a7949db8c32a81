// Package layout reconstructs the column structure of a page from its
// geometric primitives and derives a reading order from it.
//
// # Column Reconstruction
//
// The [ColumnBuilder] turns the text blocks, vector drawings and image
// placements of a page into a small set of column boxes:
//
//	builder := layout.NewColumnBuilder()
//	columns, err := builder.Build(page, clip)
//
// Each horizontal text block contributes one candidate rectangle (the union
// of its lines with at least two visible characters). Blocks starting with
// vertical or rotated text become obstacles. Drawings act as background
// panels: a candidate enclosed by a panel is tagged with it, and candidates
// on different panels are never joined.
//
// Candidates are merged first-fit in (background, top, left) order. A
// candidate joins an existing box only when their horizontal spans overlap
// and the joined rectangle touches no obstacle and no other box. A
// lookahead against the candidates still to come keeps a join from
// swallowing text that belongs elsewhere.
//
// The merged boxes are then cleaned: duplicates are dropped and boxes whose
// bottom edges lie within [ColumnConfig.RowTolerance] are ordered left to
// right.
//
// # Reading Order
//
// The [ReadingOrderDetector] splits the column boxes into main columns and
// outliers by comparing each width to the median, then walks the page text
// column by column:
//
//	detector := layout.NewReadingOrderDetector()
//	text, err := detector.Extract(page)
//
// Outlier boxes (banners, wide captions) are emitted first, then main
// columns from left to right, each split into paragraphs. Text printed on
// images is reported per image.
//
// # Page Primitives
//
// Both components read pages through the [PagePrimitives] interface, which
// the reader and primitives packages implement for PDF files and JSON
// primitive dumps.
package layout
